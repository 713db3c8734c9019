package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/translation-api/internal/document"
	"github.com/tesseract-hub/translation-api/internal/httperr"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// textFromRequest extracts the text to translate from a request.
//
// There are two ways to send it: as a text/plain file uploaded under
// "input_text" (multipart/form-data), or as a form field named
// "input_text" (application/x-www-form-urlencoded or multipart).
// Uploaded files win over the form field.
func (h *TranslationHandler) textFromRequest(c *gin.Context) (translatable.Translatable, error) {
	if file, err := c.FormFile("input_text"); err == nil && file != nil {
		if file.Filename == "" {
			return nil, httperr.BadRequest("Empty filename")
		}
		if isPlainText(file.Header.Get("Content-Type")) {
			data, err := readUpload(file)
			if err != nil {
				return nil, err
			}
			return translatable.NewTextFromFile(data, file.Filename), nil
		}
		// a non-text upload under input_text falls through: the form
		// field may still carry the text
	}

	if value, ok := c.GetPostForm("input_text"); ok {
		return translatable.NewText(value), nil
	}

	return nil, httperr.BadRequest("No text found in the input_text form/field or in request files")
}

// fileFromRequest extracts an uploaded document under "input_file".
func (h *TranslationHandler) fileFromRequest(c *gin.Context) (translatable.Translatable, error) {
	file, err := c.FormFile("input_file")
	if err != nil || file == nil || file.Filename == "" {
		return nil, httperr.BadRequest("No file sent")
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(file.Filename, data, h.config.AllowedExtensions)
	if err != nil {
		var unsupported *document.ErrUnsupportedType
		if errors.As(err, &unsupported) {
			return nil, httperr.UnsupportedMediaType("Unsupported file type for translation")
		}
		return nil, httperr.BadRequest("Cannot parse the uploaded file")
	}

	return translatable.NewDocument(doc, file.Filename), nil
}

func isPlainText(contentType string) bool {
	return contentType == "text/plain" || strings.HasPrefix(contentType, "text/plain;")
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, httperr.BadRequest("Cannot read the uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, httperr.BadRequest("Cannot read the uploaded file")
	}
	return data, nil
}
