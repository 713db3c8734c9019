package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/translation-api/internal/httperr"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// selectMedia picks the response encoding. Documents go back in their
// own format family and batch responses are pinned to JSON, so Accept
// only selects a representation for single-text responses.
func selectMedia(c *gin.Context, t translatable.Translatable, fixed translatable.MediaType) (translatable.MediaType, error) {
	if _, isDoc := t.(*translatable.Document); isDoc {
		return "", nil
	}
	if fixed != "" {
		return fixed, nil
	}
	return negotiateMedia(c)
}

// negotiateMedia maps the Accept header onto the supported response
// encodings. text/plain is the historical default; anything the strict
// table does not know is a 406.
func negotiateMedia(c *gin.Context) (translatable.MediaType, error) {
	switch c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) {
	case gin.MIMEPlain:
		return translatable.MediaPlain, nil
	case gin.MIMEJSON:
		return translatable.MediaJSON, nil
	default:
		return "", httperr.NotAcceptable("The requested media type is not acceptable; this endpoint produces text/plain and application/json.")
	}
}

// writeTranslated renders t for the negotiated media type with all
// billing headers attached.
func writeTranslated(c *gin.Context, t translatable.Translatable, media translatable.MediaType, headerSets ...map[string]string) {
	body, contentType, err := t.Render(media)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	for _, headers := range headerSets {
		for k, v := range headers {
			c.Header(k, v)
		}
	}
	c.Data(http.StatusOK, contentType, body)
}
