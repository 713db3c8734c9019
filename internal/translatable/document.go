package translatable

import (
	"context"

	"github.com/tesseract-hub/translation-api/internal/document"
	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/registry"
)

// Document adapts a parsed structured file to the Translatable surface.
// Segmentation and reassembly live in the document package; this wrapper
// contributes metering and the one-translation contract.
type Document struct {
	doc        document.Document
	text       string
	translated bool
	metrics    Metrics
}

// NewDocument wraps a parsed document. Metrics count the extracted
// plain-text content: the size limit is on translatable text, not on
// raw file size.
func NewDocument(doc document.Document, filename string) *Document {
	if filename == "" {
		filename = NoFilenameSet
	}
	text := doc.ExtractText()
	return &Document{
		doc:  doc,
		text: text,
		metrics: Metrics{
			Filename:  filename,
			WordCount: CountWords(text),
			NFCLen:    NFCLen(text),
		},
	}
}

func (d *Document) Kind() string { return "document" }

func (d *Document) TranslateFromTo(ctx context.Context, tr engine.Translator, src, tgt string) error {
	if d.translated {
		return errAlreadyTranslated
	}
	err := d.doc.TranslateNodes(func(segment string) (string, error) {
		return tr.TranslateFromTo(ctx, src, tgt, segment)
	})
	if err != nil {
		return err
	}
	d.translated = true
	return nil
}

func (d *Document) TranslateWithModel(ctx context.Context, tr engine.Translator, model *registry.Model, src, tgt string) error {
	if d.translated {
		return errAlreadyTranslated
	}
	err := d.doc.TranslateNodes(func(segment string) (string, error) {
		return tr.TranslateWithModel(ctx, model, src, tgt, segment)
	})
	if err != nil {
		return err
	}
	d.translated = true
	return nil
}

func (d *Document) Metrics() Metrics { return d.metrics }

func (d *Document) OutputWordCount() int {
	if !d.translated {
		return 0
	}
	return CountWords(d.doc.ExtractText())
}

func (d *Document) SourceText() string { return d.text }

func (d *Document) TranslatedText() string {
	if !d.translated {
		return ""
	}
	return d.doc.ExtractText()
}

// Render ignores the negotiated media type: a translated document goes
// back in its own format family.
func (d *Document) Render(MediaType) ([]byte, string, error) {
	body, err := d.doc.Serialize()
	if err != nil {
		return nil, "", err
	}
	return body, d.doc.ContentType(), nil
}
