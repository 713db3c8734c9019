package translatable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/registry"
)

var errAlreadyTranslated = errors.New("translatable already carries a translation")

// Text is a single string to translate.
type Text struct {
	source      string
	translation string
	translated  bool
	metrics     Metrics
}

// NewText wraps direct form input. Content is NFC-normalized before
// metering.
func NewText(s string) *Text {
	return newText(s, DirectInput)
}

// NewTextFromFile wraps an uploaded text/plain file.
func NewTextFromFile(content []byte, filename string) *Text {
	if filename == "" {
		filename = NoFilenameSet
	}
	return newText(string(content), filename)
}

func newText(s, filename string) *Text {
	s = NormalizeNFC(s)
	return &Text{
		source: s,
		metrics: Metrics{
			Filename:  filename,
			WordCount: CountWords(s),
			NFCLen:    NFCLen(s),
		},
	}
}

func (t *Text) Kind() string { return "request" }

func (t *Text) TranslateFromTo(ctx context.Context, tr engine.Translator, src, tgt string) error {
	if t.translated {
		return errAlreadyTranslated
	}
	out, err := tr.TranslateFromTo(ctx, src, tgt, t.source)
	if err != nil {
		return err
	}
	t.translation = out
	t.translated = true
	return nil
}

func (t *Text) TranslateWithModel(ctx context.Context, tr engine.Translator, model *registry.Model, src, tgt string) error {
	if t.translated {
		return errAlreadyTranslated
	}
	out, err := tr.TranslateWithModel(ctx, model, src, tgt, t.source)
	if err != nil {
		return err
	}
	t.translation = out
	t.translated = true
	return nil
}

func (t *Text) Metrics() Metrics { return t.metrics }

func (t *Text) OutputWordCount() int { return CountWords(t.translation) }

func (t *Text) SourceText() string { return t.source }

func (t *Text) TranslatedText() string { return t.translation }

// Render emits the bare translated string for text/plain and, for JSON,
// a one-element array. The array shape is legacy API surface: clients
// read r.json()[0].
func (t *Text) Render(media MediaType) ([]byte, string, error) {
	switch media {
	case MediaPlain:
		return []byte(JoinPlain([]string{t.translation})), "text/plain; charset=utf-8", nil
	case MediaJSON:
		body, err := json.Marshal([]string{t.translation})
		return body, "application/json", err
	default:
		return nil, "", fmt.Errorf("unsupported media type %q", media)
	}
}

// TextBatch is an ordered list of strings translated independently.
// Output index i always corresponds to input index i, and the batch is
// atomic: one failed element fails the whole request.
type TextBatch struct {
	sources      []string
	translations []string
	translated   bool
	metrics      Metrics
}

// NewTextBatch wraps an ordered list of input sentences.
func NewTextBatch(texts []string) *TextBatch {
	words, chars := 0, 0
	normalized := make([]string, len(texts))
	for i, s := range texts {
		s = NormalizeNFC(s)
		normalized[i] = s
		words += CountWords(s)
		chars += NFCLen(s)
	}
	return &TextBatch{
		sources: normalized,
		metrics: Metrics{
			Filename:  DirectInput,
			WordCount: words,
			NFCLen:    chars,
		},
	}
}

func (b *TextBatch) Kind() string { return "request" }

func (b *TextBatch) TranslateFromTo(ctx context.Context, tr engine.Translator, src, tgt string) error {
	return b.translate(func(text string) (string, error) {
		return tr.TranslateFromTo(ctx, src, tgt, text)
	})
}

func (b *TextBatch) TranslateWithModel(ctx context.Context, tr engine.Translator, model *registry.Model, src, tgt string) error {
	return b.translate(func(text string) (string, error) {
		return tr.TranslateWithModel(ctx, model, src, tgt, text)
	})
}

func (b *TextBatch) translate(one func(string) (string, error)) error {
	if b.translated {
		return errAlreadyTranslated
	}
	out := make([]string, len(b.sources))
	for i, s := range b.sources {
		t, err := one(s)
		if err != nil {
			return err
		}
		out[i] = t
	}
	b.translations = out
	b.translated = true
	return nil
}

func (b *TextBatch) Metrics() Metrics { return b.metrics }

func (b *TextBatch) OutputWordCount() int {
	words := 0
	for _, t := range b.translations {
		words += CountWords(t)
	}
	return words
}

func (b *TextBatch) SourceText() string {
	body, _ := json.Marshal(b.sources)
	return string(body)
}

func (b *TextBatch) TranslatedText() string {
	body, _ := json.Marshal(b.translations)
	return string(body)
}

// Translations returns the result list in input order.
func (b *TextBatch) Translations() []string {
	return b.translations
}

func (b *TextBatch) Render(media MediaType) ([]byte, string, error) {
	switch media {
	case MediaPlain:
		return []byte(JoinPlain(b.translations)), "text/plain; charset=utf-8", nil
	case MediaJSON:
		body, err := json.Marshal(map[string][]string{"translations": b.translations})
		return body, "application/json", err
	default:
		return nil, "", fmt.Errorf("unsupported media type %q", media)
	}
}
