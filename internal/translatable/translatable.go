// Package translatable models one translation request's input/output
// unit. A Translatable owns its raw input, metering data computed once
// at construction, and exactly one translation result; handlers only
// ever touch the interface, never the concrete variants.
package translatable

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/registry"
)

// Filename sentinels for input that did not arrive as a file.
const (
	DirectInput   = "_DIRECT_INPUT"
	NoFilenameSet = "_NO_FILENAME_SET"
)

// MediaType is a negotiated response encoding.
type MediaType string

const (
	MediaPlain MediaType = "text/plain"
	MediaJSON  MediaType = "application/json"
)

// Metrics is the metering data billing works from. Computed from the
// original input at construction and never recomputed: billing reflects
// input size even when the translation later fails.
type Metrics struct {
	Filename  string
	WordCount int
	NFCLen    int
}

// Translatable is the polymorphic unit shared by every endpoint.
type Translatable interface {
	// Kind is the wording used in size-limit errors: "request" for
	// inline/batch text, "document" for uploaded files.
	Kind() string

	// TranslateFromTo translates by language pair. Must be called at
	// most once per Translatable.
	TranslateFromTo(ctx context.Context, tr engine.Translator, src, tgt string) error

	// TranslateWithModel translates with an already resolved model.
	TranslateWithModel(ctx context.Context, tr engine.Translator, model *registry.Model, src, tgt string) error

	Metrics() Metrics
	OutputWordCount() int

	// SourceText and TranslatedText feed the opt-in content log.
	SourceText() string
	TranslatedText() string

	// Render serializes the translation result for the negotiated media
	// type and reports the response content type.
	Render(media MediaType) (body []byte, contentType string, err error)
}

// NormalizeNFC canonically composes s; all metering runs on NFC text.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// NFCLen counts characters of the NFC normalization of s.
func NFCLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// JoinPlain renders a list of translated segments as plain text: joined
// with a single space, then a literal newline+space collapsed to a bare
// newline. Reproduced exactly; clients diff the bytes.
func JoinPlain(segments []string) string {
	return strings.ReplaceAll(strings.Join(segments, " "), "\n ", "\n")
}
