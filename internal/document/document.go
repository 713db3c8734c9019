// Package document parses uploaded files into a markup-aware form the
// orchestration layer can translate. Translation replaces text nodes
// only; tag structure, attributes and the container format survive the
// round trip.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is a parsed uploaded file. TranslateNodes feeds every
// translatable text segment through fn, in document order, and stores
// the results in place.
type Document interface {
	// ExtractText returns the markup-stripped translatable content; the
	// size limit applies to this, not to the raw file size.
	ExtractText() string

	TranslateNodes(fn func(segment string) (string, error)) error

	// Serialize re-encodes the document in its original format.
	Serialize() ([]byte, error)

	// ContentType is the response media type for this format family.
	ContentType() string
}

// ErrUnsupportedType reports an extension outside the allowed set.
type ErrUnsupportedType struct {
	Extension string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported file extension %q", e.Extension)
}

// Parse dispatches on the file extension. allowed is the configured
// extension whitelist (lowercase, without dots).
func Parse(filename string, content []byte, allowed []string) (Document, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !contains(allowed, ext) {
		return nil, &ErrUnsupportedType{Extension: ext}
	}
	switch ext {
	case "html", "htm":
		return parseHTML(content)
	case "xml":
		return parseXML(content)
	case "odt":
		return parseODT(content)
	case "txt":
		return parsePlain(content), nil
	default:
		return nil, &ErrUnsupportedType{Extension: ext}
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// translateSegment runs fn over the whitespace-trimmed core of a text
// node, keeping the node's own leading/trailing whitespace and dropping
// the trailing newline MT backends append to each segment.
func translateSegment(s string, fn func(string) (string, error)) (string, error) {
	core := strings.TrimSpace(s)
	if core == "" {
		return s, nil
	}
	idx := strings.Index(s, core)
	leading, trailing := s[:idx], s[idx+len(core):]
	out, err := fn(core)
	if err != nil {
		return "", err
	}
	return leading + strings.TrimRight(out, "\n") + trailing, nil
}
