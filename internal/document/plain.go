package document

import "strings"

// plainDocument is an uploaded .txt file: no markup, the whole content
// is one translatable segment sent to the backend verbatim. The backend
// output, trailing newline included, becomes the document body.
type plainDocument struct {
	source     string
	translated string
	done       bool
}

func parsePlain(content []byte) *plainDocument {
	return &plainDocument{source: string(content)}
}

func (d *plainDocument) ExtractText() string {
	if d.done {
		return d.translated
	}
	return d.source
}

func (d *plainDocument) TranslateNodes(fn func(string) (string, error)) error {
	if strings.TrimSpace(d.source) == "" {
		d.translated = d.source
		d.done = true
		return nil
	}
	out, err := fn(d.source)
	if err != nil {
		return err
	}
	d.translated = out
	d.done = true
	return nil
}

func (d *plainDocument) Serialize() ([]byte, error) {
	if d.done {
		return []byte(d.translated), nil
	}
	return []byte(d.source), nil
}

func (d *plainDocument) ContentType() string {
	return "text/plain; charset=utf-8"
}
