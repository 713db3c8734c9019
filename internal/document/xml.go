package document

import (
	"bytes"
	"fmt"
	"strings"
)

// xmlPreamble is reproduced verbatim on every serialized XML document,
// regardless of how the upload spelled its declaration.
const xmlPreamble = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// xmlDocument rewrites text between tags and copies all markup bytes
// untouched. A DOM round trip through encoding/xml rewrites namespace
// prefixes, which would break the only-text-nodes-change guarantee for
// namespaced documents (ODT content.xml), so the rewrite is a scanner
// over the raw bytes instead.
type xmlDocument struct {
	body       []byte
	translated []byte
}

func parseXML(content []byte) (*xmlDocument, error) {
	body := stripXMLDeclaration(content)
	// walk once up front so malformed markup fails at upload time
	if err := scanXML(body, nil, func(text string) (string, error) { return text, nil }); err != nil {
		return nil, err
	}
	return &xmlDocument{body: body}, nil
}

func stripXMLDeclaration(content []byte) []byte {
	trimmed := bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	rest := bytes.TrimLeft(trimmed, " \t\r\n")
	if bytes.HasPrefix(rest, []byte("<?xml")) {
		if end := bytes.Index(rest, []byte("?>")); end >= 0 {
			return bytes.TrimLeft(rest[end+2:], "\r\n")
		}
	}
	return trimmed
}

func (d *xmlDocument) ExtractText() string {
	body := d.body
	if d.translated != nil {
		body = d.translated
	}
	var sb strings.Builder
	_ = scanXML(body, nil, func(text string) (string, error) {
		sb.WriteString(text)
		return text, nil
	})
	return sb.String()
}

func (d *xmlDocument) TranslateNodes(fn func(string) (string, error)) error {
	out, err := rewriteXMLText(d.body, fn)
	if err != nil {
		return err
	}
	d.translated = out
	return nil
}

func (d *xmlDocument) Serialize() ([]byte, error) {
	body := d.translated
	if body == nil {
		body = d.body
	}
	return append([]byte(xmlPreamble), body...), nil
}

func (d *xmlDocument) ContentType() string {
	return "text/xml; charset=utf-8"
}

// rewriteXMLText copies markup through and replaces each text run with
// its translation.
func rewriteXMLText(body []byte, fn func(string) (string, error)) ([]byte, error) {
	var out bytes.Buffer
	err := scanXML(body, &out, func(text string) (string, error) {
		return translateSegment(text, fn)
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// scanXML walks body, rewriting each text run and copying markup
// constructs (tags, comments, CDATA, processing instructions, doctypes)
// through atomically. out may be nil for a validation-only walk.
func scanXML(body []byte, out *bytes.Buffer, rewrite func(string) (string, error)) error {
	i := 0
	for i < len(body) {
		lt := bytes.IndexByte(body[i:], '<')
		if lt < 0 {
			if err := emitText(body[i:], out, rewrite); err != nil {
				return err
			}
			break
		}
		if lt > 0 {
			if err := emitText(body[i:i+lt], out, rewrite); err != nil {
				return err
			}
		}
		i += lt
		end, err := markupEnd(body, i)
		if err != nil {
			return err
		}
		if out != nil {
			out.Write(body[i:end])
		}
		i = end
	}
	return nil
}

func emitText(text []byte, out *bytes.Buffer, rewrite func(string) (string, error)) error {
	replaced, err := rewrite(string(text))
	if err != nil {
		return err
	}
	if out != nil {
		out.WriteString(replaced)
	}
	return nil
}

// markupEnd returns the index just past the markup construct starting at
// body[start] (which is '<').
func markupEnd(body []byte, start int) (int, error) {
	rest := body[start:]
	switch {
	case bytes.HasPrefix(rest, []byte("<!--")):
		if end := bytes.Index(rest, []byte("-->")); end >= 0 {
			return start + end + 3, nil
		}
		return 0, fmt.Errorf("unterminated comment at offset %d", start)
	case bytes.HasPrefix(rest, []byte("<![CDATA[")):
		if end := bytes.Index(rest, []byte("]]>")); end >= 0 {
			return start + end + 3, nil
		}
		return 0, fmt.Errorf("unterminated CDATA section at offset %d", start)
	case bytes.HasPrefix(rest, []byte("<?")):
		if end := bytes.Index(rest, []byte("?>")); end >= 0 {
			return start + end + 2, nil
		}
		return 0, fmt.Errorf("unterminated processing instruction at offset %d", start)
	}
	// plain tag or <!DOCTYPE ...>; '>' inside quoted attribute values
	// does not close the tag
	quote := byte(0)
	for i := start + 1; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated tag at offset %d", start)
}
