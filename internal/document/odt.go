package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

const odtContentEntry = "content.xml"

// odtDocument is an OpenDocument text container. Only content.xml is
// rewritten; every other archive entry round-trips untouched, and the
// "mimetype" entry keeps its Store compression as the ODF container
// rules require.
type odtDocument struct {
	raw        []byte
	content    *xmlDocument
	translated bool
}

func parseODT(raw []byte) (*odtDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open odt container: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != odtContentEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		content, err := parseXML(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", odtContentEntry, err)
		}
		return &odtDocument{raw: raw, content: content}, nil
	}
	return nil, fmt.Errorf("odt container has no %s", odtContentEntry)
}

func (d *odtDocument) ExtractText() string {
	return d.content.ExtractText()
}

func (d *odtDocument) TranslateNodes(fn func(string) (string, error)) error {
	if err := d.content.TranslateNodes(fn); err != nil {
		return err
	}
	d.translated = true
	return nil
}

func (d *odtDocument) Serialize() ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(d.raw), int64(len(d.raw)))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		header := f.FileHeader
		w, err := zw.CreateHeader(&header)
		if err != nil {
			return nil, err
		}
		if f.Name == odtContentEntry {
			body := d.content.translated
			if body == nil {
				body = d.content.body
			}
			if _, err := w.Write(append([]byte(xmlPreamble), body...)); err != nil {
				return nil, err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, err
		}
		rc.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *odtDocument) ContentType() string {
	return "application/vnd.oasis.opendocument.text"
}
