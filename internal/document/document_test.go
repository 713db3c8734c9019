package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedAll = []string{"txt", "html", "htm", "xml", "odt"}

// upper is the stand-in translation used throughout: uppercases the
// segment and appends the trailing newline MT backends produce.
func upper(s string) (string, error) {
	return strings.ToUpper(s) + "\n", nil
}

func TestParseDispatchesOnExtension(t *testing.T) {
	doc, err := Parse("page.HTML", []byte("<p>hi</p>"), allowedAll)
	require.NoError(t, err)
	assert.IsType(t, &htmlDocument{}, doc)

	doc, err = Parse("notes.txt", []byte("hi"), allowedAll)
	require.NoError(t, err)
	assert.IsType(t, &plainDocument{}, doc)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse("report.pdf", []byte("%PDF"), allowedAll)
	var unsupported *ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "pdf", unsupported.Extension)
}

func TestParseHonorsConfiguredWhitelist(t *testing.T) {
	_, err := Parse("page.html", []byte("<p>hi</p>"), []string{"txt"})
	var unsupported *ErrUnsupportedType
	assert.ErrorAs(t, err, &unsupported)
}

func TestTranslateSegmentKeepsSurroundingWhitespace(t *testing.T) {
	out, err := translateSegment("  hello world\n", upper)
	require.NoError(t, err)
	assert.Equal(t, "  HELLO WORLD\n", out)
}

func TestTranslateSegmentSkipsWhitespaceOnly(t *testing.T) {
	calls := 0
	out, err := translateSegment("  \n\t", func(string) (string, error) {
		calls++
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "  \n\t", out)
	assert.Zero(t, calls)
}

func TestHTMLRoundTrip(t *testing.T) {
	doc, err := Parse("page.html", []byte("<p>Hello <b>world</b>!</p>"), allowedAll)
	require.NoError(t, err)

	assert.Equal(t, "Hello world!", doc.ExtractText())

	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "<p>HELLO <b>WORLD</b>!</p>", string(out))
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType())
}

func TestHTMLFragmentGetsNoWrapperElements(t *testing.T) {
	doc, err := Parse("page.html", []byte("plain text, no tags"), allowedAll)
	require.NoError(t, err)

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<html>")
	assert.NotContains(t, string(out), "<body>")
}

func TestHTMLSkipsScriptAndStyle(t *testing.T) {
	doc, err := Parse("page.html", []byte(`<p>text</p><script>var x = "code";</script>`), allowedAll)
	require.NoError(t, err)

	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "TEXT")
	assert.Contains(t, string(out), `var x = "code";`)
}

func TestXMLRoundTrip(t *testing.T) {
	input := `<?xml version="1.0" encoding="utf-8"?>
<root note="a > b"><item>first</item><!-- keep --><item>second</item></root>`

	doc, err := Parse("data.xml", []byte(input), allowedAll)
	require.NoError(t, err)

	assert.Equal(t, "firstsecond", doc.ExtractText())

	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			`<root note="a > b"><item>FIRST</item><!-- keep --><item>SECOND</item></root>`,
		string(out))
}

func TestXMLKeepsNamespacePrefixes(t *testing.T) {
	input := `<office:body xmlns:office="urn:office" xmlns:text="urn:text"><text:p>hello</text:p></office:body>`

	doc, err := Parse("data.xml", []byte(input), allowedAll)
	require.NoError(t, err)
	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<text:p>HELLO</text:p>")
	assert.Contains(t, string(out), `xmlns:text="urn:text"`)
}

func TestXMLCDATAIsNotTranslated(t *testing.T) {
	input := `<root><![CDATA[raw & bytes]]>outside</root>`

	doc, err := Parse("data.xml", []byte(input), allowedAll)
	require.NoError(t, err)
	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<![CDATA[raw & bytes]]>")
	assert.Contains(t, string(out), "OUTSIDE")
}

func TestXMLRejectsUnterminatedMarkup(t *testing.T) {
	_, err := Parse("data.xml", []byte("<root><unclosed"), allowedAll)
	assert.ErrorContains(t, err, "unterminated tag")
}

func TestPlainDocumentRoundTrip(t *testing.T) {
	doc, err := Parse("notes.txt", []byte("hello world"), allowedAll)
	require.NoError(t, err)

	assert.Equal(t, "hello world", doc.ExtractText())

	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD\n", string(out), "the backend's trailing newline is part of the document body")
	assert.Equal(t, "HELLO WORLD\n", doc.ExtractText())
}

func TestPlainDocumentWhitespaceOnlyPassesThrough(t *testing.T) {
	doc, err := Parse("notes.txt", []byte("  \n\t"), allowedAll)
	require.NoError(t, err)

	calls := 0
	require.NoError(t, doc.TranslateNodes(func(string) (string, error) {
		calls++
		return "", nil
	}))

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "  \n\t", string(out))
	assert.Zero(t, calls)
}

func buildODT(t *testing.T, contentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// ODF requires the mimetype entry first and uncompressed
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	require.NoError(t, err)
	_, err = mw.Write([]byte("application/vnd.oasis.opendocument.text"))
	require.NoError(t, err)

	cw, err := zw.Create("content.xml")
	require.NoError(t, err)
	_, err = cw.Write([]byte(contentXML))
	require.NoError(t, err)

	sw, err := zw.Create("styles.xml")
	require.NoError(t, err)
	_, err = sw.Write([]byte(`<office:styles xmlns:office="urn:office"/>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestODTRoundTrip(t *testing.T) {
	raw := buildODT(t, `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:office" xmlns:text="urn:text"><office:body><text:p>hello</text:p></office:body></office:document-content>`)

	doc, err := Parse("letter.odt", raw, allowedAll)
	require.NoError(t, err)

	assert.Equal(t, "hello", doc.ExtractText())
	assert.Equal(t, "application/vnd.oasis.opendocument.text", doc.ContentType())

	require.NoError(t, doc.TranslateNodes(upper))

	out, err := doc.Serialize()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	assert.Equal(t, "mimetype", zr.File[0].Name)
	assert.Equal(t, zip.Store, zr.File[0].Method, "mimetype entry must stay uncompressed")

	byName := func(name string) string {
		for _, f := range zr.File {
			if f.Name == name {
				rc, err := f.Open()
				require.NoError(t, err)
				defer rc.Close()
				data, err := io.ReadAll(rc)
				require.NoError(t, err)
				return string(data)
			}
		}
		t.Fatalf("entry %s missing from archive", name)
		return ""
	}

	content := byName("content.xml")
	assert.True(t, strings.HasPrefix(content, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
	assert.Contains(t, content, "<text:p>HELLO</text:p>")
	assert.Equal(t, `<office:styles xmlns:office="urn:office"/>`, byName("styles.xml"))
}

func TestODTWithoutContentEntryFails(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/vnd.oasis.opendocument.text"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Parse("letter.odt", buf.Bytes(), allowedAll)
	assert.ErrorContains(t, err, "content.xml")
}

func TestODTRejectsNonZipPayload(t *testing.T) {
	_, err := Parse("letter.odt", []byte("not a zip"), allowedAll)
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*ErrUnsupportedType)), "a broken container is a parse error, not an unsupported type")
}
