package document

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlDocument holds a parsed HTML fragment. Uploads are fragments, not
// full pages, so parsing and rendering go through the fragment API to
// avoid growing <html>/<body> wrappers.
type htmlDocument struct {
	nodes []*html.Node
}

func parseHTML(content []byte) (*htmlDocument, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(bytes.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	return &htmlDocument{nodes: nodes}, nil
}

func (d *htmlDocument) ExtractText() string {
	var sb strings.Builder
	for _, n := range d.nodes {
		collectText(n, &sb)
	}
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func (d *htmlDocument) TranslateNodes(fn func(string) (string, error)) error {
	for _, n := range d.nodes {
		if err := translateHTMLNode(n, fn); err != nil {
			return err
		}
	}
	return nil
}

func translateHTMLNode(n *html.Node, fn func(string) (string, error)) error {
	if n.Type == html.TextNode {
		out, err := translateSegment(n.Data, fn)
		if err != nil {
			return err
		}
		n.Data = out
		return nil
	}
	// script/style bodies are not natural language
	if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := translateHTMLNode(c, fn); err != nil {
			return err
		}
	}
	return nil
}

func (d *htmlDocument) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range d.nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (d *htmlDocument) ContentType() string {
	return "text/html; charset=utf-8"
}
