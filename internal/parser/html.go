package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/tagtree/internal/domtree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Structural tags are kept, a few common tags
// are folded onto them, and every other element is transparent: its children
// are written in its place. Attributes are dropped.
type HTMLParser struct{}

// tagAliases folds common tags onto the structural vocabulary.
var tagAliases = map[string]string{
	"strong":     "b",
	"i":          "em",
	"th":         "td",
	"h1":         "p",
	"h2":         "p",
	"h3":         "p",
	"h4":         "p",
	"h5":         "p",
	"h6":         "p",
	"blockquote": "p",
	"pre":        "p",
	"dt":         "p",
	"dd":         "p",
	"figcaption": "p",
}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	w := newLineWriter()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			w.Text(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head", "noscript", "template", "iframe", "svg":
				return
			}
			tag := n.Data
			if alias, ok := tagAliases[tag]; ok {
				tag = alias
			}
			if domtree.IsStructural(tag) && tag != "html" && tag != "body" {
				w.Open(tag)
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				w.Close(tag)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return w.Lines(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
