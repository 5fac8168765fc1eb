package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMalformedHTML indicates the rendered document could not be parsed.
var ErrMalformedHTML = errors.New("malformed HTML document")

// DocumentInfo summarizes a rendered HTML document.
type DocumentInfo struct {
	Title       string // <title> text, or the first <h1> when the title is empty
	StyleBlocks int    // number of <style> elements
	Headings    int    // number of h1-h6 elements
	HasBody     bool   // true when the body contains at least one element or text
}

// InspectHTML parses content and reports what the browser will see.
func InspectHTML(content string) (*DocumentInfo, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	info := &DocumentInfo{}
	var firstH1 string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if info.Title == "" {
					info.Title = textContent(n)
				}
			case atom.Style:
				info.StyleBlocks++
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				info.Headings++
				if n.DataAtom == atom.H1 && firstH1 == "" {
					firstH1 = textContent(n)
				}
			case atom.Body:
				info.HasBody = hasContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if info.Title == "" {
		info.Title = firstH1
	}
	return info, nil
}

// textContent returns the whitespace-collapsed text under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		}
	}
	return false
}
