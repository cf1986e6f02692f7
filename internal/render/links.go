package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrSurfaceNotFound is returned when a document has no element with the surface id.
var ErrSurfaceNotFound = errors.New("capture surface not found")

const linkStyle = "color: #1d4ed8; text-decoration: underline; display: inline-block; visibility: visible;"

// Locate checks that src contains an element with the given id.
func Locate(src, id string) error {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse surface: %w", err)
	}
	if findNodeByID(doc, id) == nil {
		return fmt.Errorf("%w: #%s", ErrSurfaceNotFound, id)
	}
	return nil
}

// AnnotateLinks marks every hyperlink inside the element with the given id so
// it stays visible in a raster capture: the href is copied to data-href and a
// visible link style is appended. It returns the rewritten document and the
// number of links marked.
func AnnotateLinks(src, id string) (string, int, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", 0, fmt.Errorf("parse surface: %w", err)
	}
	root := findNodeByID(doc, id)
	if root == nil {
		return "", 0, fmt.Errorf("%w: #%s", ErrSurfaceNotFound, id)
	}

	count := 0
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href, ok := attr(n, "href")
		if !ok || href == "" {
			return
		}
		setAttr(n, "data-pdf-link", "true")
		setAttr(n, "data-href", href)
		style, _ := attr(n, "style")
		if style != "" && !strings.HasSuffix(strings.TrimSpace(style), ";") {
			style += ";"
		}
		setAttr(n, "style", strings.TrimSpace(style+" "+linkStyle))
		count++
	})

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", 0, fmt.Errorf("render surface: %w", err)
	}
	return buf.String(), count, nil
}

func findNodeByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNodeByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
