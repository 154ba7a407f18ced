package source

import (
	"strings"

	"golang.org/x/net/html"
)

// anchor is a parsed <a> element.
type anchor struct {
	href string
	text string
}

// collectAnchors returns every <a> in the document with its href and
// whitespace-normalized text.
func collectAnchors(doc *html.Node) []anchor {
	var out []anchor
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		out = append(out, anchor{
			href: attr(n, "href"),
			text: nodeText(n),
		})
	})
	return out
}

// elements returns all elements with the given tag name, in document order.
func elements(doc *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
	})
	return out
}

// findElement returns the first element matching the predicate, or nil.
func findElement(doc *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && match(n) {
			found = n
		}
	})
	return found
}

// nodeText concatenates all text under n, collapsing whitespace runs.
func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
