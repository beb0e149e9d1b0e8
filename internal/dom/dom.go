// Package dom is a small set of helpers over golang.org/x/net/html trees,
// covering the handful of DOM operations the page pipeline needs.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// Render serializes the tree rooted at n.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString serializes n into a string.
func RenderString(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// ElementByID returns the first element whose id attribute equals id.
func ElementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
			}
		}
	})
	return found
}

// ElementsByClass returns every element carrying class in its class list.
func ElementsByClass(root *html.Node, class string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

// ElementsWithAttr returns every element that has the attribute key, in
// document order.
func ElementsWithAttr(root *html.Node, key string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := Attr(n, key); ok {
				out = append(out, n)
			}
		}
	})
	return out
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces attribute key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key from n if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether class is in the class list of n.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// ToggleClass adds class to n when on is true and removes it otherwise,
// like classList.toggle(class, force).
func ToggleClass(n *html.Node, class string, on bool) {
	_, hadAttr := Attr(n, "class")
	var kept []string
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if on {
		kept = append(kept, class)
	}
	if len(kept) == 0 {
		if hadAttr {
			SetAttr(n, "class", "")
		}
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	RemoveChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// NewElement creates a detached element.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
		Attr:     attrs,
	}
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// ReplaceWithFragment swaps n for the nodes parsed from markup, the way
// assigning outerHTML does. The fragment is parsed in the context of n's
// parent.
func ReplaceWithFragment(n *html.Node, markup []byte) error {
	parent := n.Parent
	if parent == nil {
		return fmt.Errorf("replacing <%s>: node is detached", n.Data)
	}

	var context *html.Node
	if parent.Type == html.ElementNode {
		context = parent
	}
	nodes, err := html.ParseFragment(bytes.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}

	for _, c := range nodes {
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return nil
}
