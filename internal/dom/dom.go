// Package dom provides small query and mutation helpers over the
// golang.org/x/net/html node tree. The canvas keeps component content as
// parsed fragments, so the editor, extractor, and behavior initializers all
// operate through these helpers instead of string manipulation.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup into a detached container node whose children
// are the fragment's top-level elements.
func ParseFragment(markup string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	container := NewElement("div")
	for _, node := range nodes {
		container.AppendChild(node)
	}
	return container, nil
}

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Render serialises a node, children included.
func Render(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML serialises only the children of a node.
func InnerHTML(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return ""
		}
	}
	return buf.String()
}

// Text returns the concatenated text content of a node.
func Text(node *html.Node) string {
	if node == nil {
		return ""
	}
	var builder strings.Builder
	Walk(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		return true
	})
	return builder.String()
}

// SetText replaces the children of a node with a single text node.
func SetText(node *html.Node, text string) {
	if node == nil {
		return
	}
	RemoveChildren(node)
	node.AppendChild(NewText(text))
}

// RemoveChildren detaches every child of a node.
func RemoveChildren(node *html.Node) {
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
}

// Walk visits node and its descendants depth-first. Returning false from the
// visitor stops descent into that subtree.
func Walk(node *html.Node, visit func(*html.Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		Walk(child, visit)
	}
}

// First returns the first descendant (including node itself) matching pred.
func First(node *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(node, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// All returns every descendant (including node itself) matching pred, in
// document order.
func All(node *html.Node, pred func(*html.Node) bool) []*html.Node {
	var matches []*html.Node
	Walk(node, func(n *html.Node) bool {
		if pred(n) {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}

// IsElement reports whether the node is an element with one of the given tag
// names. With no names it matches any element.
func IsElement(node *html.Node, tags ...string) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if strings.EqualFold(node.Data, tag) {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, empty when absent.
func Attr(node *html.Node, name string) string {
	if node == nil {
		return ""
	}
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present at all.
func HasAttr(node *html.Node, name string) bool {
	if node == nil {
		return false
	}
	for _, attr := range node.Attr {
		if attr.Key == name {
			return true
		}
	}
	return false
}

// SetAttr adds or replaces an attribute.
func SetAttr(node *html.Node, name, value string) {
	if node == nil {
		return
	}
	for idx := range node.Attr {
		if node.Attr[idx].Key == name {
			node.Attr[idx].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute when present.
func RemoveAttr(node *html.Node, name string) {
	if node == nil {
		return
	}
	for idx, attr := range node.Attr {
		if attr.Key == name {
			node.Attr = append(node.Attr[:idx], node.Attr[idx+1:]...)
			return
		}
	}
}

// HasClass reports whether the class attribute contains the given class.
func HasClass(node *html.Node, class string) bool {
	for _, candidate := range strings.Fields(Attr(node, "class")) {
		if candidate == class {
			return true
		}
	}
	return false
}

// AddClass appends a class when not already present.
func AddClass(node *html.Node, class string) {
	if node == nil || HasClass(node, class) {
		return
	}
	existing := Attr(node, "class")
	if existing == "" {
		SetAttr(node, "class", class)
		return
	}
	SetAttr(node, "class", existing+" "+class)
}

// RemoveClass strips a class from the class attribute.
func RemoveClass(node *html.Node, class string) {
	if node == nil {
		return
	}
	fields := strings.Fields(Attr(node, "class"))
	kept := fields[:0]
	for _, candidate := range fields {
		if candidate != class {
			kept = append(kept, candidate)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(node, "class")
		return
	}
	SetAttr(node, "class", strings.Join(kept, " "))
}

// ByClass finds the first descendant carrying the given class.
func ByClass(node *html.Node, class string) *html.Node {
	return First(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	})
}

// AllByClass finds every descendant carrying the given class.
func AllByClass(node *html.Node, class string) []*html.Node {
	return All(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	})
}

// ByID finds the first descendant with the given id attribute.
func ByID(node *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	return First(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
}

// ByTag finds the first descendant element with one of the given tag names.
func ByTag(node *html.Node, tags ...string) *html.Node {
	return First(node, func(n *html.Node) bool {
		return IsElement(n, tags...)
	})
}

// AllByTag finds every descendant element with one of the given tag names.
func AllByTag(node *html.Node, tags ...string) []*html.Node {
	return All(node, func(n *html.Node) bool {
		return IsElement(n, tags...)
	})
}

// Detach removes a node from its parent, if any.
func Detach(node *html.Node) {
	if node != nil && node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// Clone deep-copies a node and its subtree.
func Clone(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	copied := &html.Node{
		Type:     node.Type,
		Data:     node.Data,
		DataAtom: node.DataAtom,
		Attr:     append([]html.Attribute(nil), node.Attr...),
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		copied.AppendChild(Clone(child))
	}
	return copied
}

// ContentEditable reports whether the node opts into content editing. A bare
// contenteditable attribute counts as true, matching browser behavior.
func ContentEditable(node *html.Node) bool {
	if !HasAttr(node, "contenteditable") {
		return false
	}
	val := Attr(node, "contenteditable")
	return val == "" || val == "true"
}
