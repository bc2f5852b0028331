// Package markup models the element trees handed over by the external
// syntax-tree parser. The pipeline never parses source itself; it consumes
// these pre-built trees for the registry and locator resolution stages.
package markup

import (
	"unicode"

	"surveyor/internal/source"
)

// NodeKind discriminates tree nodes.
type NodeKind uint8

const (
	// NodeElement is a tag with attributes and children.
	NodeElement NodeKind = iota
	// NodeText is literal text content.
	NodeText
	// NodeExpr is an interpolated expression; Text carries its source form.
	NodeExpr
)

func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeExpr:
		return "expr"
	}
	return "unknown"
}

// ValueKind discriminates attribute values.
type ValueKind uint8

const (
	// ValueLiteral is a plain string value.
	ValueLiteral ValueKind = iota
	// ValueExpr is a computed value; Text carries its source form.
	ValueExpr
)

// ParentContext describes the syntactic position the parser observed for a
// node: rendered unconditionally, behind a short-circuit/ternary condition,
// or returned from a mapping callback.
type ParentContext uint8

const (
	ContextNone ParentContext = iota
	// ContextConditional covers short-circuit boolean and ternary branches.
	ContextConditional
	// ContextListItem marks the return value of a mapping callback.
	ContextListItem
)

// AttrValue is an attribute value as the parser saw it.
type AttrValue struct {
	Kind ValueKind
	Text string
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value AttrValue
}

// Node is one node of a parsed element tree. Parent pointers are filled by
// Link after decoding; trees are read-only once linked.
type Node struct {
	Kind     NodeKind
	Tag      string // element tag; empty for text/expr nodes
	Text     string // text content or expression source
	Attrs    []Attr
	Children []*Node
	Parent   *Node
	Context  ParentContext
	Span     source.Span
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (AttrValue, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return AttrValue{}, false
}

// LiteralAttr returns the attribute's text only when it is a literal.
func (n *Node) LiteralAttr(name string) (string, bool) {
	v, ok := n.Attr(name)
	if !ok || v.Kind != ValueLiteral {
		return "", false
	}
	return v.Text, true
}

// LiteralText collects the concatenated literal text of the node's direct
// text children, trimmed. Expression children contribute nothing.
func (n *Node) LiteralText() string {
	out := ""
	for _, c := range n.Children {
		if c.Kind == NodeText {
			out += c.Text
		}
	}
	return trimSpace(out)
}

// HasExprChild reports whether any direct child is an expression node.
func (n *Node) HasExprChild() bool {
	for _, c := range n.Children {
		if c.Kind == NodeExpr {
			return true
		}
	}
	return false
}

// IsCustom reports whether the tag names a custom widget rather than a
// native HTML element (PascalCase convention).
func (n *Node) IsCustom() bool {
	return IsPascalCase(n.Tag)
}

// IsPascalCase reports whether name starts with an uppercase letter followed
// by at least one lowercase letter ("Button", not "BUTTON" or "button").
func IsPascalCase(name string) bool {
	runes := []rune(name)
	if len(runes) < 2 {
		return false
	}
	return unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1])
}

// Link fills Parent pointers for the whole tree rooted at n.
func Link(n *Node) {
	for _, c := range n.Children {
		c.Parent = n
		Link(c)
	}
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
