package markup

// Visitor is called for every element node; returning false stops descent
// into that node's children.
type Visitor func(n *Node) bool

// WalkElements traverses the tree depth-first in document order, invoking
// visit on every element node.
func WalkElements(root *Node, visit Visitor) {
	if root == nil {
		return
	}
	if root.Kind == NodeElement {
		if !visit(root) {
			return
		}
	}
	for _, c := range root.Children {
		WalkElements(c, visit)
	}
}

// FindAll collects every element node satisfying pred, in document order.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	WalkElements(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// EffectiveContext walks up from n and returns the strongest rendering
// context on the path to the root: a node inside a conditional branch that
// itself sits inside a mapping callback is both conditional and dynamic.
func EffectiveContext(n *Node) (conditional bool, dynamic bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		switch cur.Context {
		case ContextConditional:
			conditional = true
		case ContextListItem:
			dynamic = true
		}
	}
	return conditional, dynamic
}
