// Package parser is the adapter that turns Compact source text into a
// concrete, labelled tree: node kind, byte offsets, line/column positions,
// ordered named children, and field access by name. No external Compact
// grammar binding exists in the Go ecosystem, so this package hand-rolls a
// lexer and recursive-descent parser instead of wrapping one (see
// DESIGN.md); it is shaped to expose the same Node surface a tree-sitter
// tree would (Kind/StartByte/EndByte/ChildByFieldName/NamedChildren) so the
// builder that consumes it stays adapter-agnostic.
package parser

// Node is one node of the concrete tree.
type Node struct {
	Kind      string
	StartByte uint32
	EndByte   uint32
	StartRow  int
	StartCol  int
	EndRow    int
	EndCol    int
	Children  []*Node
	fields    map[string][]*Node
	src       []byte
	literal   *string
}

// Text returns the node's raw UTF-8 source slice, or its literal override
// for synthetic nodes (operator/modifier markers) that carry no source span.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.literal != nil {
		return *n.literal
	}
	return string(n.src[n.StartByte:n.EndByte])
}

// NamedChildren returns the node's ordered children.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}

// ChildByFieldName returns the first child registered under the given
// field name, or nil.
func (n *Node) ChildByFieldName(name string) *Node {
	if n == nil {
		return nil
	}
	children := n.fields[name]
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// ChildrenByFieldName returns every child registered under the given field
// name, in order.
func (n *Node) ChildrenByFieldName(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.fields[name]
}

func (n *Node) addField(name string, child *Node) {
	if n.fields == nil {
		n.fields = make(map[string][]*Node)
	}
	n.fields[name] = append(n.fields[name], child)
}

func (n *Node) addChild(kind string, child *Node) {
	n.Children = append(n.Children, child)
	if kind != "" {
		n.addField(kind, child)
	}
}
