package document

// Node is any element of the document tree.
type Node interface {
	node()
}

// Block is a block-level node.
type Block interface {
	Node
	block()
}

// Inline is an inline node.
type Inline interface {
	Node
	inline()
}

// Container holds the ordered children of a node.
type Container struct {
	Children []Node
}

// Nodes returns the children of the node.
func (c *Container) Nodes() []Node {
	if c == nil {
		return nil
	}
	return c.Children
}

// Parent is implemented by every node that can have children.
type Parent interface {
	Node
	Nodes() []Node
}

// ChildrenOf returns the children of n, or nil for leaf nodes.
func ChildrenOf(n Node) []Node {
	if p, ok := n.(Parent); ok {
		return p.Nodes()
	}
	return nil
}

// IsBlock reports whether n belongs to the block family.
func IsBlock(n Node) bool {
	_, ok := n.(Block)
	return ok
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range ChildrenOf(n) {
		Walk(child, fn)
	}
}

// Of builds a Container from children.
func Of(children ...Node) Container {
	return Container{Children: children}
}
