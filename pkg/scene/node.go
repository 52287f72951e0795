package scene

import "github.com/Faultbox/midgard-3ds/pkg/math"

// Node is an entry of the scene graph.
type Node struct {
	Name      string
	Transform math.Mat4 // Relative to the parent
	Meshes    []int     // Indices into Scene.Meshes
	Children  []*Node
	Parent    *Node
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: math.Identity()}
}

// AddChild appends child to n's children and sets its parent.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk calls fn for n and every descendant in depth-first pre-order.
// depth is 0 for n.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	if n == nil {
		return
	}
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// FindNode returns the first node named name in pre-order, or nil.
func (n *Node) FindNode(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindNode(name); found != nil {
			return found
		}
	}
	return nil
}

// GlobalTransform returns the product of the transforms from the root down
// to n.
func (n *Node) GlobalTransform() math.Mat4 {
	m := n.Transform
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Transform.Mul(m)
	}
	return m
}
