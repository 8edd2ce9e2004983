package survivalmaze

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// --- CompositeNode ---

// CompositeNode is one element of a composite model: a tree of nodes that all
// draw through instances of a single shared mesh. Each node pairs a fixed rest
// transform relative to its parent with a local animation transform that is
// rebuilt every frame.
//
// A parent exclusively owns its children; there are no back references and
// traversal is always top-down.
type CompositeNode struct {
	Name string

	mesh       *Mesh
	instanceID uint32

	fromParent mgl32.Mat4
	local      mgl32.Mat4
	world      mgl32.Mat4

	bounds   BoundingBox
	children []*CompositeNode
}

// NewCompositeNode creates a root node and allocates its instance in mesh.
func NewCompositeNode(name string, mesh *Mesh, color Color, fromParent, local mgl32.Mat4) (*CompositeNode, error) {
	if mesh == nil {
		return nil, fmt.Errorf("composite node %q: %w", name, ErrNilMesh)
	}
	n := &CompositeNode{
		Name:       name,
		mesh:       mesh,
		fromParent: fromParent,
		local:      local,
	}
	n.world = local.Mul4(fromParent)
	n.instanceID = mesh.AddInstance(InstanceInfo{World: n.world, Color: color})
	n.bounds = mesh.BoundingBox().Transform(fromParent)
	return n, nil
}

// AddChild creates a child node drawn with the same mesh and appends it to
// this node's children. The returned node is owned by n.
func (n *CompositeNode) AddChild(name string, color Color, fromParent, local mgl32.Mat4) *CompositeNode {
	if n.mesh == nil {
		panic("survivalmaze: AddChild on a node without a mesh")
	}
	child, err := NewCompositeNode(name, n.mesh, color, fromParent, local)
	if err != nil {
		panic(err)
	}
	n.children = append(n.children, child)
	return child
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *CompositeNode) Children() []*CompositeNode {
	return n.children
}

// NumChildren returns the number of children.
func (n *CompositeNode) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *CompositeNode) ChildAt(index int) *CompositeNode {
	return n.children[index]
}

// Mesh returns the mesh the node draws with.
func (n *CompositeNode) Mesh() *Mesh {
	return n.mesh
}

// InstanceID returns the handle of the node's instance in its mesh.
func (n *CompositeNode) InstanceID() uint32 {
	return n.instanceID
}

// FromParent returns the rest transform relative to the parent.
func (n *CompositeNode) FromParent() mgl32.Mat4 {
	return n.fromParent
}

// Local returns the current animation transform.
func (n *CompositeNode) Local() mgl32.Mat4 {
	return n.local
}

// World returns the world matrix computed by the last Render.
func (n *CompositeNode) World() mgl32.Mat4 {
	return n.world
}

// BoundingBox returns the bounds accumulated by the last UpdateBoundingBox,
// expressed in the space of the transform passed to it.
func (n *CompositeNode) BoundingBox() BoundingBox {
	return n.bounds
}

// Walk calls fn for n and every descendant, parents before children.
func (n *CompositeNode) Walk(fn func(*CompositeNode)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}
