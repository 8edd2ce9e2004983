package survivalmaze

import "github.com/go-gl/mathgl/mgl32"

// Matrices follow mgl32's column-vector convention. Every composing setter
// applies its operation after the transform accumulated so far, so
//
//	n.Translate(0, -1, 0)
//	n.RotateX(a)
//	n.Translate(0, 1, 0)
//
// moves a point down, rotates it and moves it back up.

// Render recomputes this node's world matrix as
// parentWorld * local * fromParent, writes it to the node's instance, marks
// the instance active for this frame and recurses into the children.
func (n *CompositeNode) Render(parentWorld mgl32.Mat4) {
	n.world = parentWorld.Mul4(n.local).Mul4(n.fromParent)

	n.mesh.InstanceInfo(n.instanceID).World = n.world
	n.mesh.AddCurrentInstance(n.instanceID)

	for _, child := range n.children {
		child.Render(n.world)
	}
}

// UpdateBoundingBox recomputes the bounds of the whole subtree in rest pose.
// Each node's mesh bounds are moved by parentTransform * fromParent and
// merged with the bounds of all its children. Call it once after the tree is
// built; animation transforms are ignored.
func (n *CompositeNode) UpdateBoundingBox(parentTransform mgl32.Mat4) {
	current := parentTransform.Mul4(n.fromParent)
	n.bounds = n.mesh.BoundingBox().Transform(current)
	for _, child := range n.children {
		child.UpdateBoundingBox(current)
		n.bounds = n.bounds.Merge(child.bounds)
	}
}

// SetColor changes the tint of this node's instance.
func (n *CompositeNode) SetColor(c Color) {
	n.mesh.InstanceInfo(n.instanceID).Color = c
}

// --- Local (animation) transform ---

// Identity resets the local transform. The rest transform is untouched.
func (n *CompositeNode) Identity() {
	n.local = mgl32.Ident4()
}

// Translate composes a translation onto the local transform.
func (n *CompositeNode) Translate(x, y, z float32) {
	n.local = mgl32.Translate3D(x, y, z).Mul4(n.local)
}

// RotateX composes a rotation about the X axis (radians) onto the local transform.
func (n *CompositeNode) RotateX(theta float32) {
	n.local = mgl32.HomogRotate3DX(theta).Mul4(n.local)
}

// RotateY composes a rotation about the Y axis (radians) onto the local transform.
func (n *CompositeNode) RotateY(theta float32) {
	n.local = mgl32.HomogRotate3DY(theta).Mul4(n.local)
}

// RotateZ composes a rotation about the Z axis (radians) onto the local transform.
func (n *CompositeNode) RotateZ(theta float32) {
	n.local = mgl32.HomogRotate3DZ(theta).Mul4(n.local)
}

// Scale composes a uniform scale onto the local transform.
func (n *CompositeNode) Scale(s float32) {
	n.ScaleXYZ(s, s, s)
}

// ScaleXYZ composes a per-axis scale onto the local transform.
func (n *CompositeNode) ScaleXYZ(x, y, z float32) {
	n.local = mgl32.Scale3D(x, y, z).Mul4(n.local)
}

// --- Rest (from parent) transform ---

// IdentityFromParent resets the rest transform.
func (n *CompositeNode) IdentityFromParent() {
	n.fromParent = mgl32.Ident4()
}

// TranslateFromParent composes a translation onto the rest transform.
func (n *CompositeNode) TranslateFromParent(x, y, z float32) {
	n.fromParent = mgl32.Translate3D(x, y, z).Mul4(n.fromParent)
}

// RotateXFromParent composes a rotation about the X axis onto the rest transform.
func (n *CompositeNode) RotateXFromParent(theta float32) {
	n.fromParent = mgl32.HomogRotate3DX(theta).Mul4(n.fromParent)
}

// RotateYFromParent composes a rotation about the Y axis onto the rest transform.
func (n *CompositeNode) RotateYFromParent(theta float32) {
	n.fromParent = mgl32.HomogRotate3DY(theta).Mul4(n.fromParent)
}

// RotateZFromParent composes a rotation about the Z axis onto the rest transform.
func (n *CompositeNode) RotateZFromParent(theta float32) {
	n.fromParent = mgl32.HomogRotate3DZ(theta).Mul4(n.fromParent)
}

// ScaleFromParent composes a uniform scale onto the rest transform.
func (n *CompositeNode) ScaleFromParent(s float32) {
	n.ScaleXYZFromParent(s, s, s)
}

// ScaleXYZFromParent composes a per-axis scale onto the rest transform.
func (n *CompositeNode) ScaleXYZFromParent(x, y, z float32) {
	n.fromParent = mgl32.Scale3D(x, y, z).Mul4(n.fromParent)
}
