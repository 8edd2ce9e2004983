package survivalmaze

import "github.com/go-gl/mathgl/mgl32"

// InstanceInfo is the per-instance record submitted with an instanced draw.
type InstanceInfo struct {
	World         mgl32.Mat4
	Color         Color
	AnimationTime float32
}

// NoTexture marks a mesh that is drawn with its instance colors only.
const NoTexture = -1

// Mesh is a piece of shared geometry together with its instance registry.
// Instances are allocated once, mutated every frame and never freed; the
// active set is rebuilt every frame.
type Mesh struct {
	Name     string
	Material uint16
	Texture  int

	bounds    BoundingBox
	instances []InstanceInfo
	current   []uint32
	marked    []bool // parallel to instances; true while in current
}

// NewMesh creates a mesh with the given object-space bounds and no instances.
func NewMesh(name string, bounds BoundingBox) *Mesh {
	return &Mesh{Name: name, Texture: NoTexture, bounds: bounds}
}

// NewCubeMesh creates an axis-aligned cube centered on the origin.
func NewCubeMesh(name string, halfExtent float32) *Mesh {
	e := mgl32.Vec3{halfExtent, halfExtent, halfExtent}
	return NewMesh(name, NewBoundingBox(mgl32.Vec3{}, e))
}

// AddInstance appends a record to the registry and returns its handle.
func (m *Mesh) AddInstance(info InstanceInfo) uint32 {
	m.instances = append(m.instances, info)
	m.marked = append(m.marked, false)
	return uint32(len(m.instances) - 1)
}

// InstanceInfo returns the mutable record for the given handle.
// Panics if the handle was not returned by AddInstance.
func (m *Mesh) InstanceInfo(id uint32) *InstanceInfo {
	return &m.instances[id]
}

// AddCurrentInstance marks an instance as drawn this frame. Marking the same
// instance twice in one frame has no further effect.
func (m *Mesh) AddCurrentInstance(id uint32) {
	if m.marked[id] {
		return
	}
	m.marked[id] = true
	m.current = append(m.current, id)
}

// ResetCurrentInstances clears the set of instances drawn this frame.
func (m *Mesh) ResetCurrentInstances() {
	for _, id := range m.current {
		m.marked[id] = false
	}
	m.current = m.current[:0]
}

// CurrentInstances returns the handles marked this frame in marking order.
// The returned slice MUST NOT be mutated by the caller.
func (m *Mesh) CurrentInstances() []uint32 {
	return m.current
}

// IsCurrent reports whether the instance has been marked this frame.
func (m *Mesh) IsCurrent(id uint32) bool {
	return m.marked[id]
}

// InstanceCount returns the number of allocated instances.
func (m *Mesh) InstanceCount() int {
	return len(m.instances)
}

// ShouldRender reports whether any instance was marked this frame.
func (m *Mesh) ShouldRender() bool {
	return len(m.current) > 0
}

// BoundingBox returns the object-space bounds of the mesh.
func (m *Mesh) BoundingBox() BoundingBox {
	return m.bounds
}

// TransformedBoundingBox returns the mesh bounds moved into world space by the
// instance's current world matrix.
func (m *Mesh) TransformedBoundingBox(id uint32) BoundingBox {
	return m.bounds.Transform(m.instances[id].World)
}

// appendCurrent appends the records of all marked instances to buf.
func (m *Mesh) appendCurrent(buf []InstanceInfo) []InstanceInfo {
	for _, id := range m.current {
		buf = append(buf, m.instances[id])
	}
	return buf
}
