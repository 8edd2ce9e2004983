package survivalmaze

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameConstants is the per-frame data every draw of a frame shares.
type FrameConstants struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
}

// DrawBatch is one instanced draw: a mesh, its material and texture binding,
// and the records of every instance marked active this frame.
type DrawBatch struct {
	Mesh      *Mesh
	Material  uint16
	Texture   int
	Instances []InstanceInfo
}

// Renderer is the draw submission backend. Begin and End bracket a frame;
// DrawInstanced is called once per mesh with active instances. The Instances
// slice is reused after DrawInstanced returns and MUST NOT be retained.
type Renderer interface {
	Begin(frame FrameConstants)
	DrawInstanced(batch DrawBatch)
	End()
}

// batchKey groups draws that share bind state.
type batchKey struct {
	material uint16
	texture  int
}

func meshBatchKey(m *Mesh) batchKey {
	return batchKey{material: m.Material, texture: m.Texture}
}

// sortMeshes orders meshes by (material, texture) so consecutive draws
// change bindings as rarely as possible. The sort is stable: meshes with the
// same key keep their registration order.
func sortMeshes(meshes []*Mesh) {
	sort.SliceStable(meshes, func(i, j int) bool {
		a, b := meshBatchKey(meshes[i]), meshBatchKey(meshes[j])
		if a.material != b.material {
			return a.material < b.material
		}
		return a.texture < b.texture
	})
}

// submitBatches issues one DrawInstanced per mesh with active instances, in
// the order of meshes. It returns the number of draws and instances submitted.
func submitBatches(r Renderer, meshes []*Mesh, buf []InstanceInfo) (draws, instances int, out []InstanceInfo) {
	for _, m := range meshes {
		if !m.ShouldRender() {
			continue
		}
		buf = m.appendCurrent(buf[:0])
		r.DrawInstanced(DrawBatch{
			Mesh:      m,
			Material:  m.Material,
			Texture:   m.Texture,
			Instances: buf,
		})
		draws++
		instances += len(buf)
	}
	return draws, instances, buf
}

// countBatches counts contiguous groups of rendered meshes sharing the same
// batchKey. This is how many bind changes a frame needs.
func countBatches(meshes []*Mesh) int {
	count := 0
	var prev batchKey
	for _, m := range meshes {
		if !m.ShouldRender() {
			continue
		}
		cur := meshBatchKey(m)
		if count == 0 || cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
