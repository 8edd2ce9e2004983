package survivalmaze

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingRenderer keeps a copy of everything submitted to it.
type recordingRenderer struct {
	begins  int
	ends    int
	frame   FrameConstants
	batches []DrawBatch
}

func (r *recordingRenderer) Begin(frame FrameConstants) {
	r.begins++
	r.frame = frame
	r.batches = r.batches[:0]
}

func (r *recordingRenderer) DrawInstanced(batch DrawBatch) {
	batch.Instances = append([]InstanceInfo(nil), batch.Instances...)
	r.batches = append(r.batches, batch)
}

func (r *recordingRenderer) End() { r.ends++ }

func meshWithMaterial(name string, material uint16, texture int) *Mesh {
	m := NewCubeMesh(name, 1)
	m.Material = material
	m.Texture = texture
	return m
}

// --- sortMeshes ---

func TestSortMeshesByMaterialThenTexture(t *testing.T) {
	meshes := []*Mesh{
		meshWithMaterial("c", 2, NoTexture),
		meshWithMaterial("a", 1, 5),
		meshWithMaterial("b", 1, NoTexture),
		meshWithMaterial("d", 0, 3),
	}
	sortMeshes(meshes)
	want := []string{"d", "b", "a", "c"}
	for i, name := range want {
		if meshes[i].Name != name {
			t.Errorf("meshes[%d] = %q, want %q", i, meshes[i].Name, name)
		}
	}
}

func TestSortMeshesStable(t *testing.T) {
	meshes := []*Mesh{
		meshWithMaterial("first", 1, NoTexture),
		meshWithMaterial("zero", 0, NoTexture),
		meshWithMaterial("second", 1, NoTexture),
	}
	sortMeshes(meshes)
	if meshes[1].Name != "first" || meshes[2].Name != "second" {
		t.Errorf("order = %s, %s, want first, second", meshes[1].Name, meshes[2].Name)
	}
}

// --- submitBatches ---

func TestSubmitBatchesSkipsIdleMeshes(t *testing.T) {
	idle := meshWithMaterial("idle", 0, NoTexture)
	idle.AddInstance(InstanceInfo{})

	active := meshWithMaterial("active", 1, NoTexture)
	a := active.AddInstance(InstanceInfo{Color: ColorWall})
	active.AddInstance(InstanceInfo{})
	c := active.AddInstance(InstanceInfo{Color: ColorFloor, World: mgl32.Translate3D(1, 0, 0)})
	active.AddCurrentInstance(c)
	active.AddCurrentInstance(a)

	r := &recordingRenderer{}
	r.Begin(FrameConstants{})
	draws, instances, buf := submitBatches(r, []*Mesh{idle, active}, nil)
	r.End()

	if draws != 1 || instances != 2 {
		t.Errorf("draws, instances = %d, %d, want 1, 2", draws, instances)
	}
	if len(r.batches) != 1 || r.batches[0].Mesh != active {
		t.Fatalf("batches = %+v", r.batches)
	}
	got := r.batches[0].Instances
	if got[0].Color != ColorFloor || got[1].Color != ColorWall {
		t.Errorf("instances not in marking order: %+v", got)
	}
	if r.batches[0].Material != 1 || r.batches[0].Texture != NoTexture {
		t.Errorf("batch binding = %d/%d", r.batches[0].Material, r.batches[0].Texture)
	}
	if cap(buf) < 2 {
		t.Errorf("buffer not returned for reuse: cap %d", cap(buf))
	}
}

func TestSubmitBatchesNothingActive(t *testing.T) {
	m := NewCubeMesh("m", 1)
	m.AddInstance(InstanceInfo{})
	r := &recordingRenderer{}
	draws, instances, _ := submitBatches(r, []*Mesh{m}, nil)
	if draws != 0 || instances != 0 || len(r.batches) != 0 {
		t.Errorf("draws, instances, batches = %d, %d, %d", draws, instances, len(r.batches))
	}
}

// --- countBatches ---

func TestCountBatches(t *testing.T) {
	mk := func(name string, material uint16, active bool) *Mesh {
		m := meshWithMaterial(name, material, NoTexture)
		id := m.AddInstance(InstanceInfo{})
		if active {
			m.AddCurrentInstance(id)
		}
		return m
	}
	meshes := []*Mesh{
		mk("a", 0, true),
		mk("b", 0, true),
		mk("c", 1, false),
		mk("d", 2, true),
		mk("e", 2, true),
		mk("f", 3, true),
	}
	if got := countBatches(meshes); got != 3 {
		t.Errorf("countBatches = %d, want 3", got)
	}
	if got := countBatches(nil); got != 0 {
		t.Errorf("countBatches(nil) = %d, want 0", got)
	}
}
