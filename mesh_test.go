package survivalmaze

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Instance registry ---

func TestAddInstanceHandles(t *testing.T) {
	m := NewCubeMesh("cube", 1)
	a := m.AddInstance(InstanceInfo{Color: ColorWall})
	b := m.AddInstance(InstanceInfo{Color: ColorFloor})
	if a != 0 || b != 1 {
		t.Errorf("handles = %d, %d, want 0, 1", a, b)
	}
	if m.InstanceCount() != 2 {
		t.Errorf("InstanceCount = %d, want 2", m.InstanceCount())
	}
	if got := m.InstanceInfo(b).Color; got != ColorFloor {
		t.Errorf("color = %v, want %v", got, ColorFloor)
	}
}

func TestInstanceInfoIsMutable(t *testing.T) {
	m := NewCubeMesh("cube", 1)
	id := m.AddInstance(InstanceInfo{})
	m.InstanceInfo(id).AnimationTime = 0.5
	if got := m.InstanceInfo(id).AnimationTime; got != 0.5 {
		t.Errorf("AnimationTime = %v, want 0.5", got)
	}
}

func TestNewMeshDefaults(t *testing.T) {
	m := NewCubeMesh("cube", 2)
	if m.Texture != NoTexture {
		t.Errorf("Texture = %d, want NoTexture", m.Texture)
	}
	assertVec(t, "bounds max", m.BoundingBox().Max, mgl32.Vec3{2, 2, 2})
	if m.ShouldRender() {
		t.Error("new mesh should not render")
	}
}

// --- Current set ---

func TestAddCurrentInstanceDeduplicates(t *testing.T) {
	m := NewCubeMesh("cube", 1)
	for i := 0; i < 3; i++ {
		m.AddInstance(InstanceInfo{})
	}
	m.AddCurrentInstance(2)
	m.AddCurrentInstance(0)
	m.AddCurrentInstance(2)

	cur := m.CurrentInstances()
	if len(cur) != 2 || cur[0] != 2 || cur[1] != 0 {
		t.Errorf("CurrentInstances = %v, want [2 0]", cur)
	}
	if !m.IsCurrent(0) || m.IsCurrent(1) {
		t.Error("IsCurrent mismatch")
	}
	if !m.ShouldRender() {
		t.Error("ShouldRender = false, want true")
	}
}

func TestResetCurrentInstances(t *testing.T) {
	m := NewCubeMesh("cube", 1)
	id := m.AddInstance(InstanceInfo{})
	m.AddCurrentInstance(id)
	m.ResetCurrentInstances()

	if m.ShouldRender() {
		t.Error("ShouldRender after reset = true")
	}
	if m.IsCurrent(id) {
		t.Error("instance still current after reset")
	}
	m.AddCurrentInstance(id)
	if len(m.CurrentInstances()) != 1 {
		t.Errorf("re-marking after reset: len = %d, want 1", len(m.CurrentInstances()))
	}
	if m.InstanceCount() != 1 {
		t.Error("reset must not free instances")
	}
}

func TestAppendCurrentCopiesRecords(t *testing.T) {
	m := NewCubeMesh("cube", 1)
	m.AddInstance(InstanceInfo{Color: ColorWall})
	m.AddInstance(InstanceInfo{Color: ColorFloor})
	m.AddCurrentInstance(1)

	buf := m.appendCurrent(nil)
	if len(buf) != 1 || buf[0].Color != ColorFloor {
		t.Errorf("appendCurrent = %v", buf)
	}
}

func TestTransformedBoundingBox(t *testing.T) {
	m := NewCubeMesh("cube", 0.5)
	id := m.AddInstance(InstanceInfo{World: mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))})
	b := m.TransformedBoundingBox(id)
	assertVec(t, "min", b.Min, mgl32.Vec3{9, -1, -1})
	assertVec(t, "max", b.Max, mgl32.Vec3{11, 1, 1})
}
