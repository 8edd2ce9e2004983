package survivalmaze

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func unitBox() BoundingBox {
	return NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
}

// --- Construction ---

func TestNewBoundingBox(t *testing.T) {
	b := NewBoundingBox(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.5, 1, 2})
	assertVec(t, "min", b.Min, mgl32.Vec3{0.5, 1, 1})
	assertVec(t, "max", b.Max, mgl32.Vec3{1.5, 3, 5})
	assertVec(t, "center", b.Center(), mgl32.Vec3{1, 2, 3})
	assertVec(t, "extents", b.Extents(), mgl32.Vec3{0.5, 1, 2})
}

func TestCornersUseBitOrder(t *testing.T) {
	c := unitBox().Corners()
	for i, p := range c {
		want := mgl32.Vec3{-1, -1, -1}
		if i&1 != 0 {
			want[0] = 1
		}
		if i&2 != 0 {
			want[1] = 1
		}
		if i&4 != 0 {
			want[2] = 1
		}
		if p != want {
			t.Errorf("corner %d = %v, want %v", i, p, want)
		}
	}
}

// --- Transform ---

func TestTransformTranslate(t *testing.T) {
	b := unitBox().Transform(mgl32.Translate3D(5, 0, -5))
	assertVec(t, "min", b.Min, mgl32.Vec3{4, -1, -6})
	assertVec(t, "max", b.Max, mgl32.Vec3{6, 1, -4})
}

func TestTransformRotationGrowsBox(t *testing.T) {
	b := unitBox().Transform(mgl32.HomogRotate3DY(math.Pi / 4))
	r := float32(math.Sqrt2)
	assertNear(t, "max x", b.Max[0], r)
	assertNear(t, "max z", b.Max[2], r)
	assertNear(t, "max y", b.Max[1], 1)
}

func TestTransformScale(t *testing.T) {
	b := unitBox().Transform(mgl32.Scale3D(10, 5, 10))
	assertVec(t, "max", b.Max, mgl32.Vec3{10, 5, 10})
}

// --- Intersects ---

func TestIntersects(t *testing.T) {
	a := unitBox()
	tests := []struct {
		name   string
		offset mgl32.Vec3
		want   bool
	}{
		{"same", mgl32.Vec3{}, true},
		{"overlap", mgl32.Vec3{1.5, 0, 0}, true},
		{"touching face", mgl32.Vec3{2, 0, 0}, true},
		{"apart x", mgl32.Vec3{2.1, 0, 0}, false},
		{"apart y", mgl32.Vec3{0, -3, 0}, false},
		{"apart z", mgl32.Vec3{0, 0, 2.5}, false},
		{"diagonal overlap", mgl32.Vec3{1, 1, 1}, true},
	}
	for _, tt := range tests {
		b := NewBoundingBox(tt.offset, mgl32.Vec3{1, 1, 1})
		if got := a.Intersects(b); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
		if got := b.Intersects(a); got != tt.want {
			t.Errorf("%s: reverse Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	b := unitBox()
	if !b.Contains(mgl32.Vec3{}) {
		t.Error("center should be inside")
	}
	if !b.Contains(mgl32.Vec3{1, 1, 1}) {
		t.Error("corner should be inside")
	}
	if b.Contains(mgl32.Vec3{0, 1.01, 0}) {
		t.Error("point above should be outside")
	}
}

func TestMerge(t *testing.T) {
	a := unitBox()
	b := NewBoundingBox(mgl32.Vec3{3, -2, 0}, mgl32.Vec3{1, 1, 1})
	m := a.Merge(b)
	assertVec(t, "min", m.Min, mgl32.Vec3{-1, -3, -1})
	assertVec(t, "max", m.Max, mgl32.Vec3{4, 1, 1})
	if a.Min != (mgl32.Vec3{-1, -1, -1}) {
		t.Error("Merge modified receiver")
	}
}
