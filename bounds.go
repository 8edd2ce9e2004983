package survivalmaze

import "github.com/go-gl/mathgl/mgl32"

// BoundingBox is an axis-aligned box in whatever space its producer works in
// (object space for meshes, world space after Transform).
type BoundingBox struct {
	Min, Max mgl32.Vec3
}

// NewBoundingBox creates a box from its center and half-size extents.
func NewBoundingBox(center, extents mgl32.Vec3) BoundingBox {
	return BoundingBox{Min: center.Sub(extents), Max: center.Add(extents)}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half-size of the box along each axis.
func (b BoundingBox) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Corners returns the eight corners of the box.
func (b BoundingBox) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Transform returns the axis-aligned box enclosing b after applying m to all
// of its corners.
func (b BoundingBox) Transform(m mgl32.Mat4) BoundingBox {
	corners := b.Corners()
	first := mgl32.TransformCoordinate(corners[0], m)
	out := BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := mgl32.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			if p[i] < out.Min[i] {
				out.Min[i] = p[i]
			}
			if p[i] > out.Max[i] {
				out.Max[i] = p[i]
			}
		}
	}
	return out
}

// Intersects reports whether b and other overlap.
// Boxes sharing only a face are considered intersecting.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.Min[0] <= other.Max[0] && b.Max[0] >= other.Min[0] &&
		b.Min[1] <= other.Max[1] && b.Max[1] >= other.Min[1] &&
		b.Min[2] <= other.Max[2] && b.Max[2] >= other.Min[2]
}

// Contains reports whether p lies inside b. Points on a face are inside.
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Merge returns the smallest box enclosing both b and other.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	out := b
	for i := 0; i < 3; i++ {
		if other.Min[i] < out.Min[i] {
			out.Min[i] = other.Min[i]
		}
		if other.Max[i] > out.Max[i] {
			out.Max[i] = other.Max[i]
		}
	}
	return out
}
