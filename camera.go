package survivalmaze

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// Camera resolves the view and projection for a frame and gives movement code
// its ground-plane reference directions.
type Camera interface {
	// Position returns the eye position in world space.
	Position() mgl32.Vec3
	// Direction returns the unit look direction.
	Direction() mgl32.Vec3
	// RightDirection returns the unit direction to the right of Direction.
	RightDirection() mgl32.Vec3
	View() mgl32.Mat4
	Projection() mgl32.Mat4
	// Update advances the camera by dt seconds with a mouse delta in pixels.
	Update(dt, dx, dy float32)
	// SetTarget tells a following camera where its subject now is. Cameras
	// that do not follow anything ignore it.
	SetTarget(position mgl32.Vec3, facing float32)
	// SetAspect changes the viewport aspect ratio (width / height).
	SetAspect(aspect float32)
}

const (
	cameraFovY       = 45 * math.Pi / 180
	cameraNear       = 0.1
	cameraFar        = 1000
	cameraMaxPitch   = math.Pi/2 - 0.01
	mouseSensitivity = 0.004
)

// lookAt builds a view matrix for the left-handed world frame: world +X stays
// on the right of the screen.
func lookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(-1, 1, 1).Mul4(mgl32.LookAtV(eye, center, up))
}

// orbitDirection returns the unit vector for a yaw about +Y (0 = +Z, positive
// toward +X) and a pitch above the horizon.
func orbitDirection(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(pitch))
	return mgl32.Vec3{float32(sy * cp), float32(sp), float32(cy * cp)}
}

// rightOf returns the horizontal unit vector to the right of dir.
func rightOf(dir mgl32.Vec3) mgl32.Vec3 {
	r := WorldUp.Cross(dir)
	if r.Len() < 1e-6 {
		return WorldRight
	}
	return r.Normalize()
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- FreeCamera ---

// FreeCamera flies freely with mouse look. It ignores SetTarget.
type FreeCamera struct {
	// Speed is the fly speed in world units per second used by Move.
	Speed float32

	position   mgl32.Vec3
	yaw, pitch float32
	aspect     float32

	view  mgl32.Mat4
	dirty bool
}

// NewFreeCamera creates a free camera at position looking along +Z.
func NewFreeCamera(position mgl32.Vec3, aspect float32) *FreeCamera {
	return &FreeCamera{
		Speed:    10,
		position: position,
		aspect:   aspect,
		dirty:    true,
	}
}

// Position returns the eye position.
func (c *FreeCamera) Position() mgl32.Vec3 { return c.position }

// Direction returns the look direction.
func (c *FreeCamera) Direction() mgl32.Vec3 { return orbitDirection(c.yaw, c.pitch) }

// RightDirection returns the horizontal right vector.
func (c *FreeCamera) RightDirection() mgl32.Vec3 { return rightOf(c.Direction()) }

// Yaw returns the rotation about +Y in radians.
func (c *FreeCamera) Yaw() float32 { return c.yaw }

// Pitch returns the elevation in radians.
func (c *FreeCamera) Pitch() float32 { return c.pitch }

// SetOrientation sets yaw and pitch directly. Pitch is clamped short of vertical.
func (c *FreeCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = clampf(pitch, -cameraMaxPitch, cameraMaxPitch)
	c.dirty = true
}

// SetPosition moves the eye.
func (c *FreeCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.dirty = true
}

// Move flies forward and right by dt * Speed scaled by the given amounts.
// Negative amounts move backward or left.
func (c *FreeCamera) Move(dt, forward, right float32) {
	if forward == 0 && right == 0 {
		return
	}
	step := c.Direction().Mul(forward).Add(c.RightDirection().Mul(right))
	c.position = c.position.Add(step.Mul(dt * c.Speed))
	c.dirty = true
}

// Update applies mouse look.
func (c *FreeCamera) Update(dt, dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	c.SetOrientation(c.yaw+dx*mouseSensitivity, c.pitch-dy*mouseSensitivity)
}

// SetTarget is a no-op: a free camera follows nothing.
func (c *FreeCamera) SetTarget(mgl32.Vec3, float32) {}

// SetAspect changes the aspect ratio.
func (c *FreeCamera) SetAspect(aspect float32) { c.aspect = aspect }

// View returns the cached view matrix, recomputing it if dirty.
func (c *FreeCamera) View() mgl32.Mat4 {
	if c.dirty {
		c.view = lookAt(c.position, c.position.Add(c.Direction()), WorldUp)
		c.dirty = false
	}
	return c.view
}

// Projection returns the perspective projection.
func (c *FreeCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(cameraFovY, c.aspect, cameraNear, cameraFar)
}

// --- ThirdPersonCamera ---

// ThirdPersonCamera orbits a target from behind and above. Mouse X turns the
// orbit; SetTarget moves the point it looks at. On creation it zooms in from
// a distance.
type ThirdPersonCamera struct {
	// Height lifts the look-at point above the target position.
	Height float32

	target   mgl32.Vec3
	yaw      float32
	pitch    float32
	distance float32
	zoom     *FieldTween
	aspect   float32

	view  mgl32.Mat4
	dirty bool
}

const (
	thirdPersonDistance = 12
	thirdPersonStart    = 40
	thirdPersonPitch    = 0.45
	thirdPersonZoomTime = 1.5
)

// NewThirdPersonCamera creates a camera looking at target from behind (-Z side).
func NewThirdPersonCamera(target mgl32.Vec3, aspect float32) *ThirdPersonCamera {
	c := &ThirdPersonCamera{
		Height:   2,
		target:   target,
		pitch:    thirdPersonPitch,
		distance: thirdPersonStart,
		aspect:   aspect,
		dirty:    true,
	}
	c.zoom = TweenValue(&c.distance, thirdPersonDistance, thirdPersonZoomTime, ease.OutCubic)
	return c
}

func (c *ThirdPersonCamera) focus() mgl32.Vec3 {
	return c.target.Add(mgl32.Vec3{0, c.Height, 0})
}

// Position returns the eye position on the orbit.
func (c *ThirdPersonCamera) Position() mgl32.Vec3 {
	back := orbitDirection(c.yaw, c.pitch)
	return c.focus().Sub(mgl32.Vec3{back[0], -back[1], back[2]}.Mul(c.distance))
}

// Direction returns the unit vector from the eye to the look-at point.
func (c *ThirdPersonCamera) Direction() mgl32.Vec3 {
	return c.focus().Sub(c.Position()).Normalize()
}

// RightDirection returns the horizontal right vector.
func (c *ThirdPersonCamera) RightDirection() mgl32.Vec3 { return rightOf(c.Direction()) }

// Distance returns the current orbit radius.
func (c *ThirdPersonCamera) Distance() float32 { return c.distance }

// Target returns the followed position.
func (c *ThirdPersonCamera) Target() mgl32.Vec3 { return c.target }

// Update advances the zoom-in and turns the orbit with mouse X.
func (c *ThirdPersonCamera) Update(dt, dx, dy float32) {
	if !c.zoom.Done {
		c.zoom.Update(dt)
		c.dirty = true
	}
	if dx != 0 {
		c.yaw += dx * mouseSensitivity
		c.dirty = true
	}
}

// SetTarget moves the look-at point. The orbit keeps its yaw so that
// strafing does not spin the camera.
func (c *ThirdPersonCamera) SetTarget(position mgl32.Vec3, _ float32) {
	c.target = position
	c.dirty = true
}

// SetAspect changes the aspect ratio.
func (c *ThirdPersonCamera) SetAspect(aspect float32) { c.aspect = aspect }

// View returns the cached view matrix, recomputing it if dirty.
func (c *ThirdPersonCamera) View() mgl32.Mat4 {
	if c.dirty {
		c.view = lookAt(c.Position(), c.focus(), WorldUp)
		c.dirty = false
	}
	return c.view
}

// Projection returns the perspective projection.
func (c *ThirdPersonCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(cameraFovY, c.aspect, cameraNear, cameraFar)
}

// --- OrthoCamera ---

// OrthoCamera looks straight down on the maze. Screen up is world +Z, so
// Direction reports +Z for movement purposes.
type OrthoCamera struct {
	// Extent is the visible world height.
	Extent float32
	// Altitude is how far above the center the eye sits.
	Altitude float32

	center mgl32.Vec3
	aspect float32

	view  mgl32.Mat4
	dirty bool
}

// NewOrthoCamera creates a top-down camera centered on center showing extent
// world units vertically.
func NewOrthoCamera(center mgl32.Vec3, extent, aspect float32) *OrthoCamera {
	return &OrthoCamera{
		Extent:   extent,
		Altitude: 100,
		center:   center,
		aspect:   aspect,
		dirty:    true,
	}
}

// Position returns the eye position.
func (c *OrthoCamera) Position() mgl32.Vec3 {
	return c.center.Add(mgl32.Vec3{0, c.Altitude, 0})
}

// Direction returns world +Z (map up).
func (c *OrthoCamera) Direction() mgl32.Vec3 { return WorldForward }

// RightDirection returns world +X.
func (c *OrthoCamera) RightDirection() mgl32.Vec3 { return WorldRight }

// Update is a no-op; the map view does not react to the mouse.
func (c *OrthoCamera) Update(float32, float32, float32) {}

// SetTarget recenters the view on position.
func (c *OrthoCamera) SetTarget(position mgl32.Vec3, _ float32) {
	c.center = position
	c.dirty = true
}

// SetAspect changes the aspect ratio.
func (c *OrthoCamera) SetAspect(aspect float32) { c.aspect = aspect }

// View returns the cached view matrix, recomputing it if dirty.
func (c *OrthoCamera) View() mgl32.Mat4 {
	if c.dirty {
		c.view = lookAt(c.Position(), c.center, WorldForward)
		c.dirty = false
	}
	return c.view
}

// Projection returns the orthographic projection.
func (c *OrthoCamera) Projection() mgl32.Mat4 {
	h := c.Extent / 2
	w := h * c.aspect
	return mgl32.Ortho(-w, w, -h, h, cameraNear, c.Altitude*2)
}
