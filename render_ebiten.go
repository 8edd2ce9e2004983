package survivalmaze

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// boxFaces lists the four corner indices of each face of a box, using the
// corner order of BoundingBox.Corners, with a brightness for flat shading.
var boxFaces = [6]struct {
	corners [4]int
	shade   float32
}{
	{[4]int{2, 3, 7, 6}, 1.00}, // +Y
	{[4]int{0, 1, 5, 4}, 0.45}, // -Y
	{[4]int{1, 3, 7, 5}, 0.80}, // +X
	{[4]int{0, 2, 6, 4}, 0.70}, // -X
	{[4]int{4, 5, 7, 6}, 0.60}, // +Z
	{[4]int{0, 1, 3, 2}, 0.85}, // -Z
}

// projectedFace is one box face in screen space.
type projectedFace struct {
	points [4]mgl32.Vec2
	depth  float32
	color  Color
}

// EbitenRenderer is a debug-grade Renderer that paints every instance's box
// onto an ebiten image with painter's-algorithm depth sorting. It draws all
// faces of a frame in a single DrawTriangles32 call.
type EbitenRenderer struct {
	target   *ebiten.Image
	width    float32
	height   float32
	viewProj mgl32.Mat4

	faces    []projectedFace
	vertices []ebiten.Vertex
	indices  []uint32

	// Background fills the target at End before faces are drawn.
	Background Color
}

// NewEbitenRenderer creates a renderer. Call SetTarget before each frame.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{Background: Color{0.05, 0.05, 0.08, 1}}
}

// SetTarget sets the image the next frame is drawn into.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.target = target
	if target != nil {
		b := target.Bounds()
		r.SetViewport(float32(b.Dx()), float32(b.Dy()))
	}
}

// SetViewport sets the screen size used for projection.
func (r *EbitenRenderer) SetViewport(width, height float32) {
	r.width = width
	r.height = height
}

// Begin starts a frame with the camera matrices.
func (r *EbitenRenderer) Begin(frame FrameConstants) {
	r.viewProj = frame.Projection.Mul4(frame.View)
	r.faces = r.faces[:0]
}

// DrawInstanced projects every instance of the batch.
func (r *EbitenRenderer) DrawInstanced(batch DrawBatch) {
	bounds := batch.Mesh.BoundingBox()
	for i := range batch.Instances {
		r.appendBox(bounds, &batch.Instances[i])
	}
}

func (r *EbitenRenderer) appendBox(bounds BoundingBox, info *InstanceInfo) {
	mvp := r.viewProj.Mul4(info.World)
	corners := bounds.Corners()

	var screen [8]mgl32.Vec2
	var depth [8]float32
	var visible [8]bool
	for i, c := range corners {
		clip := mvp.Mul4x1(c.Vec4(1))
		if clip[3] <= cameraNear {
			continue
		}
		visible[i] = true
		ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
		screen[i] = mgl32.Vec2{
			(ndcX + 1) * 0.5 * r.width,
			(1 - ndcY) * 0.5 * r.height,
		}
		depth[i] = clip[3]
	}

	for _, f := range boxFaces {
		face := projectedFace{color: info.Color}
		ok := true
		for k, ci := range f.corners {
			if !visible[ci] {
				ok = false
				break
			}
			face.points[k] = screen[ci]
			face.depth += depth[ci] / 4
		}
		if !ok {
			continue
		}
		face.color.R *= f.shade
		face.color.G *= f.shade
		face.color.B *= f.shade
		r.faces = append(r.faces, face)
	}
}

// End sorts the frame's faces far to near and draws them.
func (r *EbitenRenderer) End() {
	sort.SliceStable(r.faces, func(i, j int) bool {
		return r.faces[i].depth > r.faces[j].depth
	})

	if r.target == nil {
		return
	}
	r.target.Fill(r.Background.rgba())
	if len(r.faces) == 0 {
		return
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for i := range r.faces {
		f := &r.faces[i]
		base := uint32(len(r.vertices))
		for _, p := range f.points {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   p[0],
				DstY:   p[1],
				SrcX:   1,
				SrcY:   1,
				ColorR: f.color.R,
				ColorG: f.color.G,
				ColorB: f.color.B,
				ColorA: f.color.A,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
	}

	var op ebiten.DrawTrianglesOptions
	r.target.DrawTriangles32(r.vertices, r.indices, whiteSubImage(), &op)
}

// FaceCount returns the number of faces projected this frame.
func (r *EbitenRenderer) FaceCount() int {
	return len(r.faces)
}

var whiteImage *ebiten.Image

// whiteSubImage returns the center pixel of a 3x3 white image so that
// triangle sampling never bleeds past the edge.
func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func (c Color) rgba() color.RGBA {
	return color.RGBA{
		R: uint8(clampf(c.R, 0, 1) * 255),
		G: uint8(clampf(c.G, 0, 1) * 255),
		B: uint8(clampf(c.B, 0, 1) * 255),
		A: uint8(clampf(c.A, 0, 1) * 255),
	}
}
