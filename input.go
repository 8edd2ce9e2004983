package survivalmaze

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource is the slice of the device API the input poller reads. The
// ebiten-backed source is used at runtime; tests substitute their own.
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
	CursorPosition() (x, y int)
}

// KeyBindings maps game actions to keys. Each action fires if any of its keys
// is held (movement) or was just pressed (toggles, fire).
type KeyBindings struct {
	Forward      []ebiten.Key
	Backward     []ebiten.Key
	Left         []ebiten.Key
	Right        []ebiten.Key
	Fire         []ebiten.Key
	ToggleCamera []ebiten.Key
	ToggleMenu   []ebiten.Key
	Screenshot   []ebiten.Key

	FireButton ebiten.MouseButton
	MenuButton ebiten.MouseButton
}

// DefaultKeyBindings returns WASD/arrow movement, space or left click to
// fire, C to switch camera, right click or Tab for the menu and F12 for a
// screenshot.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward:      []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Backward:     []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:         []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:        []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Fire:         []ebiten.Key{ebiten.KeySpace},
		ToggleCamera: []ebiten.Key{ebiten.KeyC},
		ToggleMenu:   []ebiten.Key{ebiten.KeyTab},
		Screenshot:   []ebiten.Key{ebiten.KeyF12},
		FireButton:   ebiten.MouseButtonLeft,
		MenuButton:   ebiten.MouseButtonRight,
	}
}

// InputPoller turns device state into one FrameInput per frame.
type InputPoller struct {
	Bindings KeyBindings

	source  InputSource
	lastX   int
	lastY   int
	hasLast bool
}

// NewInputPoller creates a poller reading from source. Nil reads from ebiten.
func NewInputPoller(source InputSource) *InputPoller {
	if source == nil {
		source = ebitenInput{}
	}
	return &InputPoller{Bindings: DefaultKeyBindings(), source: source}
}

// Poll samples the devices. The first call reports no mouse movement.
func (p *InputPoller) Poll() FrameInput {
	s := p.source
	b := &p.Bindings

	in := FrameInput{
		Forward:      anyPressed(s, b.Forward),
		Backward:     anyPressed(s, b.Backward),
		Left:         anyPressed(s, b.Left),
		Right:        anyPressed(s, b.Right),
		Fire:         anyJustPressed(s, b.Fire) || s.IsMouseButtonJustPressed(b.FireButton),
		ToggleCamera: anyJustPressed(s, b.ToggleCamera),
		ToggleMenu:   anyJustPressed(s, b.ToggleMenu) || s.IsMouseButtonJustPressed(b.MenuButton),
		Screenshot:   anyJustPressed(s, b.Screenshot),
	}

	x, y := s.CursorPosition()
	if p.hasLast {
		in.MouseDX = float32(x - p.lastX)
		in.MouseDY = float32(y - p.lastY)
	}
	p.lastX, p.lastY, p.hasLast = x, y, true
	return in
}

// ResetMouse forgets the last cursor position so the next Poll reports no
// movement. Call it after the cursor mode changes.
func (p *InputPoller) ResetMouse() {
	p.hasLast = false
}

func anyPressed(s InputSource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(s InputSource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// ebitenInput reads the live ebiten device state.
type ebitenInput struct{}

func (ebitenInput) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (ebitenInput) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

func (ebitenInput) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(button)
}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }
