package survivalmaze

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// Vec4 returns the color as an mgl32.Vec4 in RGBA order.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Colors used by the built-in level and player model.
var (
	ColorWhite      = Color{1, 1, 1, 1}
	ColorWall       = Color{1, 0, 0, 1}
	ColorFloor      = Color{0, 1, 0, 1}
	ColorEnemyFloor = Color{0, 1, 1, 1}
	ColorEnemy      = Color{0, 1, 0, 1}
	ColorProjectile = Color{1, 0, 0, 1}
	ColorShirt      = Color{0.25, 0.87, 0.81, 1}
	ColorSkin       = Color{1, 0.80, 0.70, 1}
	ColorTrousers   = Color{0.25, 0.25, 1, 1}
)

// World axes. The world frame is left-handed: +X is right, +Y is up and +Z
// points away from a camera with zero yaw.
var (
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
)

// TileType is the content of one maze grid cell.
type TileType uint8

const (
	TileFree  TileType = iota // walkable floor
	TileWall                  // raised wall block
	TileEnemy                 // walkable floor with an enemy spawned on it
)

// Rune returns the character used for the tile in level layouts.
func (t TileType) Rune() rune {
	switch t {
	case TileFree:
		return '.'
	case TileWall:
		return '#'
	case TileEnemy:
		return '?'
	default:
		return ' '
	}
}

// String returns a human-readable tile name.
func (t TileType) String() string {
	switch t {
	case TileFree:
		return "free"
	case TileWall:
		return "wall"
	case TileEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Construction errors. Functions wrap these with context; test with errors.Is.
var (
	ErrMazeTooSmall = errors.New("survivalmaze: maze needs at least 3 rows and 3 cols")
	ErrNilMesh      = errors.New("survivalmaze: mesh is nil")
	ErrTileSize     = errors.New("survivalmaze: tile size must be at least 1")
	ErrPoolSize     = errors.New("survivalmaze: pool size must be positive")
	ErrLayout       = errors.New("survivalmaze: invalid level layout")
	ErrConfig       = errors.New("survivalmaze: invalid config")
)

// logger is the package logger. Replace it with SetLogger.
var logger = log.StandardLogger()

// SetLogger replaces the package logger. Passing nil restores the logrus
// standard logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.StandardLogger()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// groundDirection projects v onto the XZ plane and normalizes it. Returns the
// zero vector when v is (nearly) vertical.
func groundDirection(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	l := v.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
