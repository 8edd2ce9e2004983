package survivalmaze

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// DefaultEnemyChance is the probability that a carved cell spawns an enemy.
const DefaultEnemyChance = 0.1

// Cell addresses one grid cell. Col grows along world +X, Row along world +Z.
type Cell struct {
	Col, Row int
}

// MazeConfig controls maze creation.
type MazeConfig struct {
	Rows, Cols int
	// TileSize is the width and depth of one cell in world units.
	TileSize float32
	// WallMesh draws every tile (walls and floor); EnemyMesh draws enemies.
	WallMesh  *Mesh
	EnemyMesh *Mesh
	// EnemyChance is the carve probability of an enemy spawn. Zero selects
	// DefaultEnemyChance; negative disables enemies.
	EnemyChance float64
	// Rand drives generation and enemy wandering. Nil seeds from the clock.
	Rand *rand.Rand
}

// Maze owns the level grid, one tile instance per cell and the live enemies.
type Maze struct {
	rows, cols int
	tileSize   float32
	tiles      []TileType // row-major

	wallMesh  *Mesh
	enemyMesh *Mesh

	tileInstances []uint32 // row-major, 1:1 with tiles
	wallInstances []uint32
	enemies       []*Enemy
	kills         int

	start   Cell
	exit    Cell
	hasExit bool

	rng *rand.Rand
}

// NewMaze validates cfg, generates a random layout and places its tile and
// enemy instances.
func NewMaze(cfg MazeConfig) (*Maze, error) {
	m, err := newEmptyMaze(cfg)
	if err != nil {
		return nil, err
	}
	chance := cfg.EnemyChance
	if chance == 0 {
		chance = DefaultEnemyChance
	}
	m.generate(chance)
	m.placeInstances()
	m.logSummary()
	return m, nil
}

// newEmptyMaze checks cfg and returns a maze with every cell set to wall.
func newEmptyMaze(cfg MazeConfig) (*Maze, error) {
	fields := log.Fields{"rows": cfg.Rows, "cols": cfg.Cols, "tileSize": cfg.TileSize}
	if cfg.Rows < 3 || cfg.Cols < 3 {
		logger.WithFields(fields).Error("cannot create maze")
		return nil, fmt.Errorf("maze %dx%d: %w", cfg.Rows, cfg.Cols, ErrMazeTooSmall)
	}
	if cfg.WallMesh == nil {
		logger.WithFields(fields).Error("cannot create maze without a wall mesh")
		return nil, fmt.Errorf("maze wall mesh: %w", ErrNilMesh)
	}
	if cfg.EnemyMesh == nil {
		logger.WithFields(fields).Error("cannot create maze without an enemy mesh")
		return nil, fmt.Errorf("maze enemy mesh: %w", ErrNilMesh)
	}
	if cfg.TileSize < 1 {
		logger.WithFields(fields).Error("cannot create maze")
		return nil, fmt.Errorf("maze tile size %v: %w", cfg.TileSize, ErrTileSize)
	}
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	tiles := make([]TileType, cfg.Rows*cfg.Cols)
	for i := range tiles {
		tiles[i] = TileWall
	}
	return &Maze{
		rows:      cfg.Rows,
		cols:      cfg.Cols,
		tileSize:  cfg.TileSize,
		tiles:     tiles,
		wallMesh:  cfg.WallMesh,
		enemyMesh: cfg.EnemyMesh,
		rng:       rng,
	}, nil
}

// --- Grid accessors ---

// Rows returns the number of grid rows.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of grid columns.
func (m *Maze) Cols() int { return m.cols }

// TileSize returns the width and depth of one cell in world units.
func (m *Maze) TileSize() float32 { return m.tileSize }

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < m.cols && c.Row < m.rows
}

// Tile returns the type of the cell. Panics if c is out of bounds.
func (m *Maze) Tile(c Cell) TileType {
	return m.tiles[m.index(c)]
}

// Start returns the start cell. It is always walkable.
func (m *Maze) Start() Cell { return m.start }

// StartPosition returns the world position of the start cell at floor level.
func (m *Maze) StartPosition() mgl32.Vec3 {
	return m.PositionFromCoordinates(m.start)
}

// Exit returns the boundary cell the generator carved, if any.
func (m *Maze) Exit() (Cell, bool) { return m.exit, m.hasExit }

// IsOnBoundary reports whether c touches the edge of the grid.
func (m *Maze) IsOnBoundary(c Cell) bool {
	return c.Col == 0 || c.Row == 0 || c.Col == m.cols-1 || c.Row == m.rows-1
}

func (m *Maze) index(c Cell) int {
	return c.Row*m.cols + c.Col
}

func (m *Maze) setTile(c Cell, t TileType) {
	m.tiles[m.index(c)] = t
}

// PositionFromCoordinates returns the world position of a cell center at
// floor level. The grid is centered on the world origin.
func (m *Maze) PositionFromCoordinates(c Cell) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(c.Col) - float32(m.cols)/2) * m.tileSize,
		0,
		(float32(c.Row) - float32(m.rows)/2) * m.tileSize,
	}
}

// CoordinatesFromPosition returns the cell containing the world position.
// The second result is false when the position lies outside the grid.
func (m *Maze) CoordinatesFromPosition(p mgl32.Vec3) (Cell, bool) {
	col := math.Floor(float64(p[0]/m.tileSize+float32(m.cols)/2) + 0.5)
	row := math.Floor(float64(p[2]/m.tileSize+float32(m.rows)/2) + 0.5)
	c := Cell{Col: int(col), Row: int(row)}
	return c, m.InBounds(c)
}

// --- Instances ---

// placeInstances adds one tile instance per cell in row-major order and
// spawns an enemy on every enemy cell.
func (m *Maze) placeInstances() {
	m.tileInstances = make([]uint32, 0, len(m.tiles))
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			c := Cell{Col: col, Row: row}
			tile := m.Tile(c)
			position := m.PositionFromCoordinates(c)
			scale := mgl32.Vec3{m.tileSize, 2, m.tileSize}
			color := ColorFloor

			switch tile {
			case TileEnemy:
				color = ColorEnemyFloor
				position[1] = -1
			case TileFree:
				position[1] = -1
			case TileWall:
				position[1] = 1
				scale[1] = 5
				color = ColorWall
			}

			world := mgl32.Translate3D(position[0], position[1], position[2]).
				Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
			id := m.wallMesh.AddInstance(InstanceInfo{World: world, Color: color})
			m.tileInstances = append(m.tileInstances, id)

			switch tile {
			case TileWall:
				m.wallInstances = append(m.wallInstances, id)
			case TileEnemy:
				enemy, err := NewEnemy(m.enemyMesh, m.PositionFromCoordinates(c), m.rng)
				if err != nil {
					logger.WithError(err).WithFields(log.Fields{"col": col, "row": row}).
						Error("cannot create enemy")
					continue
				}
				m.enemies = append(m.enemies, enemy)
			}
		}
	}
}

// TileInstance returns the tile instance handle of a cell.
func (m *Maze) TileInstance(c Cell) uint32 {
	return m.tileInstances[m.index(c)]
}

// WallCount returns the number of wall tiles.
func (m *Maze) WallCount() int {
	return len(m.wallInstances)
}

// --- Enemies ---

// Enemies returns the live enemies. The returned slice MUST NOT be mutated.
func (m *Maze) Enemies() []*Enemy {
	return m.enemies
}

// Kills returns how many enemies projectiles have hit so far.
func (m *Maze) Kills() int {
	return m.kills
}

// Update advances every enemy and drops those whose death animation has
// finished. Returns the number of enemies removed.
func (m *Maze) Update(dt float32) int {
	alive := m.enemies[:0]
	removed := 0
	for _, e := range m.enemies {
		e.Update(dt)
		if e.ShouldDie() {
			removed++
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = alive
	return removed
}

// Render marks every tile and live enemy for drawing this frame.
func (m *Maze) Render() {
	for _, id := range m.tileInstances {
		m.wallMesh.AddCurrentInstance(id)
	}
	for _, e := range m.enemies {
		e.Render()
	}
}

// --- Collision queries ---

// BoundingBoxCollidesWithWalls reports whether box intersects any wall tile.
func (m *Maze) BoundingBoxCollidesWithWalls(box BoundingBox) bool {
	for _, id := range m.wallInstances {
		if m.wallMesh.TransformedBoundingBox(id).Intersects(box) {
			return true
		}
	}
	return false
}

// BoundingBoxCollidesWithEnemy reports whether box touches a live, non-dying enemy.
func (m *Maze) BoundingBoxCollidesWithEnemy(box BoundingBox) bool {
	for _, e := range m.enemies {
		if e.CollisionWithBoundingBox(box) {
			return true
		}
	}
	return false
}

// HandleEnemyCollision kills every enemy box touches and reports whether any
// was hit.
func (m *Maze) HandleEnemyCollision(box BoundingBox) bool {
	hit := false
	for _, e := range m.enemies {
		if e.CollisionWithBoundingBox(box) {
			e.Die()
			m.kills++
			hit = true
		}
	}
	return hit
}

// --- Debug output ---

// String renders the grid one row per line: '#' wall, '.' free, '?' enemy.
func (m *Maze) String() string {
	var sb strings.Builder
	sb.Grow(m.rows * (m.cols*2 + 1))
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(m.Tile(Cell{Col: col, Row: row}).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Maze) logSummary() {
	entry := logger.WithFields(log.Fields{
		"rows":    m.rows,
		"cols":    m.cols,
		"walls":   len(m.wallInstances),
		"enemies": len(m.enemies),
		"exit":    m.hasExit,
	})
	entry.Info("generated maze")
	if logger.IsLevelEnabled(log.DebugLevel) {
		logger.Debugf("maze layout:\n%s", m.String())
	}
}
