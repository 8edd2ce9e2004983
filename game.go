package survivalmaze

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// GameState is the outcome of a round.
type GameState uint8

const (
	GamePlaying GameState = iota
	GameWon
	GameLost
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case GamePlaying:
		return "playing"
	case GameWon:
		return "won"
	case GameLost:
		return "lost"
	default:
		return "unknown"
	}
}

// CameraMode selects the active camera.
type CameraMode uint8

const (
	CameraThirdPerson CameraMode = iota
	CameraFree
	CameraMap
	numCameraModes
)

// String returns the mode name.
func (m CameraMode) String() string {
	switch m {
	case CameraThirdPerson:
		return "third-person"
	case CameraFree:
		return "free"
	case CameraMap:
		return "map"
	default:
		return "unknown"
	}
}

// FrameInput is everything Game.Update reads from the input devices for one
// frame. Toggle and fire fields are edges: true only on the frame the key or
// button went down.
type FrameInput struct {
	Forward, Backward bool
	Left, Right       bool
	Fire              bool
	ToggleCamera      bool
	ToggleMenu        bool
	// Screenshot asks the window to save the next frame. Game ignores it.
	Screenshot bool
	// MouseDX and MouseDY are the cursor movement since the last frame in pixels.
	MouseDX, MouseDY float32
}

// maxMouseDelta caps the per-frame mouse movement fed to the cameras.
const maxMouseDelta = 25

// Meshes are the shared meshes a game draws with.
type Meshes struct {
	Tile       *Mesh
	Enemy      *Mesh
	Player     *Mesh
	Projectile *Mesh
}

// DefaultMeshes returns unit cube meshes with one material each.
func DefaultMeshes() Meshes {
	tile := NewCubeMesh("tile", 0.5)
	enemy := NewCubeMesh("enemy", 1)
	enemy.Material = 1
	player := NewCubeMesh("player", 1)
	player.Material = 2
	projectile := NewCubeMesh("projectile", 1)
	projectile.Material = 3
	return Meshes{Tile: tile, Enemy: enemy, Player: player, Projectile: projectile}
}

func (m Meshes) list() []*Mesh {
	return []*Mesh{m.Tile, m.Enemy, m.Player, m.Projectile}
}

// Game is one round: the maze, the player, the projectile pool and the
// cameras, advanced by Update and drawn by Draw.
type Game struct {
	cfg    Config
	meshes []*Mesh

	maze        *Maze
	player      *Player
	projectiles *ProjectileManager

	cameras    [numCameraModes]Camera
	free       *FreeCamera
	cameraMode CameraMode

	state      GameState
	timeLeft   float32
	menuActive bool

	sink  EventSink
	debug bool

	stats       FrameStats
	instanceBuf []InstanceInfo
}

// NewGame builds a level from cfg: a generated maze (or the layout file), the
// player on the start cell, a projectile pool and the three cameras.
func NewGame(cfg Config, meshes Meshes) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	for _, m := range meshes.list() {
		if m == nil {
			return nil, fmt.Errorf("new game: %w", ErrNilMesh)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	chance := cfg.EnemyChance
	if chance == 0 {
		chance = -1
	}
	mazeCfg := MazeConfig{
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		TileSize:    cfg.TileSize,
		WallMesh:    meshes.Tile,
		EnemyMesh:   meshes.Enemy,
		EnemyChance: chance,
		Rand:        rng,
	}

	var maze *Maze
	var err error
	if cfg.LayoutFile != "" {
		var lines []string
		lines, err = LoadLayout(cfg.LayoutFile)
		if err == nil {
			maze, err = NewMazeFromLayout(lines, mazeCfg)
		}
	} else {
		maze, err = NewMaze(mazeCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	start := maze.StartPosition()

	g := &Game{
		cfg:      cfg,
		meshes:   meshes.list(),
		maze:     maze,
		timeLeft: cfg.TimeLimit,
		debug:    cfg.Debug,
	}
	sortMeshes(g.meshes)

	g.free = NewFreeCamera(start.Add(mgl32.Vec3{0, 8, -cfg.TileSize}), aspect)
	g.free.SetOrientation(0, -0.4)
	extent := float32(max(cfg.Rows, cfg.Cols)) * cfg.TileSize
	if cfg.LayoutFile != "" {
		extent = float32(max(maze.Rows(), maze.Cols())) * cfg.TileSize
	}
	g.cameras[CameraThirdPerson] = NewThirdPersonCamera(start, aspect)
	g.cameras[CameraFree] = g.free
	g.cameras[CameraMap] = NewOrthoCamera(start, extent, aspect)

	g.player, err = NewPlayer(meshes.Player, PlayerConfig{
		Position:  start,
		MoveSpeed: cfg.PlayerSpeed,
		Health:    cfg.PlayerHealth,
		Walls:     maze,
		Camera:    g.cameras[CameraThirdPerson],
	})
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g.projectiles, err = NewProjectileManager(meshes.Projectile, maze, cfg.MaxProjectiles)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	if g.debug {
		debugCheckTreeDepth(g.player.Model())
	}
	logger.WithFields(log.Fields{
		"seed":      seed,
		"timeLimit": cfg.TimeLimit,
		"enemies":   len(maze.Enemies()),
	}).Info("new game")
	return g, nil
}

// Update advances the round by dt seconds. The order is fixed: menu toggle,
// camera, player movement and animation, firing, projectiles, enemies,
// contact damage, then the timer and win/lose checks. Nothing happens once
// the round is over; while the menu is open only the camera is updated.
func (g *Game) Update(in FrameInput, dt float32) {
	if g.state != GamePlaying {
		return
	}
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	if in.ToggleMenu {
		g.menuActive = !g.menuActive
	}
	if g.menuActive {
		g.Camera().Update(dt, 0, 0)
		return
	}

	if in.ToggleCamera {
		g.SetCameraMode((g.cameraMode + 1) % numCameraModes)
	}
	dx := clampf(in.MouseDX, -maxMouseDelta, maxMouseDelta)
	dy := clampf(in.MouseDY, -maxMouseDelta, maxMouseDelta)
	g.Camera().Update(dt, dx, dy)

	g.movePlayer(in, dt)

	if in.Fire {
		g.fire()
	}

	kills := g.maze.Kills()
	g.projectiles.Update(dt)
	for n := kills + 1; n <= g.maze.Kills(); n++ {
		g.emit(EventEnemyKilled, float32(n))
	}

	g.maze.Update(dt)

	if g.cfg.EnemyDamage > 0 && g.maze.BoundingBoxCollidesWithEnemy(g.player.BoundingBox()) {
		damage := g.cfg.EnemyDamage * dt
		g.player.TakeDamage(damage)
		g.emit(EventPlayerDamaged, damage)
	}

	g.timeLeft -= dt
	switch {
	case g.player.IsDead():
		g.finish(GameLost, EventPlayerDied)
	case g.timeLeft <= 0:
		g.timeLeft = 0
		g.finish(GameLost, EventTimeExpired)
	case g.onExit():
		g.finish(GameWon, EventExitReached)
	}

	if g.debug {
		g.stats.UpdateTime = time.Since(t0)
	}
}

func (g *Game) movePlayer(in FrameInput, dt float32) {
	forward := axis(in.Forward, in.Backward)
	right := axis(in.Right, in.Left)

	if g.cameraMode == CameraFree {
		g.free.Move(dt, forward, right)
		return
	}
	if forward == 0 && right == 0 {
		g.player.Idle()
		return
	}
	g.player.Move(dt, forward, right)
}

func axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}

func (g *Game) fire() {
	position := g.player.MuzzlePosition()
	direction := g.player.FacingDirection()
	if g.cameraMode == CameraFree {
		position = g.free.Position()
		direction = g.free.Direction()
	}
	if g.projectiles.SpawnProjectile(position, direction) {
		g.emit(EventProjectileFired, float32(g.projectiles.ActiveCount()))
	}
}

func (g *Game) onExit() bool {
	exit, ok := g.maze.Exit()
	if !ok {
		return false
	}
	cell, inside := g.maze.CoordinatesFromPosition(g.player.Position())
	return inside && cell == exit
}

func (g *Game) finish(state GameState, event EventType) {
	g.state = state
	g.emit(event, float32(g.maze.Kills()))
	logger.WithFields(log.Fields{
		"state":    state,
		"kills":    g.maze.Kills(),
		"timeLeft": g.timeLeft,
		"health":   g.player.Health(),
	}).Info("round over")
}

func (g *Game) emit(t EventType, amount float32) {
	if g.sink == nil {
		return
	}
	g.sink.EmitEvent(GameEvent{
		Type:     t,
		Position: g.player.Position(),
		Amount:   amount,
		TimeLeft: g.timeLeft,
	})
}

// Draw rebuilds the active instance sets of every mesh and submits one
// instanced draw per mesh to r.
func (g *Game) Draw(r Renderer) {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	for _, m := range g.meshes {
		m.ResetCurrentInstances()
	}
	g.maze.Render()
	g.player.Render()
	g.projectiles.Render()

	if g.debug {
		g.stats.RenderTime = time.Since(t0)
		t0 = time.Now()
	}

	cam := g.Camera()
	r.Begin(FrameConstants{
		View:           cam.View(),
		Projection:     cam.Projection(),
		CameraPosition: cam.Position(),
	})
	var draws, instances int
	draws, instances, g.instanceBuf = submitBatches(r, g.meshes, g.instanceBuf)
	r.End()

	g.stats.DrawCalls = draws
	g.stats.Instances = instances
	g.stats.Batches = countBatches(g.meshes)
	if g.debug {
		g.stats.SubmitTime = time.Since(t0)
		g.debugLog(g.stats)
	}
}

// --- Accessors ---

// State returns the round state.
func (g *Game) State() GameState { return g.state }

// TimeLeft returns the remaining time in seconds.
func (g *Game) TimeLeft() float32 { return g.timeLeft }

// MenuActive reports whether the menu is open and gameplay paused.
func (g *Game) MenuActive() bool { return g.menuActive }

// Maze returns the level.
func (g *Game) Maze() *Maze { return g.maze }

// Player returns the avatar.
func (g *Game) Player() *Player { return g.player }

// Projectiles returns the projectile pool.
func (g *Game) Projectiles() *ProjectileManager { return g.projectiles }

// Meshes returns the meshes in draw order. The returned slice MUST NOT be mutated.
func (g *Game) Meshes() []*Mesh { return g.meshes }

// Stats returns the metrics of the last Update and Draw.
func (g *Game) Stats() FrameStats { return g.stats }

// Config returns the configuration the game was built with.
func (g *Game) Config() Config { return g.cfg }

// Camera returns the active camera.
func (g *Game) Camera() Camera { return g.cameras[g.cameraMode] }

// CameraMode returns which camera is active.
func (g *Game) CameraMode() CameraMode { return g.cameraMode }

// SetCameraMode switches the active camera. The player moves relative to
// the new camera unless it is the free camera, which flies on its own.
func (g *Game) SetCameraMode(mode CameraMode) {
	if mode >= numCameraModes {
		return
	}
	g.cameraMode = mode
	if mode != CameraFree {
		g.player.SetCamera(g.cameras[mode])
	}
	logger.WithField("camera", mode).Debug("camera switched")
}

// SetAspect updates the aspect ratio of every camera.
func (g *Game) SetAspect(aspect float32) {
	for _, c := range g.cameras {
		c.SetAspect(aspect)
	}
}

// SetEventSink sets the optional receiver of gameplay events.
func (g *Game) SetEventSink(sink EventSink) {
	g.sink = sink
}

// SetDebugMode enables or disables per-frame timing and debug logging.
func (g *Game) SetDebugMode(enabled bool) {
	g.debug = enabled
}
