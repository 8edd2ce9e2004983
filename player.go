package survivalmaze

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// WallCollider answers whether a world-space box overlaps a wall. *Maze
// implements it.
type WallCollider interface {
	BoundingBoxCollidesWithWalls(box BoundingBox) bool
}

// PlayerState is the coarse state of the avatar.
type PlayerState uint8

const (
	PlayerIdle PlayerState = iota
	PlayerWalking
	PlayerStrafing
	PlayerDead
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerWalking:
		return "walking"
	case PlayerStrafing:
		return "strafing"
	case PlayerDead:
		return "dead"
	default:
		return "unknown"
	}
}

const (
	// DefaultPlayerSpeed is the walking speed in world units per second.
	DefaultPlayerSpeed = 10
	// DefaultPlayerHealth is the starting health.
	DefaultPlayerHealth = 100

	// distanceToWallInFrames is how many extra steps ahead movement probes for walls.
	distanceToWallInFrames = 5
	playerAnimationSpeed   = 4
	playerMaxSwing         = math.Pi / 4
)

// PlayerConfig controls player creation.
type PlayerConfig struct {
	// Position is the floor point the player stands on.
	Position mgl32.Vec3
	// MoveSpeed in world units per second. Zero selects DefaultPlayerSpeed.
	MoveSpeed float32
	// Health is the starting health. Zero selects DefaultPlayerHealth.
	Health float32
	// Walls is consulted before every move. Nil disables collision.
	Walls WallCollider
	// Camera supplies the movement directions and is retargeted after moves.
	Camera Camera
}

// Player is the avatar: a composite model of torso, head, shoulders, arms
// and legs that walks relative to the active camera.
type Player struct {
	model         *CompositeNode
	head          *CompositeNode
	rightShoulder *CompositeNode
	leftShoulder  *CompositeNode
	rightLeg      *CompositeNode
	leftLeg       *CompositeNode

	position    mgl32.Vec3
	facing      float32
	standHeight float32
	world       mgl32.Mat4

	animationTime  float32
	animationDelta float32

	moveSpeed float32
	health    float32
	maxHealth float32
	state     PlayerState

	walls  WallCollider
	camera Camera
}

// NewPlayer builds the player skeleton from instances of mesh.
func NewPlayer(mesh *Mesh, cfg PlayerConfig) (*Player, error) {
	if mesh == nil {
		logger.Error("unable to create player composite")
		return nil, fmt.Errorf("player: %w", ErrNilMesh)
	}
	if cfg.MoveSpeed == 0 {
		cfg.MoveSpeed = DefaultPlayerSpeed
	}
	if cfg.Health == 0 {
		cfg.Health = DefaultPlayerHealth
	}

	root, err := NewCompositeNode("torso", mesh, ColorShirt, mgl32.Ident4(), mgl32.Ident4())
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	root.ScaleXYZFromParent(1, 1, 0.5)

	p := &Player{
		model:          root,
		position:       cfg.Position,
		animationDelta: 1,
		moveSpeed:      cfg.MoveSpeed,
		health:         cfg.Health,
		maxHealth:      cfg.Health,
		walls:          cfg.Walls,
		camera:         cfg.Camera,
	}

	p.head = root.AddChild("head", ColorSkin, mgl32.Ident4(), mgl32.Ident4())
	p.head.TranslateFromParent(0, 1.6, 0)
	p.head.ScaleFromParent(0.5)

	p.rightShoulder = root.AddChild("right shoulder", ColorShirt, mgl32.Ident4(), mgl32.Ident4())
	p.rightShoulder.TranslateFromParent(1.6, 0.5, 0)
	p.rightShoulder.ScaleFromParent(0.5)
	rightArm := p.rightShoulder.AddChild("right arm", ColorSkin, mgl32.Ident4(), mgl32.Ident4())
	rightArm.TranslateFromParent(0, -1.1, 0)

	p.rightLeg = root.AddChild("right leg", ColorTrousers, mgl32.Ident4(), mgl32.Ident4())
	p.rightLeg.ScaleXYZFromParent(0.4, 1, 0.75)
	p.rightLeg.TranslateFromParent(0.3, -1.1, 0)

	p.leftShoulder = root.AddChild("left shoulder", ColorShirt, mgl32.Ident4(), mgl32.Ident4())
	p.leftShoulder.TranslateFromParent(-1.6, 0.5, 0)
	p.leftShoulder.ScaleFromParent(0.5)
	leftArm := p.leftShoulder.AddChild("left arm", ColorSkin, mgl32.Ident4(), mgl32.Ident4())
	leftArm.TranslateFromParent(0, -1.1, 0)

	p.leftLeg = root.AddChild("left leg", ColorTrousers, mgl32.Ident4(), mgl32.Ident4())
	p.leftLeg.ScaleXYZFromParent(0.4, 1, 0.75)
	p.leftLeg.TranslateFromParent(-0.3, -1.1, 0)

	root.UpdateBoundingBox(mgl32.Ident4())
	// Lift the model so the lowest point of the rest pose touches the floor.
	p.standHeight = -root.BoundingBox().Min[1]
	p.world = p.worldAt(p.position, p.facing)

	logger.WithFields(log.Fields{
		"x":      p.position[0],
		"z":      p.position[2],
		"health": p.health,
		"speed":  p.moveSpeed,
	}).Debug("created player")
	return p, nil
}

func (p *Player) worldAt(position mgl32.Vec3, facing float32) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1]+p.standHeight, position[2]).
		Mul4(mgl32.HomogRotate3DY(facing))
}

// Render poses the skeleton at the current position and marks its instances.
func (p *Player) Render() {
	p.model.Render(p.world)
}

// Walk moves along the camera forward direction. Negative dt walks backward.
// Returns false and leaves the position unchanged when the move would run
// into a wall.
func (p *Player) Walk(dt float32) bool {
	return p.move(dt, p.forward(), PlayerWalking)
}

// Strafe moves along the camera right direction. Negative dt strafes left.
func (p *Player) Strafe(dt float32) bool {
	return p.move(dt, p.right(), PlayerStrafing)
}

// Move walks forward and strafes right in one frame, each scaled by dt and
// tested against the walls separately. The walk cycle advances once however
// many axes move. Either axis may be zero.
func (p *Player) Move(dt, forward, right float32) (walked, strafed bool) {
	if p.state == PlayerDead {
		return false, false
	}
	p.HandleAnimation(absf(dt) * max(absf(forward), absf(right)))
	if forward != 0 {
		walked = p.step(dt*forward, p.forward(), PlayerWalking)
	}
	if right != 0 {
		strafed = p.step(dt*right, p.right(), PlayerStrafing)
	}
	return walked, strafed
}

func (p *Player) forward() mgl32.Vec3 {
	if p.camera == nil {
		return WorldForward
	}
	return groundDirection(p.camera.Direction())
}

func (p *Player) right() mgl32.Vec3 {
	if p.camera == nil {
		return WorldRight
	}
	return groundDirection(p.camera.RightDirection())
}

func (p *Player) move(dt float32, direction mgl32.Vec3, state PlayerState) bool {
	if p.state == PlayerDead {
		return false
	}
	p.HandleAnimation(absf(dt))
	return p.step(dt, direction, state)
}

// step commits one move unless its look-ahead box hits a wall.
func (p *Player) step(dt float32, direction mgl32.Vec3, state PlayerState) bool {
	if direction.Len() == 0 || dt == 0 {
		return false
	}

	step := direction.Mul(dt * p.moveSpeed)
	motion := direction
	if dt < 0 {
		motion = motion.Mul(-1)
	}
	facing := facingFromDirection(motion)

	if p.walls != nil {
		lookAhead := p.position.Add(step).Add(step.Mul(distanceToWallInFrames))
		box := p.model.BoundingBox().Transform(p.worldAt(lookAhead, facing))
		if p.walls.BoundingBoxCollidesWithWalls(box) {
			return false
		}
	}

	p.position = p.position.Add(step)
	p.facing = facing
	p.world = p.worldAt(p.position, p.facing)
	p.state = state
	if p.camera != nil {
		p.camera.SetTarget(p.position, p.facing)
	}
	return true
}

// facingFromDirection returns the signed angle from world forward to dir
// about +Y. Positive angles turn toward world right.
func facingFromDirection(dir mgl32.Vec3) float32 {
	cos := clampf(dir.Dot(WorldForward), -1, 1)
	angle := float32(math.Acos(float64(cos)))
	if dir.Dot(WorldRight) < 0 {
		angle = -angle
	}
	return angle
}

// HandleAnimation advances the walk cycle by dt and poses the limbs. The
// swing phase bounces between -45 and +45 degrees.
func (p *Player) HandleAnimation(dt float32) {
	p.resetTransform()
	p.animationTime += dt * p.animationDelta * playerAnimationSpeed

	if p.animationTime >= playerMaxSwing {
		p.animationDelta = -1
	} else if p.animationTime <= -playerMaxSwing {
		p.animationDelta = 1
	}

	t := p.animationTime
	p.head.RotateY(t * 0.5)

	p.rightShoulder.RotateX(t)
	p.leftShoulder.RotateX(-t)

	p.rightLeg.Translate(0, -1, 0)
	p.rightLeg.RotateX(-t * 0.4)
	p.rightLeg.Translate(0, 1, 0)

	p.leftLeg.Translate(0, -1, 0)
	p.leftLeg.RotateX(t * 0.4)
	p.leftLeg.Translate(0, 1, 0)
}

// ResetAnimation returns every limb to the rest pose.
func (p *Player) ResetAnimation() {
	p.resetTransform()
	p.animationTime = 0
}

// Idle stops the walk cycle.
func (p *Player) Idle() {
	if p.state == PlayerDead {
		return
	}
	p.ResetAnimation()
	p.state = PlayerIdle
}

func (p *Player) resetTransform() {
	p.head.Identity()
	p.rightShoulder.Identity()
	p.leftShoulder.Identity()
	p.rightLeg.Identity()
	p.leftLeg.Identity()
}

// TakeDamage subtracts amount from health. Health never drops below zero.
// Returns true when this call killed the player.
func (p *Player) TakeDamage(amount float32) bool {
	if p.state == PlayerDead || amount <= 0 {
		return false
	}
	p.health -= amount
	if p.health > 0 {
		return false
	}
	p.health = 0
	p.state = PlayerDead
	p.ResetAnimation()
	logger.WithField("x", p.position[0]).WithField("z", p.position[2]).Info("player died")
	return true
}

// Health returns the remaining health.
func (p *Player) Health() float32 { return p.health }

// MaxHealth returns the starting health.
func (p *Player) MaxHealth() float32 { return p.maxHealth }

// IsDead reports whether health has run out.
func (p *Player) IsDead() bool { return p.state == PlayerDead }

// State returns the current coarse state.
func (p *Player) State() PlayerState { return p.state }

// Position returns the floor point the player stands on.
func (p *Player) Position() mgl32.Vec3 { return p.position }

// Facing returns the heading in radians about +Y, zero along world forward.
func (p *Player) Facing() float32 { return p.facing }

// FacingDirection returns the unit ground vector the player faces.
func (p *Player) FacingDirection() mgl32.Vec3 {
	s, c := math.Sincos(float64(p.facing))
	return mgl32.Vec3{float32(s), 0, float32(c)}
}

// BoundingBox returns the rest-pose bounds in world space.
func (p *Player) BoundingBox() BoundingBox {
	return p.model.BoundingBox().Transform(p.world)
}

// Model returns the root of the skeleton.
func (p *Player) Model() *CompositeNode { return p.model }

// Camera returns the camera movement is relative to.
func (p *Player) Camera() Camera { return p.camera }

// SetCamera switches the camera movement is relative to and retargets it.
func (p *Player) SetCamera(c Camera) {
	p.camera = c
	if c != nil {
		c.SetTarget(p.position, p.facing)
	}
}

// MuzzlePosition returns the point projectiles leave from: chest height, in
// front of the torso.
func (p *Player) MuzzlePosition() mgl32.Vec3 {
	return p.position.Add(mgl32.Vec3{0, p.standHeight, 0}).Add(p.FacingDirection().Mul(1.5))
}
