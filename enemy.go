package survivalmaze

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// enemyDirections is the set of wandering axes an enemy picks from.
var enemyDirections = [...]mgl32.Vec3{
	{1, 0, 0},
	{0, 0, 1},
	{1, 0, 1},
}

const (
	// enemyDeathRate scales dt while the death animation plays.
	enemyDeathRate = 2
	// enemyMinSpeed and enemyMaxSpeed bound the oscillation speed of one cycle.
	enemyMinSpeed = 0.0001
	enemyMaxSpeed = 1.0 / 3.0
)

// Enemy is a wandering obstacle that oscillates around its spawn point until a
// projectile hits it, then shrinks away.
type Enemy struct {
	mesh       *Mesh
	instanceID uint32
	rng        *rand.Rand

	initial   mgl32.Vec3
	position  mgl32.Vec3
	direction mgl32.Vec3

	animationTime float32
	speed         float32
	dying         bool
	scale         float32
	death         *FieldTween
}

// NewEnemy spawns an enemy standing on the floor at position. The mesh bounds
// lift it by their half height.
func NewEnemy(mesh *Mesh, position mgl32.Vec3, rng *rand.Rand) (*Enemy, error) {
	if mesh == nil {
		return nil, fmt.Errorf("enemy: %w", ErrNilMesh)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	position[1] += mesh.BoundingBox().Extents()[1]

	e := &Enemy{
		mesh:      mesh,
		rng:       rng,
		initial:   position,
		position:  position,
		direction: enemyDirections[0],
		scale:     1,
		// Starting at a full cycle makes the first Update pick a direction.
		animationTime: 1,
	}
	e.instanceID = mesh.AddInstance(InstanceInfo{
		World: mgl32.Translate3D(position[0], position[1], position[2]),
		Color: ColorEnemy,
	})
	return e, nil
}

// Update advances the wandering oscillation, or the death animation once Die
// has been called.
func (e *Enemy) Update(dt float32) {
	info := e.mesh.InstanceInfo(e.instanceID)

	if e.dying {
		e.animationTime += dt * enemyDeathRate
		info.AnimationTime = e.animationTime
		e.death.Update(dt)
		info.World = e.worldMatrix()
		return
	}

	// Direction and speed are picked once per cycle.
	if e.animationTime >= 1 {
		e.direction = enemyDirections[e.rng.IntN(len(enemyDirections))]
		e.speed = enemyMinSpeed + e.rng.Float32()*(enemyMaxSpeed-enemyMinSpeed)
		e.animationTime = 0
	}
	e.animationTime += dt * e.speed

	offset := float32(math.Sin(float64(e.animationTime) * 2 * math.Pi))
	e.position = e.initial.Add(e.direction.Mul(offset))
	info.World = e.worldMatrix()
}

func (e *Enemy) worldMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(e.position[0], e.position[1], e.position[2]).
		Mul4(mgl32.Scale3D(e.scale, e.scale, e.scale))
}

// Render marks the enemy instance for drawing this frame.
func (e *Enemy) Render() {
	e.mesh.AddCurrentInstance(e.instanceID)
}

// Die starts the death animation. Repeated calls have no effect.
func (e *Enemy) Die() {
	if e.dying {
		return
	}
	e.dying = true
	e.animationTime = 0
	e.death = TweenValue(&e.scale, 0, 1.0/enemyDeathRate, ease.InBack)
}

// IsDying reports whether the death animation is playing.
func (e *Enemy) IsDying() bool {
	return e.dying
}

// ShouldDie reports whether the death animation has finished and the owner
// should drop the enemy.
func (e *Enemy) ShouldDie() bool {
	return e.dying && e.animationTime >= 1
}

// CollisionWithBoundingBox reports whether box touches the enemy at its current
// position. Dying enemies never collide.
func (e *Enemy) CollisionWithBoundingBox(box BoundingBox) bool {
	if e.dying {
		return false
	}
	return e.BoundingBox().Intersects(box)
}

// BoundingBox returns the enemy bounds in world space.
func (e *Enemy) BoundingBox() BoundingBox {
	return e.mesh.TransformedBoundingBox(e.instanceID)
}

// Position returns the current world position of the enemy center.
func (e *Enemy) Position() mgl32.Vec3 {
	return e.position
}

// InstanceID returns the handle of the enemy instance in its mesh.
func (e *Enemy) InstanceID() uint32 {
	return e.instanceID
}
