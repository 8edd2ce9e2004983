package survivalmaze

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultProjectileLifetime is how long a spawned projectile flies, in seconds.
	DefaultProjectileLifetime = 5
	// DefaultMaxProjectiles is the pool size used when none is configured.
	DefaultMaxProjectiles = 32

	projectileSpeed = 5
	projectileScale = 0.5

	// projectileExpiry absorbs float32 drift from summing frame steps, so a
	// lifetime of n steps of dt ends on the n-th step.
	projectileExpiry = 1e-4
)

// EnemyCollider resolves a projectile hit. Implementations kill every enemy
// box touches and report whether any was hit. *Maze implements it.
type EnemyCollider interface {
	HandleEnemyCollision(box BoundingBox) bool
}

// Projectile is one pooled shot. Inactive projectiles are neither updated nor
// drawn.
type Projectile struct {
	mesh       *Mesh
	instanceID uint32
	collider   EnemyCollider

	active    bool
	lifetime  float32
	position  mgl32.Vec3
	direction mgl32.Vec3
}

// NewProjectile allocates the projectile's instance in mesh. collider may be
// nil, in which case the projectile never hits anything.
func NewProjectile(mesh *Mesh, collider EnemyCollider) (*Projectile, error) {
	if mesh == nil {
		return nil, fmt.Errorf("projectile: %w", ErrNilMesh)
	}
	if collider == nil {
		logger.Warn("creating a projectile without an enemy collider")
	}
	p := &Projectile{mesh: mesh, collider: collider}
	p.instanceID = mesh.AddInstance(InstanceInfo{World: mgl32.Ident4(), Color: ColorProjectile})
	return p, nil
}

// Update moves an active projectile, counts down its lifetime and resolves
// enemy hits. Returns true when the projectile hit an enemy this step.
func (p *Projectile) Update(dt float32) bool {
	if !p.active {
		return false
	}

	p.position = p.position.Add(p.direction.Mul(dt * projectileSpeed))
	world := mgl32.Translate3D(p.position[0], p.position[1], p.position[2]).
		Mul4(mgl32.Scale3D(projectileScale, projectileScale, projectileScale))
	p.mesh.InstanceInfo(p.instanceID).World = world

	p.lifetime -= dt
	if p.lifetime <= projectileExpiry {
		p.active = false
		return false
	}

	if p.collider != nil && p.collider.HandleEnemyCollision(p.mesh.BoundingBox().Transform(world)) {
		p.active = false
		return true
	}
	return false
}

// Render marks the projectile for drawing if it is active.
func (p *Projectile) Render() {
	if p.active {
		p.mesh.AddCurrentInstance(p.instanceID)
	}
}

// SetActive switches the projectile on or off and sets its remaining lifetime.
func (p *Projectile) SetActive(active bool, lifetime float32) {
	p.active = active
	p.lifetime = lifetime
}

// SetPosition places the projectile.
func (p *Projectile) SetPosition(position mgl32.Vec3) {
	p.position = position
}

// SetDirection sets the flight direction. Its length scales the speed.
func (p *Projectile) SetDirection(direction mgl32.Vec3) {
	p.direction = direction
}

// IsActive reports whether the projectile is in flight.
func (p *Projectile) IsActive() bool {
	return p.active
}

// Position returns the current position.
func (p *Projectile) Position() mgl32.Vec3 {
	return p.position
}

// Lifetime returns the remaining flight time in seconds.
func (p *Projectile) Lifetime() float32 {
	return p.lifetime
}

// --- ProjectileManager ---

// ProjectileManager owns a fixed pool of projectiles.
type ProjectileManager struct {
	projectiles []*Projectile
	lifetime    float32
}

// NewProjectileManager allocates a pool of size projectiles drawn with mesh.
func NewProjectileManager(mesh *Mesh, collider EnemyCollider, size int) (*ProjectileManager, error) {
	if size <= 0 {
		logger.WithField("size", size).Error("cannot create projectile pool")
		return nil, fmt.Errorf("projectile pool of %d: %w", size, ErrPoolSize)
	}
	if mesh == nil {
		logger.WithField("size", size).Error("cannot create projectile pool without a mesh")
		return nil, fmt.Errorf("projectile pool: %w", ErrNilMesh)
	}
	pm := &ProjectileManager{
		projectiles: make([]*Projectile, size),
		lifetime:    DefaultProjectileLifetime,
	}
	for i := range pm.projectiles {
		p, err := NewProjectile(mesh, collider)
		if err != nil {
			return nil, err
		}
		pm.projectiles[i] = p
	}
	logger.WithFields(log.Fields{"size": size, "lifetime": pm.lifetime}).Debug("created projectile pool")
	return pm, nil
}

// SetLifetime changes the lifetime given to projectiles spawned from now on.
func (pm *ProjectileManager) SetLifetime(seconds float32) {
	pm.lifetime = seconds
}

// Update advances every projectile. Returns the number of enemy hits.
func (pm *ProjectileManager) Update(dt float32) int {
	hits := 0
	for _, p := range pm.projectiles {
		if p.Update(dt) {
			hits++
		}
	}
	return hits
}

// Render marks every active projectile for drawing.
func (pm *ProjectileManager) Render() {
	for _, p := range pm.projectiles {
		p.Render()
	}
}

// SpawnProjectile activates the first free projectile at position flying along
// direction. Returns false when the whole pool is in flight.
func (pm *ProjectileManager) SpawnProjectile(position, direction mgl32.Vec3) bool {
	for _, p := range pm.projectiles {
		if p.IsActive() {
			continue
		}
		p.SetPosition(position)
		p.SetDirection(direction)
		p.SetActive(true, pm.lifetime)
		return true
	}
	return false
}

// ActiveCount returns the number of projectiles in flight.
func (pm *ProjectileManager) ActiveCount() int {
	n := 0
	for _, p := range pm.projectiles {
		if p.IsActive() {
			n++
		}
	}
	return n
}

// Size returns the pool size.
func (pm *ProjectileManager) Size() int {
	return len(pm.projectiles)
}

// Projectile returns the pooled projectile at index i.
func (pm *ProjectileManager) Projectile(i int) *Projectile {
	return pm.projectiles[i]
}
