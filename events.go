package survivalmaze

import "github.com/go-gl/mathgl/mgl32"

// EventType identifies a gameplay event.
type EventType uint8

const (
	EventEnemyKilled EventType = iota
	EventProjectileFired
	EventPlayerDamaged
	EventPlayerDied
	EventExitReached
	EventTimeExpired
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventEnemyKilled:
		return "enemy-killed"
	case EventProjectileFired:
		return "projectile-fired"
	case EventPlayerDamaged:
		return "player-damaged"
	case EventPlayerDied:
		return "player-died"
	case EventExitReached:
		return "exit-reached"
	case EventTimeExpired:
		return "time-expired"
	default:
		return "unknown"
	}
}

// GameEvent is emitted by Game.Update when something noteworthy happens.
type GameEvent struct {
	Type EventType
	// Position is where it happened (player position for most events).
	Position mgl32.Vec3
	// Amount carries the damage dealt or the kill count, depending on Type.
	Amount float32
	// TimeLeft is the remaining time limit when the event fired.
	TimeLeft float32
}

// EventSink receives gameplay events. The ecs subpackage provides an
// implementation backed by a donburi event bus.
type EventSink interface {
	EmitEvent(event GameEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(GameEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event GameEvent) { f(event) }
