package ecs

import (
	"github.com/phanxgames/survivalmaze"

	"github.com/yohamta/donburi"
)

// ScoreData is the running tally of one round.
type ScoreData struct {
	Kills       int
	Shots       int
	DamageTaken float32
	Finished    bool
	Won         bool
	TimeLeft    float32
}

// Score is the component holding a round's ScoreData.
var Score = donburi.NewComponentType[ScoreData]()

// Scoreboard is an entity carrying a Score component that is kept up to date
// from GameEventType.
type Scoreboard struct {
	world  donburi.World
	entity donburi.Entity
}

// NewScoreboard creates the score entity and subscribes it to game events.
// Totals change when the world's events are processed.
func NewScoreboard(world donburi.World) *Scoreboard {
	b := &Scoreboard{world: world, entity: world.Create(Score)}
	GameEventType.Subscribe(world, b.onEvent)
	return b
}

func (b *Scoreboard) onEvent(w donburi.World, e survivalmaze.GameEvent) {
	s := Score.Get(w.Entry(b.entity))
	switch e.Type {
	case survivalmaze.EventEnemyKilled:
		s.Kills++
	case survivalmaze.EventProjectileFired:
		s.Shots++
	case survivalmaze.EventPlayerDamaged:
		s.DamageTaken += e.Amount
	case survivalmaze.EventExitReached:
		s.Finished, s.Won = true, true
		s.TimeLeft = e.TimeLeft
	case survivalmaze.EventPlayerDied, survivalmaze.EventTimeExpired:
		s.Finished = true
		s.TimeLeft = e.TimeLeft
	}
}

// Data returns a copy of the current totals.
func (b *Scoreboard) Data() ScoreData {
	return *Score.Get(b.world.Entry(b.entity))
}

// Entity returns the score entity.
func (b *Scoreboard) Entity() donburi.Entity {
	return b.entity
}
