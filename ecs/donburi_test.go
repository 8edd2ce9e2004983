package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/survivalmaze"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []survivalmaze.GameEvent
	GameEventType.Subscribe(world, func(w donburi.World, e survivalmaze.GameEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(survivalmaze.GameEvent{
		Type:     survivalmaze.EventEnemyKilled,
		Position: mgl32.Vec3{1, 0, 2},
		Amount:   3,
	})
	sink.EmitEvent(survivalmaze.GameEvent{
		Type:     survivalmaze.EventTimeExpired,
		TimeLeft: 0,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	GameEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != survivalmaze.EventEnemyKilled || e0.Amount != 3 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Position != (mgl32.Vec3{1, 0, 2}) {
		t.Errorf("event 0 position: %v", e0.Position)
	}
	if received[1].Type != survivalmaze.EventTimeExpired {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink survivalmaze.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GameEventType.Subscribe(world, func(w donburi.World, e survivalmaze.GameEvent) {
		count1++
	})
	GameEventType.Subscribe(world, func(w donburi.World, e survivalmaze.GameEvent) {
		count2++
	})

	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventProjectileFired})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

// --- Scoreboard ---

func TestScoreboardTallies(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventProjectileFired})
	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventProjectileFired})
	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventEnemyKilled})
	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventPlayerDamaged, Amount: 2.5})
	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventPlayerDamaged, Amount: 1.5})
	events.ProcessAllEvents(world)

	got := board.Data()
	if got.Shots != 2 {
		t.Errorf("Shots = %d, want 2", got.Shots)
	}
	if got.Kills != 1 {
		t.Errorf("Kills = %d, want 1", got.Kills)
	}
	if got.DamageTaken != 4 {
		t.Errorf("DamageTaken = %v, want 4", got.DamageTaken)
	}
	if got.Finished {
		t.Error("Finished = true before any outcome event")
	}
}

func TestScoreboardOutcome(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventExitReached, TimeLeft: 42})
	events.ProcessAllEvents(world)

	got := board.Data()
	if !got.Finished || !got.Won {
		t.Errorf("outcome = %+v, want finished and won", got)
	}
	if got.TimeLeft != 42 {
		t.Errorf("TimeLeft = %v, want 42", got.TimeLeft)
	}
}

func TestScoreboardLoss(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	board := NewScoreboard(world)

	sink.EmitEvent(survivalmaze.GameEvent{Type: survivalmaze.EventPlayerDied})
	events.ProcessAllEvents(world)

	got := board.Data()
	if !got.Finished || got.Won {
		t.Errorf("outcome = %+v, want finished and lost", got)
	}
	if !world.Valid(board.Entity()) {
		t.Error("score entity is not valid")
	}
}
