// Survivalmaze runs the maze game in a window.
//
// Walk with WASD or the arrow keys, fire with Space or the left mouse button,
// switch between the follow, free and map cameras with C and pause with Tab
// or the right mouse button. Reach the exit on the edge of the maze before
// the time runs out. Escape quits.
//
// Flags override values from the optional TOML config file:
//
//	survivalmaze -config game.toml -seed 42 -rows 21 -cols 21 -debug
//
// A JSON input script given with -script is played before the keyboard and
// mouse take over. F12 saves a screenshot to the -screenshots directory.
package main

import (
	"flag"
	"os"

	"github.com/phanxgames/survivalmaze"
	"github.com/phanxgames/survivalmaze/ecs"
	log "github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	seed := flag.Uint64("seed", 0, "maze seed (0 = random)")
	rows := flag.Int("rows", 0, "maze rows (overrides config)")
	cols := flag.Int("cols", 0, "maze cols (overrides config)")
	layout := flag.String("layout", "", "level layout file (overrides generation)")
	debug := flag.Bool("debug", false, "log frame stats and show the debug overlay")
	scriptPath := flag.String("script", "", "JSON input script to play at startup")
	shotDir := flag.String("screenshots", "screenshots", "directory for screenshots")
	flag.Parse()

	cfg := survivalmaze.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = survivalmaze.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("cannot load config")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *rows != 0 {
		cfg.Rows = *rows
	}
	if *cols != 0 {
		cfg.Cols = *cols
	}
	if *layout != "" {
		cfg.LayoutFile = *layout
	}
	if *debug {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	if err := cfg.Log.Apply(logger); err != nil {
		log.WithError(err).Fatal("invalid log config")
	}
	survivalmaze.SetLogger(logger)

	game, err := survivalmaze.NewGame(cfg, survivalmaze.DefaultMeshes())
	if err != nil {
		logger.WithError(err).Fatal("cannot create game")
	}

	var script *survivalmaze.InputScript
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.WithError(err).Fatal("cannot read input script")
		}
		script, err = survivalmaze.LoadInputScript(data)
		if err != nil {
			logger.WithError(err).Fatal("invalid input script")
		}
	}

	world := donburi.NewWorld()
	game.SetEventSink(ecs.NewDonburiSink(world))
	board := ecs.NewScoreboard(world)
	ecs.GameEventType.Subscribe(world, func(w donburi.World, e survivalmaze.GameEvent) {
		switch e.Type {
		case survivalmaze.EventEnemyKilled, survivalmaze.EventExitReached,
			survivalmaze.EventPlayerDied, survivalmaze.EventTimeExpired:
			logger.WithFields(log.Fields{
				"event":    e.Type,
				"timeLeft": e.TimeLeft,
			}).Info("game event")
		}
	})

	err = survivalmaze.Run(game, survivalmaze.RunConfig{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		ShowStatus:    true,
		OnFrame:       func() { events.ProcessAllEvents(world) },
		Script:        script,
		ScreenshotDir: *shotDir,
	})
	if err != nil {
		logger.WithError(err).Fatal("game loop failed")
	}

	score := board.Data()
	logger.WithFields(log.Fields{
		"state":  game.State(),
		"kills":  score.Kills,
		"shots":  score.Shots,
		"damage": score.DamageTaken,
	}).Info("final score")
}
