package survivalmaze

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	log "github.com/sirupsen/logrus"
)

// RunConfig holds optional settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowStatus prints time, health and kills in the top-left corner.
	ShowStatus bool
	// OnFrame is called after every Update, e.g. to flush an event bus.
	OnFrame func()
	// Input overrides the device source. Nil reads from ebiten.
	Input InputSource
	// Script replays recorded frames before the devices take over.
	Script *InputScript
	// ScreenshotDir is where F12 and script screenshots are written.
	// Empty selects "screenshots".
	ScreenshotDir string
}

// Run opens a window and drives game until the window is closed or Escape is
// pressed. It blocks.
func Run(game *Game, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	shell := &gameShell{
		game:     game,
		poller:   NewInputPoller(cfg.Input),
		renderer: NewEbitenRenderer(),
		shots:    screenshotQueue{dir: cfg.ScreenshotDir},
		cfg:      cfg,
	}
	logger.WithFields(log.Fields{"width": cfg.Width, "height": cfg.Height}).Info("starting game loop")
	if err := ebiten.RunGame(shell); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// gameShell adapts Game to ebiten.Game.
type gameShell struct {
	game     *Game
	poller   *InputPoller
	renderer *EbitenRenderer
	shots    screenshotQueue
	cfg      RunConfig

	width, height int
}

func (s *gameShell) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	menu := s.game.MenuActive()
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.game.Update(s.nextInput(), dt)

	if s.game.MenuActive() != menu {
		if s.game.MenuActive() {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
		s.poller.ResetMouse()
	}

	if s.cfg.OnFrame != nil {
		s.cfg.OnFrame()
	}
	return nil
}

// nextInput takes the frame from the script while it runs, then from the
// devices. The devices are polled either way so mouse deltas stay current.
func (s *gameShell) nextInput() FrameInput {
	in := s.poller.Poll()
	if script := s.cfg.Script; script != nil {
		if !script.Done() {
			in = script.Next()
		}
		s.shots.add(script.TakeScreenshots()...)
	}
	if in.Screenshot {
		s.shots.add("manual")
	}
	return in
}

func (s *gameShell) Draw(screen *ebiten.Image) {
	s.renderer.SetTarget(screen)
	s.game.Draw(s.renderer)

	if s.cfg.ShowStatus || s.game.debug {
		ebitenutil.DebugPrint(screen, s.status())
	}
	s.shots.flush(screen)
}

func (s *gameShell) status() string {
	g := s.game
	text := fmt.Sprintf("time %.0f  health %.0f  kills %d  camera %s",
		g.TimeLeft(), g.Player().Health(), g.Maze().Kills(), g.CameraMode())
	switch {
	case g.State() != GamePlaying:
		text += "\n" + g.State().String()
	case g.MenuActive():
		text += "\npaused"
	}
	if g.debug {
		st := g.Stats()
		text += fmt.Sprintf("\nTPS %.0f  FPS %.0f  draws %d  instances %d  faces %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), st.DrawCalls, st.Instances, s.renderer.FaceCount())
	}
	return text
}

func (s *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.width, s.height = outsideWidth, outsideHeight
		if outsideHeight > 0 {
			s.game.SetAspect(float32(outsideWidth) / float32(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}
