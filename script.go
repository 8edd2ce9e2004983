package survivalmaze

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
//
//	hold        hold movement keys for Frames frames
//	press       press fire, camera or menu for one frame
//	mouse       move the mouse by DX, DY on each of Frames frames
//	wait        idle for Frames frames
//	screenshot  queue a screenshot labelled Label; takes no frame
type scriptStep struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys,omitempty"`
	DX     float32  `json:"dx,omitempty"`
	DY     float32  `json:"dy,omitempty"`
	Label  string   `json:"label,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// InputScript replays a fixed sequence of frames in place of the input
// devices, for demos and automated runs. Each call to Next yields one frame.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	current   FrameInput
	remaining int
	shots     []string
}

// LoadInputScript parses a JSON input script:
//
//	{"steps": [
//	  {"action": "hold", "keys": ["forward"], "frames": 30},
//	  {"action": "press", "keys": ["fire"]},
//	  {"action": "screenshot", "label": "after-shot"}
//	]}
func LoadInputScript(jsonData []byte) (*InputScript, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range file.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return &InputScript{steps: file.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "hold":
		for _, k := range st.Keys {
			if !isMovementKey(k) {
				return fmt.Errorf("hold: unknown key %q", k)
			}
		}
	case "press":
		for _, k := range st.Keys {
			if k != "fire" && k != "camera" && k != "menu" {
				return fmt.Errorf("press: unknown key %q", k)
			}
		}
	case "mouse", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func isMovementKey(k string) bool {
	switch k {
	case "forward", "backward", "left", "right":
		return true
	}
	return false
}

// Next returns the input for the next frame. Once the script is exhausted it
// returns an empty frame.
func (s *InputScript) Next() FrameInput {
	for s.remaining == 0 {
		if s.cursor >= len(s.steps) {
			return FrameInput{}
		}
		st := s.steps[s.cursor]
		s.cursor++
		s.begin(st)
	}
	s.remaining--
	if s.remaining == 0 {
		s.drainScreenshots()
	}
	return s.current
}

// drainScreenshots queues the screenshot steps that directly follow the
// current position, so they belong to the frame just returned.
func (s *InputScript) drainScreenshots() {
	for s.cursor < len(s.steps) && s.steps[s.cursor].Action == "screenshot" {
		s.shots = append(s.shots, s.steps[s.cursor].Label)
		s.cursor++
	}
}

func (s *InputScript) begin(st scriptStep) {
	frames := max(st.Frames, 1)
	s.current = FrameInput{}
	switch st.Action {
	case "screenshot":
		s.shots = append(s.shots, st.Label)
		return
	case "hold":
		for _, k := range st.Keys {
			switch k {
			case "forward":
				s.current.Forward = true
			case "backward":
				s.current.Backward = true
			case "left":
				s.current.Left = true
			case "right":
				s.current.Right = true
			}
		}
	case "press":
		frames = 1
		for _, k := range st.Keys {
			switch k {
			case "fire":
				s.current.Fire = true
			case "camera":
				s.current.ToggleCamera = true
			case "menu":
				s.current.ToggleMenu = true
			}
		}
	case "mouse":
		s.current.MouseDX = st.DX
		s.current.MouseDY = st.DY
	}
	s.remaining = frames
}

// Done reports whether every frame has been played. Screenshot steps that
// are still pending do not count as frames.
func (s *InputScript) Done() bool {
	if s.remaining > 0 {
		return false
	}
	for _, st := range s.steps[s.cursor:] {
		if st.Action != "screenshot" {
			return false
		}
	}
	return true
}

// TakeScreenshots returns the screenshot labels queued since the last call,
// including screenshot steps waiting at the current position.
func (s *InputScript) TakeScreenshots() []string {
	if s.remaining == 0 {
		s.drainScreenshots()
	}
	shots := s.shots
	s.shots = nil
	return shots
}

// Play feeds the script into g one frame at a time until the script or the
// round ends. It returns the number of frames played.
func (s *InputScript) Play(g *Game, dt float32) int {
	frames := 0
	for !s.Done() && g.State() == GamePlaying {
		g.Update(s.Next(), dt)
		frames++
	}
	return frames
}
