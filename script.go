package bridges

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a stroke script. Coordinates are screen
// positions.
type scriptStep struct {
	Action string       `json:"action"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	FromX  float64      `json:"fromX,omitempty"`
	FromY  float64      `json:"fromY,omitempty"`
	ToX    float64      `json:"toX,omitempty"`
	ToY    float64      `json:"toY,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
	Frames int          `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a stroke script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ErrScriptTimeout is returned by RunScript when the script does not finish
// within the frame limit.
var ErrScriptTimeout = errors.New("bridges: script did not finish")

// ScriptRunner sequences injected pointer input across frames so recorded
// strokes can be replayed headlessly.
//
// Supported actions: press, move, release (x, y), drag (fromX, fromY, toX,
// toY, frames), stroke (points), wait (frames) and reset.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON stroke script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse stroke script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse stroke script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "press", "move", "release", "drag", "stroke", "wait", "reset":
		default:
			return nil, fmt.Errorf("parse stroke script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before Input.Update.
func (r *ScriptRunner) Step(in *Input, g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.InjectPress(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "stroke":
		pts := make([]Vec2, len(st.Points))
		for i, p := range st.Points {
			pts[i] = Vec2{p[0], p[1]}
		}
		in.InjectStroke(pts)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		g.Reset()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

// RunScript drives r, in and g frame by frame with a fixed dt until the
// script is done and its input has drained, or maxFrames have passed.
func RunScript(r *ScriptRunner, in *Input, g *Game, dt float32, maxFrames int) (frames int, err error) {
	for frames < maxFrames {
		if r.Done() && in.Pending() == 0 {
			return frames, nil
		}
		r.Step(in, g)
		in.Update()
		g.Update(dt)
		frames++
	}
	if r.Done() && in.Pending() == 0 {
		return frames, nil
	}
	return frames, fmt.Errorf("after %d frames: %w", frames, ErrScriptTimeout)
}
