// Package replay drives camera controllers from recorded input traces.
// Traces are JSON lines, one sample per frame:
//
//	{"t":1.0,"x":0,"y":0,"keys":["forward"],"mode":"first_person","anchor":[0,0,0],"radius":2}
//
// Only "t" is required. "mode" switches the view mode before the sample is applied and
// "anchor" enables the gated-mode proximity test for that sample.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
)

// ErrEmptyTrace is returned when a trace holds no samples.
var ErrEmptyTrace = errors.New("replay: empty trace")

// Sample is one recorded frame of input.
type Sample struct {
	Time    float64
	CursorX float64
	CursorY float64
	Actions input.ActionSet
	// Mode is applied with SetViewMode before the update when HasMode is set.
	Mode    camera.ViewMode
	HasMode bool
	// Anchor is passed to the controller's gate when non-nil.
	Anchor *mgl32.Vec3
	Radius float32
}

// Trace is an ordered list of samples.
type Trace []Sample

// sampleJSON is the wire form of a Sample.
type sampleJSON struct {
	T      *float64    `json:"t"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Keys   []string    `json:"keys,omitempty"`
	Mode   string      `json:"mode,omitempty"`
	Anchor *[3]float32 `json:"anchor,omitempty"`
	Radius float32     `json:"radius,omitempty"`
}

// Decode reads a JSON-lines trace. Blank lines and lines starting with '#' are skipped.
//
// Parameters:
//   - r: the trace source
//
// Returns:
//   - Trace: the decoded samples
//   - error: the first malformed line, wrapped with its line number, or ErrEmptyTrace
func Decode(r io.Reader) (Trace, error) {
	var trace Trace
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s, err := decodeSample([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", line, err)
		}
		trace = append(trace, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: failed to read trace: %w", err)
	}
	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}
	return trace, nil
}

func decodeSample(data []byte) (Sample, error) {
	var raw sampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Sample{}, err
	}
	if raw.T == nil {
		return Sample{}, fmt.Errorf("missing \"t\"")
	}
	s := Sample{
		Time:    *raw.T,
		CursorX: raw.X,
		CursorY: raw.Y,
		Radius:  raw.Radius,
	}
	for _, k := range raw.Keys {
		a, err := input.ParseAction(k)
		if err != nil {
			return Sample{}, err
		}
		s.Actions = s.Actions.With(a)
	}
	if raw.Mode != "" {
		m, err := camera.ParseViewMode(raw.Mode)
		if err != nil {
			return Sample{}, err
		}
		s.Mode, s.HasMode = m, true
	}
	if raw.Anchor != nil {
		a := mgl32.Vec3(*raw.Anchor)
		s.Anchor = &a
	}
	return s, nil
}

// Encode writes a trace in the format Decode reads.
//
// Parameters:
//   - w: the destination
//   - trace: the samples to write
//
// Returns:
//   - error: the first write error
func Encode(w io.Writer, trace Trace) error {
	enc := json.NewEncoder(w)
	for i, s := range trace {
		t := s.Time
		raw := sampleJSON{T: &t, X: s.CursorX, Y: s.CursorY, Radius: s.Radius}
		for _, a := range s.Actions.Actions() {
			raw.Keys = append(raw.Keys, a.String())
		}
		if s.HasMode {
			raw.Mode = s.Mode.String()
		}
		if s.Anchor != nil {
			a := [3]float32(*s.Anchor)
			raw.Anchor = &a
		}
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("replay: failed to encode sample %d: %w", i, err)
		}
	}
	return nil
}

// Options configures the controller each replay builds.
type Options struct {
	Position   mgl32.Vec3
	LookAt     mgl32.Vec3
	Controller []camera.CameraControllerOption
}

// Result is the controller state after a trace has been replayed.
type Result struct {
	Position   mgl32.Vec3
	Look       mgl32.Vec3
	Horizontal float32
	Vertical   float32
	Mode       camera.ViewMode
	View       mgl32.Mat4
	Eye        mgl32.Vec3
	Frames     int
	Err        error
}

// Run replays a trace on a fresh controller. The controller is initialized from opts and the
// first sample's cursor and time, then updated once per sample.
//
// Parameters:
//   - trace: the samples to apply
//   - opts: initial pose and controller options
//
// Returns:
//   - Result: the final controller state, with Err set to ErrEmptyTrace for an empty trace
func Run(trace Trace, opts Options) Result {
	if len(trace) == 0 {
		return Result{Err: ErrEmptyTrace}
	}
	cc := camera.NewCameraController(opts.Controller...)
	first := trace[0]
	cc.Initialize(opts.Position, opts.LookAt, first.CursorX, first.CursorY, first.Time)

	var out camera.FrameOutput
	for _, s := range trace {
		if s.HasMode {
			cc.SetViewMode(s.Mode)
		}
		out = cc.Update(camera.FrameInput{
			CursorX:      s.CursorX,
			CursorY:      s.CursorY,
			Actions:      s.Actions,
			Time:         s.Time,
			Anchor:       s.Anchor,
			AnchorRadius: s.Radius,
		})
	}

	return Result{
		Position:   cc.Position(),
		Look:       cc.LookDirection(),
		Horizontal: cc.HorizontalAngle(),
		Vertical:   cc.VerticalAngle(),
		Mode:       cc.ViewMode(),
		View:       out.View,
		Eye:        out.Eye,
		Frames:     len(trace),
	}
}

// RunAll replays every trace concurrently, each on its own controller.
//
// Parameters:
//   - traces: traces keyed by name
//   - opts: options shared by every replay
//   - workers: number of concurrent replays; values <= 0 use one per trace
//
// Returns:
//   - map[string]Result: results keyed by trace name
func RunAll(traces map[string]Trace, opts Options, workers int) map[string]Result {
	results := make(map[string]Result, len(traces))
	if len(traces) == 0 {
		return results
	}
	if workers <= 0 || workers > len(traces) {
		workers = len(traces)
	}

	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	sort.Strings(names)

	// Every pool shares one stop channel across its workers and a worker discards ids that are
	// not its own, so Stop is only guaranteed to reach a pool's worker when it has exactly one.
	queueSize := (len(names) + workers - 1) / workers
	pools := make([]worker.DynamicWorkerPool, workers)
	for i := range pools {
		pools[i] = worker.NewDynamicWorkerPool(1, queueSize, 1*time.Second)
	}
	defer func() {
		for _, p := range pools {
			p.Stop()
		}
	}()

	var mu sync.Mutex
	var wg sync.WaitGroup
	start := time.Now()
	for id, name := range names {
		trace := traces[name]
		wg.Add(1)
		pools[id%workers].SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				r := Run(trace, opts)
				mu.Lock()
				results[name] = r
				mu.Unlock()
				return nil, r.Err
			},
		})
	}
	wg.Wait()

	log.Printf("[Replay] %d traces on %d workers in %v", len(names), workers, time.Since(start))
	return results
}
