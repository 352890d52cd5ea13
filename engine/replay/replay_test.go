package replay

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
)

var startOpts = Options{
	Position: mgl32.Vec3{0, 1, 20},
	LookAt:   mgl32.Vec3{0, 0, -1},
}

const forwardTrace = `
# one second of forward movement
{"t":0,"x":0,"y":0}
{"t":1,"x":0,"y":0,"keys":["forward"]}
`

func TestDecode(t *testing.T) {
	tr, err := Decode(strings.NewReader(forwardTrace))
	if err != nil {
		t.Fatalf("Decode\nhave %v\nwant nil", err)
	}
	if len(tr) != 2 {
		t.Fatalf("len(Trace)\nhave %d\nwant 2", len(tr))
	}
	if tr[1].Time != 1 || !tr[1].Actions.Has(input.ActionForward) {
		t.Fatalf("Trace[1]\nhave %+v\nwant t=1 forward", tr[1])
	}
	if tr[0].HasMode || tr[0].Anchor != nil {
		t.Fatalf("Trace[0]\nhave %+v\nwant no mode or anchor", tr[0])
	}

	tr, err = Decode(strings.NewReader(`{"t":2,"mode":"third_person_gated","anchor":[1,2,3],"radius":4}`))
	if err != nil {
		t.Fatalf("Decode\nhave %v\nwant nil", err)
	}
	s := tr[0]
	if !s.HasMode || s.Mode != camera.ViewModeThirdPersonGated {
		t.Fatalf("Sample.Mode\nhave %v (%v)\nwant third_person_gated", s.Mode, s.HasMode)
	}
	if s.Anchor == nil || *s.Anchor != (mgl32.Vec3{1, 2, 3}) || s.Radius != 4 {
		t.Fatalf("Sample anchor\nhave %v r=%v\nwant [1 2 3] r=4", s.Anchor, s.Radius)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, x := range [...]struct {
		src  string
		want error
		line string
	}{
		{"", ErrEmptyTrace, ""},
		{"\n# nothing\n\n", ErrEmptyTrace, ""},
		{"{\"t\":0}\n{\"t\":1,\"keys\":[\"jump\"]}", input.ErrUnknownAction, "line 2"},
		{"\n\n{\"t\":0,\"mode\":\"orbit\"}", camera.ErrUnknownViewMode, "line 3"},
		{"{\"x\":1}", nil, "line 1"},
		{"{\"t\":0}\nnot json", nil, "line 2"},
	} {
		_, err := Decode(strings.NewReader(x.src))
		if err == nil {
			t.Fatalf("Decode(%q)\nhave nil\nwant error", x.src)
		}
		if x.want != nil && !errors.Is(err, x.want) {
			t.Fatalf("Decode(%q)\nhave %v\nwant %v", x.src, err, x.want)
		}
		if x.line != "" && !strings.Contains(err.Error(), x.line) {
			t.Fatalf("Decode(%q)\nhave %v\nwant mention of %s", x.src, err, x.line)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	anchor := mgl32.Vec3{0, -3, 4}
	in := Trace{
		{Time: 0},
		{Time: 0.5, CursorX: 3, CursorY: -2, Actions: input.NewActionSet(input.ActionLeft, input.ActionFast)},
		{Time: 1, Mode: camera.ViewModeThirdPersonGated, HasMode: true, Anchor: &anchor, Radius: 2},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode\nhave %v\nwant nil", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode\nhave %v\nwant nil", err)
	}
	if fmt.Sprint(Run(in, startOpts)) != fmt.Sprint(Run(out, startOpts)) {
		t.Fatalf("replay of decoded trace differs\nhave %+v\nwant %+v", Run(out, startOpts), Run(in, startOpts))
	}
}

func TestRunForwardScenario(t *testing.T) {
	tr, err := Decode(strings.NewReader(forwardTrace))
	if err != nil {
		t.Fatal(err)
	}
	r := Run(tr, startOpts)
	if r.Err != nil {
		t.Fatalf("Result.Err\nhave %v\nwant nil", r.Err)
	}
	if !r.Position.ApproxFuncEqual(mgl32.Vec3{0, 1, 12}, within(1e-4)) {
		t.Fatalf("Result.Position\nhave %v\nwant [0 1 12]", r.Position)
	}
	if r.Frames != 2 || r.Mode != camera.ViewModeFirstPerson {
		t.Fatalf("Result\nhave frames=%d mode=%v\nwant frames=2 mode=first_person", r.Frames, r.Mode)
	}
	if r.Horizontal != 90 || r.Vertical != 0 {
		t.Fatalf("Result angles\nhave %v/%v\nwant 90/0", r.Horizontal, r.Vertical)
	}
}

func TestRunEmpty(t *testing.T) {
	if r := Run(nil, startOpts); !errors.Is(r.Err, ErrEmptyTrace) {
		t.Fatalf("Run(nil).Err\nhave %v\nwant %v", r.Err, ErrEmptyTrace)
	}
}

func TestRunAppliesMode(t *testing.T) {
	tr := Trace{
		{Time: 0},
		{Time: 1, Mode: camera.ViewModeThirdPersonFree, HasMode: true},
	}
	r := Run(tr, startOpts)
	if r.Mode != camera.ViewModeThirdPersonFree {
		t.Fatalf("Result.Mode\nhave %v\nwant third_person_free", r.Mode)
	}
	// Eye trails the body by the follow distance.
	want := mgl32.Vec3{0, -3, 30}
	if !r.Eye.ApproxFuncEqual(want, within(1e-4)) {
		t.Fatalf("Result.Eye\nhave %v\nwant %v", r.Eye, want)
	}
}

func TestRunAll(t *testing.T) {
	forward, err := Decode(strings.NewReader(forwardTrace))
	if err != nil {
		t.Fatal(err)
	}
	traces := map[string]Trace{
		"forward": forward,
		"idle":    {{Time: 0}, {Time: 1}, {Time: 2}},
		"strafe":  {{Time: 0}, {Time: 1, Actions: input.NewActionSet(input.ActionRight)}},
		"empty":   {},
	}
	want := map[string]mgl32.Vec3{
		"forward": {0, 1, 12},
		"idle":    {0, 1, 20},
		"strafe":  {8, 1, 20},
	}

	for _, workers := range []int{0, 1, 3} {
		results := RunAll(traces, startOpts, workers)
		if len(results) != len(traces) {
			t.Fatalf("RunAll(workers=%d): results\nhave %d\nwant %d", workers, len(results), len(traces))
		}
		for name, pos := range want {
			r := results[name]
			if r.Err != nil || !r.Position.ApproxFuncEqual(pos, within(1e-4)) {
				t.Fatalf("RunAll(workers=%d)[%s]\nhave %v (%v)\nwant %v", workers, name, r.Position, r.Err, pos)
			}
		}
		if !errors.Is(results["empty"].Err, ErrEmptyTrace) {
			t.Fatalf("RunAll(workers=%d)[empty].Err\nhave %v\nwant %v", workers, results["empty"].Err, ErrEmptyTrace)
		}
	}

	if r := RunAll(nil, startOpts, 2); len(r) != 0 {
		t.Fatalf("RunAll(nil)\nhave %v\nwant empty", r)
	}
}

func TestRunAllReleasesWorkers(t *testing.T) {
	traces := map[string]Trace{
		"a": {{Time: 0}, {Time: 1, Actions: input.NewActionSet(input.ActionForward)}},
		"b": {{Time: 0}, {Time: 1, Actions: input.NewActionSet(input.ActionBack)}},
	}
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		RunAll(traces, startOpts, 2)
	}

	// Stopped workers exit asynchronously.
	deadline := time.Now().Add(3 * time.Second)
	after := runtime.NumGoroutine()
	for after > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}
	if after > before {
		t.Fatalf("goroutines after 50 RunAll calls\nhave %d\nwant <= %d", after, before)
	}
}

// within compares components by absolute difference.
func within(eps float32) func(a, b float32) bool {
	return func(a, b float32) bool {
		return a-b < eps && b-a < eps
	}
}
