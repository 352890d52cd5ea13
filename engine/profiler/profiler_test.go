package profiler

import (
	"fmt"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTick(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	var lines []string
	p := NewProfiler(
		WithClock(clk.now),
		WithInterval(time.Second),
		WithLogger(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	frames := []time.Duration{
		100 * time.Millisecond,
		300 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
	}
	var reported []bool
	for _, d := range frames {
		clk.advance(d)
		reported = append(reported, p.Tick())
	}
	if want := []bool{false, false, false, true}; fmt.Sprint(reported) != fmt.Sprint(want) {
		t.Fatalf("Profiler.Tick\nhave %v\nwant %v", reported, want)
	}
	if len(lines) != 1 {
		t.Fatalf("Profiler.Tick: log lines\nhave %d\nwant 1", len(lines))
	}

	s := p.Last()
	if s.Frames != 4 {
		t.Fatalf("Stats.Frames\nhave %d\nwant 4", s.Frames)
	}
	if s.FPS != 4 {
		t.Fatalf("Stats.FPS\nhave %v\nwant 4", s.FPS)
	}
	if s.MinFrame != 100*time.Millisecond || s.MaxFrame != 400*time.Millisecond {
		t.Fatalf("Stats frame range\nhave %v..%v\nwant 100ms..400ms", s.MinFrame, s.MaxFrame)
	}
}

func TestTickResetsAfterReport(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now), WithLogger(func(string, ...any) {}))

	clk.advance(2 * time.Second)
	if !p.Tick() {
		t.Fatal("Profiler.Tick: expected report after interval")
	}
	clk.advance(10 * time.Millisecond)
	if p.Tick() {
		t.Fatal("Profiler.Tick: unexpected report inside interval")
	}
	clk.advance(time.Second)
	if !p.Tick() {
		t.Fatal("Profiler.Tick: expected second report")
	}
	s := p.Last()
	if s.Frames != 2 || s.MinFrame != 10*time.Millisecond || s.MaxFrame != time.Second {
		t.Fatalf("Profiler.Last\nhave %+v\nwant 2 frames, 10ms..1s", s)
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Fatalf("Profiler.updateInterval\nhave %v\nwant %v", p.updateInterval, time.Second)
	}
}
