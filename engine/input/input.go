package input

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
)

// Sampler is the source of raw per-frame input. The GLFW window implements it.
type Sampler interface {
	// CursorPos returns the absolute cursor position in window coordinates.
	//
	// Returns:
	//   - x, y: cursor position
	CursorPos() (x, y float64)

	// KeyDown reports whether the physical key is currently held.
	//
	// Parameters:
	//   - code: GLFW key code (see common/key_codes.go)
	//
	// Returns:
	//   - bool: true while the key is pressed
	KeyDown(code int) bool

	// Time returns a monotonic clock reading in seconds.
	//
	// Returns:
	//   - float64: seconds since an arbitrary origin
	Time() float64
}

// Frame is one snapshot of input taken right before the camera update.
type Frame struct {
	CursorX, CursorY float64
	Actions          ActionSet
	Time             float64
}

// KeyMap binds physical key codes to logical actions. Several keys may map to the same action.
type KeyMap map[int]Action

// DefaultKeyMap returns the WASD layout (arrow keys as alternates) with either Shift for fast
// movement and V to cycle the view mode.
//
// Returns:
//   - KeyMap: a freshly allocated key map
func DefaultKeyMap() KeyMap {
	return KeyMap{
		common.KeyW:          ActionForward,
		common.KeyS:          ActionBack,
		common.KeyA:          ActionLeft,
		common.KeyD:          ActionRight,
		common.KeyUp:         ActionForward,
		common.KeyDown:       ActionBack,
		common.KeyLeft:       ActionLeft,
		common.KeyRight:      ActionRight,
		common.KeyLeftShift:  ActionFast,
		common.KeyRightShift: ActionFast,
		common.KeyV:          ActionToggleMode,
	}
}

// Bind returns a copy of km with code bound to a.
func (km KeyMap) Bind(code int, a Action) KeyMap {
	out := make(KeyMap, len(km)+1)
	for k, v := range km {
		out[k] = v
	}
	out[code] = a
	return out
}

// Poll samples the cursor, every bound key and the clock into a Frame.
//
// Parameters:
//   - s: the input sampler
//   - km: the key bindings to evaluate; nil uses DefaultKeyMap
//
// Returns:
//   - Frame: the sampled input
func Poll(s Sampler, km KeyMap) Frame {
	if km == nil {
		km = DefaultKeyMap()
	}
	x, y := s.CursorPos()
	f := Frame{CursorX: x, CursorY: y, Time: s.Time()}
	for code, a := range km {
		if s.KeyDown(code) {
			f.Actions = f.Actions.With(a)
		}
	}
	return f
}

// EdgeTrigger turns a held signal into a one-shot press event.
type EdgeTrigger struct {
	held bool
}

// Rising reports true only on the first frame down is observed after being up.
//
// Parameters:
//   - down: the current level of the signal
//
// Returns:
//   - bool: true on an up-to-down transition
func (e *EdgeTrigger) Rising(down bool) bool {
	fired := down && !e.held
	e.held = down
	return fired
}
