package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned when an action name cannot be parsed.
var ErrUnknownAction = errors.New("unknown input action")

// Action is a logical input the camera rig reacts to, independent of the physical key bound to it.
type Action uint8

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionFast
	ActionToggleMode

	actionCount
)

var actionNames = [actionCount]string{
	ActionForward:    "forward",
	ActionBack:       "back",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionFast:       "fast",
	ActionToggleMode: "toggle_mode",
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// ParseAction resolves an action from its name. Matching is case-insensitive.
//
// Parameters:
//   - name: the action name, e.g. "forward" or "toggle_mode"
//
// Returns:
//   - Action: the parsed action
//   - error: ErrUnknownAction wrapped with the offending name
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range actionNames {
		if s == n {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// ActionSet is a bitset of currently held actions.
type ActionSet uint8

// NewActionSet builds a set holding the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// Has reports whether a is held.
func (s ActionSet) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

// With returns a copy of s with a added.
func (s ActionSet) With(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

// Without returns a copy of s with a removed.
func (s ActionSet) Without(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s &^ (1 << a)
}

// Actions lists the held actions in declaration order.
func (s ActionSet) Actions() []Action {
	var out []Action
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	acts := s.Actions()
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = a.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}
