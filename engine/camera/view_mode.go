package camera

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownViewMode is returned when a view mode name cannot be parsed.
var ErrUnknownViewMode = errors.New("unknown view mode")

// ViewMode selects how the controller derives the eye and view matrix from its pose.
type ViewMode uint8

const (
	// ViewModeFirstPerson puts the eye at the controller position, pinned to the eye height.
	ViewModeFirstPerson ViewMode = iota
	// ViewModeThirdPersonFree trails the controlled body at a fixed follow distance.
	ViewModeThirdPersonFree
	// ViewModeThirdPersonGated is ViewModeThirdPersonFree with movement blocked near an external anchor.
	ViewModeThirdPersonGated

	viewModeCount
)

var viewModeNames = [viewModeCount]string{
	ViewModeFirstPerson:      "first_person",
	ViewModeThirdPersonFree:  "third_person_free",
	ViewModeThirdPersonGated: "third_person_gated",
}

func (m ViewMode) String() string {
	if m >= viewModeCount {
		return fmt.Sprintf("ViewMode(%d)", uint8(m))
	}
	return viewModeNames[m]
}

// Next returns the mode after m, wrapping back to first person.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % viewModeCount
}

// ThirdPerson reports whether the mode renders the controlled body.
func (m ViewMode) ThirdPerson() bool {
	return m == ViewModeThirdPersonFree || m == ViewModeThirdPersonGated
}

// ParseViewMode resolves a mode from its name. Matching is case-insensitive.
//
// Parameters:
//   - name: e.g. "first_person", "third_person_free", "third_person_gated"
//
// Returns:
//   - ViewMode: the parsed mode
//   - error: ErrUnknownViewMode wrapped with the offending name
func ParseViewMode(name string) (ViewMode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range viewModeNames {
		if s == n {
			return ViewMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownViewMode, name)
}
