package camera

import (
	"errors"
	"testing"
)

func TestViewModeNext(t *testing.T) {
	m := ViewModeFirstPerson
	want := []ViewMode{ViewModeThirdPersonFree, ViewModeThirdPersonGated, ViewModeFirstPerson}
	for _, w := range want {
		if m = m.Next(); m != w {
			t.Fatalf("ViewMode.Next\nhave %v\nwant %v", m, w)
		}
	}
	if ViewModeFirstPerson.ThirdPerson() || !ViewModeThirdPersonGated.ThirdPerson() {
		t.Fatal("ViewMode.ThirdPerson")
	}
}

func TestParseViewMode(t *testing.T) {
	for m := ViewMode(0); m < viewModeCount; m++ {
		have, err := ParseViewMode(m.String())
		if err != nil || have != m {
			t.Fatalf("ParseViewMode(%q)\nhave %v, %v\nwant %v", m.String(), have, err, m)
		}
	}
	if _, err := ParseViewMode("orbit"); !errors.Is(err, ErrUnknownViewMode) {
		t.Fatalf("ParseViewMode(orbit)\nhave %v\nwant ErrUnknownViewMode", err)
	}
	if have := ViewMode(9).String(); have != "ViewMode(9)" {
		t.Fatalf("String\nhave %s", have)
	}
}
