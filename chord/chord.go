package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/tonebox/model"
	"github.com/pkg/errors"
)

// Policy decides which note of a chord leads. After ordering, the first note
// of a slice is the one a single voice plays.
type Policy int

const (
	HighVelocityThenHighPitch Policy = iota + 1
	HighVelocityThenLowPitch
	HighPitchThenHighVelocity
	LowPitchThenHighVelocity
)

const DefaultPolicy = HighPitchThenHighVelocity

var Policies = []Policy{
	HighVelocityThenHighPitch,
	HighVelocityThenLowPitch,
	HighPitchThenHighVelocity,
	LowPitchThenHighVelocity,
}

func ParsePolicy(n int) (Policy, error) {
	p := Policy(n)
	switch p {
	case HighVelocityThenHighPitch, HighVelocityThenLowPitch,
		HighPitchThenHighVelocity, LowPitchThenHighVelocity:
		return p, nil
	}
	return DefaultPolicy, errors.Wrapf(model.ErrOptionValue, "chord method must be 1-4, got %d", n)
}

func (p Policy) String() string {
	switch p {
	case HighVelocityThenHighPitch:
		return "High Velocity Then High Number"
	case HighVelocityThenLowPitch:
		return "High Velocity then Low Number"
	case HighPitchThenHighVelocity:
		return "High Number then High Velocity"
	case LowPitchThenHighVelocity:
		return "Low Number then High Velocity"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Less reports whether a leads b.
func (p Policy) Less(a, b model.Note) bool {
	switch p {
	case HighVelocityThenHighPitch:
		if a.Velocity != b.Velocity {
			return a.Velocity > b.Velocity
		}
		return a.Pitch > b.Pitch
	case HighVelocityThenLowPitch:
		if a.Velocity != b.Velocity {
			return a.Velocity > b.Velocity
		}
		return a.Pitch < b.Pitch
	case HighPitchThenHighVelocity:
		if a.Pitch != b.Pitch {
			return a.Pitch > b.Pitch
		}
		return a.Velocity > b.Velocity
	case LowPitchThenHighVelocity:
		if a.Pitch != b.Pitch {
			return a.Pitch < b.Pitch
		}
		return a.Velocity > b.Velocity
	}
	panic(fmt.Sprintf("unknown chord policy %d", int(p)))
}

func Order(ts *model.TimeSlice, p Policy) {
	if len(ts.Notes) < 2 {
		return
	}
	notes := ts.Notes
	sort.SliceStable(notes, func(i, j int) bool {
		return p.Less(notes[i], notes[j])
	})
}

func OrderAll(slices []model.TimeSlice, p Policy) {
	for i := range slices {
		Order(&slices[i], p)
	}
}

// Lead is the note a single voice plays for the slice.
func Lead(ts model.TimeSlice) (model.Note, bool) {
	if ts.IsSilence() {
		return model.Note{}, false
	}
	return ts.Notes[0], true
}
