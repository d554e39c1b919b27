package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/tonebox/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func sliceOf(notes ...model.Note) model.TimeSlice {
	return model.TimeSlice{StartMs: 0, StopMs: 100, Notes: notes}
}

func TestDefaultPolicyExample(t *testing.T) {
	ts := sliceOf(
		model.Note{Pitch: 60, Velocity: 100},
		model.Note{Pitch: 64, Velocity: 100},
		model.Note{Pitch: 60, Velocity: 80},
	)
	Order(&ts, DefaultPolicy)

	assert.Equal(t, []model.Note{
		{Pitch: 64, Velocity: 100},
		{Pitch: 60, Velocity: 100},
		{Pitch: 60, Velocity: 80},
	}, ts.Notes)
}

func TestEachPolicy(t *testing.T) {
	input := []model.Note{
		{Pitch: 60, Velocity: 80},
		{Pitch: 72, Velocity: 80},
		{Pitch: 64, Velocity: 120},
		{Pitch: 72, Velocity: 40},
	}
	cases := map[Policy][]model.Note{
		HighVelocityThenHighPitch: {{Pitch: 64, Velocity: 120}, {Pitch: 72, Velocity: 80}, {Pitch: 60, Velocity: 80}, {Pitch: 72, Velocity: 40}},
		HighVelocityThenLowPitch:  {{Pitch: 64, Velocity: 120}, {Pitch: 60, Velocity: 80}, {Pitch: 72, Velocity: 80}, {Pitch: 72, Velocity: 40}},
		HighPitchThenHighVelocity: {{Pitch: 72, Velocity: 80}, {Pitch: 72, Velocity: 40}, {Pitch: 64, Velocity: 120}, {Pitch: 60, Velocity: 80}},
		LowPitchThenHighVelocity:  {{Pitch: 60, Velocity: 80}, {Pitch: 64, Velocity: 120}, {Pitch: 72, Velocity: 80}, {Pitch: 72, Velocity: 40}},
	}

	for _, p := range Policies {
		name := fmt.Sprintf("policy %d: %v", int(p), p)
		t.Run(name, func(t *testing.T) {
			ts := sliceOf(append([]model.Note(nil), input...)...)
			Order(&ts, p)
			assert.Equal(t, cases[p], ts.Notes)
		})
	}
}

func TestOrderIsStable(t *testing.T) {
	// identical keys keep their incoming order
	a := model.Note{Pitch: 60, Velocity: 90}
	ts := sliceOf(a, a, model.Note{Pitch: 61, Velocity: 90})
	Order(&ts, HighVelocityThenLowPitch)
	assert.Equal(t, []model.Note{a, a, {Pitch: 61, Velocity: 90}}, ts.Notes)
}

func TestTrivialSlicesUntouched(t *testing.T) {
	empty := sliceOf()
	Order(&empty, DefaultPolicy)
	assert.Empty(t, empty.Notes)

	single := sliceOf(model.Note{Pitch: 1, Velocity: 2})
	Order(&single, LowPitchThenHighVelocity)
	assert.Equal(t, []model.Note{{Pitch: 1, Velocity: 2}}, single.Notes)
}

func TestOrderAllAndLead(t *testing.T) {
	slices := []model.TimeSlice{
		sliceOf(model.Note{Pitch: 60, Velocity: 1}, model.Note{Pitch: 70, Velocity: 1}),
		sliceOf(),
	}
	OrderAll(slices, LowPitchThenHighVelocity)

	lead, ok := Lead(slices[0])
	assert.True(t, ok)
	assert.Equal(t, uint8(60), lead.Pitch)

	_, ok = Lead(slices[1])
	assert.False(t, ok)
}

func TestParsePolicy(t *testing.T) {
	for i := 1; i <= 4; i++ {
		p, err := ParsePolicy(i)
		assert.NoError(t, err)
		assert.Equal(t, Policy(i), p)
	}

	p, err := ParsePolicy(9)
	assert.True(t, errors.Is(err, model.ErrOptionValue))
	assert.Equal(t, DefaultPolicy, p)
}
