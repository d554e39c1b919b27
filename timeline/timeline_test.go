package timeline

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/jsphweid/tonebox/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naivePartition checks every event against every slice.
func naivePartition(events []model.NoteEvent) []model.TimeSlice {
	boundaries := getBoundaries(events)
	var res []model.TimeSlice
	for i := 0; i+1 < len(boundaries); i++ {
		res = append(res, model.TimeSlice{StartMs: boundaries[i], StopMs: boundaries[i+1]})
	}
	for _, e := range events {
		for i := range res {
			if res[i].StartMs >= e.StartMs && res[i].StopMs <= e.StopMs {
				res[i].Notes = append(res[i].Notes, e.Note())
			}
		}
	}
	return res
}

func randomEvents(r *rand.Rand, n int) []model.NoteEvent {
	var res []model.NoteEvent
	for i := 0; i < n; i++ {
		start := int64(r.Intn(2000))
		res = append(res, model.NoteEvent{
			Pitch:    uint8(r.Intn(128)),
			Velocity: uint8(r.Intn(128)),
			StartMs:  start,
			StopMs:   start + 1 + int64(r.Intn(500)),
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StartMs < res[j].StartMs
	})
	return res
}

func TestSingleEvent(t *testing.T) {
	slices := Partition([]model.NoteEvent{{Pitch: 60, Velocity: 100, StartMs: 0, StopMs: 500}})
	assert.Equal(t, []model.TimeSlice{
		{StartMs: 0, StopMs: 500, Notes: []model.Note{{Pitch: 60, Velocity: 100}}},
	}, slices)
}

func TestNoEvents(t *testing.T) {
	assert.Empty(t, Partition(nil))
}

func TestOverlapsAndGaps(t *testing.T) {
	events := []model.NoteEvent{
		{Pitch: 60, Velocity: 100, StartMs: 0, StopMs: 300},
		{Pitch: 64, Velocity: 90, StartMs: 100, StopMs: 200},
		{Pitch: 67, Velocity: 80, StartMs: 400, StopMs: 500},
	}
	slices := Partition(events)

	assert.Equal(t, []model.TimeSlice{
		{StartMs: 0, StopMs: 100, Notes: []model.Note{{Pitch: 60, Velocity: 100}}},
		{StartMs: 100, StopMs: 200, Notes: []model.Note{{Pitch: 60, Velocity: 100}, {Pitch: 64, Velocity: 90}}},
		{StartMs: 200, StopMs: 300, Notes: []model.Note{{Pitch: 60, Velocity: 100}}},
		{StartMs: 300, StopMs: 400},
		{StartMs: 400, StopMs: 500, Notes: []model.Note{{Pitch: 67, Velocity: 80}}},
	}, slices)

	stats := Summarize(slices)
	assert.Equal(t, model.Stats{Chords: 1, SingleNotes: 3, Silences: 1, DurationMs: 500}, stats)
}

func TestDuplicateBoundariesProduceNoEmptySlices(t *testing.T) {
	events := []model.NoteEvent{
		{Pitch: 60, Velocity: 100, StartMs: 0, StopMs: 100},
		{Pitch: 62, Velocity: 100, StartMs: 0, StopMs: 100},
		{Pitch: 64, Velocity: 100, StartMs: 100, StopMs: 200},
	}
	slices := Partition(events)
	require.Len(t, slices, 2)
	assert.Len(t, slices[0].Notes, 2)
	assert.Len(t, slices[1].Notes, 1)
}

func TestPartitionProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		events := randomEvents(r, 1+r.Intn(40))
		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			slices := Partition(events)

			// same membership as checking every pair
			assert.Equal(t, naivePartition(events), slices)

			// contiguous, sorted and non degenerate
			for i, ts := range slices {
				assert.Less(t, ts.StartMs, ts.StopMs)
				if i > 0 {
					assert.Equal(t, slices[i-1].StopMs, ts.StartMs)
				}
			}

			// covers from the first start to the last stop
			var maxStop int64
			for _, e := range events {
				if e.StopMs > maxStop {
					maxStop = e.StopMs
				}
			}
			assert.Equal(t, events[0].StartMs, slices[0].StartMs)
			assert.Equal(t, maxStop, slices[len(slices)-1].StopMs)

			// every event's range is exactly the union of the slices holding it
			for _, e := range events {
				var covered int64
				for _, ts := range slices {
					if ts.StartMs >= e.StartMs && ts.StopMs <= e.StopMs {
						covered += ts.Duration()
					}
				}
				assert.Equal(t, e.StopMs-e.StartMs, covered)
			}
		})
	}
}
