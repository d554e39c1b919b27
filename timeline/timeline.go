package timeline

import (
	"sort"

	"github.com/jsphweid/tonebox/model"
)

func getBoundaries(events []model.NoteEvent) []int64 {
	seen := make(map[int64]bool, len(events)*2)
	var res []int64
	for _, e := range events {
		for _, t := range [2]int64{e.StartMs, e.StopMs} {
			if !seen[t] {
				seen[t] = true
				res = append(res, t)
			}
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

// Partition cuts the timeline at every note start and stop. Each resulting
// slice holds the notes whose event fully covers it, in event order.
//
// events must be sorted by StartMs.
func Partition(events []model.NoteEvent) []model.TimeSlice {
	boundaries := getBoundaries(events)
	if len(boundaries) < 2 {
		return nil
	}

	res := make([]model.TimeSlice, 0, len(boundaries)-1)

	// indexes into events, kept in event order
	var active []int
	next := 0
	for i := 0; i < len(boundaries)-1; i++ {
		ts := model.TimeSlice{StartMs: boundaries[i], StopMs: boundaries[i+1]}

		// stops are boundaries too, so an event still sounding at the start
		// of the slice lasts at least until its end
		kept := active[:0]
		for _, idx := range active {
			if events[idx].StopMs > ts.StartMs {
				kept = append(kept, idx)
			}
		}
		active = kept

		// appending in index order keeps notes in event order
		for next < len(events) && events[next].StartMs <= ts.StartMs {
			if events[next].StopMs > ts.StartMs {
				active = append(active, next)
			}
			next++
		}

		for _, idx := range active {
			ts.Notes = append(ts.Notes, events[idx].Note())
		}
		res = append(res, ts)
	}
	return res
}

func Summarize(slices []model.TimeSlice) model.Stats {
	var s model.Stats
	for _, ts := range slices {
		switch {
		case ts.IsSilence():
			s.Silences++
		case len(ts.Notes) == 1:
			s.SingleNotes++
		default:
			s.Chords++
		}
		s.DurationMs += ts.Duration()
	}
	return s
}
