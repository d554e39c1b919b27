package tone

import (
	"context"
	"math"

	"github.com/jsphweid/tonebox/chord"
	"github.com/jsphweid/tonebox/model"
	log "github.com/sirupsen/logrus"
)

// Sink is the platform side of live playback. Both calls block for the
// whole duration.
type Sink interface {
	Tone(frequency uint, durationMs int64) error
	Silence(durationMs int64) error
}

// Frequency maps a (possibly shifted) note number to equal tempered Hz,
// truncated to a whole number.
func Frequency(pitch int) uint {
	return uint((440.0 / 32.0) * math.Pow(2, float64(pitch-9)/12.0))
}

type Renderer struct {
	Sink Sink
	// half steps added to every note
	Offset int
}

func NewRenderer(sink Sink, offset int) *Renderer {
	return &Renderer{Sink: sink, Offset: offset}
}

// Play emits one tone or silence per slice, in order. Cancellation is only
// noticed between slices.
func (r *Renderer) Play(ctx context.Context, slices []model.TimeSlice) error {
	for _, ts := range slices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.playSlice(ts); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) playSlice(ts model.TimeSlice) error {
	duration := ts.Duration()
	lead, ok := chord.Lead(ts)
	if !ok {
		return r.Sink.Silence(duration)
	}
	freq := Frequency(int(lead.Pitch) + r.Offset)
	log.WithFields(log.Fields{
		"start":     ts.StartMs,
		"duration":  duration,
		"pitch":     lead.Pitch,
		"frequency": freq,
	}).Debug("tone")
	return r.Sink.Tone(freq, duration)
}
