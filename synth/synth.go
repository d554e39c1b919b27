package synth

import (
	"encoding/binary"
	"math"

	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/tone"
	"github.com/jsphweid/tonebox/util"
)

// SampleWriter receives each slice's samples in timeline order.
type SampleWriter interface {
	WriteSamples(samples []int) error
}

type Synthesizer struct {
	// half steps added to every note
	Offset int
}

func New(offset int) *Synthesizer {
	return &Synthesizer{Offset: offset}
}

func envelope(i, n int) float64 {
	if i < n-constants.EnvelopeTail {
		return 1.0
	}
	return float64(n-i-1) / float64(constants.EnvelopeTail)
}

// Pattern builds a single cycle of a raised sine (never negative) whose last
// samples fade to zero. Frequencies too high to fit two samples per cycle
// give no pattern.
func Pattern(frequency uint, velocity uint8) []int {
	if frequency == 0 {
		return nil
	}
	n := int(math.RoundToEven(float64(constants.SampleRate) / float64(frequency)))
	if n < 2 {
		return nil
	}
	amplitude := constants.MaxPatternAmplitude * (float64(velocity) / 127.0)
	res := make([]int, n)
	for i := range res {
		sine := math.Sin(2 * math.Pi * float64(i) / float64(n-1))
		res[i] = int(math.RoundToEven((sine + 1) / 2 * amplitude * envelope(i, n)))
	}
	return res
}

func SampleCount(durationMs int64) int {
	return int(math.RoundToEven(constants.SamplesPerMs * float64(durationMs)))
}

// RenderSlice mixes every note of the slice. Each pattern restarts at phase
// zero and the mix is capped at MaxSampleValue. Samples are never negative
// so there is no lower bound.
func (s *Synthesizer) RenderSlice(ts model.TimeSlice) []int {
	samples := make([]int, SampleCount(ts.Duration()))
	for _, note := range ts.Notes {
		pattern := Pattern(tone.Frequency(int(note.Pitch)+s.Offset), note.Velocity)
		if len(pattern) == 0 {
			continue
		}
		j := 0
		for i := range samples {
			samples[i] += pattern[j]
			j++
			if j == len(pattern) {
				j = 0
			}
		}
	}
	for i, v := range samples {
		samples[i] = util.Min(v, constants.MaxSampleValue)
	}
	return samples
}

// Render streams the slices to w one at a time.
func (s *Synthesizer) Render(slices []model.TimeSlice, w SampleWriter) error {
	for _, ts := range slices {
		if err := w.WriteSamples(s.RenderSlice(ts)); err != nil {
			return err
		}
	}
	return nil
}

// PCM16LE keeps the low 16 bits of every sample, little endian.
func PCM16LE(samples []int) []byte {
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v&0xFFFF))
	}
	return buf
}
