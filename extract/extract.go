package extract

import (
	"math"
	"sort"

	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/midi"
	"github.com/jsphweid/tonebox/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type Options struct {
	TempoRatio   float64
	SkipTracks   []int
	NoPercussion bool
}

func DefaultOptions() Options {
	return Options{TempoRatio: 1}
}

func checkDivision(division uint16) error {
	if division&0x8000 != 0 {
		return errors.Wrapf(model.ErrSMPTE, "division field is frames per second: %#04x", division)
	}
	if division == 0 {
		return errors.Wrap(model.ErrInputFormat, "ticks per quarter note is zero")
	}
	return nil
}

func toMs(tick int64, tc TempoContext) int64 {
	return int64(math.RoundToEven(float64(tick) * tc.MsPerTick()))
}

func isPercussion(evt midi.Event) bool {
	return evt.HasChannel && evt.Channel == constants.PercussionChannel
}

// GetNoteEvents turns every released note of the kept tracks into a
// millisecond-based NoteEvent, sorted by start time.
func GetNoteEvents(f *midi.File, opts Options) ([]model.NoteEvent, error) {
	if err := checkDivision(f.Division); err != nil {
		return nil, err
	}

	tempo := TempoContext{
		TicksPerQuarter: f.Division,
		BPM:             constants.DefaultTempo * opts.TempoRatio,
	}
	log.Infof("Default Tempo: %v", tempo.BPM)

	var res []model.NoteEvent
	for trackNum, events := range f.Tracks {
		log.Infof("Track #%d", trackNum)
		if slices.Contains(opts.SkipTracks, trackNum) {
			log.Infof("Skipping track #%d", trackNum)
			continue
		}
		log.Infof("Track length: %d", len(events))

		var notes []model.NoteEvent
		notes, tempo = processTrack(events, tempo, opts)
		res = append(res, notes...)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StartMs < res[j].StartMs
	})
	return res, nil
}

// processTrack returns the track's notes and the tempo in effect at its end,
// tempo changes carry over into the tracks that follow.
func processTrack(events midi.Track, tempo TempoContext, opts Options) ([]model.NoteEvent, TempoContext) {
	var res []model.NoteEvent

	for _, evt := range events {
		if opts.NoPercussion && isPercussion(evt) {
			continue
		}

		switch evt.Kind {
		case midi.KindTempo:
			tempo = tempo.WithBPM(evt.BPM * opts.TempoRatio)
			log.Infof("Tempo: %v", tempo.BPM)
		case midi.KindNoteOn:
			if evt.Off == nil {
				log.WithField("event", evt.String()).Warn("Skipped NoteOnEvent: No Corresponding Note Off Event")
				continue
			}
			start := toMs(evt.Tick, tempo)
			stop := toMs(evt.Off.Tick, tempo)
			if stop <= start {
				log.WithField("event", evt.String()).Debug("Skipped note shorter than a millisecond")
				continue
			}
			res = append(res, model.NoteEvent{
				Pitch:    evt.Pitch,
				Velocity: evt.Velocity,
				StartMs:  start,
				StopMs:   stop,
			})
		case midi.KindPatchChange:
			log.Infof("Patch: %d", evt.Program)
			if opts.NoPercussion && evt.Program >= constants.FirstPercussionProgram {
				log.Info("Skipping track...")
				return res, tempo
			}
		case midi.KindText:
			log.Info(evt.String())
		case midi.KindControl, midi.KindAdvisory:
			// ignore
		case midi.KindMeta:
			log.Warnf("Skipped MetaEvent: %s", evt.String())
		default:
			log.Warnf("Skipped MIDI Event Type: %s", evt.String())
		}
	}
	return res, tempo
}
