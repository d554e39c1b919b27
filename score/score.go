package score

import (
	"io"

	"github.com/jsphweid/tonebox/chord"
	"github.com/jsphweid/tonebox/extract"
	"github.com/jsphweid/tonebox/midi"
	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/timeline"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	Extract extract.Options
	Policy  chord.Policy
}

func DefaultOptions() Options {
	return Options{
		Extract: extract.DefaultOptions(),
		Policy:  chord.DefaultPolicy,
	}
}

// Score is the ordered timeline ready for either renderer. Renderers only
// read it.
type Score struct {
	Slices []model.TimeSlice
	Stats  model.Stats
}

func Build(f *midi.File, opts Options) (*Score, error) {
	events, err := extract.GetNoteEvents(f, opts.Extract)
	if err != nil {
		return nil, err
	}
	slices := timeline.Partition(events)
	chord.OrderAll(slices, opts.Policy)
	return &Score{
		Slices: slices,
		Stats:  timeline.Summarize(slices),
	}, nil
}

func Load(path string, opts Options) (*Score, error) {
	log.Info("Parsing MIDI file...")
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return fromSMF(s, opts)
}

func Read(r io.Reader, opts Options) (*Score, error) {
	s, err := midi.ReadMidi(r)
	if err != nil {
		return nil, err
	}
	return fromSMF(s, opts)
}

func fromSMF(s *smf.SMF, opts Options) (*Score, error) {
	f := midi.Decode(s)
	log.Infof("Midi Format Type: %s", midi.FormatName(f.Format))
	log.Infof("Ticks per beat: %d", f.Division)
	log.Infof("Tracks: %d", len(f.Tracks))
	return Build(f, opts)
}

func (s *Score) LogStats() {
	log.Infof("Chords: %d", s.Stats.Chords)
	log.Infof("Single notes: %d", s.Stats.SingleNotes)
	log.Infof("Silences: %d", s.Stats.Silences)
}
