package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tonebox/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(model.ErrInputFormat, "error reading midi file %s: %v", filepath, err)
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Wrapf(model.ErrInputFormat, "error parsing midi file: %v", r)
		}
	}()

	dat, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(model.ErrInputFormat, "error reading midi data: %v", err)
	}
	// smf only understands metric ticks, reject frame timing up front
	if d, ok := headerDivision(dat); ok && d&0x8000 != 0 {
		return nil, errors.Wrapf(model.ErrSMPTE, "division field is frames per second: %#04x", d)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(model.ErrInputFormat, "error parsing midi file: %v", err)
	}
	return res, nil
}

// headerDivision reads the division field of the MThd chunk.
func headerDivision(dat []byte) (uint16, bool) {
	if len(dat) < 14 || string(dat[:4]) != "MThd" {
		return 0, false
	}
	return binary.BigEndian.Uint16(dat[12:14]), true
}

// Decode flattens a parsed SMF into tracks of absolute-tick events with note
// ons already matched to their note offs.
func Decode(s *smf.SMF) *File {
	f := &File{
		Format:   s.Format(),
		Division: division(s.TimeFormat),
	}
	for _, track := range s.Tracks {
		f.Tracks = append(f.Tracks, decodeTrack(track))
	}
	return f
}

func division(tf smf.TimeFormat) uint16 {
	switch v := tf.(type) {
	case smf.MetricTicks:
		return uint16(v)
	case smf.TimeCode:
		return 0x8000 | uint16(v.FramesPerSecond&0x7F)<<8 | uint16(v.SubFrames)
	}
	return 0
}

func noteKey(channel, key uint8) uint16 {
	return uint16(channel)<<8 | uint16(key)
}

// channelOf reads the channel straight from the status byte of a channel
// voice message.
func channelOf(msg smf.Message) (uint8, bool) {
	if len(msg) == 0 {
		return 0, false
	}
	status := msg[0]
	if status < 0x80 || status >= 0xF0 {
		return 0, false
	}
	return status & 0x0F, true
}

func decodeTrack(track smf.Track) Track {
	var res Track
	var absTicks int64

	// note ons waiting for their release, oldest first
	pending := make(map[uint16][]int)

	for _, event := range track {
		absTicks += int64(event.Delta)
		msg := event.Message

		var channel, key, velocity, program, ctl, val uint8
		var bpm float64
		var text string

		evt := Event{Tick: absTicks}
		evt.Channel, evt.HasChannel = channelOf(msg)

		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			evt.Kind = KindNoteOn
			evt.Pitch = key
			evt.Velocity = velocity
			k := noteKey(channel, key)
			pending[k] = append(pending[k], len(res))
		case msg.GetNoteEnd(&channel, &key):
			k := noteKey(channel, key)
			if waiting := pending[k]; len(waiting) > 0 {
				res[waiting[0]].Off = &NoteOff{Tick: absTicks}
				pending[k] = waiting[1:]
			}
			continue
		case msg.GetMetaTempo(&bpm):
			evt.Kind = KindTempo
			evt.BPM = bpm
		case msg.GetProgramChange(&channel, &program):
			evt.Kind = KindPatchChange
			evt.Program = program
		case msg.GetControlChange(&channel, &ctl, &val):
			evt.Kind = KindControl
		case metaText(msg, &text):
			evt.Kind = KindText
			evt.Name = msg.Type().String()
			evt.Text = text
		case isAdvisory(msg):
			evt.Kind = KindAdvisory
			evt.Name = msg.Type().String()
		case msg.IsMeta():
			evt.Kind = KindMeta
			evt.Name = msg.Type().String()
		default:
			evt.Kind = KindOther
			evt.Name = msg.Type().String()
		}
		res = append(res, evt)
	}
	return res
}

var advisoryTypes = []gomidi.Type{
	smf.MetaTimeSigMsg,
	smf.MetaKeySigMsg,
	smf.MetaSeqDataMsg,
	smf.MetaEndOfTrackMsg,
	smf.MetaChannelMsg,
	smf.MetaPortMsg,
	smf.MetaSMPTEOffsetMsg,
}

func isAdvisory(msg smf.Message) bool {
	for _, t := range advisoryTypes {
		if msg.Is(t) {
			return true
		}
	}
	return false
}

func metaText(msg smf.Message, text *string) bool {
	return msg.GetMetaText(text) ||
		msg.GetMetaTrackName(text) ||
		msg.GetMetaCopyright(text) ||
		msg.GetMetaInstrument(text) ||
		msg.GetMetaLyric(text) ||
		msg.GetMetaMarker(text) ||
		msg.GetMetaCuepoint(text)
}

func (e Event) String() string {
	switch e.Kind {
	case KindTempo:
		return fmt.Sprintf("Tempo %.2f @%d", e.BPM, e.Tick)
	case KindNoteOn:
		return fmt.Sprintf("NoteOn ch=%d key=%d vel=%d @%d", e.Channel, e.Pitch, e.Velocity, e.Tick)
	case KindPatchChange:
		return fmt.Sprintf("PatchChange ch=%d program=%d @%d", e.Channel, e.Program, e.Tick)
	case KindText:
		return fmt.Sprintf("%s: %s", e.Name, e.Text)
	}
	return fmt.Sprintf("%s @%d", e.Name, e.Tick)
}
