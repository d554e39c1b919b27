package model

// NoteEvent is a sounding note placed on the absolute timeline.
type NoteEvent struct {
	Pitch    uint8
	Velocity uint8
	StartMs  int64
	StopMs   int64
}

func (e NoteEvent) Note() Note {
	return Note{Pitch: e.Pitch, Velocity: e.Velocity}
}

type Note struct {
	Pitch    uint8 `json:"pitch"`
	Velocity uint8 `json:"velocity"`
}

// TimeSlice is a stretch of the timeline during which the set of sounding
// notes does not change. No notes means silence.
type TimeSlice struct {
	StartMs int64  `json:"start_ms"`
	StopMs  int64  `json:"stop_ms"`
	Notes   []Note `json:"notes"`
}

func (ts TimeSlice) Duration() int64 {
	return ts.StopMs - ts.StartMs
}

func (ts TimeSlice) IsSilence() bool {
	return len(ts.Notes) == 0
}

type Stats struct {
	Chords      int   `json:"chords"`
	SingleNotes int   `json:"single_notes"`
	Silences    int   `json:"silences"`
	DurationMs  int64 `json:"duration_ms"`
}
