package midi

type EventKind uint8

const (
	KindTempo EventKind = iota
	KindNoteOn
	KindPatchChange
	KindControl
	// time/key signatures, sequencer data, end of track, channel/port prefixes
	KindAdvisory
	KindText
	KindMeta
	KindOther
)

// Event is one entry of a decoded track. Which fields are meaningful depends
// on Kind.
type Event struct {
	Kind EventKind
	Tick int64

	// set for channel messages only
	Channel    uint8
	HasChannel bool

	BPM      float64
	Pitch    uint8
	Velocity uint8
	Off      *NoteOff
	Program  uint8

	// meta / other messages: gomidi's type name and any text payload
	Name string
	Text string
}

// NoteOff is the release matched to a note on. A nil Off means the note was
// never released.
type NoteOff struct {
	Tick int64
}

type Track []Event

type File struct {
	Format uint16
	// Division is the raw header field. High bit set means SMPTE frames.
	Division uint16
	Tracks   []Track
}

var formatTypeText = []string{
	"0 (One track containing all of the MIDI events)",
	"1 (Two or more tracks. First track containing metadata)",
	"2 (Multiple tracks, different sequences)",
}

func FormatName(format uint16) string {
	if int(format) < len(formatTypeText) {
		return formatTypeText[format]
	}
	return "unknown"
}

var kindNames = map[EventKind]string{
	KindTempo:       "tempo",
	KindNoteOn:      "note",
	KindPatchChange: "patch",
	KindControl:     "control",
	KindAdvisory:    "advisory",
	KindText:        "text",
	KindMeta:        "meta",
	KindOther:       "other",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
