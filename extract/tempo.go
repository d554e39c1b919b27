package extract

// TempoContext converts ticks into milliseconds for the tempo in effect.
// A tempo change produces a new context rather than mutating the old one.
type TempoContext struct {
	TicksPerQuarter uint16
	BPM             float64
}

func (tc TempoContext) WithBPM(bpm float64) TempoContext {
	tc.BPM = bpm
	return tc
}

func (tc TempoContext) MsPerTick() float64 {
	return 60000.0 / (float64(tc.TicksPerQuarter) * tc.BPM)
}
