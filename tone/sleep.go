package tone

import "time"

// SleepSink keeps the timing of live playback without making any sound.
type SleepSink struct{}

func (SleepSink) Tone(frequency uint, durationMs int64) error {
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
	return nil
}

func (SleepSink) Silence(durationMs int64) error {
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
	return nil
}
