package tone

import (
	"encoding/binary"

	"github.com/jsphweid/tonebox/constants"
)

// squareWave renders a beeper style tone as signed 16 bit little endian mono.
func squareWave(frequency uint, durationMs int64) []byte {
	count := int(float64(durationMs) * constants.SamplesPerMs)
	buf := make([]byte, count*2)
	if frequency == 0 || count == 0 {
		return buf
	}
	period := float64(constants.SampleRate) / float64(frequency)
	for i := 0; i < count; i++ {
		v := int16(constants.MaxPatternAmplitude)
		phase := float64(i) / period
		if phase-float64(int(phase)) >= 0.5 {
			v = -v
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}
