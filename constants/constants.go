package constants

import "os"

func GetOutputDir() string {
	path := os.Getenv("TONEBOX_OUT_DIR")
	if path != "" {
		return path
	}
	return "."
}

func GetServeAddr() string {
	addr := os.Getenv("TONEBOX_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// output is always 44.1kHz, 16 bit, mono
const SampleRate = 44100
const SamplesPerMs = 44.1
const BitDepth = 16
const NumChannels = 1

// amplitude of a full velocity note, leaves headroom for mixing
const MaxPatternAmplitude = 0x1FFF
const MaxSampleValue = 65535

// length of the fade at the tail of every synthesized cycle
const EnvelopeTail = 10

const DefaultTempo = 120

// 0 based, i.e. "channel 10"
const PercussionChannel = 9

// programs 112 and up are percussive / sound effects
const FirstPercussionProgram = 112
