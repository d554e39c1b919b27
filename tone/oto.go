//go:build !headless

package tone

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jsphweid/tonebox/constants"
	"github.com/pkg/errors"
)

// OtoSink plays tones on the default audio device.
type OtoSink struct {
	ctx *oto.Context
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// only one oto context may exist per process
func sharedContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   constants.SampleRate,
			ChannelCount: constants.NumChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

func NewPlatformSink() (Sink, error) {
	ctx, err := sharedContext()
	if err != nil {
		return nil, errors.Wrap(err, "could not open audio device")
	}
	return &OtoSink{ctx: ctx}, nil
}

func (s *OtoSink) Tone(frequency uint, durationMs int64) error {
	p := s.ctx.NewPlayer(bytes.NewReader(squareWave(frequency, durationMs)))
	p.Play()
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
	for p.IsPlaying() {
		time.Sleep(time.Millisecond)
	}
	return p.Close()
}

func (s *OtoSink) Silence(durationMs int64) error {
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
	return nil
}
