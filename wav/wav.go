package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/synth"
	"github.com/pkg/errors"
)

const pcmFormat = 1

var format = &audio.Format{
	NumChannels: constants.NumChannels,
	SampleRate:  constants.SampleRate,
}

var (
	_ synth.SampleWriter = (*Writer)(nil)
	_ synth.SampleWriter = (*RawWriter)(nil)
)

// Writer streams samples into a wav file. Nothing shows up at the final
// path until Close succeeds.
type Writer struct {
	path string
	tmp  string
	f    *os.File
	enc  *wav.Encoder
}

func Create(path string) (*Writer, error) {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String())
	f, err := os.Create(tmp)
	if err != nil {
		return nil, errors.Wrap(err, "could not create wav file")
	}
	w := &Writer{
		path: path,
		tmp:  tmp,
		f:    f,
		enc:  wav.NewEncoder(f, constants.SampleRate, constants.BitDepth, constants.NumChannels, pcmFormat),
	}
	// forces the header out so an empty render is still a valid file
	if err := w.WriteSamples([]int{}); err != nil {
		w.Abort()
		return nil, err
	}
	return w, nil
}

func (w *Writer) WriteSamples(samples []int) error {
	buf := &audio.IntBuffer{
		Format:         format,
		Data:           samples,
		SourceBitDepth: constants.BitDepth,
	}
	return errors.Wrap(w.enc.Write(buf), "could not write samples")
}

func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		w.Abort()
		return errors.Wrap(err, "could not finalize wav header")
	}
	if err := w.f.Close(); err != nil {
		os.Remove(w.tmp)
		return errors.Wrap(err, "could not close wav file")
	}
	return errors.Wrap(os.Rename(w.tmp, w.path), "could not move wav file into place")
}

// Abort drops everything written so far.
func (w *Writer) Abort() {
	w.f.Close()
	os.Remove(w.tmp)
}

// RawWriter writes headerless 16 bit little endian PCM.
type RawWriter struct {
	w io.Writer
}

func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

func (r *RawWriter) WriteSamples(samples []int) error {
	_, err := r.w.Write(synth.PCM16LE(samples))
	return errors.Wrap(err, "could not write samples")
}
