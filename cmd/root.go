package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jsphweid/tonebox/chord"
	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/score"
	"github.com/jsphweid/tonebox/synth"
	"github.com/jsphweid/tonebox/tone"
	"github.com/jsphweid/tonebox/util"
	"github.com/jsphweid/tonebox/wav"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	raw     rawOptions
	quiet   bool
	output  string
	pcm     bool
	verbose bool
}

var rootCmd = newRootCmd(tone.NewPlatformSink)

func chordHelp() string {
	var b strings.Builder
	b.WriteString("chord-to-note conversion method:")
	for _, p := range chord.Policies {
		fmt.Fprintf(&b, "\n%d = %v", int(p), p)
	}
	return b.String()
}

func newRootCmd(newSink func() (tone.Sink, error)) *cobra.Command {
	var flags rootFlags

	c := &cobra.Command{
		Use:   "tonebox <filename> [options ...]",
		Short: "Plays a MIDI file on a single voice and renders it to wav",
		Long: `Plays a MIDI file as a sequence of single tones, one per stretch of
unchanging notes, then renders every note of it to a 44.1kHz 16 bit mono wav.

Classic spellings are accepted too: -S<track> -NOPERC -P<offset> -T<ratio> -C<1-4> -Q`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Wrapf(model.ErrUnknownOption, "%s", args[1])
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			flags.raw.markGiven(cmd)
			opts, warnings := flags.raw.resolve()
			logWarnings(warnings)
			return render(cmd.Context(), args[0], opts, flags, newSink)
		},
	}
	c.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(model.ErrUnknownOption, err.Error())
	})

	f := c.Flags()
	f.StringArrayVar(&flags.raw.skip, "skip", nil, "suppress a track (repeatable)")
	f.BoolVar(&flags.raw.noPerc, "noperc", false, "suppress percussions")
	f.StringVar(&flags.raw.pitch, "pitch", "", "modify pitch (in half steps)")
	f.StringVar(&flags.raw.tempo, "tempo", "", "tempo ratio")
	f.StringVar(&flags.raw.chord, "chord", "", chordHelp())
	f.BoolVar(&flags.quiet, "quiet", false, "quiet mode, skip live playback")
	f.StringVarP(&flags.output, "output", "o", "", "output path (default $TONEBOX_OUT_DIR/<name>.wav)")
	f.BoolVar(&flags.pcm, "raw", false, "write headerless 16 bit PCM instead of wav")
	c.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	return c
}

func configureLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func outputPath(flags rootFlags, midiPath string) string {
	if flags.output != "" {
		return flags.output
	}
	path := util.OutputPathFor(constants.GetOutputDir(), midiPath)
	if flags.pcm {
		path = strings.TrimSuffix(path, ".wav") + ".pcm"
	}
	return path
}

func render(ctx context.Context, path string, opts renderOptions, flags rootFlags, newSink func() (tone.Sink, error)) error {
	if !util.IsMidiPath(path) {
		log.Warnf("%s does not look like a midi file", path)
	}

	sc, err := score.Load(path, opts.score)
	if err != nil {
		return err
	}
	sc.LogStats()

	if !flags.quiet {
		if err := play(ctx, sc, opts.offset, newSink); err != nil {
			return err
		}
	}

	log.Info("Generating wave file...")
	out := outputPath(flags, path)
	if err := writeOutput(sc, opts.offset, out, flags.pcm); err != nil {
		return err
	}
	log.WithField("path", out).Info("Done!")
	return nil
}

func play(ctx context.Context, sc *score.Score, offset int, newSink func() (tone.Sink, error)) error {
	sink, err := newSink()
	if err != nil {
		log.Warnf("Live playback unavailable: %v", err)
		return nil
	}
	log.Info("Playing...")
	if err := tone.NewRenderer(sink, offset).Play(ctx, sc.Slices); err != nil {
		return errors.Wrap(err, "playback stopped")
	}
	log.Info("Done!")
	return nil
}

func writeOutput(sc *score.Score, offset int, out string, pcm bool) error {
	s := synth.New(offset)
	if pcm {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "could not create output file")
		}
		if err := s.Render(sc.Slices, wav.NewRawWriter(f)); err != nil {
			f.Close()
			return err
		}
		return errors.Wrap(f.Close(), "could not close output file")
	}

	w, err := wav.Create(out)
	if err != nil {
		return err
	}
	if err := s.Render(sc.Slices, w); err != nil {
		w.Abort()
		return err
	}
	return w.Close()
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
