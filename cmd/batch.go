package cmd

import (
	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/score"
	"github.com/jsphweid/tonebox/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type batchFlags struct {
	raw   rawOptions
	max   int
	force bool
}

func init() {
	rootCmd.AddCommand(newBatchCmd())
}

func newBatchCmd() *cobra.Command {
	var flags batchFlags
	c := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Renders every midi file in a directory",
		Long:  `Renders every midi file in a directory to $TONEBOX_OUT_DIR without live playback.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.raw.markGiven(cmd)
			opts, warnings := flags.raw.resolve()
			logWarnings(warnings)
			paths, err := gatherMidiPaths(args[0], flags.max)
			if err != nil {
				return err
			}
			failed := runBatch(paths, constants.GetOutputDir(), opts, flags.force)
			if failed > 0 {
				return errors.Errorf("%d of %d files could not be rendered", failed, len(paths))
			}
			return nil
		},
	}

	f := c.Flags()
	f.StringArrayVar(&flags.raw.skip, "skip", nil, "suppress a track (repeatable)")
	f.BoolVar(&flags.raw.noPerc, "noperc", false, "suppress percussions")
	f.StringVar(&flags.raw.pitch, "pitch", "", "modify pitch (in half steps)")
	f.StringVar(&flags.raw.tempo, "tempo", "", "tempo ratio")
	f.StringVar(&flags.raw.chord, "chord", "", "chord-to-note conversion method (1-4)")
	f.IntVar(&flags.max, "max", 0, "render at most this many files (0 = all)")
	f.BoolVar(&flags.force, "force", false, "overwrite existing wav files")
	return c
}

// runBatch renders each file in turn and returns how many failed. Files that
// already have a wav are left alone unless force is set.
func runBatch(paths []string, outDir string, opts renderOptions, force bool) int {
	var failed int
	for i, path := range paths {
		out := util.OutputPathFor(outDir, path)
		if !force && util.FileExists(out) {
			log.Infof("Skipping %v, %v exists", path, out)
			continue
		}
		log.Infof("Rendering %v of %v midi files", i+1, len(paths))
		sc, err := score.Load(path, opts.score)
		if err == nil {
			err = writeOutput(sc, opts.offset, out, false)
		}
		if err != nil {
			log.Warnf("Skipping %v because: %v", path, err)
			failed++
		}
	}
	return failed
}
