package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/score"
	"github.com/jsphweid/tonebox/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Creates a report",
	Long:  `Slices every midi file in a directory and reports chord, note and silence counts.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := gatherMidiPaths(args[0], 0)
		if err != nil {
			return err
		}
		r := analyze(paths, score.DefaultOptions())
		r.print(cmd.OutOrStdout())
		return nil
	},
}

type fileReport struct {
	path  string
	stats model.Stats
}

type dirReport struct {
	files   []fileReport
	skipped []string
}

// gatherMidiPaths lists the midi files directly inside dir. maxNum of 0 means
// no limit.
func gatherMidiPaths(dir string, maxNum int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, e := range entries {
		if e.IsDir() || !util.IsMidiPath(e.Name()) {
			continue
		}
		res = append(res, filepath.Join(dir, e.Name()))
		if maxNum > 0 && len(res) == maxNum {
			break
		}
	}
	return res, nil
}

func analyze(paths []string, opts score.Options) dirReport {
	var report dirReport
	for i, path := range paths {
		log.Debugf("Analyzing %v of %v midi files", i+1, len(paths))
		sc, err := score.Load(path, opts)
		if err != nil {
			log.Warnf("Skipping %v because: %v", path, err)
			report.skipped = append(report.skipped, path)
			continue
		}
		report.files = append(report.files, fileReport{path: path, stats: sc.Stats})
	}
	return report
}

func (r dirReport) durations() []int64 {
	res := make([]int64, len(r.files))
	for i, f := range r.files {
		res[i] = f.stats.DurationMs
	}
	return res
}

func (r dirReport) print(out io.Writer) {
	var total model.Stats
	for _, f := range r.files {
		fmt.Fprintf(out, "%s: chords=%d notes=%d silences=%d duration=%dms\n",
			filepath.Base(f.path), f.stats.Chords, f.stats.SingleNotes, f.stats.Silences, f.stats.DurationMs)
		total.Chords += f.stats.Chords
		total.SingleNotes += f.stats.SingleNotes
		total.Silences += f.stats.Silences
	}
	fmt.Fprintf(out, "files: %d (skipped %d)\n", len(r.files), len(r.skipped))
	fmt.Fprintf(out, "chords: %d\n", total.Chords)
	fmt.Fprintf(out, "single notes: %d\n", total.SingleNotes)
	fmt.Fprintf(out, "silences: %d\n", total.Silences)
	fmt.Fprintf(out, "total duration: %dms\n", util.Sum(r.durations()))
}
