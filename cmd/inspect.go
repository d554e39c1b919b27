package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jsphweid/tonebox/midi"
	"github.com/jsphweid/tonebox/score"
	"github.com/jsphweid/tonebox/util"
	"github.com/spf13/cobra"
)

var inspectEvents bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectEvents, "events", false, "list every decoded event")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <filename>",
	Short: "Inspects a midi file",
	Long:  `Prints the decoded tracks of a midi file and the time slices built from them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		f := midi.Decode(s)
		sc, err := score.Build(f, score.DefaultOptions())
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), f, sc, inspectEvents)
		return nil
	},
}

func countKinds(track midi.Track) map[midi.EventKind]int {
	res := make(map[midi.EventKind]int)
	for _, evt := range track {
		res[evt.Kind]++
	}
	return res
}

func inspect(out io.Writer, f *midi.File, sc *score.Score, events bool) {
	fmt.Fprintf(out, "format: %s\n", midi.FormatName(f.Format))
	fmt.Fprintf(out, "division: %d\n", f.Division)
	for i, track := range f.Tracks {
		counts := countKinds(track)
		kinds := util.GetKeys(counts)
		sort.Slice(kinds, func(a, b int) bool { return kinds[a] < kinds[b] })

		fmt.Fprintf(out, "track %d:", i)
		for _, k := range kinds {
			fmt.Fprintf(out, " %v=%d", k, counts[k])
		}
		fmt.Fprintln(out)
		if events {
			for _, evt := range track {
				fmt.Fprintf(out, "  %v\n", evt)
			}
		}
	}

	for _, ts := range sc.Slices {
		fmt.Fprintf(out, "[%d, %d) %v\n", ts.StartMs, ts.StopMs, ts.Notes)
	}
}
