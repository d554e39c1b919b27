package cmd

import (
	"strconv"
	"strings"

	"github.com/jsphweid/tonebox/chord"
	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/score"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rawOptions holds option values exactly as typed, on the command line or in
// a query string.
type rawOptions struct {
	skip   []string
	noPerc bool
	pitch  string
	tempo  string
	chord  string

	// options that were present, even with an empty value
	given map[string]bool
}

type renderOptions struct {
	score  score.Options
	offset int
}

// legacy single dash options with their value glued on, e.g. -S2 or -T1.5
var legacyValueFlags = map[string]string{
	"-S": "--skip",
	"-P": "--pitch",
	"-T": "--tempo",
	"-C": "--chord",
}

// normalizeArgs rewrites the classic option spellings into long flags so
// cobra can parse them. Anything else is left for cobra to accept or reject.
func normalizeArgs(args []string) []string {
	res := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--") || len(arg) < 2 || arg[0] != '-':
			res = append(res, arg)
		case arg == "-NOPERC":
			res = append(res, "--noperc")
		case strings.HasPrefix(arg, "-Q"):
			res = append(res, "--quiet")
		default:
			if long, ok := legacyValueFlags[arg[:2]]; ok {
				res = append(res, long+"="+arg[2:])
			} else {
				res = append(res, arg)
			}
		}
	}
	return res
}

// markGiven records which value options were set on the command line.
func (r *rawOptions) markGiven(c *cobra.Command) {
	r.given = make(map[string]bool)
	for _, name := range []string{"pitch", "tempo", "chord"} {
		r.given[name] = c.Flags().Changed(name)
	}
}

// has reports whether an option was supplied. A bare -P counts, and then
// fails to parse.
func (r rawOptions) has(name, value string) bool {
	return value != "" || r.given[name]
}

func optionError(name, value string, err error) error {
	return errors.Wrapf(model.ErrOptionValue, "%s %q: %v", name, value, err)
}

// resolve turns raw values into render options. Bad values keep the default
// and come back as warnings.
func (r rawOptions) resolve() (renderOptions, []error) {
	res := renderOptions{score: score.DefaultOptions()}
	var warnings []error

	for _, s := range r.skip {
		n, err := strconv.Atoi(s)
		if err != nil {
			warnings = append(warnings, optionError("track to skip", s, err))
			continue
		}
		res.score.Extract.SkipTracks = append(res.score.Extract.SkipTracks, n)
	}

	res.score.Extract.NoPercussion = r.noPerc

	if r.has("pitch", r.pitch) {
		n, err := strconv.Atoi(r.pitch)
		if err != nil {
			warnings = append(warnings, optionError("pitch offset", r.pitch, err))
		} else {
			res.offset = n
		}
	}

	if r.has("tempo", r.tempo) {
		ratio, err := strconv.ParseFloat(r.tempo, 64)
		switch {
		case err != nil:
			warnings = append(warnings, optionError("tempo ratio", r.tempo, err))
		case ratio <= 0:
			warnings = append(warnings, optionError("tempo ratio", r.tempo, errors.New("must be positive")))
		default:
			res.score.Extract.TempoRatio = ratio
		}
	}

	if r.has("chord", r.chord) {
		n, err := strconv.Atoi(r.chord)
		if err != nil {
			warnings = append(warnings, optionError("chord method", r.chord, err))
		} else if p, err := chord.ParsePolicy(n); err != nil {
			warnings = append(warnings, err)
		} else {
			res.score.Policy = p
		}
	}

	return res, warnings
}

func logWarnings(warnings []error) {
	for _, w := range warnings {
		log.Warnf("%v (Using default value)", w)
	}
}
