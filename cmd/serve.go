package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tonebox/constants"
	"github.com/jsphweid/tonebox/model"
	"github.com/jsphweid/tonebox/score"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// uploads bigger than this are not midi files anyone wants rendered
const maxUploadBytes = 16 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves renders over http",
	Long:  `Accepts MIDI files over http and answers with the rendered wav or the sliced timeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.WithField("addr", serveAddr).Info("Listening")
		return http.ListenAndServe(serveAddr, NewHandler())
	},
}

func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", handleHealth).Methods("GET")
	router.HandleFunc("/render", handleRender).Methods("POST")
	router.HandleFunc("/slices", handleSlices).Methods("POST")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	if errors.Is(err, model.ErrInputFormat) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func queryOptions(r *http.Request) rawOptions {
	q := r.URL.Query()
	_, noPerc := q["noperc"]
	given := make(map[string]bool)
	for _, name := range []string{"pitch", "tempo", "chord"} {
		_, given[name] = q[name]
	}
	return rawOptions{
		skip:   q["skip"],
		noPerc: noPerc,
		pitch:  q.Get("pitch"),
		tempo:  q.Get("tempo"),
		chord:  q.Get("chord"),
		given:  given,
	}
}

// readScore builds the score for the uploaded midi file in the request body.
func readScore(r *http.Request, logger *log.Entry) (*score.Score, renderOptions, error) {
	opts, warnings := queryOptions(r).resolve()
	for _, w := range warnings {
		logger.Warnf("%v (Using default value)", w)
	}
	sc, err := score.Read(io.LimitReader(r.Body, maxUploadBytes), opts.score)
	return sc, opts, err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func handleSlices(w http.ResponseWriter, r *http.Request) {
	logger := log.WithField("request", uuid.New().String())
	sc, _, err := readScore(r, logger)
	if err != nil {
		logger.Warnf("Could not build slices: %v", err)
		writeError(w, errorStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.SlicesResponse{Slices: sc.Slices, Stats: sc.Stats})
}

func handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	logger := log.WithField("request", id)

	sc, opts, err := readScore(r, logger)
	if err != nil {
		logger.Warnf("Could not render: %v", err)
		writeError(w, errorStatus(err), err)
		return
	}

	// the wav header needs a seekable file, render to disk first
	dir, err := os.MkdirTemp("", "tonebox")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, id+".wav")
	if err := writeOutput(sc, opts.offset, path, false); err != nil {
		logger.Errorf("Could not render: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	logger.WithField("slices", len(sc.Slices)).Info("Rendered")
	w.Header().Set("Content-Type", "audio/wav")
	io.Copy(w, f)
}
