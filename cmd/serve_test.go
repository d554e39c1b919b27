package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/tonebox/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestSlicesEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/slices?chord=4", bytes.NewReader(singleNoteSMF(t)))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body model.SlicesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, model.SlicesResponse{
		Slices: []model.TimeSlice{{StartMs: 0, StopMs: 500, Notes: []model.Note{{Pitch: 60, Velocity: 100}}}},
		Stats:  model.Stats{SingleNotes: 1, DurationMs: 500},
	}, body)
}

func TestRenderEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render?tempo=2", bytes.NewReader(singleNoteSMF(t)))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// twice the tempo, 250ms
	assert.Len(t, data, 44+11025*2)
	assert.Equal(t, "RIFF", string(data[:4]))
}

func TestRenderRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte("nope")))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "invalid input file")
}

func TestSlicesEndpointBareValueKeepsDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/slices?tempo=", bytes.NewReader(singleNoteSMF(t)))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)

	var body model.SlicesResponse
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	assert.Equal(t, int64(500), body.Stats.DurationMs)
}
