package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/logger"
	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/trivia"
)

func newExtension(t *testing.T) string {
	t.Helper()
	d := extension.New(trivia.Commands())

	mux := http.NewServeMux()
	mux.HandleFunc("/ext/commands", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(d.Commands())
	})
	mux.HandleFunc("/ext/command", func(w http.ResponseWriter, r *http.Request) {
		var req models.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		res, err := d.Invoke(r.Context(), req.Command, &req)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/ext/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Stats{Total: 3, ByScore: map[int]int{1: 1, 3: 2}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsCmd(t *testing.T) {
	out, err := execute(t, "commands", "--url", newExtension(t))
	require.NoError(t, err)
	assert.Equal(t, "val_ans_1\nval_ans_2\nscore\n", out)
}

func TestPlayCmd(t *testing.T) {
	out, err := execute(t, "play", "--url", newExtension(t), "--answers", "1,1,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 2:")
	assert.Contains(t, out, "Question 3:")
	assert.Contains(t, out, "You got 1/3 answers right.")
}

func TestStatsCmd(t *testing.T) {
	out, err := execute(t, "stats", "--url", newExtension(t))
	require.NoError(t, err)
	assert.Contains(t, out, "total: 3\n")
	assert.Contains(t, out, "3/3: 2\n")
	assert.Contains(t, out, "0/3: 0\n")
}

func TestLoadCmd(t *testing.T) {
	out, err := execute(t, "load", "--url", newExtension(t), "-u", "3", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "rounds=6 failures=0")
}

func TestDebugFlag(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("debug", "false")
		logger.Log = zap.NewNop()
	})

	out, err := execute(t, "commands", "--url", newExtension(t), "--debug")
	require.NoError(t, err)
	assert.Equal(t, "val_ans_1\nval_ans_2\nscore\n", out)
	assert.True(t, logger.Log.Core().Enabled(zap.DebugLevel))
}
