package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/trivia"
)

// fakeExtension serves the trivia commands with the wire behaviour of the real server.
func fakeExtension(t *testing.T) *httptest.Server {
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
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if !d.Has(req.Command) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Code: http.StatusBadRequest, Message: err.Error()})
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
	mux.HandleFunc("/ext/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.BuildInfo{Version: "v9"})
	})
	mux.HandleFunc("/ext/stats", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "journal down", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Commands(t *testing.T) {
	c := New(fakeExtension(t).URL)

	cmds, err := c.Commands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"val_ans_1", "val_ans_2", "score"}, cmds)
}

func TestClient_Invoke(t *testing.T) {
	c := New(fakeExtension(t).URL)
	ctx := context.Background()

	res, err := c.Invoke(ctx, &models.Request{
		Command: "score",
		FSM:     &models.FSM{State: "s", Slots: map[string]string{"answer_1": "2", "answer_2": "1", "answer_3": "3"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Answers, 1)
	assert.Contains(t, res.Answers[0].Text, "3/3")

	_, err = c.Invoke(ctx, &models.Request{Command: "nope", FSM: &models.FSM{}})
	assert.ErrorIs(t, err, extension.ErrUnknownCommand)

	// an unknown command is reported as such even without an fsm
	_, err = c.Invoke(ctx, &models.Request{Command: "nope"})
	assert.ErrorIs(t, err, extension.ErrUnknownCommand)

	_, err = c.Invoke(ctx, &models.Request{Command: "score"})
	assert.ErrorIs(t, err, models.ErrMalformedRequest)
	assert.Contains(t, err.Error(), "fsm is required")
}

func TestClient_Debug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(fakeExtension(t).URL, WithDebug(zap.New(core).Sugar()))

	_, err := c.Commands(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, logs.FilterLevelExact(zap.DebugLevel).Len())
}

func TestClient_VersionAndStats(t *testing.T) {
	c := New(fakeExtension(t).URL, WithRetries(0))
	ctx := context.Background()

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v9", v.Version)

	_, err = c.Stats(ctx)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_RetriesTransportErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// drop the first connection without an answer
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["score"]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(2), WithTimeout(time.Second))
	cmds, err := c.Commands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, cmds)
	assert.Equal(t, int32(2), calls.Load())
}
