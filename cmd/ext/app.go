package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/logger"
	"github.com/wurt83ow/trivia-ext/internal/metrics"
	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
	"github.com/wurt83ow/trivia-ext/internal/trivia"
)

// app инкапсулирует в себя все зависимости и логику приложения
type app struct {
	commands *extension.Dispatcher
	store    store.Store
	metrics  *metrics.Metrics
	build    models.BuildInfo
	now      func() time.Time
}

// newApp принимает на вход внешние зависимости приложения и возвращает новый объект app
func newApp(s store.Store, m *metrics.Metrics, build models.BuildInfo) *app {
	a := &app{
		store:   s,
		metrics: m,
		build:   build,
		now:     time.Now,
	}
	a.commands = extension.New(trivia.Commands(), extension.WithObserver(a.journal))
	return a
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger, gzipMiddleware)

	r.Get("/ext/commands", a.listCommands)
	r.Post("/ext/command", a.executeCommand)
	r.Get("/ext/version", a.version)
	r.Get("/ext/stats", a.stats)
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	return r
}

func (a *app) listCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.commands.Commands())
}

func (a *app) executeCommand(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	logger.Log.Debug("decoding request")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.malformed(w, fmt.Errorf("%w: %v", models.ErrMalformedRequest, err))
		return
	}

	// сначала ищем команду, остальные поля проверяем только у известных команд
	var head struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		a.malformed(w, fmt.Errorf("%w: %v", models.ErrMalformedRequest, err))
		return
	}
	if head.Command == "" {
		a.malformed(w, fmt.Errorf("%w: command is required", models.ErrMalformedRequest))
		return
	}
	if !a.commands.Has(head.Command) {
		a.unknown(w, head.Command, start)
		return
	}

	req, err := decodeRequest(body)
	if err != nil {
		a.malformed(w, err)
		return
	}

	res, err := a.commands.Invoke(r.Context(), req.Command, req)
	if errors.Is(err, extension.ErrUnknownCommand) {
		a.unknown(w, req.Command, start)
		return
	}
	if err != nil {
		logger.Log.Error("command failed", zap.String("command", req.Command), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	a.metrics.Record(req.Command, metrics.OutcomeOK, time.Since(start))

	logger.Log.Debug("command executed",
		zap.String("command", req.Command),
		zap.Any("fsm", res.FSM),
		zap.Int("answers", len(res.Answers)),
	)
	writeJSON(w, http.StatusOK, res)
}

// decodeRequest строго разбирает тело запроса известной команды
func decodeRequest(body []byte) (*models.Request, error) {
	var req models.Request
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedRequest, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after request", models.ErrMalformedRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// unknown отвечает пустым 400, так оркестратор узнаёт о неизвестной команде
func (a *app) unknown(w http.ResponseWriter, command string, start time.Time) {
	logger.Log.Debug("unknown command", zap.String("command", command))
	a.metrics.Record(command, metrics.OutcomeUnknown, time.Since(start))
	w.WriteHeader(http.StatusBadRequest)
}

func (a *app) malformed(w http.ResponseWriter, err error) {
	logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
	a.metrics.Record("", metrics.OutcomeMalformed, 0)
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func (a *app) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.build)
}

func (a *app) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.Stats(r.Context())
	if err != nil {
		logger.Log.Error("cannot load stats", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// journal записывает результат каждой завершённой викторины.
// Ошибка журнала не влияет на ответ оркестратору.
func (a *app) journal(ctx context.Context, command string, req *models.Request, _ *models.Response) {
	if command != trivia.CommandScore {
		return
	}
	correct, total, ok := trivia.Grade(req)
	if !ok {
		return
	}

	err := a.store.SaveResult(ctx, models.Result{
		ID:        uuid.NewString(),
		Sender:    req.Sender(),
		Correct:   correct,
		Total:     total,
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		logger.Log.Error("cannot save quiz result", zap.Int("correct", correct), zap.Error(err))
		a.metrics.JournalError()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// сериализуем ответ сервера
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP response", zap.Int("status", status))
}
