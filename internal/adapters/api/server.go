package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// maxBodyBytes bounds command payloads; commands are a handful of fields
const maxBodyBytes = 64 << 10

// Server exposes the game over HTTP. Every command goes through the mediator,
// so the JSON routes and the CLI share handlers, logging and metrics.
type Server struct {
	mediator mediator.Mediator
	hub      *Hub
	registry *prometheus.Registry
	logger   common.Logger

	metricsPath string
}

// NewServer wires the routes. registry may be nil, in which case /metrics is not served.
func NewServer(m mediator.Mediator, hub *Hub, registry *prometheus.Registry, logger common.Logger) *Server {
	return &Server{mediator: m, hub: hub, registry: registry, logger: logger, metricsPath: "/metrics"}
}

// WithMetricsPath moves the Prometheus endpoint
func (s *Server) WithMetricsPath(path string) *Server {
	if path != "" {
		s.metricsPath = path
	}
	return s
}

// Handler returns the root handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/commands/install", commandRoute[appGame.InstallComponentCommand](s))
	mux.HandleFunc("POST /api/commands/remove", commandRoute[appGame.RemoveComponentCommand](s))
	mux.HandleFunc("POST /api/commands/repair", commandRoute[appGame.RepairComponentCommand](s))
	mux.HandleFunc("POST /api/commands/damage", commandRoute[appGame.DamageComponentCommand](s))
	mux.HandleFunc("POST /api/commands/recalculate", commandRoute[appGame.RecalculatePerformanceCommand](s))

	if s.hub != nil {
		mux.HandleFunc("GET /ws", s.hub.ServeWs)
	}
	if s.registry != nil {
		mux.Handle("GET "+s.metricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return corsMiddleware(mux)
}

func (s *Server) context(r *http.Request) context.Context {
	return common.WithLogger(r.Context(), s.logger)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(s.context(r), &appGame.GetStateQuery{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// commandRoute decodes the body into a fresh T and sends it. An empty body
// is accepted for commands without fields.
func commandRoute[T any](s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd := new(T)
		if r.ContentLength != 0 {
			decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			decoder.DisallowUnknownFields()
			if err := decoder.Decode(cmd); err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid JSON body: %v", err)})
				return
			}
		}

		resp, err := s.mediator.Send(s.context(r), cmd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var (
		componentNotFound *shared.ComponentNotFoundError
		missionNotFound   *shared.MissionNotFoundError
		effectNotFound    *shared.EffectNotFoundError
		slotNotFound      *shared.SaveSlotNotFoundError
		noSave            *shared.NoSavedGameError
		mismatch          *shared.CategoryMismatchError
		invalidSlot       *shared.InvalidSlotError
		invalidCategory   *shared.InvalidCategoryError
		alreadyCompleted  *shared.MissionAlreadyCompletedError
		validation        *shared.ValidationError
		invalidFields     validator.ValidationErrors
	)

	switch {
	case errors.As(err, &componentNotFound), errors.As(err, &missionNotFound),
		errors.As(err, &effectNotFound), errors.As(err, &slotNotFound), errors.As(err, &noSave):
		return http.StatusNotFound
	case errors.As(err, &mismatch), errors.As(err, &alreadyCompleted):
		return http.StatusConflict
	case errors.As(err, &invalidSlot), errors.As(err, &invalidCategory),
		errors.As(err, &validation), errors.As(err, &invalidFields):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
