// Package server exposes the transformation pipeline over HTTP.
//
// The API mirrors the calling convention of the core: the transform
// endpoint always answers 200 with a JSON payload, and failure is a payload
// shape (a root error node), not a status code. The diagram endpoints add
// the playground's share feature on top: save a transform under an ID, read
// it back later.
//
// # Endpoints
//
//	POST /v1/transform      source text in  -> PAD JSON out (always 200)
//	POST /v1/diagrams       source text in  -> saved diagram with ID
//	GET  /v1/diagrams/{id}  saved diagram, or 404
//	GET  /healthz           liveness probe
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/yanqirenshi/padgen/pkg/errors"
	"github.com/yanqirenshi/padgen/pkg/pipeline"
	"github.com/yanqirenshi/padgen/pkg/store"
)

// maxSourceBytes caps the request body. Snippets beyond this are rejected
// rather than parsed.
const maxSourceBytes = 1 << 20

// Server serves the padgen HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	ttl    time.Duration
}

// New creates a server around the given runner and diagram store.
// If st is nil, the diagram endpoints use an in-memory store.
// If logger is nil, the default logger is used. A non-positive ttl means
// cached results keep the pipeline default lifetime.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, ttl time.Duration) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger, ttl: ttl}
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/transform", s.handleTransform)
	r.Post("/v1/diagrams", s.handleCreateDiagram)
	r.Get("/v1/diagrams/{id}", s.handleGetDiagram)

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTransform runs the pipeline on the request body. The transform has
// only a success channel: syntax errors and empty inputs come back as error
// payloads with status 200, matching the core's contract.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}

	result := s.runner.Execute(r.Context(), src, pipeline.Options{
		Refresh: r.URL.Query().Get("refresh") == "true",
		TTL:     s.ttl,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.JSON)
}

// handleCreateDiagram transforms the body and saves the result under a
// fresh ID.
func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}

	result := s.runner.Execute(r.Context(), src, pipeline.Options{TTL: s.ttl})
	d := store.New(string(src), result.JSON)
	if err := s.store.Put(r.Context(), d); err != nil {
		s.logger.Error("save diagram failed", "code", apperrors.GetCode(err), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save diagram"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         d.ID,
		"created_at": d.CreatedAt,
		"pad":        json.RawMessage(d.PAD),
	})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "diagram not found"})
		return
	}
	if err != nil {
		s.logger.Error("load diagram failed", "code", apperrors.GetCode(err), "err", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load diagram"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         d.ID,
		"source":     d.Source,
		"created_at": d.CreatedAt,
		"pad":        json.RawMessage(d.PAD),
	})
}

// readSource reads the request body as source text, bounding its size.
// On failure it writes the error response and returns ok=false.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "source too large"})
		return nil, false
	}
	return src, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
