// Package api implements the HTTP resolution service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/pipeline"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/store"
)

// Server wires the resolution runner and universe store into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates an API server. A nil logger defaults to the package
// default logger.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routes:
//
//	GET    /healthz
//	POST   /v1/resolve
//	GET    /v1/universes
//	PUT    /v1/universes/{name}
//	GET    /v1/universes/{name}
//	DELETE /v1/universes/{name}
//	GET    /v1/universes/{name}/order/{focus}
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/resolve", s.handleResolve)

	r.Route("/v1/universes", func(r chi.Router) {
		r.Get("/", s.handleListUniverses)
		r.Put("/{name}", s.handlePutUniverse)
		r.Get("/{name}", s.handleGetUniverse)
		r.Delete("/{name}", s.handleDeleteUniverse)
		r.Get("/{name}/order/{focus}", s.handleStoredOrder)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveRequest is the body of POST /v1/resolve: an inline universe plus
// the focus rule and resolver options.
type resolveRequest struct {
	Universe        rule.Universe `json:"universe"`
	Focus           string        `json:"focus"`
	DisableRecovery bool          `json:"disable_recovery"`
	Refresh         bool          `json:"refresh"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if err := errors.ValidateRuleName(req.Focus); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Universe.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Resolve(r.Context(), &req.Universe, pipeline.Options{
		Focus:           req.Focus,
		DisableRecovery: req.DisableRecovery,
		Refresh:         req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListUniverses(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"universes": names})
}

func (s *Server) handlePutUniverse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var u rule.Universe
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode universe"))
		return
	}
	u.Name = name

	if err := s.store.Put(r.Context(), &u); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"name":        name,
		"fingerprint": u.Fingerprint(),
	})
}

func (s *Server) handleGetUniverse(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUniverse(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStoredOrder(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	focus := chi.URLParam(r, "focus")

	u, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !u.Has(focus) {
		s.writeError(w, r, errors.New(errors.ErrCodeRuleNotFound,
			"rule %q not in universe %q", focus, name))
		return
	}

	opts := pipeline.Options{Focus: focus}
	if r.URL.Query().Get("refresh") == "true" {
		opts.Refresh = true
	}
	if r.URL.Query().Get("disable_recovery") == "true" {
		opts.DisableRecovery = true
	}

	res, err := s.runner.Resolve(r.Context(), u, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRule,
		errors.ErrCodeInvalidUniverse, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeRuleNotFound,
		errors.ErrCodeUniverseNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvariantViolation:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeStorage:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
