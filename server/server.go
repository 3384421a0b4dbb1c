// Package server exposes the game service over HTTP. Sessions are out of
// scope: the caller identifies itself with the X-Username header, and the
// ordinal-checked action log handles concurrent submissions.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"domination/game"
	"domination/store"
)

// Server routes HTTP requests to the game service.
type Server struct {
	service *Service
	log     zerolog.Logger
}

// New builds a server over the given store.
func New(s *store.Store, log zerolog.Logger) *Server {
	return &Server{service: NewService(s, log), log: log}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/games", s.handleCreateGame)
	r.Get("/games", s.handleListGames)
	r.Get("/games/{id}", s.handleGetGame)
	r.Post("/games/{id}/actions", s.handleUpdateGame)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request")
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Players []PlayerInput `json:"players"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	state, err := s.service.CreateGame(r.Context(), body.Players)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	username := username(r)
	if username == "" {
		writeError(w, http.StatusUnauthorized, "missing X-Username header")
		return
	}
	summaries, err := s.service.ListGames(r.Context(), username)
	if err != nil {
		s.log.Error().Err(err).Msg("list games")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	username := username(r)
	if username == "" {
		writeError(w, http.StatusUnauthorized, "missing X-Username header")
		return
	}
	state, err := s.service.GetGame(r.Context(), chi.URLParam(r, "id"), username)
	if errors.Is(err, store.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("get game")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	username := username(r)
	if username == "" {
		writeError(w, http.StatusUnauthorized, "missing X-Username header")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	action, err := game.UnmarshalAction(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fields := validateAction(action); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "invalid action",
			"fields": fields,
		})
		return
	}

	state, err := s.service.UpdateGame(r.Context(), chi.URLParam(r, "id"), username, action)
	if errors.Is(err, store.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		// Reducer rejections carry a descriptive reason for the player.
		var rejection *game.ActionError
		if errors.As(err, &rejection) {
			writeError(w, http.StatusUnprocessableEntity, rejection.Error())
			return
		}
		s.log.Error().Err(err).Msg("update game")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func username(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Username"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
