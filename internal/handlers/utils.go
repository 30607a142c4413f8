// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the game error taxonomy onto HTTP statuses. Anything
// unrecognized surfaces as a generic retryable error with no internals.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrRoomNotFound),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrPromptNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, game.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, game.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, game.ErrInsufficientPlayers),
		errors.Is(err, game.ErrRoomFull):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, game.ErrCodeGenerationExhausted), game.IsRetryable(err):
		http.Error(w, "temporarily unavailable, retry", http.StatusServiceUnavailable)
	default:
		s.Logger.Errorf("internal error: %v", err)
		http.Error(w, "internal error, re-fetch state and retry", http.StatusInternalServerError)
	}
}

// parseUUID reads a UUID from either a query param or a decoded body field.
func parseUUID(val string) (uuid.UUID, error) {
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, game.ErrInvalid
	}
	return id, nil
}
