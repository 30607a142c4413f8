package models

import (
	"time"

	"github.com/google/uuid"
)

// Room represents one game session, identified by a short human-typed code.
// RoundNumber 0 means the room is still in the lobby and no round has started.
type Room struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	RoundNumber int       `json:"round_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
