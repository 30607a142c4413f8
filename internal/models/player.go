package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a participant in a room. IsImposter is cleared and reassigned
// at the start of every round; exactly one player per room carries it once
// a round is underway.
type Player struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	Name       string    `json:"name"`
	IsImposter bool      `json:"is_imposter"`
	JoinedAt   time.Time `json:"joined_at"`
}
