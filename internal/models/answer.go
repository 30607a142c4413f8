package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one player's free-text submission for a round, unique per
// (player, room, round). Resubmitting replaces the text in place.
type Answer struct {
	PlayerID    uuid.UUID `json:"player_id"`
	RoomID      uuid.UUID `json:"room_id"`
	Round       int       `json:"round"`
	PromptID    uuid.UUID `json:"prompt_id"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}
