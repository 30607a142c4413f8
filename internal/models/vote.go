package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records who a player accused in a round, unique per
// (voter, room, round) with replace-on-resubmit semantics.
type Vote struct {
	VoterID    uuid.UUID `json:"voter_id"`
	RoomID     uuid.UUID `json:"room_id"`
	Round      int       `json:"round"`
	VotedForID uuid.UUID `json:"voted_for_id"`
	CastAt     time.Time `json:"cast_at"`
}
