package models

import "github.com/google/uuid"

// Prompt is a pair of question texts: the real one shown to the group and
// the decoy shown to the impostor. Prompts are immutable reference data
// shared across rooms.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	RealText     string    `json:"real_text"`
	ImposterText string    `json:"imposter_text"`
}

// PromptSelection pins the prompt chosen for one (room, round). Write-once:
// the first writer wins and every later reader gets the stored value.
type PromptSelection struct {
	RoomID   uuid.UUID `json:"room_id"`
	Round    int       `json:"round"`
	PromptID uuid.UUID `json:"prompt_id"`
}
