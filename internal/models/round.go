package models

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the current phase of a round. Stages only move forward within a
// round; starting a new round resets to StageWaiting.
type Stage string

const (
	StageWaiting   Stage = "waiting"
	StagePrompt    Stage = "prompt"
	StageAnswering Stage = "answering"
	StageVoting    Stage = "discussion_voting"
	StageResults   Stage = "results"
)

var stageOrder = map[Stage]int{
	StageWaiting:   0,
	StagePrompt:    1,
	StageAnswering: 2,
	StageVoting:    3,
	StageResults:   4,
}

// Index returns the forward position of the stage, or -1 for unknown values.
func (s Stage) Index() int {
	idx, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return idx
}

// Before reports whether s comes earlier than other in the round order.
func (s Stage) Before(other Stage) bool {
	return s.Index() < other.Index()
}

func (s Stage) String() string {
	return string(s)
}

// RoundState is the authoritative stage row for one (room, round). All
// writers upsert it; readers treat a missing row as StageWaiting.
type RoundState struct {
	RoomID      uuid.UUID `json:"room_id"`
	Round       int       `json:"round"`
	Stage       Stage     `json:"stage"`
	LastUpdated time.Time `json:"last_updated"`
}
