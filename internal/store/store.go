// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oddball-games/oddball/internal/models"
)

var (
	// ErrNotFound is returned by keyed reads when no row matches.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned by inserts that hit an existing unique key.
	// Callers doing idempotent writes absorb it by reading back the row.
	ErrConflict = errors.New("store: conflict")
)

// Store is the durable-store collaborator every game component coordinates
// through. Implementations must support atomic upsert-by-key and enforce
// one row per acting entity per (room, round). ListPlayers must return
// players in join order; the vote tally's tie-break depends on it.
type Store interface {
	// rooms
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	SetRoomRound(ctx context.Context, roomID uuid.UUID, round int) error
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error

	// players
	CreatePlayer(ctx context.Context, player *models.Player) error
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error)
	CountPlayers(ctx context.Context, roomID uuid.UUID) (int, error)
	ClearImposters(ctx context.Context, roomID uuid.UUID) error
	SetImposter(ctx context.Context, playerID uuid.UUID) error

	// prompts
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error
	GetPrompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error)
	ListPrompts(ctx context.Context) ([]models.Prompt, error)

	// prompt selections (write-once per key; insert returns ErrConflict on dup)
	GetPromptSelection(ctx context.Context, roomID uuid.UUID, round int) (*models.PromptSelection, error)
	InsertPromptSelection(ctx context.Context, sel *models.PromptSelection) error
	DeletePromptSelections(ctx context.Context, roomID uuid.UUID) error

	// answers
	UpsertAnswer(ctx context.Context, answer *models.Answer) error
	ListAnswers(ctx context.Context, roomID uuid.UUID, round int) ([]models.Answer, error)
	CountAnswers(ctx context.Context, roomID uuid.UUID, round int) (int, error)
	DeleteAnswers(ctx context.Context, roomID uuid.UUID) error

	// votes
	UpsertVote(ctx context.Context, vote *models.Vote) error
	ListVotes(ctx context.Context, roomID uuid.UUID, round int) ([]models.Vote, error)
	DeleteVotes(ctx context.Context, roomID uuid.UUID) error

	// round state
	UpsertRoundState(ctx context.Context, roomID uuid.UUID, round int, stage models.Stage, at time.Time) error
	GetRoundState(ctx context.Context, roomID uuid.UUID, round int) (*models.RoundState, error)
}
