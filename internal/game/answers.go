// internal/game/answers.go
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/store"
)

// AnswerSheet is the answer listing plus the completion predicate, as
// served to clients waiting for the discussion stage.
type AnswerSheet struct {
	Answers      []models.Answer `json:"answers"`
	Round        int             `json:"round"`
	TotalPlayers int             `json:"total_players"`
	AllSubmitted bool            `json:"all_submitted"`
}

// SubmitAnswer records one player's answer for the current round.
// Resubmitting replaces the previous text. When the fresh counts show
// every player has answered (and at least two answers exist), the stage
// advances to discussion_voting.
func (s *Service) SubmitAnswer(ctx context.Context, playerID, roomID, promptID uuid.UUID, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, fmt.Errorf("%w: empty answer", ErrInvalid)
	}

	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrPlayerNotFound
		}
		return false, err
	}
	if player.RoomID != roomID {
		return false, ErrForbidden
	}

	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	if room.RoundNumber == 0 {
		return false, fmt.Errorf("%w: round has not started", ErrInvalid)
	}

	answer := &models.Answer{
		PlayerID:    playerID,
		RoomID:      roomID,
		Round:       room.RoundNumber,
		PromptID:    promptID,
		Text:        text,
		SubmittedAt: time.Now(),
	}
	if err := s.store.UpsertAnswer(ctx, answer); err != nil {
		return false, fmt.Errorf("storing answer: %w", err)
	}

	allSubmitted, err := s.checkAllSubmitted(ctx, roomID, room.RoundNumber)
	if err != nil {
		// the write landed; report it and let the next poller re-check
		s.log.Warnf("completion check failed for room %s round %d: %v", roomID, room.RoundNumber, err)
		return false, nil
	}
	return allSubmitted, nil
}

// CheckAnswers returns all answers for a (room, round) plus the completion
// predicate. Pollers hitting this path re-run the answering →
// discussion_voting trigger, which recovers a previously lost advance.
func (s *Service) CheckAnswers(ctx context.Context, roomID uuid.UUID, round int) (*AnswerSheet, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	answers, err := s.store.ListAnswers(ctx, roomID, round)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}

	allSubmitted, err := s.checkAllSubmitted(ctx, roomID, round)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountPlayers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("counting players: %w", err)
	}

	return &AnswerSheet{
		Answers:      answers,
		Round:        round,
		TotalPlayers: total,
		AllSubmitted: allSubmitted,
	}, nil
}

// checkAllSubmitted re-reads both counts after every write: player count
// and answer count are mutated concurrently, so cached values lie. Fires
// the voting transition when the predicate first holds; redundant fires
// upsert the same stage and are harmless.
func (s *Service) checkAllSubmitted(ctx context.Context, roomID uuid.UUID, round int) (bool, error) {
	totalPlayers, err := s.store.CountPlayers(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("counting players: %w", err)
	}
	totalAnswers, err := s.store.CountAnswers(ctx, roomID, round)
	if err != nil {
		return false, fmt.Errorf("counting answers: %w", err)
	}

	allSubmitted := totalPlayers > 0 && totalAnswers == totalPlayers
	if allSubmitted && totalAnswers >= 2 {
		s.advance(ctx, roomID, round, models.StageVoting)
	}
	return allSubmitted, nil
}
