// internal/game/stage.go
package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/notify"
	"github.com/oddball-games/oddball/internal/store"
)

// The round state machine never requires "am I in stage X" before moving
// to Y. Every writer recomputes its target stage from durable counts and
// upserts it, so racing duplicate triggers all land on the same value.
// Side-effect advances additionally skip targets the round already passed:
// a late poller re-running the answering predicate after voting concluded
// must not drag the stage backward. A new round starts over under a new
// (room, round) key, so the monotonic check never blocks a round reset.

// GameState returns the current stage for a (room, round). A missing state
// row reads as StageWaiting.
func (s *Service) GameState(ctx context.Context, roomID uuid.UUID, round int) (models.Stage, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrRoomNotFound
		}
		return "", err
	}
	return s.currentStage(ctx, roomID, round), nil
}

// Subscribe attaches a stage observer for the room via the configured
// notifier. Callers without a push transport poll GameState instead.
func (s *Service) Subscribe(ctx context.Context, roomID uuid.UUID) (<-chan notify.StageEvent, func(), error) {
	if s.notifier == nil {
		return nil, nil, errors.New("no notifier configured")
	}
	return s.notifier.Subscribe(ctx, roomID)
}

func (s *Service) currentStage(ctx context.Context, roomID uuid.UUID, round int) models.Stage {
	st, err := s.store.GetRoundState(ctx, roomID, round)
	if err != nil {
		return models.StageWaiting
	}
	return st.Stage
}

// setStage upserts the stage row and announces the change. Storage errors
// are returned to the caller; publish failures are only logged since
// pollers read the row directly.
func (s *Service) setStage(ctx context.Context, roomID uuid.UUID, round int, stage models.Stage) error {
	now := time.Now()
	err := withRetry(ctx, transitionAttempts, func() error {
		return s.store.UpsertRoundState(ctx, roomID, round, stage, now)
	})
	if err != nil {
		return err
	}
	if s.notifier != nil {
		ev := notify.StageEvent{RoomID: roomID, Round: round, Stage: stage, At: now}
		if err := s.notifier.PublishStage(ctx, ev); err != nil {
			s.log.Warnf("failed to publish stage %s for room %s round %d: %v", stage, roomID, round, err)
		}
	}
	return nil
}

// advance upserts the target stage as a side effect of a successful player
// action, skipping stages the round already passed. It never fails the
// parent operation: a lost write here is recovered by the next caller
// re-running the same predicate.
func (s *Service) advance(ctx context.Context, roomID uuid.UUID, round int, target models.Stage) {
	cur := s.currentStage(ctx, roomID, round)
	if !cur.Before(target) {
		return
	}
	if err := s.setStage(ctx, roomID, round, target); err != nil {
		s.log.Warnf("stage advance to %s failed for room %s round %d: %v", target, roomID, round, err)
	}
}
