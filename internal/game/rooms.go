// internal/game/rooms.go
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

// CreateRoom creates a room with a fresh unique code and its host player.
// If the host row cannot be created the room is rolled back so no orphan
// rooms accumulate.
func (s *Service) CreateRoom(ctx context.Context, hostName string) (*models.Room, *models.Player, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, nil, fmt.Errorf("%w: host name required", ErrInvalid)
	}

	var room *models.Room
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := &models.Room{
			ID:          uuid.New(),
			Code:        NewRoomCode(CodeLength),
			RoundNumber: 0,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		err := s.store.CreateRoom(ctx, candidate)
		if err == nil {
			room = candidate
			break
		}
		if errors.Is(err, store.ErrConflict) {
			s.log.Debugf("room code %s collided, retrying", candidate.Code)
			continue
		}
		return nil, nil, fmt.Errorf("creating room: %w", err)
	}
	if room == nil {
		return nil, nil, ErrCodeGenerationExhausted
	}

	host := &models.Player{
		ID:       uuid.New(),
		RoomID:   room.ID,
		Name:     hostName,
		JoinedAt: time.Now(),
	}
	if err := s.store.CreatePlayer(ctx, host); err != nil {
		// best-effort rollback; a failure here leaves an inactive room the
		// join path treats as not found
		if delErr := s.store.DeleteRoom(ctx, room.ID); delErr != nil {
			s.log.Warnf("failed to roll back room %s: %v", room.ID, delErr)
		}
		return nil, nil, fmt.Errorf("creating host player: %w", err)
	}

	s.log.Infof("room %s created with code %s by %s", room.ID, room.Code, hostName)
	return room, host, nil
}

// JoinRoom adds a player to an active room looked up by code
// (case-insensitive). Rooms hold at most MaxRoomSize players.
func (s *Service) JoinRoom(ctx context.Context, playerName, code string) (*models.Room, *models.Player, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, nil, fmt.Errorf("%w: player name required", ErrInvalid)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, fmt.Errorf("%w: room code required", ErrInvalid)
	}

	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}
	if !room.IsActive {
		return nil, nil, ErrRoomNotFound
	}

	count, err := s.store.CountPlayers(ctx, room.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("counting players: %w", err)
	}
	if count >= MaxRoomSize {
		return nil, nil, ErrRoomFull
	}

	player := &models.Player{
		ID:       uuid.New(),
		RoomID:   room.ID,
		Name:     playerName,
		JoinedAt: time.Now(),
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, nil, fmt.Errorf("creating player: %w", err)
	}

	s.log.Infof("player %s joined room %s", playerName, room.Code)
	return room, player, nil
}

// StartGame starts the first round of a room looked up by code. It is
// StartNewRound behind a code lookup, so starting and restarting share one
// path.
func (s *Service) StartGame(ctx context.Context, code string) (int, error) {
	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	if !room.IsActive {
		return 0, ErrRoomNotFound
	}
	return s.StartNewRound(ctx, room.ID)
}

// StartNewRound advances the room to the next round: bump the round
// number, purge the room's answers, votes and prompt selections, reset the
// stage to waiting, then reassign the impostor and pin the new prompt.
//
// The purge is room-wide (all rounds, not just the one that finished).
// Finished rounds are never read again and a room-wide sweep guarantees a
// stale row can never resurface as current-round data.
func (s *Service) StartNewRound(ctx context.Context, roomID uuid.UUID) (int, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}

	players, err := s.store.ListPlayers(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("listing players: %w", err)
	}
	if len(players) < 2 {
		return 0, ErrInsufficientPlayers
	}

	newRound := room.RoundNumber + 1
	if err := s.store.SetRoomRound(ctx, roomID, newRound); err != nil {
		return 0, fmt.Errorf("advancing round number: %w", err)
	}

	if err := s.purgeRoundData(ctx, roomID); err != nil {
		return 0, err
	}

	if err := s.setStage(ctx, roomID, newRound, models.StageWaiting); err != nil {
		return 0, fmt.Errorf("resetting round state: %w", err)
	}

	if _, err := s.assignImposter(ctx, roomID, players); err != nil {
		return 0, err
	}
	if _, err := s.selectPrompt(ctx, roomID, newRound); err != nil {
		return 0, err
	}

	s.log.Infof("room %s advanced to round %d with %d players", roomID, newRound, len(players))
	return newRound, nil
}

func (s *Service) purgeRoundData(ctx context.Context, roomID uuid.UUID) error {
	err := withRetry(ctx, transitionAttempts, func() error {
		return s.store.DeleteAnswers(ctx, roomID)
	})
	if err != nil {
		return fmt.Errorf("purging answers: %w", err)
	}
	err = withRetry(ctx, transitionAttempts, func() error {
		return s.store.DeleteVotes(ctx, roomID)
	})
	if err != nil {
		return fmt.Errorf("purging votes: %w", err)
	}
	err = withRetry(ctx, transitionAttempts, func() error {
		return s.store.DeletePromptSelections(ctx, roomID)
	})
	if err != nil {
		return fmt.Errorf("purging prompt selections: %w", err)
	}
	return nil
}

// Room fetches a room by ID.
func (s *Service) Room(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// Players lists the room's players in join order.
func (s *Service) Players(ctx context.Context, roomID uuid.UUID) ([]models.Player, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.store.ListPlayers(ctx, roomID)
}
