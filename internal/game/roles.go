// internal/game/roles.go
package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
)

// assignImposter clears every impostor flag in the room and then marks
// exactly one player, chosen uniformly at random. Called once per round
// start; the clear-then-set order is what keeps "never two impostors"
// true across rounds.
func (s *Service) assignImposter(ctx context.Context, roomID uuid.UUID, players []models.Player) (uuid.UUID, error) {
	if len(players) < 2 {
		return uuid.Nil, ErrInsufficientPlayers
	}

	if err := s.store.ClearImposters(ctx, roomID); err != nil {
		return uuid.Nil, fmt.Errorf("clearing imposter flags: %w", err)
	}

	chosen := players[rand.Intn(len(players))]
	if err := s.store.SetImposter(ctx, chosen.ID); err != nil {
		return uuid.Nil, fmt.Errorf("setting imposter flag: %w", err)
	}

	s.log.Debugf("room %s: imposter assigned to %s", roomID, chosen.ID)
	return chosen.ID, nil
}

// findImposter returns the player currently flagged as impostor, or nil if
// the round has not assigned one yet.
func findImposter(players []models.Player) *models.Player {
	for i := range players {
		if players[i].IsImposter {
			return &players[i]
		}
	}
	return nil
}
