package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignImposterExactlyOne(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := setupRoom(t, svc, "alice", "bob", "carol", "dave")

	chosen, err := svc.assignImposter(context.Background(), room.ID, players)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, chosen)

	fresh, err := svc.Players(context.Background(), room.ID)
	require.NoError(t, err)

	flagged := 0
	for _, p := range fresh {
		if p.IsImposter {
			flagged++
			assert.Equal(t, chosen, p.ID)
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestAssignImposterInsufficientPlayers(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := setupRoom(t, svc, "alice")

	_, err := svc.assignImposter(context.Background(), room.ID, players)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestImposterInvariantAcrossRounds(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, _ := startRound(t, svc, "alice", "bob", "carol")

	for round := 2; round <= 5; round++ {
		got, err := svc.StartNewRound(context.Background(), room.ID)
		require.NoError(t, err)
		require.Equal(t, round, got)

		players, err := svc.Players(context.Background(), room.ID)
		require.NoError(t, err)

		flagged := 0
		for _, p := range players {
			if p.IsImposter {
				flagged++
			}
		}
		assert.Equal(t, 1, flagged, "round %d must have exactly one impostor", round)
	}
}
