package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/notify"
	"github.com/oddball-games/oddball/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestService builds a service on the in-memory store with a seeded
// prompt set and an in-process event bus.
func newTestService(t *testing.T) (*Service, *store.Memory, *notify.Bus) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, SeedPrompts(context.Background(), mem))
	bus := notify.NewBus()
	return NewService(mem, bus, testLogger()), mem, bus
}

// setupRoom creates a room with the given players, the first one hosting.
func setupRoom(t *testing.T, svc *Service, names ...string) (*models.Room, []models.Player) {
	t.Helper()
	require.NotEmpty(t, names)

	room, host, err := svc.CreateRoom(context.Background(), names[0])
	require.NoError(t, err)

	players := []models.Player{*host}
	for _, name := range names[1:] {
		_, p, err := svc.JoinRoom(context.Background(), name, room.Code)
		require.NoError(t, err)
		players = append(players, *p)
	}
	return room, players
}

// startRound creates a room, starts its first round and returns the fresh
// player list (impostor flags included).
func startRound(t *testing.T, svc *Service, names ...string) (*models.Room, []models.Player) {
	t.Helper()
	room, _ := setupRoom(t, svc, names...)

	round, err := svc.StartGame(context.Background(), room.Code)
	require.NoError(t, err)
	require.Equal(t, 1, round)
	room.RoundNumber = round

	players, err := svc.Players(context.Background(), room.ID)
	require.NoError(t, err)
	return room, players
}

// submitAllAnswers fetches each player's prompt and submits an answer,
// driving the round into the discussion_voting stage.
func submitAllAnswers(t *testing.T, svc *Service, room *models.Room, players []models.Player) {
	t.Helper()
	for _, p := range players {
		view, err := svc.GetPrompt(context.Background(), p.ID, room.ID)
		require.NoError(t, err)
		_, err = svc.SubmitAnswer(context.Background(), p.ID, room.ID, view.PromptID, "answer from "+p.Name)
		require.NoError(t, err)
	}
}

// castVote stores a vote row directly, bypassing the service, for tests
// that arrange tallies by hand.
func castVote(t *testing.T, st store.Store, voter, votedFor uuid.UUID, roomID uuid.UUID, round int) {
	t.Helper()
	err := st.UpsertVote(context.Background(), &models.Vote{
		VoterID:    voter,
		RoomID:     roomID,
		Round:      round,
		VotedForID: votedFor,
		CastAt:     time.Now(),
	})
	require.NoError(t, err)
}
