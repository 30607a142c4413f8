package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddball-games/oddball/internal/models"
)

func TestMemoryPlayersKeepJoinOrder(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomID, Code: "ORDERD", IsActive: true}))

	names := []string{"first", "second", "third", "fourth"}
	for _, name := range names {
		require.NoError(t, mem.CreatePlayer(ctx, &models.Player{
			ID: uuid.New(), RoomID: roomID, Name: name, JoinedAt: time.Now(),
		}))
	}

	players, err := mem.ListPlayers(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, players, len(names))
	for i, p := range players {
		assert.Equal(t, names[i], p.Name)
	}
}

func TestMemoryRoomCodeLookupIsCaseInsensitive(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomID, Code: "AbCdEf", IsActive: true}))

	for _, code := range []string{"ABCDEF", "abcdef", "AbCdEf"} {
		room, err := mem.GetRoomByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, roomID, room.ID)
	}

	// duplicate codes are rejected regardless of case
	err := mem.CreateRoom(ctx, &models.Room{ID: uuid.New(), Code: "ABCDEF", IsActive: true})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryPromptSelectionWriteOnce(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	first := uuid.New()

	require.NoError(t, mem.InsertPromptSelection(ctx, &models.PromptSelection{
		RoomID: roomID, Round: 1, PromptID: first,
	}))
	err := mem.InsertPromptSelection(ctx, &models.PromptSelection{
		RoomID: roomID, Round: 1, PromptID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrConflict)

	sel, err := mem.GetPromptSelection(ctx, roomID, 1)
	require.NoError(t, err)
	assert.Equal(t, first, sel.PromptID)
}

func TestMemoryUpsertSemantics(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomID, Code: "UPSERT", IsActive: true}))
	playerID := uuid.New()
	require.NoError(t, mem.CreatePlayer(ctx, &models.Player{ID: playerID, RoomID: roomID, Name: "p"}))

	a := &models.Answer{PlayerID: playerID, RoomID: roomID, Round: 1, PromptID: uuid.New(), Text: "one"}
	require.NoError(t, mem.UpsertAnswer(ctx, a))
	a.Text = "two"
	require.NoError(t, mem.UpsertAnswer(ctx, a))

	count, err := mem.CountAnswers(ctx, roomID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	answers, err := mem.ListAnswers(ctx, roomID, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "two", answers[0].Text)

	require.NoError(t, mem.UpsertRoundState(ctx, roomID, 1, models.StageWaiting, time.Now()))
	require.NoError(t, mem.UpsertRoundState(ctx, roomID, 1, models.StageAnswering, time.Now()))
	st, err := mem.GetRoundState(ctx, roomID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageAnswering, st.Stage)
}

func TestMemoryRoomScopedPurges(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	roomA, roomB := uuid.New(), uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomA, Code: "ROOMAA", IsActive: true}))
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomB, Code: "ROOMBB", IsActive: true}))

	pA := &models.Player{ID: uuid.New(), RoomID: roomA, Name: "a"}
	pB := &models.Player{ID: uuid.New(), RoomID: roomB, Name: "b"}
	require.NoError(t, mem.CreatePlayer(ctx, pA))
	require.NoError(t, mem.CreatePlayer(ctx, pB))

	for round := 1; round <= 2; round++ {
		require.NoError(t, mem.UpsertAnswer(ctx, &models.Answer{PlayerID: pA.ID, RoomID: roomA, Round: round, Text: "x"}))
		require.NoError(t, mem.UpsertVote(ctx, &models.Vote{VoterID: pA.ID, RoomID: roomA, Round: round, VotedForID: pA.ID}))
	}
	require.NoError(t, mem.UpsertAnswer(ctx, &models.Answer{PlayerID: pB.ID, RoomID: roomB, Round: 1, Text: "keep"}))

	require.NoError(t, mem.DeleteAnswers(ctx, roomA))
	require.NoError(t, mem.DeleteVotes(ctx, roomA))

	for round := 1; round <= 2; round++ {
		count, err := mem.CountAnswers(ctx, roomA, round)
		require.NoError(t, err)
		assert.Zero(t, count, "round %d answers must be purged", round)
	}
	count, err := mem.CountAnswers(ctx, roomB, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other rooms are untouched")
}
