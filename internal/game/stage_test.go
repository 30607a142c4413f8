package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddball-games/oddball/internal/models"
)

func TestStageOrdering(t *testing.T) {
	assert.True(t, models.StageWaiting.Before(models.StagePrompt))
	assert.True(t, models.StageAnswering.Before(models.StageVoting))
	assert.True(t, models.StageVoting.Before(models.StageResults))
	assert.False(t, models.StageResults.Before(models.StageWaiting))
	assert.Equal(t, -1, models.Stage("bogus").Index())
}

func TestMissingStateReadsAsWaiting(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, _ := setupRoom(t, svc, "alice", "bob")

	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageWaiting, stage)
}

func TestPromptFetchAdvancesWaitingToAnswering(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob")

	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.StageWaiting, stage)

	_, err = svc.GetPrompt(context.Background(), players[0].ID, room.ID)
	require.NoError(t, err)

	stage, err = svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageAnswering, stage)
}

func TestRedundantTriggersAreHarmless(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob", "carol")
	submitAllAnswers(t, svc, room, players)

	// re-running the answering predicate from several pollers must keep
	// the stage where it is
	for i := 0; i < 3; i++ {
		sheet, err := svc.CheckAnswers(context.Background(), room.ID, 1)
		require.NoError(t, err)
		assert.True(t, sheet.AllSubmitted)
	}
	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageVoting, stage)
}

func TestBackwardTransitionRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob", "carol")
	submitAllAnswers(t, svc, room, players)

	for _, p := range players {
		_, err := svc.SubmitVote(context.Background(), p.ID, room.ID, players[0].ID)
		require.NoError(t, err)
	}
	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.StageResults, stage)

	// a client re-fetching its prompt and a late answers poll must not
	// drag the round backward
	_, err = svc.GetPrompt(context.Background(), players[1].ID, room.ID)
	require.NoError(t, err)
	_, err = svc.CheckAnswers(context.Background(), room.ID, 1)
	require.NoError(t, err)

	stage, err = svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageResults, stage)
}

func TestStageEventsPublished(t *testing.T) {
	svc, _, bus := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob")

	events, cancel, err := bus.Subscribe(context.Background(), room.ID)
	require.NoError(t, err)
	defer cancel()

	_, err = svc.GetPrompt(context.Background(), players[0].ID, room.ID)
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, room.ID, ev.RoomID)
		assert.Equal(t, 1, ev.Round)
		assert.Equal(t, models.StageAnswering, ev.Stage)
	case <-time.After(time.Second):
		t.Fatal("expected a stage event on the bus")
	}
}
