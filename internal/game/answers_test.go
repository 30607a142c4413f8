package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddball-games/oddball/internal/models"
)

func TestSubmitAnswerUpsertReplaces(t *testing.T) {
	svc, mem, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob", "carol")
	alice := players[0]

	view, err := svc.GetPrompt(context.Background(), alice.ID, room.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), alice.ID, room.ID, view.PromptID, "first draft")
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), alice.ID, room.ID, view.PromptID, "final answer")
	require.NoError(t, err)

	answers, err := mem.ListAnswers(context.Background(), room.ID, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1, "resubmission must replace, not append")
	assert.Equal(t, "final answer", answers[0].Text)
	assert.Equal(t, alice.ID, answers[0].PlayerID)
}

func TestCompletionPredicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob", "carol")

	var last bool
	for i, p := range players {
		view, err := svc.GetPrompt(context.Background(), p.ID, room.ID)
		require.NoError(t, err)
		last, err = svc.SubmitAnswer(context.Background(), p.ID, room.ID, view.PromptID, "answer")
		require.NoError(t, err)
		if i < len(players)-1 {
			assert.False(t, last, "P-1 answers must not complete the round")
		}
	}
	assert.True(t, last, "P answers must complete the round")

	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageVoting, stage)
}

func TestSubmitAnswerValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob")
	alice := players[0]

	view, err := svc.GetPrompt(context.Background(), alice.ID, room.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), alice.ID, room.ID, view.PromptID, "   ")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.SubmitAnswer(context.Background(), uuid.New(), room.ID, view.PromptID, "hello")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, outsiders := setupRoom(t, svc, "mallory", "mike")
	_, err = svc.SubmitAnswer(context.Background(), outsiders[0].ID, room.ID, view.PromptID, "hello")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCheckAnswersRecoversLostTransition(t *testing.T) {
	svc, mem, _ := newTestService(t)
	room, players := startRound(t, svc, "alice", "bob", "carol")

	// answers landed but the stage-advance write was lost
	for _, p := range players {
		require.NoError(t, mem.UpsertAnswer(context.Background(), &models.Answer{
			PlayerID: p.ID, RoomID: room.ID, Round: 1,
			PromptID: uuid.New(), Text: "answer",
		}))
	}

	sheet, err := svc.CheckAnswers(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.True(t, sheet.AllSubmitted)
	assert.Len(t, sheet.Answers, 3)
	assert.Equal(t, 3, sheet.TotalPlayers)

	stage, err := svc.GameState(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StageVoting, stage, "poll path must re-run the transition")
}

func TestCheckAnswersUnknownRoom(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.CheckAnswers(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
