package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/store"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	roomID := uuid.New()
	otherRoom := uuid.New()

	a, cancelA, err := bus.Subscribe(context.Background(), roomID)
	require.NoError(t, err)
	defer cancelA()
	b, cancelB, err := bus.Subscribe(context.Background(), roomID)
	require.NoError(t, err)
	defer cancelB()
	other, cancelOther, err := bus.Subscribe(context.Background(), otherRoom)
	require.NoError(t, err)
	defer cancelOther()

	ev := StageEvent{RoomID: roomID, Round: 1, Stage: models.StageAnswering, At: time.Now()}
	require.NoError(t, bus.PublishStage(context.Background(), ev))

	for _, ch := range []<-chan StageEvent{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, models.StageAnswering, got.Stage)
			assert.Equal(t, roomID, got.RoomID)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the event")
		}
	}

	select {
	case got := <-other:
		t.Fatalf("subscriber on a different room got %+v", got)
	default:
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	roomID := uuid.New()

	ch, cancel, err := bus.Subscribe(context.Background(), roomID)
	require.NoError(t, err)
	cancel()
	cancel() // second cancel is a no-op

	_, open := <-ch
	assert.False(t, open)

	// publishing to a room with no subscribers left must not panic
	require.NoError(t, bus.PublishStage(context.Background(), StageEvent{RoomID: roomID}))
}

func TestBusSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	roomID := uuid.New()

	_, cancel, err := bus.Subscribe(context.Background(), roomID)
	require.NoError(t, err)
	defer cancel()

	// the subscriber never drains; its buffer fills and publishes keep
	// returning
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			_ = bus.PublishStage(context.Background(), StageEvent{RoomID: roomID, Round: 1})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestPollerEmitsOnStageChange(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomID, Code: "POLLER", RoundNumber: 1, IsActive: true}))
	require.NoError(t, mem.UpsertRoundState(ctx, roomID, 1, models.StageWaiting, time.Now()))

	p := NewPoller(mem, 10*time.Millisecond)
	events, cancel, err := p.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()

	// first poll reports the current stage
	select {
	case ev := <-events:
		assert.Equal(t, models.StageWaiting, ev.Stage)
		assert.Equal(t, 1, ev.Round)
	case <-time.After(time.Second):
		t.Fatal("poller never emitted the initial stage")
	}

	require.NoError(t, mem.UpsertRoundState(ctx, roomID, 1, models.StageAnswering, time.Now()))
	select {
	case ev := <-events:
		assert.Equal(t, models.StageAnswering, ev.Stage)
	case <-time.After(time.Second):
		t.Fatal("poller missed the stage change")
	}

	// no change, no event
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollerEmitsOnRoundChange(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	roomID := uuid.New()
	require.NoError(t, mem.CreateRoom(ctx, &models.Room{ID: roomID, Code: "ROUNDY", RoundNumber: 1, IsActive: true}))
	require.NoError(t, mem.UpsertRoundState(ctx, roomID, 1, models.StageResults, time.Now()))

	p := NewPoller(mem, 10*time.Millisecond)
	events, cancel, err := p.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()

	<-events // initial results event

	// a new round resets observers even though the fresh round has no
	// state row yet
	require.NoError(t, mem.SetRoomRound(ctx, roomID, 2))
	select {
	case ev := <-events:
		assert.Equal(t, 2, ev.Round)
		assert.Equal(t, models.StageWaiting, ev.Stage)
	case <-time.After(time.Second):
		t.Fatal("poller missed the round change")
	}
}
