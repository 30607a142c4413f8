// internal/notify/poller.go
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oddball-games/oddball/internal/models"
)

// StateReader is the slice of the store the poller reads. It is the same
// read path served to clients, so push and poll observers see identical
// state.
type StateReader interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetRoundState(ctx context.Context, roomID uuid.UUID, round int) (*models.RoundState, error)
}

// DefaultPollInterval is how often the poller re-reads round state.
const DefaultPollInterval = 3 * time.Second

// Poller is the fallback Notifier used when no push transport is
// available. Subscribers get an event whenever the observed stage or round
// number changes between polls. PublishStage is a no-op: poll observers
// derive everything from the store.
type Poller struct {
	reader   StateReader
	interval time.Duration
}

// NewPoller wraps a state reader. A non-positive interval falls back to
// DefaultPollInterval.
func NewPoller(reader StateReader, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{reader: reader, interval: interval}
}

func (p *Poller) PublishStage(ctx context.Context, ev StageEvent) error {
	return nil
}

func (p *Poller) Subscribe(ctx context.Context, roomID uuid.UUID) (<-chan StageEvent, func(), error) {
	ch := make(chan StageEvent, 8)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var lastStage models.Stage
		lastRound := -1
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			room, err := p.reader.GetRoom(ctx, roomID)
			if err != nil {
				continue
			}
			stage := models.StageWaiting
			at := time.Now()
			if st, err := p.reader.GetRoundState(ctx, roomID, room.RoundNumber); err == nil {
				stage = st.Stage
				at = st.LastUpdated
			}
			if stage == lastStage && room.RoundNumber == lastRound {
				continue
			}
			lastStage = stage
			lastRound = room.RoundNumber
			select {
			case ch <- StageEvent{RoomID: roomID, Round: room.RoundNumber, Stage: stage, At: at}:
			default:
			}
		}
	}()

	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }
	return ch, cancel, nil
}
