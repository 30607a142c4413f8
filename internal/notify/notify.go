// internal/notify/notify.go
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oddball-games/oddball/internal/models"
)

// StageEvent announces that a room's round reached a new stage.
type StageEvent struct {
	RoomID uuid.UUID    `json:"room_id"`
	Round  int          `json:"round"`
	Stage  models.Stage `json:"stage"`
	At     time.Time    `json:"at"`
}

// Notifier is the push side of the observer contract. Publish is
// best-effort: a failed publish never fails the write that caused it,
// because pollers read the same state rows directly.
type Notifier interface {
	PublishStage(ctx context.Context, ev StageEvent) error
	// Subscribe returns a channel of stage events for one room plus a
	// cancel func. The channel is closed on cancel.
	Subscribe(ctx context.Context, roomID uuid.UUID) (<-chan StageEvent, func(), error)
}

// Bus is an in-process Notifier fanning events out to subscribers. Sends
// are non-blocking: a subscriber that stopped draining misses events and
// catches up from the poll path.
type Bus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan StageEvent]struct{}
}

// NewBus returns an empty in-process event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uuid.UUID]map[chan StageEvent]struct{})}
}

func (b *Bus) PublishStage(ctx context.Context, ev StageEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[ev.RoomID] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, roomID uuid.UUID) (<-chan StageEvent, func(), error) {
	ch := make(chan StageEvent, 8)
	b.mu.Lock()
	if b.subs[roomID] == nil {
		b.subs[roomID] = make(map[chan StageEvent]struct{})
	}
	b.subs[roomID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[roomID], ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
