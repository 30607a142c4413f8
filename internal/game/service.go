// internal/game/service.go
package game

import (
	"github.com/sirupsen/logrus"

	"github.com/oddball-games/oddball/internal/notify"
	"github.com/oddball-games/oddball/internal/store"
)

// MaxRoomSize caps how many players can join one room.
const MaxRoomSize = 10

// maxCodeAttempts bounds the room-code collision retry loop.
const maxCodeAttempts = 5

// transitionAttempts bounds retries of stage-advance writes. Advances that
// still fail are logged and dropped; the next poller re-runs the predicate.
const transitionAttempts = 3

// Service owns the round state machine and every operation the transport
// layer exposes. It holds no game state in memory: every predicate is a
// fresh read against the store, so concurrent requests converge on the
// same answer.
type Service struct {
	store    store.Store
	notifier notify.Notifier
	log      *logrus.Logger
}

// NewService wires a Service. notifier may be nil when no push transport is
// configured; observers then rely on polling the same read paths.
func NewService(st store.Store, n notify.Notifier, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{store: st, notifier: n, log: logger}
}
