// internal/notify/redis.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis is a Notifier backed by Redis pub/sub, one channel per room.
// Multiple service instances sharing the Redis see each other's events.
type Redis struct {
	rdb *redis.Client
	log *logrus.Logger
}

// ConnectRedis dials Redis and verifies the connection.
func ConnectRedis(addr string, db int, logger *logrus.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Redis{rdb: rdb, log: logger}, nil
}

func stageChannel(roomID uuid.UUID) string {
	return "oddball:stage:" + roomID.String()
}

func (r *Redis) PublishStage(ctx context.Context, ev StageEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal StageEvent: %w", err)
	}
	if err := r.rdb.Publish(ctx, stageChannel(ev.RoomID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish stage event: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, roomID uuid.UUID) (<-chan StageEvent, func(), error) {
	sub := r.rdb.Subscribe(ctx, stageChannel(roomID))
	// force the subscription onto the wire before we report success
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to room %s: %w", roomID, err)
	}

	ch := make(chan StageEvent, 8)
	go func() {
		defer close(ch)
		for msg := range sub.Channel() {
			var ev StageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.log.Warnf("dropping malformed stage event on %s: %v", msg.Channel, err)
				continue
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return ch, cancel, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
