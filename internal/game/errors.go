// internal/game/errors.go
package game

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrForbidden means the acting player does not belong to the room it
	// targeted, or named a candidate outside the room.
	ErrForbidden = errors.New("player does not belong to room")

	ErrInvalid = errors.New("invalid input")

	ErrInsufficientPlayers = errors.New("at least 2 players required")
	ErrRoomFull            = errors.New("room is full")

	// ErrCodeGenerationExhausted is returned when every generated room code
	// collided within the attempt budget.
	ErrCodeGenerationExhausted = errors.New("could not generate a unique room code")

	// ErrTransient marks storage timeouts and other retryable failures.
	// Callers may retry; validation errors never wrap it.
	ErrTransient = errors.New("transient storage error")
)

// IsRetryable reports whether err is safe to retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient) ||
		errors.Is(err, context.DeadlineExceeded)
}

// withRetry runs fn up to attempts times, backing off between tries, and
// gives up early on non-retryable errors.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	backoff := 100 * time.Millisecond
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
