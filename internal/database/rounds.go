// internal/database/rounds.go
package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
)

// UpsertRoundState blindly writes the stage for (room, round). Writers all
// derive their target from durable counts, so last-writer-wins converges.
func (p *Postgres) UpsertRoundState(ctx context.Context, roomID uuid.UUID, round int, stage models.Stage, at time.Time) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	INSERT INTO round_states (room_id, round, current_stage, last_updated)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (room_id, round)
	DO UPDATE SET current_stage = EXCLUDED.current_stage,
	              last_updated = EXCLUDED.last_updated
	`
	_, err := p.pool.Exec(ctx, q, roomID, round, string(stage), at)
	return mapErr(err)
}

func (p *Postgres) GetRoundState(ctx context.Context, roomID uuid.UUID, round int) (*models.RoundState, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var st models.RoundState
	var stage string
	q := `SELECT room_id, round, current_stage, last_updated FROM round_states WHERE room_id = $1 AND round = $2`
	err := p.pool.QueryRow(ctx, q, roomID, round).Scan(&st.RoomID, &st.Round, &stage, &st.LastUpdated)
	if err != nil {
		return nil, mapErr(err)
	}
	st.Stage = models.Stage(stage)
	return &st, nil
}
