// internal/database/rooms.go
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oddball-games/oddball/internal/models"
)

func (p *Postgres) CreateRoom(ctx context.Context, room *models.Room) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	INSERT INTO rooms (id, code, round_number, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := p.pool.Exec(ctx, q, room.ID, room.Code, room.RoundNumber, room.IsActive, room.CreatedAt)
	return mapErr(err)
}

func (p *Postgres) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var r models.Room
	q := `SELECT id, code, round_number, is_active, created_at FROM rooms WHERE id = $1`
	err := p.pool.QueryRow(ctx, q, id).Scan(&r.ID, &r.Code, &r.RoundNumber, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (p *Postgres) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var r models.Room
	q := `SELECT id, code, round_number, is_active, created_at FROM rooms WHERE UPPER(code) = UPPER($1)`
	err := p.pool.QueryRow(ctx, q, code).Scan(&r.ID, &r.Code, &r.RoundNumber, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (p *Postgres) SetRoomRound(ctx context.Context, roomID uuid.UUID, round int) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	tag, err := p.pool.Exec(ctx, `UPDATE rooms SET round_number = $1 WHERE id = $2`, round, roomID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

// DeleteRoom removes a room and its players in one transaction. Used only
// for rollback of a half-created room.
func (p *Postgres) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	err := pgx.BeginTxFunc(ctx, p.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM players WHERE room_id = $1`, roomID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
		return err
	})
	return mapErr(err)
}
