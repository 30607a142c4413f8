// internal/database/players.go
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oddball-games/oddball/internal/models"
)

func (p *Postgres) CreatePlayer(ctx context.Context, player *models.Player) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	INSERT INTO players (id, room_id, name, is_imposter, joined_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := p.pool.Exec(ctx, q, player.ID, player.RoomID, player.Name, player.IsImposter, player.JoinedAt)
	return mapErr(err)
}

func (p *Postgres) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var pl models.Player
	q := `SELECT id, room_id, name, is_imposter, joined_at FROM players WHERE id = $1`
	err := p.pool.QueryRow(ctx, q, id).Scan(&pl.ID, &pl.RoomID, &pl.Name, &pl.IsImposter, &pl.JoinedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &pl, nil
}

// ListPlayers returns the room's players in join order. The vote tally's
// first-reach tie-break depends on this ordering staying stable.
func (p *Postgres) ListPlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	SELECT id, room_id, name, is_imposter, joined_at
	FROM players
	WHERE room_id = $1
	ORDER BY joined_at, id
	`
	rows, err := p.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var pl models.Player
		if err := rows.Scan(&pl.ID, &pl.RoomID, &pl.Name, &pl.IsImposter, &pl.JoinedAt); err != nil {
			return nil, mapErr(err)
		}
		players = append(players, pl)
	}
	return players, mapErr(rows.Err())
}

func (p *Postgres) CountPlayers(ctx context.Context, roomID uuid.UUID) (int, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var count int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players WHERE room_id = $1`, roomID).Scan(&count)
	return count, mapErr(err)
}

// ClearImposters and SetImposter run as separate statements by design: the
// round start sequence clears the whole room before flagging the new pick.
func (p *Postgres) ClearImposters(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `UPDATE players SET is_imposter = false WHERE room_id = $1`, roomID)
	return mapErr(err)
}

func (p *Postgres) SetImposter(ctx context.Context, playerID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	tag, err := p.pool.Exec(ctx, `UPDATE players SET is_imposter = true WHERE id = $1`, playerID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}
