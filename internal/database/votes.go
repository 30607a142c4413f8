// internal/database/votes.go
package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
)

// UpsertVote inserts or replaces the voter's accusation for the round.
func (p *Postgres) UpsertVote(ctx context.Context, vote *models.Vote) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	INSERT INTO votes (voter_id, room_id, round, voted_for_id, cast_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (voter_id, room_id, round)
	DO UPDATE SET voted_for_id = EXCLUDED.voted_for_id,
	              cast_at = EXCLUDED.cast_at
	`
	_, err := p.pool.Exec(ctx, q, vote.VoterID, vote.RoomID, vote.Round, vote.VotedForID, vote.CastAt)
	return mapErr(err)
}

func (p *Postgres) ListVotes(ctx context.Context, roomID uuid.UUID, round int) ([]models.Vote, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	SELECT v.voter_id, v.room_id, v.round, v.voted_for_id, v.cast_at
	FROM votes v
	JOIN players p ON p.id = v.voter_id
	WHERE v.room_id = $1 AND v.round = $2
	ORDER BY p.joined_at, p.id
	`
	rows, err := p.pool.Query(ctx, q, roomID, round)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.VoterID, &v.RoomID, &v.Round, &v.VotedForID, &v.CastAt); err != nil {
			return nil, mapErr(err)
		}
		votes = append(votes, v)
	}
	return votes, mapErr(rows.Err())
}

func (p *Postgres) DeleteVotes(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `DELETE FROM votes WHERE room_id = $1`, roomID)
	return mapErr(err)
}
