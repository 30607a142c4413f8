// internal/database/answers.go
package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
)

// UpsertAnswer inserts or replaces the player's answer for the round. A
// resubmission overwrites the text, never adds a row.
func (p *Postgres) UpsertAnswer(ctx context.Context, answer *models.Answer) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	INSERT INTO answers (player_id, room_id, round, prompt_id, answer_text, submitted_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (player_id, room_id, round)
	DO UPDATE SET answer_text = EXCLUDED.answer_text,
	              prompt_id = EXCLUDED.prompt_id,
	              submitted_at = EXCLUDED.submitted_at
	`
	_, err := p.pool.Exec(ctx, q,
		answer.PlayerID, answer.RoomID, answer.Round,
		answer.PromptID, answer.Text, answer.SubmittedAt,
	)
	return mapErr(err)
}

// ListAnswers returns the round's answers in the submitters' join order.
func (p *Postgres) ListAnswers(ctx context.Context, roomID uuid.UUID, round int) ([]models.Answer, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `
	SELECT a.player_id, a.room_id, a.round, a.prompt_id, a.answer_text, a.submitted_at
	FROM answers a
	JOIN players p ON p.id = a.player_id
	WHERE a.room_id = $1 AND a.round = $2
	ORDER BY p.joined_at, p.id
	`
	rows, err := p.pool.Query(ctx, q, roomID, round)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.PlayerID, &a.RoomID, &a.Round, &a.PromptID, &a.Text, &a.SubmittedAt); err != nil {
			return nil, mapErr(err)
		}
		answers = append(answers, a)
	}
	return answers, mapErr(rows.Err())
}

func (p *Postgres) CountAnswers(ctx context.Context, roomID uuid.UUID, round int) (int, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var count int
	q := `SELECT COUNT(*) FROM answers WHERE room_id = $1 AND round = $2`
	err := p.pool.QueryRow(ctx, q, roomID, round).Scan(&count)
	return count, mapErr(err)
}

func (p *Postgres) DeleteAnswers(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `DELETE FROM answers WHERE room_id = $1`, roomID)
	return mapErr(err)
}
