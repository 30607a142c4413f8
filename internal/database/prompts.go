// internal/database/prompts.go
package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
)

func (p *Postgres) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `INSERT INTO prompts (id, real_text, imposter_text) VALUES ($1, $2, $3)`
	_, err := p.pool.Exec(ctx, q, prompt.ID, prompt.RealText, prompt.ImposterText)
	return mapErr(err)
}

func (p *Postgres) GetPrompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var pr models.Prompt
	q := `SELECT id, real_text, imposter_text FROM prompts WHERE id = $1`
	err := p.pool.QueryRow(ctx, q, id).Scan(&pr.ID, &pr.RealText, &pr.ImposterText)
	if err != nil {
		return nil, mapErr(err)
	}
	return &pr, nil
}

// ListPrompts returns the full reference set in a stable order so that
// hash-indexed selection is reproducible across callers.
func (p *Postgres) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	rows, err := p.pool.Query(ctx, `SELECT id, real_text, imposter_text FROM prompts ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var pr models.Prompt
		if err := rows.Scan(&pr.ID, &pr.RealText, &pr.ImposterText); err != nil {
			return nil, mapErr(err)
		}
		prompts = append(prompts, pr)
	}
	return prompts, mapErr(rows.Err())
}

func (p *Postgres) GetPromptSelection(ctx context.Context, roomID uuid.UUID, round int) (*models.PromptSelection, error) {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	var sel models.PromptSelection
	q := `SELECT room_id, round, prompt_id FROM prompt_selections WHERE room_id = $1 AND round = $2`
	err := p.pool.QueryRow(ctx, q, roomID, round).Scan(&sel.RoomID, &sel.Round, &sel.PromptID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sel, nil
}

// InsertPromptSelection is a plain insert: the unique key makes the first
// writer win and later writers get store.ErrConflict to read back.
func (p *Postgres) InsertPromptSelection(ctx context.Context, sel *models.PromptSelection) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	q := `INSERT INTO prompt_selections (room_id, round, prompt_id) VALUES ($1, $2, $3)`
	_, err := p.pool.Exec(ctx, q, sel.RoomID, sel.Round, sel.PromptID)
	return mapErr(err)
}

func (p *Postgres) DeletePromptSelections(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := p.opCtx(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `DELETE FROM prompt_selections WHERE room_id = $1`, roomID)
	return mapErr(err)
}
