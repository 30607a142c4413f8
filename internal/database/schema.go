// internal/database/schema.go
package database

import (
	"context"
	"fmt"
)

// schema is the bootstrap DDL. Unique keys carry the per-round invariants:
// one selection per (room, round), one answer per (player, room, round),
// one vote per (voter, room, round), one state row per (room, round).
var schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id uuid PRIMARY KEY,
	code varchar(12) NOT NULL UNIQUE,
	round_number int NOT NULL DEFAULT 0,
	is_active boolean NOT NULL DEFAULT true,
	created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS players (
	id uuid PRIMARY KEY,
	room_id uuid NOT NULL,
	name varchar(32) NOT NULL,
	is_imposter boolean NOT NULL DEFAULT false,
	joined_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_players_room ON players (room_id, joined_at);

CREATE TABLE IF NOT EXISTS prompts (
	id uuid PRIMARY KEY,
	real_text text NOT NULL,
	imposter_text text NOT NULL
);

CREATE TABLE IF NOT EXISTS prompt_selections (
	room_id uuid NOT NULL,
	round int NOT NULL,
	prompt_id uuid NOT NULL,
	PRIMARY KEY (room_id, round)
);

CREATE TABLE IF NOT EXISTS answers (
	player_id uuid NOT NULL,
	room_id uuid NOT NULL,
	round int NOT NULL,
	prompt_id uuid NOT NULL,
	answer_text text NOT NULL,
	submitted_at timestamptz NOT NULL DEFAULT NOW(),
	PRIMARY KEY (player_id, room_id, round)
);

CREATE TABLE IF NOT EXISTS votes (
	voter_id uuid NOT NULL,
	room_id uuid NOT NULL,
	round int NOT NULL,
	voted_for_id uuid NOT NULL,
	cast_at timestamptz NOT NULL DEFAULT NOW(),
	PRIMARY KEY (voter_id, room_id, round)
);

CREATE TABLE IF NOT EXISTS round_states (
	room_id uuid NOT NULL,
	round int NOT NULL,
	current_stage varchar(32) NOT NULL,
	last_updated timestamptz NOT NULL DEFAULT NOW(),
	PRIMARY KEY (room_id, round)
);
`

// Migrate applies the bootstrap schema. Safe to run on every boot.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
