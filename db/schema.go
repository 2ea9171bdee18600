// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/namepair/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	_, err := db.Exec(SchemaFor(dbType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SchemaFor renders the schema for a database type. The dialects only
// differ in how auto-incrementing ids are declared.
func SchemaFor(dbType string) string {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dbType == cliparse.DatabasePostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	return fmt.Sprintf(schema, idColumn)
}

const schema = `
-- Candidates (given names), ordered by id
CREATE TABLE IF NOT EXISTS candidate (
    id %[1]s,
    label TEXT NOT NULL UNIQUE
);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    display_name TEXT,
    address TEXT,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

-- Pair sessions, id doubles as creation order
CREATE TABLE IF NOT EXISTS pair_session (
    id %[1]s,
    first_participant_id TEXT NOT NULL REFERENCES participant(id),
    second_participant_id TEXT REFERENCES participant(id),
    current_round INTEGER NOT NULL DEFAULT 1 CHECK (current_round IN (1, 2)),
    round_two_started BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    CHECK (second_participant_id IS NULL OR second_participant_id <> first_participant_id)
);

CREATE INDEX IF NOT EXISTS idx_pair_session_first ON pair_session(first_participant_id);
CREATE INDEX IF NOT EXISTS idx_pair_session_second ON pair_session(second_participant_id);
CREATE INDEX IF NOT EXISTS idx_pair_session_pending ON pair_session(id) WHERE second_participant_id IS NULL;

-- Ratings, one per (session, round, participant, candidate)
CREATE TABLE IF NOT EXISTS rating (
    id TEXT PRIMARY KEY,
    session_id BIGINT NOT NULL REFERENCES pair_session(id) ON DELETE CASCADE,
    round INTEGER NOT NULL CHECK (round IN (1, 2)),
    participant_id TEXT NOT NULL REFERENCES participant(id),
    candidate_id BIGINT NOT NULL REFERENCES candidate(id),
    verdict TEXT NOT NULL CHECK (verdict IN ('like', 'neutral', 'dislike')),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (session_id, round, participant_id, candidate_id)
);

CREATE INDEX IF NOT EXISTS idx_rating_session_round ON rating(session_id, round);
CREATE INDEX IF NOT EXISTS idx_rating_participant_round ON rating(participant_id, round);
`
