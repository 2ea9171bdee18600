// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and handles schema creation.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite, capped to one connection with
    foreign_keys and busy_timeout pragmas applied

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidate: given names, id is the stable ordering key
  - participant: identity, display name, delivery address
  - pair_session: two participant slots, current round, round-two flag
  - rating: verdicts, unique per (session_id, round, participant_id, candidate_id)

# Relationships

	participant 1──* pair_session (first or second slot)
	pair_session 1──* rating
	candidate 1──* rating

# Indexes

  - pair_session.first_participant_id, pair_session.second_participant_id
  - pair_session.id where second_participant_id IS NULL (pending lookup)
  - rating.(session_id, round)
  - rating.(participant_id, round)
*/
package db
