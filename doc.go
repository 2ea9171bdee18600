// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the namepair API server.

namepair pairs two participants and has each of them rate a shared list of
candidate names (like, neutral, dislike). Names both of them liked are the
round 1 matches; round 2 replays only those names to narrow the list.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	DATABASE_URL=namepair.db PARTICIPANT_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - PARTICIPANT_TOKEN_SALT (-token-salt): Secret for participant token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - NAMES_SOURCE (-names): names list, file path or s3://bucket/key (default: names.txt)
  - STATS_INTERVAL (-stats-interval): stats log interval (default: 10m)
  - S3_ENDPOINT, S3_REGION, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY

The names list is read only when the candidate catalogue is empty.

# Architecture

  - game: pairing, rating ledger, round sequencing and results
  - handlers: HTTP request handlers (participants, sessions, rounds)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request ids, JSON helpers
  - notify: websocket hub and webhook delivery
  - names: names list loading from file or S3
  - jobs: gocron stats reporter
  - models: Request/response and domain types
  - auth: Participant token generation and validation
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
