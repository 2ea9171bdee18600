// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - NamesSource: Names list location, file path or s3://bucket/key (default: names.txt)
  - ParticipantTokenSalt: Secret for participant token HMAC (required)
  - StatsInterval: How often the stats job reports (default: 10m)
  - S3: Endpoint, region and static credentials for s3:// names sources

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-names            Names source
	-stats-interval   Stats report interval
	-token-salt       Participant token salt

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t
	NAMES_SOURCE           → -names
	STATS_INTERVAL         → -stats-interval
	PARTICIPANT_TOKEN_SALT → -token-salt

S3 settings are environment-only: S3_ENDPOINT, S3_REGION,
S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY.

CLI flags take precedence over environment variables. main loads a .env
file before parsing, so values may also live there.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - PARTICIPANT_TOKEN_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - PORT and STATS_INTERVAL must parse
*/
package cliparse
