// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package jobs runs background work on a gocron scheduler. Currently that
// is a periodic stats report logged through slog.
package jobs
