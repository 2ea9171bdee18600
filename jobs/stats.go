// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"

	"github.com/danielhkuo/namepair/models"
)

// StatsSource is satisfied by *game.Service
type StatsSource interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// StartStatsReporter schedules ReportStats every interval. The first report
// runs immediately. Callers stop it with Shutdown on the returned scheduler.
func StartStatsReporter(ctx context.Context, src StatsSource, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("stats interval must be positive")
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ReportStats(ctx, src)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule stats job: %w", err)
	}

	sched.Start()
	slog.Info("stats reporter started", "interval", interval.String())
	return sched, nil
}

// ReportStats logs one snapshot of store counts
func ReportStats(ctx context.Context, src StatsSource) (models.Stats, error) {
	st, err := src.Stats(ctx)
	if err != nil {
		slog.Error("failed to collect stats", "error", err)
		return models.Stats{}, err
	}

	slog.Info("stats",
		"participants", humanize.Comma(st.Participants),
		"candidates", humanize.Comma(st.Candidates),
		"pending_sessions", humanize.Comma(st.PendingSessions),
		"active_sessions", humanize.Comma(st.ActiveSessions),
		"round_two_sessions", humanize.Comma(st.RoundTwoSessions),
		"ratings", humanize.Comma(st.Ratings),
	)
	return st, nil
}
