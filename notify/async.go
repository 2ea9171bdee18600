// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/namepair/models"
)

// Async hands events to next in the background. Delivery runs on a context
// detached from the caller's, bounded by timeout, so a finished request
// does not cancel it and a slow endpoint does not hold the request open.
type Async struct {
	next    Notifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next Notifier, timeout time.Duration) *Async {
	return &Async{next: next, timeout: timeout}
}

// Notify schedules delivery and returns immediately. Failures are logged.
func (a *Async) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, p, ev); err != nil {
			slog.Warn("notification failed",
				"participant_id", p.ID,
				"event", ev.Type,
				"session_id", ev.SessionID,
				"error", err,
			)
		}
	}()
	return nil
}

// Wait blocks until every scheduled delivery has finished
func (a *Async) Wait() {
	a.wg.Wait()
}
