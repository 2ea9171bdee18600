// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"

	"github.com/danielhkuo/namepair/models"
)

// Notifier delivers an event to a participant
type Notifier interface {
	Notify(ctx context.Context, p models.Participant, ev models.Event) error
}

// Multi fans an event out to every notifier and joins their errors
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, p, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
