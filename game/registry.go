// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/namepair/models"
)

// Register creates the participant if needed. Non-nil displayName and
// address overwrite the stored values, nil leaves them untouched.
func (s *Service) Register(ctx context.Context, participantID string, displayName, address *string) error {
	if participantID == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidArgument)
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return registerParticipant(ctx, tx, participantID, displayName, address, s.now())
	})
}

func registerParticipant(ctx context.Context, q queryer, participantID string, displayName, address *string, now time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO participant (id, display_name, address, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE SET
			display_name = COALESCE(EXCLUDED.display_name, participant.display_name),
			address = COALESCE(EXCLUDED.address, participant.address),
			last_seen_at = EXCLUDED.last_seen_at
	`, participantID, nullString(displayName), nullString(address), now)
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}
	return nil
}

// Participant returns the stored participant, or nil if unknown
func (s *Service) Participant(ctx context.Context, participantID string) (*models.Participant, error) {
	var p models.Participant
	var displayName, address sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, address FROM participant WHERE id = $1
	`, participantID).Scan(&p.ID, &displayName, &address)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}

	p.DisplayName = stringPtr(displayName)
	p.Address = stringPtr(address)
	return &p, nil
}

// LookupAddress returns the delivery address, or nil if unknown or unset
func (s *Service) LookupAddress(ctx context.Context, participantID string) (*string, error) {
	p, err := s.Participant(ctx, participantID)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Address, nil
}
