// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/namepair/models"
)

// joinAttempts bounds how often a lost claim on a pending session is retried
// before the participant opens a session of their own.
const joinAttempts = 2

var errClaimLost = errors.New("pending session claimed by another participant")

const sessionColumns = `id, first_participant_id, second_participant_id, current_round, round_two_started, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var sess models.Session
	var second sql.NullString
	err := row.Scan(&sess.ID, &sess.First, &second, &sess.CurrentRound, &sess.RoundTwoStarted, &sess.CreatedAt)
	sess.Second = stringPtr(second)
	return sess, err
}

// JoinOrCreate pairs the participant with the oldest waiting session, or
// opens a new waiting session. A participant who already has a session
// gets it back unchanged. becameActive is true only for the join that
// filled the second slot.
func (s *Service) JoinOrCreate(ctx context.Context, participantID string, displayName, address *string) (models.Session, bool, error) {
	if participantID == "" {
		return models.Session{}, false, fmt.Errorf("%w: participant id is required", ErrInvalidArgument)
	}

	unlock := s.joins.Lock(participantID)
	defer unlock()

	for attempt := 1; attempt <= joinAttempts; attempt++ {
		sess, becameActive, err := s.tryJoin(ctx, participantID, displayName, address)
		if errors.Is(err, errClaimLost) {
			slog.Warn("pending session claimed concurrently", "participant_id", participantID, "attempt", attempt)
			continue
		}
		return sess, becameActive, err
	}

	var sess models.Session
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		now := s.now()
		if err := registerParticipant(ctx, tx, participantID, displayName, address, now); err != nil {
			return err
		}
		var err error
		sess, err = createPendingSession(ctx, tx, participantID, now)
		return err
	})
	if err != nil {
		return models.Session{}, false, err
	}
	slog.Info("opened fallback session after lost claims", "participant_id", participantID, "session_id", sess.ID)
	return sess, false, nil
}

func (s *Service) tryJoin(ctx context.Context, participantID string, displayName, address *string) (models.Session, bool, error) {
	var sess models.Session
	var becameActive bool

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		now := s.now()
		if err := registerParticipant(ctx, tx, participantID, displayName, address, now); err != nil {
			return err
		}

		existing, err := sessionForParticipant(ctx, tx, participantID)
		if err != nil {
			return err
		}
		if existing != nil {
			sess = *existing
			return nil
		}

		pending, err := scanSession(tx.QueryRowContext(ctx, `
			SELECT `+sessionColumns+`
			FROM pair_session
			WHERE second_participant_id IS NULL AND first_participant_id <> $1
			ORDER BY id ASC
			LIMIT 1
		`, participantID))

		if err == sql.ErrNoRows {
			sess, err = createPendingSession(ctx, tx, participantID, now)
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to query pending session: %w", err)
		}

		if s.beforeClaim != nil {
			if err := s.beforeClaim(ctx, tx, pending.ID); err != nil {
				return err
			}
		}

		// Compare-and-set: only fill the slot if nobody else did
		res, err := tx.ExecContext(ctx, `
			UPDATE pair_session
			SET second_participant_id = $1
			WHERE id = $2 AND second_participant_id IS NULL
		`, participantID, pending.ID)
		if err != nil {
			return fmt.Errorf("failed to join session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to join session: %w", err)
		}
		if n != 1 {
			return errClaimLost
		}

		pending.Second = &participantID
		sess = pending
		becameActive = true
		return nil
	})
	if err != nil {
		return models.Session{}, false, err
	}

	return sess, becameActive, nil
}

func createPendingSession(ctx context.Context, q queryer, participantID string, now time.Time) (models.Session, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO pair_session (first_participant_id, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, participantID, now).Scan(&id)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	sess, err := sessionByID(ctx, q, id)
	if err != nil {
		return models.Session{}, err
	}
	if sess == nil {
		return models.Session{}, fmt.Errorf("session %d vanished after insert", id)
	}
	return *sess, nil
}

func sessionForParticipant(ctx context.Context, q queryer, participantID string) (*models.Session, error) {
	sess, err := scanSession(q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM pair_session
		WHERE first_participant_id = $1 OR second_participant_id = $1
		ORDER BY id DESC
		LIMIT 1
	`, participantID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session for participant: %w", err)
	}
	return &sess, nil
}

func sessionByID(ctx context.Context, q queryer, sessionID int64) (*models.Session, error) {
	sess, err := scanSession(q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM pair_session WHERE id = $1
	`, sessionID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &sess, nil
}

// SessionFor returns the participant's most recent session, or nil
func (s *Service) SessionFor(ctx context.Context, participantID string) (*models.Session, error) {
	return sessionForParticipant(ctx, s.db, participantID)
}

// Session returns the session with the given id, or nil
func (s *Service) Session(ctx context.Context, sessionID int64) (*models.Session, error) {
	return sessionByID(ctx, s.db, sessionID)
}
