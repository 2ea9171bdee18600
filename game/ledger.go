// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/namepair/models"
)

// Record stores a verdict. It returns false when the participant already
// rated this candidate in this session and round; the first verdict stands.
func (s *Service) Record(ctx context.Context, sessionID int64, round int, participantID string, candidateID int64, verdict string) (bool, error) {
	if !models.ValidVerdict(verdict) {
		return false, fmt.Errorf("%w: verdict %q", ErrInvalidArgument, verdict)
	}
	if !models.ValidRound(round) {
		return false, fmt.Errorf("%w: round %d", ErrInvalidArgument, round)
	}

	var recorded bool
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		// The unique constraint decides; no pre-check
		res, err := tx.ExecContext(ctx, `
			INSERT INTO rating (id, session_id, round, participant_id, candidate_id, verdict, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (session_id, round, participant_id, candidate_id) DO NOTHING
		`, uuid.NewString(), sessionID, round, participantID, candidateID, verdict, s.now())
		if err != nil {
			return fmt.Errorf("failed to insert rating: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to insert rating: %w", err)
		}
		recorded = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return recorded, nil
}

// likesFor loads every like in a session round
func likesFor(ctx context.Context, q queryer, sessionID int64, round int) ([]models.Rating, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, session_id, round, participant_id, candidate_id, verdict
		FROM rating
		WHERE session_id = $1 AND round = $2 AND verdict = $3
	`, sessionID, round, models.VerdictLike)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	var likes []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Round, &r.ParticipantID, &r.CandidateID, &r.Verdict); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		likes = append(likes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read likes: %w", err)
	}

	return likes, nil
}

// ratedBy returns the candidate ids a participant has rated in a session round
func ratedBy(ctx context.Context, q queryer, sessionID int64, round int, participantID string) (map[int64]bool, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT candidate_id FROM rating
		WHERE session_id = $1 AND round = $2 AND participant_id = $3
	`, sessionID, round, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	rated := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		rated[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	return rated, nil
}
