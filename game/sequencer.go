// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/danielhkuo/namepair/models"
)

// NextCandidate returns the lowest-id candidate the participant has not yet
// rated in this round, or nil when the round is exhausted. Round 2 only
// offers the session's round-1 mutual likes.
func (s *Service) NextCandidate(ctx context.Context, sessionID int64, round int, participantID string) (*models.Candidate, error) {
	if !models.ValidRound(round) {
		return nil, fmt.Errorf("%w: round %d", ErrInvalidArgument, round)
	}

	var next *models.Candidate
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if round == models.RoundOne {
			var c models.Candidate
			err := tx.QueryRowContext(ctx, `
				SELECT id, label FROM candidate
				WHERE id NOT IN (
					SELECT candidate_id FROM rating
					WHERE session_id = $1 AND round = $2 AND participant_id = $3
				)
				ORDER BY id ASC
				LIMIT 1
			`, sessionID, models.RoundOne, participantID).Scan(&c.ID, &c.Text)

			if err == sql.ErrNoRows {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to query next candidate: %w", err)
			}
			next = &c
			return nil
		}

		pool, err := mutualLikesFor(ctx, tx, sessionID, models.RoundOne)
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return nil
		}

		rated, err := ratedBy(ctx, tx, sessionID, models.RoundTwo, participantID)
		if err != nil {
			return err
		}

		for _, id := range pool {
			if rated[id] {
				continue
			}
			next, err = candidateByID(ctx, tx, id)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

// InRound reports whether the candidate is offered in the session round.
// Every candidate is in round 1; round 2 holds the round-1 mutual likes.
func (s *Service) InRound(ctx context.Context, sessionID int64, round int, candidateID int64) (bool, error) {
	if !models.ValidRound(round) {
		return false, fmt.Errorf("%w: round %d", ErrInvalidArgument, round)
	}
	if round == models.RoundOne {
		return true, nil
	}

	pool, err := mutualLikesFor(ctx, s.db, sessionID, models.RoundOne)
	if err != nil {
		return false, err
	}
	return slices.Contains(pool, candidateID), nil
}

// Progress reports how many candidates the participant has rated in a round
// out of the round's total. The round-2 total is the round-1 mutual-like
// count whether or not round 2 has started.
func (s *Service) Progress(ctx context.Context, sessionID int64, round int, participantID string) (answered, total int, err error) {
	if !models.ValidRound(round) {
		return 0, 0, fmt.Errorf("%w: round %d", ErrInvalidArgument, round)
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM rating
			WHERE session_id = $1 AND round = $2 AND participant_id = $3
		`, sessionID, round, participantID).Scan(&answered)
		if err != nil {
			return fmt.Errorf("failed to count ratings: %w", err)
		}

		if round == models.RoundOne {
			total, err = countCandidates(ctx, tx)
			return err
		}

		pool, err := mutualLikesFor(ctx, tx, sessionID, models.RoundOne)
		if err != nil {
			return err
		}
		total = len(pool)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return answered, total, nil
}
