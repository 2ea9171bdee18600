// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/danielhkuo/namepair/models"
)

// AdvanceToRoundTwo moves the session to round 2. started is true only for
// the call that made the change; calling it again is a no-op. Whether
// round 1 is finished is the caller's decision.
func (s *Service) AdvanceToRoundTwo(ctx context.Context, sessionID int64) (started bool, err error) {
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE pair_session
			SET current_round = $1, round_two_started = TRUE
			WHERE id = $2 AND round_two_started = FALSE
		`, models.RoundTwo, sessionID)
		if err != nil {
			return fmt.Errorf("failed to start round two: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to start round two: %w", err)
		}
		if n == 1 {
			started = true
			return nil
		}

		sess, err := sessionByID(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("%w: %d", ErrSessionNotFound, sessionID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return started, nil
}

// Results lists the display text of every candidate both session
// participants liked in the round, in case-insensitive order. Round 2 only
// counts candidates from the round-1 mutual likes. An empty slice means no
// mutual likes yet.
func (s *Service) Results(ctx context.Context, sessionID int64, round int) ([]string, error) {
	if !models.ValidRound(round) {
		return nil, fmt.Errorf("%w: round %d", ErrInvalidArgument, round)
	}

	matches := []string{}
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		mutual, err := mutualLikesFor(ctx, tx, sessionID, round)
		if err != nil {
			return err
		}
		if round == models.RoundTwo {
			pool, err := mutualLikesFor(ctx, tx, sessionID, models.RoundOne)
			if err != nil {
				return err
			}
			mutual = slices.DeleteFunc(mutual, func(id int64) bool {
				return !slices.Contains(pool, id)
			})
		}
		if len(mutual) == 0 {
			return nil
		}

		liked, err := likedCandidates(ctx, tx, sessionID, round)
		if err != nil {
			return err
		}

		for _, id := range mutual {
			if text, ok := liked[id]; ok {
				matches = append(matches, text)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortCaseInsensitive(matches), nil
}

// likedCandidates maps id to text for candidates anyone liked in the round
func likedCandidates(ctx context.Context, q queryer, sessionID int64, round int) (map[int64]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, label FROM candidate
		WHERE id IN (
			SELECT candidate_id FROM rating
			WHERE session_id = $1 AND round = $2 AND verdict = $3
		)
	`, sessionID, round, models.VerdictLike)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked candidates: %w", err)
	}
	defer rows.Close()

	liked := make(map[int64]string)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		liked[c.ID] = c.Text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read liked candidates: %w", err)
	}

	return liked, nil
}

// sortCaseInsensitive orders by Unicode case folding, then by raw text so
// the order is total, and drops exact duplicates.
func sortCaseInsensitive(texts []string) []string {
	fold := cases.Fold()
	keys := make(map[string]string, len(texts))
	for _, t := range texts {
		keys[t] = fold.String(t)
	}

	slices.SortFunc(texts, func(a, b string) int {
		if c := strings.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	return slices.Compact(texts)
}
