// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/namepair/models"
)

// AddCandidates inserts the given texts, trimming whitespace and skipping
// blanks. Texts already present are ignored. Returns the number inserted.
func (s *Service) AddCandidates(ctx context.Context, texts []string) (int, error) {
	var inserted int
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		inserted, err = insertCandidates(ctx, tx, texts)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// SeedCandidates loads texts only when the catalogue is empty
func (s *Service) SeedCandidates(ctx context.Context, texts []string) (int, error) {
	var inserted int
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		count, err := countCandidates(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		inserted, err = insertCandidates(ctx, tx, texts)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func insertCandidates(ctx context.Context, q queryer, texts []string) (int, error) {
	inserted := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		res, err := q.ExecContext(ctx, `
			INSERT INTO candidate (label) VALUES ($1)
			ON CONFLICT (label) DO NOTHING
		`, text)
		if err != nil {
			return 0, fmt.Errorf("failed to insert candidate %q: %w", text, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to insert candidate %q: %w", text, err)
		}
		inserted += int(n)
	}
	return inserted, nil
}

// CandidateCount returns the size of the catalogue
func (s *Service) CandidateCount(ctx context.Context) (int, error) {
	return countCandidates(ctx, s.db)
}

// Candidate returns the candidate with the given id, or nil
func (s *Service) Candidate(ctx context.Context, candidateID int64) (*models.Candidate, error) {
	return candidateByID(ctx, s.db, candidateID)
}

func countCandidates(ctx context.Context, q queryer) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidate`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

func candidateByID(ctx context.Context, q queryer, candidateID int64) (*models.Candidate, error) {
	var c models.Candidate
	err := q.QueryRowContext(ctx, `
		SELECT id, label FROM candidate WHERE id = $1
	`, candidateID).Scan(&c.ID, &c.Text)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	return &c, nil
}
