// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"fmt"

	"github.com/danielhkuo/namepair/models"
)

// Stats counts rows across the store in a single query
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM participant),
			(SELECT COUNT(*) FROM candidate),
			(SELECT COUNT(*) FROM pair_session WHERE second_participant_id IS NULL),
			(SELECT COUNT(*) FROM pair_session WHERE second_participant_id IS NOT NULL),
			(SELECT COUNT(*) FROM pair_session WHERE round_two_started),
			(SELECT COUNT(*) FROM rating)
	`).Scan(&st.Participants, &st.Candidates, &st.PendingSessions, &st.ActiveSessions, &st.RoundTwoSessions, &st.Ratings)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return st, nil
}
