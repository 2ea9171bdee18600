// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"slices"

	"github.com/danielhkuo/namepair/models"
)

// MutualLikes returns the distinct candidate ids, ascending, that both
// first and second rated like. Callers pass the ratings of one session
// round; verdicts other than like and other participants are ignored.
func MutualLikes(first, second string, ratings []models.Rating) []int64 {
	if first == "" || second == "" || first == second {
		return []int64{}
	}

	const (
		byFirst  = 1 << 0
		bySecond = 1 << 1
	)

	likedBy := make(map[int64]uint8)
	for _, r := range ratings {
		if r.Verdict != models.VerdictLike {
			continue
		}
		switch r.ParticipantID {
		case first:
			likedBy[r.CandidateID] |= byFirst
		case second:
			likedBy[r.CandidateID] |= bySecond
		}
	}

	ids := make([]int64, 0, len(likedBy))
	for id, mask := range likedBy {
		if mask == byFirst|bySecond {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids
}

// mutualLikesFor derives the mutual-like set of a stored session round.
// Pending or unknown sessions have none.
func mutualLikesFor(ctx context.Context, q queryer, sessionID int64, round int) ([]int64, error) {
	sess, err := sessionByID(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || !sess.Active() {
		return []int64{}, nil
	}

	likes, err := likesFor(ctx, q, sessionID, round)
	if err != nil {
		return nil, err
	}

	return MutualLikes(sess.First, *sess.Second, likes), nil
}
