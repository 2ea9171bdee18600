// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"database/sql"
	"testing"

	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/testutil"
)

func setupService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	return NewService(db), db
}

// pairUp joins a then b and returns their shared active session
func pairUp(t *testing.T, svc *Service, a, b string) models.Session {
	t.Helper()
	ctx := context.Background()

	if _, _, err := svc.JoinOrCreate(ctx, a, nil, nil); err != nil {
		t.Fatalf("JoinOrCreate(%s) error = %v", a, err)
	}
	sess, becameActive, err := svc.JoinOrCreate(ctx, b, nil, nil)
	if err != nil {
		t.Fatalf("JoinOrCreate(%s) error = %v", b, err)
	}
	if !becameActive {
		t.Fatalf("expected %s to complete a session", b)
	}
	return sess
}

func mustRecord(t *testing.T, svc *Service, sessionID int64, round int, participantID string, candidateID int64, verdict string) {
	t.Helper()
	if _, err := svc.Record(context.Background(), sessionID, round, participantID, candidateID, verdict); err != nil {
		t.Fatalf("Record(%s, %d, %s) error = %v", participantID, candidateID, verdict, err)
	}
}

func strPtr(s string) *string { return &s }
