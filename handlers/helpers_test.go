// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/testutil"
)

var testNames = []string{"Anna", "Boris", "Clara", "Dmitri", "Elena"}

// eventLog records notifications instead of delivering them
type eventLog struct {
	mu   sync.Mutex
	sent map[string][]models.Event
}

func newEventLog() *eventLog {
	return &eventLog{sent: make(map[string][]models.Event)}
}

func (l *eventLog) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent[p.ID] = append(l.sent[p.ID], ev)
	return nil
}

func (l *eventLog) For(participantID string) []models.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Event(nil), l.sent[participantID]...)
}

type testEnv struct {
	db         *sql.DB
	svc        *game.Service
	cfg        cliparse.Config
	events     *eventLog
	candidates []int64
	sessions   *SessionHandler
	rounds     *RoundHandler
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	cfg := testutil.GetTestConfig()
	svc := game.NewService(db)
	events := newEventLog()

	return &testEnv{
		db:         db,
		svc:        svc,
		cfg:        cfg,
		events:     events,
		candidates: testutil.AddTestCandidates(t, db, testNames...),
		sessions:   NewSessionHandler(svc, cfg, events),
		rounds:     NewRoundHandler(svc, cfg),
	}
}

func (e *testEnv) headers(participantID string) map[string]string {
	return testutil.ParticipantHeaders(e.cfg, participantID)
}

// join posts to /sessions/join as the participant and decodes the response
func (e *testEnv) join(t *testing.T, participantID string) models.JoinResponse {
	t.Helper()

	req := testutil.MakeRequest("POST", "/sessions/join", nil, e.headers(participantID))
	w := httptest.NewRecorder()
	e.sessions.Join(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.JoinResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

// pair joins two participants and returns the active session id
func (e *testEnv) pair(t *testing.T, first, second string) int64 {
	t.Helper()

	e.join(t, first)
	resp := e.join(t, second)
	if !resp.BecameActive {
		t.Fatalf("expected %s to activate the session", second)
	}
	return resp.Session.ID
}

// sessionRequest builds a request for a /sessions/{id}/... route with path values set
func (e *testEnv) sessionRequest(method, path string, sessionID int64, round int, body interface{}, participantID string) *http.Request {
	req := testutil.MakeRequest(method, path, body, e.headers(participantID))
	req.SetPathValue("id", strconv.FormatInt(sessionID, 10))
	if round != 0 {
		req.SetPathValue("round", strconv.Itoa(round))
	}
	return req
}

func (e *testEnv) rate(t *testing.T, sessionID int64, round int, participantID string, candidateID int64, verdict string) models.RateResponse {
	t.Helper()

	req := e.sessionRequest("POST", "/sessions/x/rounds/x/ratings", sessionID, round,
		models.RateRequest{CandidateID: candidateID, Verdict: verdict}, participantID)
	w := httptest.NewRecorder()
	e.rounds.Rate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RateResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (e *testEnv) results(t *testing.T, sessionID int64, round int, participantID string) []string {
	t.Helper()

	req := e.sessionRequest("GET", "/sessions/x/rounds/x/results", sessionID, round, nil, participantID)
	w := httptest.NewRecorder()
	e.rounds.Results(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.Matches
}
