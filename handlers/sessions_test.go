// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/notify"
	"github.com/danielhkuo/namepair/testutil"
)

func TestJoin_WaitsThenPairs(t *testing.T) {
	env := setupEnv(t)

	first := env.join(t, "alice")
	if first.BecameActive {
		t.Error("First participant should not activate a session")
	}
	if first.Session.Status != models.StatusWaiting {
		t.Errorf("Expected status waiting, got %s", first.Session.Status)
	}
	if first.Session.Second != nil {
		t.Error("Expected empty second slot")
	}

	second := env.join(t, "bob")
	if !second.BecameActive {
		t.Error("Second participant should activate the session")
	}
	if second.Session.ID != first.Session.ID {
		t.Errorf("Expected bob in session %d, got %d", first.Session.ID, second.Session.ID)
	}
	if second.Session.Status != models.StatusActive {
		t.Errorf("Expected status active, got %s", second.Session.Status)
	}
	if second.Session.CurrentRound != models.RoundOne {
		t.Errorf("Expected round 1, got %d", second.Session.CurrentRound)
	}

	// Both participants are notified once
	for _, id := range []string{"alice", "bob"} {
		events := env.events.For(id)
		if len(events) != 1 {
			t.Fatalf("Expected 1 event for %s, got %d", id, len(events))
		}
		if events[0].Type != models.EventPaired || events[0].SessionID != first.Session.ID {
			t.Errorf("Unexpected event for %s: %+v", id, events[0])
		}
		if events[0].Message != pairedMessage {
			t.Errorf("Expected message %q, got %q", pairedMessage, events[0].Message)
		}
	}
}

func TestJoin_RejoinReturnsSameSession(t *testing.T) {
	env := setupEnv(t)

	sessionID := env.pair(t, "alice", "bob")

	again := env.join(t, "alice")
	if again.Session.ID != sessionID {
		t.Errorf("Expected existing session %d, got %d", sessionID, again.Session.ID)
	}
	if again.BecameActive {
		t.Error("Rejoin should not report activation")
	}
	if len(env.events.For("alice")) != 1 || len(env.events.For("bob")) != 1 {
		t.Error("Rejoin should not send notifications")
	}
}

func TestJoin_Auth(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"missing token", map[string]string{"X-Participant-ID": "alice"}},
		{"wrong token", map[string]string{"X-Participant-ID": "alice", "X-Participant-Token": "nope"}},
		{"token for someone else", map[string]string{
			"X-Participant-ID":    "alice",
			"X-Participant-Token": env.headers("bob")["X-Participant-Token"],
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/join", nil, tt.headers)
			w := httptest.NewRecorder()
			env.sessions.Join(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestJoin_BodyAndAddressHeader(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	name := "Alice"
	headers := env.headers("alice")
	headers["X-Participant-Address"] = "https://example.com/first"

	req := testutil.MakeRequest("POST", "/sessions/join", models.JoinRequest{DisplayName: &name}, headers)
	w := httptest.NewRecorder()
	env.sessions.Join(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	p, err := env.svc.Participant(ctx, "alice")
	if err != nil || p == nil {
		t.Fatalf("participant missing: %v", err)
	}
	if p.DisplayName == nil || *p.DisplayName != "Alice" {
		t.Errorf("Expected display name Alice, got %v", p.DisplayName)
	}
	if p.Address == nil || *p.Address != "https://example.com/first" {
		t.Errorf("Expected address from header, got %v", p.Address)
	}

	// Any later interaction refreshes the address
	headers["X-Participant-Address"] = "https://example.com/second"
	req = testutil.MakeRequest("GET", "/sessions/me", nil, headers)
	w = httptest.NewRecorder()
	env.sessions.Me(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	addr, _ := env.svc.LookupAddress(ctx, "alice")
	if addr == nil || *addr != "https://example.com/second" {
		t.Errorf("Expected refreshed address, got %v", addr)
	}
}

func TestJoin_InvalidJSON(t *testing.T) {
	env := setupEnv(t)

	req := httptest.NewRequest("POST", "/sessions/join", strings.NewReader("{broken"))
	for k, v := range env.headers("alice") {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.sessions.Join(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestMe(t *testing.T) {
	env := setupEnv(t)

	req := testutil.MakeRequest("GET", "/sessions/me", nil, env.headers("alice"))
	w := httptest.NewRecorder()
	env.sessions.Me(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	sessionID := env.pair(t, "alice", "bob")

	req = testutil.MakeRequest("GET", "/sessions/me", nil, env.headers("alice"))
	w = httptest.NewRecorder()
	env.sessions.Me(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.SessionView
	testutil.AssertJSON(t, w, &view)
	if view.ID != sessionID {
		t.Errorf("Expected session %d, got %d", sessionID, view.ID)
	}
	if view.Partner("alice") != "bob" {
		t.Errorf("Expected partner bob, got %q", view.Partner("alice"))
	}
	if view.Status != models.StatusActive {
		t.Errorf("Expected active, got %s", view.Status)
	}
}

func TestAdvanceRoundTwo(t *testing.T) {
	env := setupEnv(t)
	sessionID := env.pair(t, "alice", "bob")

	// Round 1: both like Clara
	clara := env.candidates[2]
	env.rate(t, sessionID, models.RoundOne, "alice", clara, models.VerdictLike)
	env.rate(t, sessionID, models.RoundOne, "bob", clara, models.VerdictLike)

	req := env.sessionRequest("POST", "/sessions/x/round-two", sessionID, 0, nil, "alice")
	w := httptest.NewRecorder()
	env.sessions.AdvanceRoundTwo(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var next models.NextCandidateResponse
	testutil.AssertJSON(t, w, &next)
	if next.Round != models.RoundTwo {
		t.Errorf("Expected round 2, got %d", next.Round)
	}
	if next.Candidate == nil || next.Candidate.Text != "Clara" {
		t.Errorf("Expected Clara as first round-2 candidate, got %+v", next.Candidate)
	}
	if next.Progress.Total != 1 || next.Progress.Answered != 0 {
		t.Errorf("Expected progress 0/1, got %+v", next.Progress)
	}

	sess, _ := env.svc.Session(context.Background(), sessionID)
	if !sess.RoundTwoStarted || sess.CurrentRound != models.RoundTwo {
		t.Errorf("Expected session in round 2, got %+v", sess)
	}

	for _, id := range []string{"alice", "bob"} {
		events := env.events.For(id)
		if len(events) != 2 {
			t.Fatalf("Expected pairing and round-two events for %s, got %+v", id, events)
		}
		if events[1].Type != models.EventRoundTwoStart || events[1].Round != models.RoundTwo {
			t.Errorf("Unexpected round-two event for %s: %+v", id, events[1])
		}
		if events[1].Message != roundTwoStartMessage {
			t.Errorf("Unexpected message %q", events[1].Message)
		}
	}

	// Second call is a no-op and does not notify again
	req = env.sessionRequest("POST", "/sessions/x/round-two", sessionID, 0, nil, "bob")
	w = httptest.NewRecorder()
	env.sessions.AdvanceRoundTwo(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	for _, id := range []string{"alice", "bob"} {
		if n := len(env.events.For(id)); n != 2 {
			t.Errorf("Expected %s to be notified once per event, got %d events", id, n)
		}
	}
}

func TestSessionAccess(t *testing.T) {
	env := setupEnv(t)
	activeID := env.pair(t, "alice", "bob")
	pending := env.join(t, "carol")

	tests := []struct {
		name           string
		sessionID      string
		participantID  string
		expectedStatus int
	}{
		{"member", "", "alice", http.StatusOK},
		{"non-member", "", "mallory", http.StatusForbidden},
		{"pending session", "pending", "carol", http.StatusConflict},
		{"unknown session", "999", "alice", http.StatusNotFound},
		{"malformed id", "abc", "alice", http.StatusBadRequest},
		{"zero id", "0", "alice", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := env.sessionRequest("GET", "/sessions/x/rounds/1/next", activeID, models.RoundOne, nil, tt.participantID)
			switch tt.sessionID {
			case "":
			case "pending":
				req.SetPathValue("id", strconv.FormatInt(pending.Session.ID, 10))
			default:
				req.SetPathValue("id", tt.sessionID)
			}

			w := httptest.NewRecorder()
			env.rounds.Next(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// The same gate guards round two
	req := env.sessionRequest("POST", "/sessions/x/round-two", pending.Session.ID, 0, nil, "carol")
	w := httptest.NewRecorder()
	env.sessions.AdvanceRoundTwo(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	req = env.sessionRequest("POST", "/sessions/x/round-two", activeID, 0, nil, "carol")
	w = httptest.NewRecorder()
	env.sessions.AdvanceRoundTwo(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

// stalledNotifier never finishes a delivery until released
type stalledNotifier struct {
	release chan struct{}
	log     *eventLog
}

func (s *stalledNotifier) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	<-s.release
	return s.log.Notify(ctx, p, ev)
}

func TestJoin_SlowDeliveryDoesNotDelayResponse(t *testing.T) {
	env := setupEnv(t)

	stalled := &stalledNotifier{release: make(chan struct{}), log: newEventLog()}
	async := notify.NewAsync(stalled, time.Minute)
	handler := NewSessionHandler(env.svc, env.cfg, async)

	join := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/sessions/join", nil, env.headers(id))
		w := httptest.NewRecorder()
		handler.Join(w, req)
		return w
	}

	join("alice")

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- join("bob") }()

	select {
	case w := <-done:
		testutil.AssertStatus(t, w, http.StatusOK)
	case <-time.After(2 * time.Second):
		close(stalled.release)
		t.Fatal("Join waited for notification delivery")
	}

	close(stalled.release)
	async.Wait()

	for _, id := range []string{"alice", "bob"} {
		if n := len(stalled.log.For(id)); n != 1 {
			t.Errorf("Expected 1 pairing notice for %s after delivery, got %d", id, n)
		}
	}
}
