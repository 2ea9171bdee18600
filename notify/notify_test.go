// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/namepair/models"
)

type recorder struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (r *recorder) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func strPtr(s string) *string { return &s }

func testEvent() models.Event {
	return models.Event{
		Type:      models.EventPaired,
		SessionID: 7,
		Round:     models.RoundOne,
		Message:   "You have been paired",
		SentAt:    time.Now().UTC(),
	}
}

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	a := &recorder{}
	b := &recorder{err: errors.New("boom")}
	c := &recorder{}

	err := Multi{a, b, c}.Notify(context.Background(), models.Participant{ID: "p1"}, testEvent())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected joined error containing boom, got %v", err)
	}
	for i, r := range []*recorder{a, b, c} {
		if len(r.events) != 1 {
			t.Errorf("notifier %d: expected 1 event, got %d", i, len(r.events))
		}
	}
}

func TestWebhook_PostsEvent(t *testing.T) {
	var got models.Event
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotID = r.Header.Get("X-Participant-ID")
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(2 * time.Second)
	p := models.Participant{ID: "p1", Address: strPtr(srv.URL + "/hook")}
	if err := wh.Notify(context.Background(), p, testEvent()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if gotID != "p1" {
		t.Errorf("expected participant header p1, got %q", gotID)
	}
	if got.Type != models.EventPaired || got.SessionID != 7 {
		t.Errorf("unexpected event delivered: %+v", got)
	}
}

func TestWebhook_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(2 * time.Second)
	p := models.Participant{ID: "p1", Address: strPtr(srv.URL)}
	if err := wh.Notify(context.Background(), p, testEvent()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestWebhook_SkipsNonHTTPAddresses(t *testing.T) {
	wh := NewWebhook(time.Second)
	tests := []struct {
		name    string
		address *string
	}{
		{"nil", nil},
		{"empty", strPtr("")},
		{"device token", strPtr("apns:abc123")},
		{"mailto", strPtr("mailto:someone@example.com")},
		{"no host", strPtr("http://")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Participant{ID: "p1", Address: tt.address}
			if err := wh.Notify(context.Background(), p, testEvent()); err != nil {
				t.Errorf("expected skip, got %v", err)
			}
		})
	}
}

func TestHub_DeliversToConnectedParticipant(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("id"))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?id=p1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Connected("p1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Notify(context.Background(), models.Participant{ID: "p1"}, testEvent()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	// Other participants get nothing and no error
	if err := hub.Notify(context.Background(), models.Participant{ID: "p2"}, testEvent()); err != nil {
		t.Fatalf("Notify p2: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != models.EventPaired || got.SessionID != 7 {
		t.Errorf("unexpected event: %+v", got)
	}
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "p1")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Connected("p1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for hub.Connected("p1") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// blockingNotifier holds each delivery until release is closed
type blockingNotifier struct {
	release chan struct{}
	mu      sync.Mutex
	events  []models.Event
	ctxErrs []error
}

func (b *blockingNotifier) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	b.ctxErrs = append(b.ctxErrs, ctx.Err())
	return nil
}

func TestAsync_DoesNotWaitForDelivery(t *testing.T) {
	slow := &blockingNotifier{release: make(chan struct{})}
	async := NewAsync(slow, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())

	returned := make(chan error, 1)
	go func() {
		returned <- async.Notify(ctx, models.Participant{ID: "p1"}, testEvent())
	}()

	select {
	case err := <-returned:
		if err != nil {
			t.Errorf("Notify() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		close(slow.release)
		t.Fatal("Notify blocked on a slow delivery")
	}

	// The request that triggered the event is over
	cancel()
	close(slow.release)
	async.Wait()

	if len(slow.events) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(slow.events))
	}
	if slow.ctxErrs[0] != nil {
		t.Errorf("delivery context was cancelled with the caller: %v", slow.ctxErrs[0])
	}
}

func TestAsync_SwallowsErrors(t *testing.T) {
	failing := &recorder{err: errors.New("boom")}
	async := NewAsync(failing, time.Second)

	if err := async.Notify(context.Background(), models.Participant{ID: "p1"}, testEvent()); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}
	async.Wait()

	failing.mu.Lock()
	defer failing.mu.Unlock()
	if len(failing.events) != 1 {
		t.Errorf("expected delivery attempt, got %d", len(failing.events))
	}
}
