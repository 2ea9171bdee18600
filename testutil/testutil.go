// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/namepair/auth"
	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/db"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                 3318,
		DatabaseURL:          TestDBURL,
		DatabaseType:         cliparse.DatabaseSQLite,
		NamesSource:          "names.txt",
		ParticipantTokenSalt: "test-token-salt",
	}
}

// AddTestCandidates inserts candidates in order and returns their ids
func AddTestCandidates(t *testing.T, db *sql.DB, labels ...string) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(labels))
	for _, label := range labels {
		var id int64
		err := db.QueryRow(`
			INSERT INTO candidate (label) VALUES ($1) RETURNING id
		`, label).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to create test candidate %q: %v", label, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// NumberedCandidates returns n distinct labels
func NumberedCandidates(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Name%03d", i+1)
	}
	return labels
}

// ParticipantHeaders returns the identity headers for a participant
func ParticipantHeaders(cfg cliparse.Config, participantID string) map[string]string {
	return map[string]string{
		"X-Participant-ID":    participantID,
		"X-Participant-Token": auth.GenerateParticipantToken(participantID, cfg.ParticipantTokenSalt),
	}
}

// CountRows runs a COUNT query and returns the result
func CountRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
