// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Verdict constants
const (
	VerdictLike    = "like"
	VerdictNeutral = "neutral"
	VerdictDislike = "dislike"
)

// Round constants
const (
	RoundOne = 1
	RoundTwo = 2
)

// Session status constants (derived, not stored)
const (
	StatusWaiting = "waiting"
	StatusActive  = "active"
)

// Event type constants
const (
	EventPaired        = "paired"
	EventRoundTwoStart = "round_two_started"
)

// ValidVerdict reports whether v is one of the three verdicts
func ValidVerdict(v string) bool {
	switch v {
	case VerdictLike, VerdictNeutral, VerdictDislike:
		return true
	}
	return false
}

// ValidRound reports whether r is a playable round
func ValidRound(r int) bool {
	return r == RoundOne || r == RoundTwo
}

// Request types

type RegisterParticipantRequest struct {
	ParticipantID string  `json:"participant_id"`
	DisplayName   *string `json:"display_name,omitempty"`
	Address       *string `json:"address,omitempty"`
}

type JoinRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type RateRequest struct {
	CandidateID int64  `json:"candidate_id"`
	Verdict     string `json:"verdict"`
}

// Response types

type RegisterParticipantResponse struct {
	ParticipantID    string `json:"participant_id"`
	ParticipantToken string `json:"participant_token"`
}

type JoinResponse struct {
	Session      SessionView `json:"session"`
	BecameActive bool        `json:"became_active"`
}

type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

type NextCandidateResponse struct {
	Round     int        `json:"round"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Done      bool       `json:"done"`
	Progress  Progress   `json:"progress"`
}

type RateResponse struct {
	Recorded bool                  `json:"recorded"`
	Next     NextCandidateResponse `json:"next"`
}

type ResultsResponse struct {
	SessionID int64    `json:"session_id"`
	Round     int      `json:"round"`
	Matches   []string `json:"matches"`
}

// Domain types

type Participant struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
	Address     *string `json:"-"` // Delivery only, never echoed
}

type Candidate struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Session is a pairing of two participants. Second is nil while pending.
type Session struct {
	ID              int64     `json:"id"`
	First           string    `json:"first_participant_id"`
	Second          *string   `json:"second_participant_id,omitempty"`
	CurrentRound    int       `json:"current_round"`
	RoundTwoStarted bool      `json:"round_two_started"`
	CreatedAt       time.Time `json:"created_at"`
}

// Active reports whether both slots are filled
func (s Session) Active() bool {
	return s.Second != nil
}

// Has reports whether participantID occupies either slot
func (s Session) Has(participantID string) bool {
	return s.First == participantID || (s.Second != nil && *s.Second == participantID)
}

// Partner returns the other slot's participant, or "" if there is none
func (s Session) Partner(participantID string) string {
	switch {
	case s.First == participantID && s.Second != nil:
		return *s.Second
	case s.Second != nil && *s.Second == participantID:
		return s.First
	}
	return ""
}

// SessionView is the JSON shape returned to participants
type SessionView struct {
	Session
	Status string `json:"status"`
}

func NewSessionView(s Session) SessionView {
	status := StatusWaiting
	if s.Active() {
		status = StatusActive
	}
	return SessionView{Session: s, Status: status}
}

type Rating struct {
	ID            string    `json:"id"`
	SessionID     int64     `json:"session_id"`
	Round         int       `json:"round"`
	ParticipantID string    `json:"participant_id"`
	CandidateID   int64     `json:"candidate_id"`
	Verdict       string    `json:"verdict"`
	CreatedAt     time.Time `json:"created_at"`
}

// Event is pushed to participants through a notifier
type Event struct {
	Type      string    `json:"type"`
	SessionID int64     `json:"session_id"`
	Round     int       `json:"round"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Stats is a point-in-time count of stored records
type Stats struct {
	Participants     int64 `json:"participants"`
	Candidates       int64 `json:"candidates"`
	PendingSessions  int64 `json:"pending_sessions"`
	ActiveSessions   int64 `json:"active_sessions"`
	RoundTwoSessions int64 `json:"round_two_sessions"`
	Ratings          int64 `json:"ratings"`
}
