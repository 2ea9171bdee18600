// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/namepair/auth"
	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/notify"
)

const (
	headerParticipantID      = "X-Participant-ID"
	headerParticipantToken   = "X-Participant-Token"
	headerParticipantAddress = "X-Participant-Address"
)

// authenticate checks the participant headers and refreshes the stored
// address and last-seen time. It writes the error response itself.
func authenticate(w http.ResponseWriter, r *http.Request, svc *game.Service, cfg cliparse.Config) (string, bool) {
	participantID := r.Header.Get(headerParticipantID)
	token := r.Header.Get(headerParticipantToken)
	return checkParticipant(w, r, svc, cfg, participantID, token)
}

func checkParticipant(w http.ResponseWriter, r *http.Request, svc *game.Service, cfg cliparse.Config, participantID, token string) (string, bool) {
	if err := auth.ValidateParticipantToken(participantID, token, cfg.ParticipantTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant credentials")
		return "", false
	}

	var address *string
	if a := r.Header.Get(headerParticipantAddress); a != "" {
		address = &a
	}
	if err := svc.Register(r.Context(), participantID, nil, address); err != nil {
		slog.Error("failed to refresh participant", "participant_id", participantID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}

	return participantID, true
}

// loadSession resolves {id} and checks the caller may play in it
func loadSession(w http.ResponseWriter, r *http.Request, svc *game.Service, participantID string) (*models.Session, bool) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid session id")
		return nil, false
	}

	sess, err := svc.Session(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to load session", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	if sess == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	if !sess.Has(participantID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a participant of this session")
		return nil, false
	}
	if !sess.Active() {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is still waiting for a partner")
		return nil, false
	}

	return sess, true
}

func parseRound(w http.ResponseWriter, r *http.Request) (int, bool) {
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil || !models.ValidRound(round) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Round must be 1 or 2")
		return 0, false
	}
	return round, true
}

// nextFor builds the next-candidate view for a participant
func nextFor(ctx context.Context, svc *game.Service, sessionID int64, round int, participantID string) (models.NextCandidateResponse, error) {
	next, err := svc.NextCandidate(ctx, sessionID, round, participantID)
	if err != nil {
		return models.NextCandidateResponse{}, err
	}
	answered, total, err := svc.Progress(ctx, sessionID, round, participantID)
	if err != nil {
		return models.NextCandidateResponse{}, err
	}

	return models.NextCandidateResponse{
		Round:     round,
		Candidate: next,
		Done:      next == nil,
		Progress:  models.Progress{Answered: answered, Total: total},
	}, nil
}

// notifySession sends ev to both participants of an active session
func notifySession(ctx context.Context, svc *game.Service, n notify.Notifier, sess models.Session, ev models.Event) {
	if !sess.Active() {
		return
	}
	notifyParticipant(ctx, svc, n, sess.First, ev)
	notifyParticipant(ctx, svc, n, *sess.Second, ev)
}

// notifyParticipant delivers ev best effort. Failures are logged, never returned.
func notifyParticipant(ctx context.Context, svc *game.Service, n notify.Notifier, participantID string, ev models.Event) {
	if n == nil || participantID == "" {
		return
	}

	p, err := svc.Participant(ctx, participantID)
	if err != nil {
		slog.Warn("failed to load participant for notification", "participant_id", participantID, "error", err)
		return
	}
	if p == nil {
		p = &models.Participant{ID: participantID}
	}

	ev.SentAt = time.Now().UTC()
	if err := n.Notify(ctx, *p, ev); err != nil {
		slog.Warn("notification failed",
			"participant_id", participantID,
			"event", ev.Type,
			"session_id", ev.SessionID,
			"error", err,
		)
	}
}
