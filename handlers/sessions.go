// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/notify"
)

const (
	pairedMessage        = "Pair found! Starting round 1."
	roundTwoStartMessage = "Starting round 2."
)

type SessionHandler struct {
	svc      *game.Service
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewSessionHandler(svc *game.Service, cfg cliparse.Config, notifier notify.Notifier) *SessionHandler {
	return &SessionHandler{svc: svc, cfg: cfg, notifier: notifier}
}

// Join handles POST /sessions/join
// Pairs the caller with the oldest waiting participant, or parks them in a
// new waiting session. The body is optional.
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}

	var req models.JoinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess, becameActive, err := h.svc.JoinOrCreate(r.Context(), participantID, req.DisplayName, req.Address)
	if err != nil {
		if errors.Is(err, game.ErrInvalidArgument) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to join session", "participant_id", participantID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join session")
		return
	}

	if becameActive {
		slog.Info("session activated", "session_id", sess.ID, "participant_id", participantID)
		notifySession(r.Context(), h.svc, h.notifier, sess, models.Event{
			Type:      models.EventPaired,
			SessionID: sess.ID,
			Round:     models.RoundOne,
			Message:   pairedMessage,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.JoinResponse{
		Session:      models.NewSessionView(sess),
		BecameActive: becameActive,
	})
}

// Me handles GET /sessions/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}

	sess, err := h.svc.SessionFor(r.Context(), participantID)
	if err != nil {
		slog.Error("failed to query session", "participant_id", participantID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if sess == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No session yet, join first")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewSessionView(*sess))
}

// AdvanceRoundTwo handles POST /sessions/{id}/round-two
// Either participant may start round 2, whether or not round 1 is finished.
// Both participants are notified the first time only.
func (h *SessionHandler) AdvanceRoundTwo(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}
	sess, ok := loadSession(w, r, h.svc, participantID)
	if !ok {
		return
	}

	started, err := h.svc.AdvanceToRoundTwo(r.Context(), sess.ID)
	if err != nil {
		if errors.Is(err, game.ErrSessionNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		slog.Error("failed to start round two", "session_id", sess.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start round two")
		return
	}

	if started {
		slog.Info("round two started", "session_id", sess.ID, "participant_id", participantID)
		notifySession(r.Context(), h.svc, h.notifier, *sess, models.Event{
			Type:      models.EventRoundTwoStart,
			SessionID: sess.ID,
			Round:     models.RoundTwo,
			Message:   roundTwoStartMessage,
		})
	}

	next, err := nextFor(r.Context(), h.svc, sess.ID, models.RoundTwo, participantID)
	if err != nil {
		slog.Error("failed to load next candidate", "session_id", sess.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, next)
}
