// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/models"
)

type RoundHandler struct {
	svc *game.Service
	cfg cliparse.Config
}

func NewRoundHandler(svc *game.Service, cfg cliparse.Config) *RoundHandler {
	return &RoundHandler{svc: svc, cfg: cfg}
}

// Next handles GET /sessions/{id}/rounds/{round}/next
func (h *RoundHandler) Next(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}
	sess, ok := loadSession(w, r, h.svc, participantID)
	if !ok {
		return
	}
	round, ok := parseRound(w, r)
	if !ok {
		return
	}

	next, err := nextFor(r.Context(), h.svc, sess.ID, round, participantID)
	if err != nil {
		slog.Error("failed to load next candidate", "session_id", sess.ID, "round", round, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, next)
}

// Rate handles POST /sessions/{id}/rounds/{round}/ratings
// A repeat rating is not an error: recorded is false and the first verdict stands.
func (h *RoundHandler) Rate(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}
	sess, ok := loadSession(w, r, h.svc, participantID)
	if !ok {
		return
	}
	round, ok := parseRound(w, r)
	if !ok {
		return
	}

	var req models.RateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !models.ValidVerdict(req.Verdict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid selection")
		return
	}

	candidate, err := h.svc.Candidate(r.Context(), req.CandidateID)
	if err != nil {
		slog.Error("failed to query candidate", "candidate_id", req.CandidateID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if candidate == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate")
		return
	}
	inRound, err := h.svc.InRound(r.Context(), sess.ID, round, candidate.ID)
	if err != nil {
		slog.Error("failed to check round pool", "session_id", sess.ID, "round", round, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !inRound {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate is not part of this round")
		return
	}

	recorded, err := h.svc.Record(r.Context(), sess.ID, round, participantID, candidate.ID, req.Verdict)
	if err != nil {
		if errors.Is(err, game.ErrInvalidArgument) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid selection")
			return
		}
		slog.Error("failed to record rating", "session_id", sess.ID, "round", round, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record rating")
		return
	}

	if recorded {
		slog.Debug("rating recorded",
			"session_id", sess.ID,
			"round", round,
			"participant_id", participantID,
			"candidate_id", candidate.ID,
			"verdict", req.Verdict,
		)
	}

	next, err := nextFor(r.Context(), h.svc, sess.ID, round, participantID)
	if err != nil {
		slog.Error("failed to load next candidate", "session_id", sess.ID, "round", round, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RateResponse{
		Recorded: recorded,
		Next:     next,
	})
}

// Results handles GET /sessions/{id}/rounds/{round}/results
func (h *RoundHandler) Results(w http.ResponseWriter, r *http.Request) {
	participantID, ok := authenticate(w, r, h.svc, h.cfg)
	if !ok {
		return
	}
	sess, ok := loadSession(w, r, h.svc, participantID)
	if !ok {
		return
	}
	round, ok := parseRound(w, r)
	if !ok {
		return
	}

	matches, err := h.svc.Results(r.Context(), sess.ID, round)
	if err != nil {
		slog.Error("failed to compute results", "session_id", sess.ID, "round", round, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		SessionID: sess.ID,
		Round:     round,
		Matches:   matches,
	})
}
