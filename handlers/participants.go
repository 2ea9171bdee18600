// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/namepair/auth"
	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/models"
	"github.com/danielhkuo/namepair/notify"
)

const maxParticipantIDLength = 128

type ParticipantHandler struct {
	svc *game.Service
	cfg cliparse.Config
	hub *notify.Hub
}

func NewParticipantHandler(svc *game.Service, cfg cliparse.Config, hub *notify.Hub) *ParticipantHandler {
	return &ParticipantHandler{svc: svc, cfg: cfg, hub: hub}
}

// Register handles POST /participants
// Creates a participant and returns its token. An existing participant may
// only be refreshed by a caller presenting that participant's credentials.
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.ParticipantID = strings.TrimSpace(req.ParticipantID)
	if req.ParticipantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id is required")
		return
	}
	if utf8.RuneCountInString(req.ParticipantID) > maxParticipantIDLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id is too long")
		return
	}

	existing, err := h.svc.Participant(r.Context(), req.ParticipantID)
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if existing != nil && !h.ownsParticipant(r, existing.ID) {
		middleware.ErrorResponse(w, http.StatusConflict, "Participant already registered")
		return
	}

	if err := h.svc.Register(r.Context(), req.ParticipantID, req.DisplayName, req.Address); err != nil {
		if errors.Is(err, game.ErrInvalidArgument) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to register participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register participant")
		return
	}

	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}

	slog.Info("participant registered", "participant_id", req.ParticipantID, "new", existing == nil)

	middleware.JSONResponse(w, status, models.RegisterParticipantResponse{
		ParticipantID:    req.ParticipantID,
		ParticipantToken: auth.GenerateParticipantToken(req.ParticipantID, h.cfg.ParticipantTokenSalt),
	})
}

// ownsParticipant reports whether the request carries valid credentials for participantID
func (h *ParticipantHandler) ownsParticipant(r *http.Request, participantID string) bool {
	if r.Header.Get(headerParticipantID) != participantID {
		return false
	}
	token := r.Header.Get(headerParticipantToken)
	return auth.ValidateParticipantToken(participantID, token, h.cfg.ParticipantTokenSalt) == nil
}

// Events handles GET /participants/me/events
// Upgrades to a websocket that streams notifications. Browsers cannot set
// headers on the handshake, so participant_id and token query parameters
// are accepted as well.
func (h *ParticipantHandler) Events(w http.ResponseWriter, r *http.Request) {
	participantID := r.Header.Get(headerParticipantID)
	token := r.Header.Get(headerParticipantToken)
	if participantID == "" {
		participantID = r.URL.Query().Get("participant_id")
		token = r.URL.Query().Get("token")
	}

	participantID, ok := checkParticipant(w, r, h.svc, h.cfg, participantID, token)
	if !ok {
		return
	}

	h.hub.Serve(w, r, participantID)
}
