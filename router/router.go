// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/handlers"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/notify"
)

// NewRouter wires every endpoint. hub serves the websocket feed; notifier
// delivers pairing and round-two events and usually includes hub.
func NewRouter(svc *game.Service, cfg cliparse.Config, hub *notify.Hub, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	participantHandler := handlers.NewParticipantHandler(svc, cfg, hub)
	sessionHandler := handlers.NewSessionHandler(svc, cfg, notifier)
	roundHandler := handlers.NewRoundHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Participants
	mux.HandleFunc("POST /participants", middleware.WithLogging(participantHandler.Register))
	mux.HandleFunc("GET /participants/me/events", middleware.WithLogging(participantHandler.Events))

	// Sessions
	mux.HandleFunc("POST /sessions/join", middleware.WithLogging(sessionHandler.Join))
	mux.HandleFunc("GET /sessions/me", middleware.WithLogging(sessionHandler.Me))
	mux.HandleFunc("POST /sessions/{id}/round-two", middleware.WithLogging(sessionHandler.AdvanceRoundTwo))

	// Rounds
	mux.HandleFunc("GET /sessions/{id}/rounds/{round}/next", middleware.WithLogging(roundHandler.Next))
	mux.HandleFunc("POST /sessions/{id}/rounds/{round}/ratings", middleware.WithLogging(roundHandler.Rate))
	mux.HandleFunc("GET /sessions/{id}/rounds/{round}/results", middleware.WithLogging(roundHandler.Results))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("namepair API v1"))
	})

	return mux
}
