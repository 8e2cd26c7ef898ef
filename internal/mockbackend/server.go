// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

// Server is the mock backend HTTP + websocket server.
type Server struct {
	httpServer *http.Server
}

// New creates and wires up the mock backend. It does NOT start listening;
// call Run() for that.
func New(cfg *config.MockConfig) (*Server, error) {
	var store *Store
	var err error
	if cfg.FixturesPath != "" {
		store, err = LoadFile(cfg.FixturesPath)
	} else {
		store, err = LoadEmbedded()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	registry := NewClientRegistry()
	handlers := NewHandlers(store, registry)

	r := chi.NewRouter()

	// Global middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(MaxBodySize(1 << 20)) // 1 MB default

	// Session endpoints: reachable without a session
	r.Post("/api/method/login", handlers.Login)
	r.Post("/api/method/logout", handlers.Logout)
	r.Get("/api/method/frappe.auth.get_logged_user", handlers.LoggedUser)

	// Authenticated method endpoints
	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireSession)
		r.Get("/api/method/frappe.sessions.get_csrf_token", handlers.CSRFToken)
		r.Get("/api/method/devsecops.api.get_user_info", handlers.UserInfo)
		r.Get("/api/method/devsecops.api.reveal_vault_entry", handlers.RevealVaultEntry)
	})

	// Document CRUD
	r.Route("/api/resource/{doctype}", func(r chi.Router) {
		r.Use(handlers.RequireSession)
		r.Use(handlers.RequireCSRF)
		r.Get("/", handlers.ListDocs)
		r.Post("/", handlers.CreateDoc)
		r.Get("/{name}", handlers.GetDoc)
		r.Put("/{name}", handlers.UpdateDoc)
		r.Delete("/{name}", handlers.DeleteDoc)
	})

	// Realtime doc events
	r.Get("/ws", HandleWebSocket(registry, cfg.AllowedOrigins))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	log := logger.GetMockLogger()
	log.Info().Str("addr", s.httpServer.Addr).Msg("Mock backend listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
