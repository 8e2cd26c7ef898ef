// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth tracks the backend session state for the UI. The store never
// propagates backend failures to callers: any error while checking the
// session resolves to the guest state, so the UI can always render something.
package auth

import (
	"context"
	"sync"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

// Status is the session state as last observed.
type Status int

const (
	// StatusUnknown means no session check has completed yet.
	StatusUnknown Status = iota
	// StatusAuthenticated means the backend reported a named user.
	StatusAuthenticated
	// StatusGuest means no session exists or the last check failed.
	StatusGuest
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusGuest:
		return "guest"
	default:
		return "unknown"
	}
}

// Store caches the session status and user profile between checks.
type Store struct {
	svc api.Service

	mu     sync.RWMutex
	status Status
	user   *api.User
}

func NewStore(svc api.Service) *Store {
	return &Store{svc: svc, status: StatusUnknown}
}

// Status returns the last observed session state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the cached profile, nil unless authenticated.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// CheckAuthentication queries the backend for the current session and caches
// the result. Backend errors resolve to guest rather than surfacing, so a
// flaky network degrades to a login prompt instead of an error screen.
func (s *Store) CheckAuthentication(ctx context.Context) Status {
	log := logger.GetAuthLogger()

	user, err := s.svc.LoggedUser(ctx)
	if err != nil || user == "" || user == "Guest" {
		if err != nil {
			log.Debug().Err(err).Msg("session check failed, treating as guest")
		}
		s.setGuest()
		return StatusGuest
	}

	info, err := s.svc.UserInfo(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			log.Debug().Str("user", user).Msg("session expired between check and profile fetch")
		} else {
			log.Warn().Err(err).Str("user", user).Msg("profile fetch failed, treating as guest")
		}
		s.setGuest()
		return StatusGuest
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = info
	s.mu.Unlock()
	return StatusAuthenticated
}

// Login authenticates against the backend and refreshes the cached profile.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if err := s.svc.Login(ctx, username, password); err != nil {
		return err
	}
	s.CheckAuthentication(ctx)
	return nil
}

// Logout ends the backend session. The local state drops to guest even when
// the backend call fails; a dead session is indistinguishable from a closed
// one from the UI's point of view.
func (s *Store) Logout(ctx context.Context) error {
	err := s.svc.Logout(ctx)
	s.setGuest()
	return err
}

func (s *Store) setGuest() {
	s.mu.Lock()
	s.status = StatusGuest
	s.user = nil
	s.mu.Unlock()
}
