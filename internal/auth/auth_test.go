// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
)

func TestStoreAgainstMockService(t *testing.T) {
	svc, err := api.NewMockService()
	require.NoError(t, err)
	store := NewStore(svc)
	ctx := context.Background()

	assert.Equal(t, StatusUnknown, store.Status())

	t.Run("check resolves the pre-authenticated mock session", func(t *testing.T) {
		status := store.CheckAuthentication(ctx)
		assert.Equal(t, StatusAuthenticated, status)
		require.NotNil(t, store.User())
		assert.Equal(t, "admin@example.com", store.User().Name)
	})

	t.Run("logout drops to guest and clears the profile", func(t *testing.T) {
		require.NoError(t, store.Logout(ctx))
		assert.Equal(t, StatusGuest, store.Status())
		assert.Nil(t, store.User())
	})

	t.Run("login restores the session", func(t *testing.T) {
		require.NoError(t, store.Login(ctx, "viewer@example.com", "pw"))
		assert.Equal(t, StatusAuthenticated, store.Status())
		assert.Equal(t, "viewer@example.com", store.User().Name)
	})

	t.Run("bad credentials leave the store unchanged", func(t *testing.T) {
		err := store.Login(ctx, "nobody@example.com", "pw")
		require.Error(t, err)
		assert.Equal(t, StatusAuthenticated, store.Status())
	})
}

// failingService errors on every session call.
type failingService struct {
	api.Service
}

func (failingService) LoggedUser(ctx context.Context) (string, error) {
	return "", errors.New("connection refused")
}

func (failingService) Logout(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestStoreDegradesToGuestOnErrors(t *testing.T) {
	store := NewStore(failingService{})
	ctx := context.Background()

	status := store.CheckAuthentication(ctx)
	assert.Equal(t, StatusGuest, status)
	assert.Nil(t, store.User())

	// Logout reports the error but still resets local state.
	err := store.Logout(ctx)
	require.Error(t, err)
	assert.Equal(t, StatusGuest, store.Status())
}

// expiredSessionService reports a logged-in user whose session dies before
// the profile fetch.
type expiredSessionService struct {
	api.Service
}

func (expiredSessionService) LoggedUser(ctx context.Context) (string, error) {
	return "admin@example.com", nil
}

func (expiredSessionService) UserInfo(ctx context.Context) (*api.User, error) {
	return nil, &api.APIError{
		StatusCode: http.StatusUnauthorized,
		ExcType:    "AuthenticationError",
		Message:    "session expired",
	}
}

func TestStoreTreatsExpiredSessionAsGuest(t *testing.T) {
	store := NewStore(expiredSessionService{})

	status := store.CheckAuthentication(context.Background())
	assert.Equal(t, StatusGuest, status)
	assert.Nil(t, store.User())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "guest", StatusGuest.String())
}
