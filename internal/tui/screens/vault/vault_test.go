// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package vault

import (
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
)

var vaultUser = perms.Capabilities{AccessVault: true}

func newModel(t *testing.T, caps perms.Capabilities) Model {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	return NewModel(svc, "admin@example.com", caps)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	require.IsType(t, loadedMsg{}, msg)
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestGatedWithoutRole(t *testing.T) {
	m := newModel(t, perms.Capabilities{})
	assert.Nil(t, m.Init(), "no data is fetched without the role")
	assert.Contains(t, m.View(), "Vault User role")
}

func TestListNeverContainsPasswords(t *testing.T) {
	m := loaded(t, newModel(t, vaultUser))
	require.Len(t, m.entries.Rows(), 2)
	view := m.View()
	assert.NotContains(t, view, "mock-not-a-real-secret")
}

func TestRevealShowsAndTogglesOff(t *testing.T) {
	m := loaded(t, newModel(t, vaultUser))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	revealed, ok := msg.(revealedMsg)
	require.True(t, ok, "expected revealedMsg, got %T", msg)
	assert.Equal(t, "mock-not-a-real-secret", revealed.Entry.Password)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.View(), "mock-not-a-real-secret")

	// Enter again hides it.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.NotContains(t, m.View(), "mock-not-a-real-secret")
}

func TestMovingSelectionHidesSecret(t *testing.T) {
	m := loaded(t, newModel(t, vaultUser))

	updated, _ := m.Update(m.reveal("VLT-001")())
	m = updated.(Model)
	require.NotNil(t, m.revealed)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Nil(t, m.revealed)
}

func TestCreateAndDelete(t *testing.T) {
	m := loaded(t, newModel(t, vaultUser))
	m.fields = entryFields{Title: "CI deploy key", Category: "CI", Username: "deploy", Password: "pw"}

	msg := m.submit()()
	created, ok := msg.(createdMsg)
	require.True(t, ok, "expected createdMsg, got %T", msg)
	assert.Empty(t, created.Entry.Password, "create responses never echo the secret")

	msg = m.delete(created.Entry.Name)()
	require.IsType(t, deletedMsg{}, msg)
}

func TestRevealFailuresAreClassified(t *testing.T) {
	m := loaded(t, newModel(t, vaultUser))

	updated, _ := m.Update(errMsg{Err: &api.APIError{
		StatusCode: http.StatusForbidden,
		ExcType:    "PermissionError",
		Message:    "Vault User role required",
	}})
	m = updated.(Model)
	assert.Equal(t, "Not permitted to reveal this entry", m.statusMsg)

	updated, _ = m.Update(errMsg{Err: &api.APIError{
		StatusCode: http.StatusNotFound,
		ExcType:    "DoesNotExistError",
		Message:    "Vault Entry VLT-999 not found",
	}})
	m = updated.(Model)
	assert.Equal(t, "Entry no longer exists", m.statusMsg)

	updated, _ = m.Update(errMsg{Err: errors.New("connection refused")})
	m = updated.(Model)
	assert.Contains(t, m.statusMsg, "Error: connection refused")
}
