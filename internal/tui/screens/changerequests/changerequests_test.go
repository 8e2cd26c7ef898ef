// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package changerequests

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

var manager = perms.Capabilities{ManageChangeRequests: true}

func newTestModel(t *testing.T, caps perms.Capabilities) Model {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	return NewModel(svc, "admin@example.com", caps)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.load()()
	require.IsType(t, loadedMsg{}, msg)
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestLoadFillsTable(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))
	require.Len(t, m.requests.Rows(), 2)
	assert.Equal(t, "CR-001", m.requests.Rows()[0][0])
}

func TestNewFormOpensEmpty(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(Model)
	assert.True(t, m.formOpen)
	assert.Nil(t, m.editing)
	assert.Equal(t, "Draft", m.fields.Status)
}

func TestEnterOpensEditFormPrefilled(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, editLoadedMsg{}, msg)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.True(t, m.formOpen)
	require.NotNil(t, m.editing)
	assert.Equal(t, "CR-001", m.editing.Name)
	assert.Equal(t, "Upgrade payments database to v16", m.fields.Title)
}

func TestEditRouteOpensFormDirectly(t *testing.T) {
	svc, err := api.NewMockService()
	require.NoError(t, err)
	m := NewEditModel(svc, "admin@example.com", manager, "CR-002")

	cmd := m.Init()
	require.NotNil(t, cmd)

	// Batch contains list load and edit load; run the edit load directly.
	msg := m.loadEdit("CR-002")()
	require.IsType(t, editLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.True(t, m.formOpen)
	assert.Equal(t, "Enable MFA for vault access", m.fields.Title)
}

func TestSubmitCreatesAndUpdates(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))

	m.fields = formFields{Title: "Patch runner AMIs", Status: "Draft", Priority: "High", ChangeType: "Security"}
	msg := m.submit()()
	saved, ok := msg.(savedMsg)
	require.True(t, ok, "expected savedMsg, got %T", msg)
	assert.NotEmpty(t, saved.Request.Name)
	assert.Equal(t, "admin@example.com", saved.Request.RequestedBy)

	// Now update the same record through the edit path.
	m.editing = saved.Request
	m.fields.Status = "Approved"
	msg = m.submit()()
	saved, ok = msg.(savedMsg)
	require.True(t, ok)
	assert.Equal(t, "Approved", saved.Request.Status)
}

func TestDeleteRemovesRow(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))

	msg := m.delete("CR-002")()
	require.IsType(t, deletedMsg{}, msg)

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd()) // reload
	m = updated.(Model)
	assert.Len(t, m.requests.Rows(), 1)
}

func TestMutationsDeniedWithoutRole(t *testing.T) {
	m := loaded(t, newTestModel(t, perms.Capabilities{}))

	for _, key := range []string{"n", "x"} {
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		m = updated.(Model)
		assert.False(t, m.formOpen)
		assert.Nil(t, cmd)
		assert.Contains(t, m.GetLayoutInfo().Status, "requires")
	}
}

func TestChangeRequestEventReloads(t *testing.T) {
	m := loaded(t, newTestModel(t, manager))
	change := messages.RecordChangedMsg{}
	change.Change.Doctype = "Change Request"
	_, cmd := m.Update(change)
	require.NotNil(t, cmd)
	assert.IsType(t, loadedMsg{}, cmd())
}
