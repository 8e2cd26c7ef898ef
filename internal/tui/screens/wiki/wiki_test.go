// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package wiki

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

var editor = perms.Capabilities{EditWiki: true}

func mockService(t *testing.T) api.Service {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	return svc
}

func TestSpaceIndex(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", editor, "", "")

	msg := m.Init()()
	require.IsType(t, spacesLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	require.Len(t, m.spaces.Items(), 2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	navMsg, ok := cmd().(messages.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, nav.RouteWikiSpace, navMsg.Route)
	assert.Equal(t, []string{"platform"}, navMsg.Params)
}

func TestPageListOfSpace(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", editor, "platform", "")

	msg := m.Init()()
	require.IsType(t, pagesLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	require.Len(t, m.pages.Items(), 2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	navMsg, ok := cmd().(messages.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, nav.RouteWikiPage, navMsg.Route)
	assert.Equal(t, []string{"platform", "on-call"}, navMsg.Params)
}

func TestPageView(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", editor, "platform", "on-call")

	msg := m.Init()()
	require.IsType(t, pageLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.View(), "Escalation order")
	assert.Contains(t, m.GetLayoutInfo().Status, "admin@example.com")
}

func TestEditAndSave(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", editor, "platform", "on-call")
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = updated.(Model)
	require.True(t, m.formOpen)

	m.formOpen = false
	m.form = nil
	m.draft = "# On-call Handbook\n\nRotations changed.\n"

	msg := m.save()()
	saved, ok := msg.(savedMsg)
	require.True(t, ok, "expected savedMsg, got %T", msg)
	assert.Contains(t, saved.Page.Content, "Rotations changed.")
}

func TestEditDeniedWithoutRole(t *testing.T) {
	m := NewModel(mockService(t), "viewer@example.com", perms.Capabilities{}, "platform", "on-call")
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = updated.(Model)
	assert.False(t, m.formOpen)
	assert.Contains(t, m.GetLayoutInfo().Status, "Wiki Editor")
}

func TestMissingPageReportsError(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", editor, "platform", "ghost")

	msg := m.Init()()
	require.IsType(t, errMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.GetLayoutInfo().Status, "Error")
}
