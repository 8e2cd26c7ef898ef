// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/realtime"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

func newModel(t *testing.T, caps perms.Capabilities) Model {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	return NewModel(svc, "admin@example.com", caps)
}

func TestLoadFillsTable(t *testing.T) {
	m := newModel(t, perms.Capabilities{EditProjects: true})

	msg := m.Init()()
	require.IsType(t, loadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Len(t, m.tasks.Rows(), 3)
}

func TestNewTaskKeyOpensForm(t *testing.T) {
	m := newModel(t, perms.Capabilities{EditProjects: true})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(Model)
	assert.True(t, m.formOpen)
	require.NotNil(t, m.form)

	// Esc abandons the form without creating anything.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.False(t, m.formOpen)
}

func TestNewTaskKeyDeniedWithoutRole(t *testing.T) {
	m := newModel(t, perms.Capabilities{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(Model)
	assert.False(t, m.formOpen)
	assert.Contains(t, m.GetLayoutInfo().Status, "Projects Manager")
}

func TestSubmitCreatesTask(t *testing.T) {
	m := newModel(t, perms.Capabilities{EditProjects: true})
	m.formSubj = "Harden ingress"
	m.formProj = "PROJ-002"
	m.formPrio = "High"

	msg := m.submit()()
	created, ok := msg.(createdMsg)
	require.True(t, ok, "expected createdMsg, got %T", msg)
	assert.NotEmpty(t, created.Task.Name)
	assert.Equal(t, "Open", created.Task.Status)

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.GetLayoutInfo().Status, "Created")
	require.NotNil(t, cmd, "creation triggers a reload")
}

func TestTaskEventReloads(t *testing.T) {
	m := newModel(t, perms.Capabilities{})
	change := realtime.RecordChanged{Event: "doc_insert", Doctype: "Task", Name: "TASK-0009"}
	_, cmd := m.Update(messages.RecordChangedMsg{Change: change})
	require.NotNil(t, cmd)
	assert.IsType(t, loadedMsg{}, cmd())
}
