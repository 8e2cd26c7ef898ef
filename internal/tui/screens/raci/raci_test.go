// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package raci

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
)

func loadedModel(t *testing.T) Model {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	m := NewModel(svc, "admin@example.com")

	msg := m.Init()()
	require.IsType(t, loadedMsg{}, msg)
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestLoadSelectsFirstTemplate(t *testing.T) {
	m := loadedModel(t)
	require.Len(t, m.templates, 2)
	assert.Equal(t, 0, m.selected)
	assert.Len(t, m.matrix.Rows(), 2)
	assert.Equal(t, "Production Deployment", m.GetLayoutInfo().Title)
}

func TestArrowsSwitchTemplates(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	assert.Equal(t, 1, m.selected)
	assert.Equal(t, "Incident Response", m.GetLayoutInfo().Title)
	assert.Len(t, m.matrix.Rows(), 1)

	// Right at the end stays put.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	assert.Equal(t, 1, m.selected)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	assert.Equal(t, 0, m.selected)
}

func TestViewShowsMatrix(t *testing.T) {
	m := loadedModel(t)
	view := m.View()
	assert.Contains(t, view, "Responsible")
	assert.Contains(t, view, "Release Manager")
}
