// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashlinks

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

func TestLoadFillsList(t *testing.T) {
	m := loadedModel(t)
	assert.Len(t, m.links.Items(), 3)
}

func TestEnterShowsURL(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Equal(t, "https://grafana.example.com/d/payments", m.selected)
	assert.Contains(t, m.GetLayoutInfo().Status, "grafana.example.com")
}
