// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectdetail

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

func mockService(t *testing.T) api.Service {
	t.Helper()
	svc, err := api.NewMockService()
	require.NoError(t, err)
	return svc
}

func TestProjectLoad(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", "PROJ-001")

	msg := m.Init()()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok, "expected loadedMsg, got %T", msg)
	assert.Equal(t, "Payments Platform", loaded.Project.ProjectName)
	assert.Len(t, loaded.Apps, 2)
	assert.Len(t, loaded.Tasks, 2)

	updated, _ := m.Update(msg)
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Payments Platform")
	assert.Contains(t, view, "payments-api")
}

func TestUnknownProjectReportsMissing(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", "PROJ-404")

	msg := m.Init()()
	require.IsType(t, errMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.GetLayoutInfo().Status, "PROJ-404 no longer exists")
}

func TestTransportErrorKeepsErrorPrefix(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", "PROJ-001")

	updated, _ := m.Update(errMsg{Err: errors.New("connection refused")})
	m = updated.(Model)
	assert.Contains(t, m.GetLayoutInfo().Status, "Error: connection refused")
}

func TestEnterOpensSelectedApp(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", "PROJ-001")
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	navMsg, ok := cmd().(messages.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, nav.RouteAppDetail, navMsg.Route)
	assert.Equal(t, []string{"app-001"}, navMsg.Params)
}

func TestAppPanel(t *testing.T) {
	m := NewAppModel(mockService(t), "admin@example.com", "app-002")

	msg := m.Init()()
	loaded, ok := msg.(appLoadedMsg)
	require.True(t, ok, "expected appLoadedMsg, got %T", msg)
	assert.Equal(t, "payments-worker", loaded.App.AppName)
	assert.Equal(t, "PROJ-001", loaded.Project.Name)

	updated, _ := m.Update(msg)
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "payments-worker")
	assert.Contains(t, view, "Degraded")
}

func TestEscGoesBack(t *testing.T) {
	m := NewModel(mockService(t), "admin@example.com", "PROJ-001")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, messages.GoBackMsg{}, cmd())
}
