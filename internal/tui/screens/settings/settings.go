// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings shows the effective configuration and the session, and
// hosts the logout action.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/auth"
	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loggedOutMsg struct {
	Err error
}

// Model is the settings screen model.
type Model struct {
	cfg       *config.AppConfig
	authStore *auth.Store
	statusMsg string
	width     int
	height    int
	compact   bool
}

func NewModel(cfg *config.AppConfig, authStore *auth.Store) Model {
	return Model{cfg: cfg, authStore: authStore, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) logout() tea.Cmd {
	store := m.authStore
	return func() tea.Msg {
		return loggedOutMsg{Err: store.Logout(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "o":
			if m.authStore.Status() == auth.StatusAuthenticated {
				return m, m.logout()
			}
			m.statusMsg = "No active session"

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loggedOutMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Logout reported: %s", msg.Err)
		} else {
			m.statusMsg = "Logged out"
		}
		return m, func() tea.Msg {
			return messages.SessionChangedMsg{}
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	user := "Guest"
	if u := m.authStore.User(); u != nil {
		user = u.Name
	}

	return layout.LayoutInfo{
		Title:       "Settings",
		Breadcrumbs: []string{"Dashboard", "Settings"},
		User:        user,
		Status:      m.statusMsg,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "o", Description: "logout"},
			{Key: "esc", Description: "back"},
			{Key: "q", Description: "quit"},
		},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	var b strings.Builder

	mode := "live"
	if m.cfg.Backend.MockMode {
		mode = "mock (offline fixtures)"
	}

	rows := [][2]string{
		{"Backend", m.cfg.Backend.URL},
		{"Mode", mode},
		{"Log level", m.cfg.Log.Level},
		{"Realtime", fmt.Sprintf("%v", m.cfg.Realtime.Enabled)},
	}

	if u := m.authStore.User(); u != nil {
		rows = append(rows,
			[2]string{"User", u.FullName},
			[2]string{"Roles", strings.Join(u.Roles, ", ")},
		)
	}

	for _, row := range rows {
		b.WriteString(layout.StatsStyle.Render(fmt.Sprintf("%-10s", row[0])))
		b.WriteString(" ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	return layout.RenderLayout(b.String(), m.GetLayoutInfo(), m.width, m.height)
}
