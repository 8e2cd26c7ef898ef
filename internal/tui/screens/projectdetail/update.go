// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectdetail

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.appID == "" {
				if row := m.apps.SelectedRow(); row != nil {
					appID := row[0]
					return m, func() tea.Msg {
						return messages.NavigateMsg{Route: nav.RouteAppDetail, Params: []string{appID}}
					}
				}
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		m.project = msg.Project
		m.tasks = msg.Tasks
		m.statusMsg = ""
		rows := make([]table.Row, 0, len(msg.Apps))
		for _, app := range msg.Apps {
			rows = append(rows, table.Row{app.Name, app.Environment, app.Status, app.RepositoryURL})
		}
		m.apps.SetRows(rows)

	case appLoadedMsg:
		m.app = msg.App
		m.project = msg.Project
		m.statusMsg = ""

	case errMsg:
		if api.IsNotFound(msg.Err) {
			name := m.projectID
			if m.appID != "" {
				name = m.appID
			}
			m.statusMsg = fmt.Sprintf("%s no longer exists", name)
		} else {
			m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)
		}

	case messages.RecordChangedMsg:
		switch msg.Change.Doctype {
		case "Project", "Project App", "Task":
			return m, m.Init()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	if m.appID == "" {
		m.apps, cmd = m.apps.Update(msg)
	}
	return m, cmd
}
