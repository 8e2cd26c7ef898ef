// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package incidents

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.formOpen {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.incidentID == "" {
				if row := m.incidents.SelectedRow(); row != nil {
					incidentID := row[0]
					return m, func() tea.Msg {
						return messages.NavigateMsg{Route: nav.RouteIncidentDetail, Params: []string{incidentID}}
					}
				}
			}

		case "r":
			if m.incidentID != "" && m.incident != nil && m.incident.Status != "Resolved" {
				if m.caps.ResolveIncidents {
					return m, m.openResolveForm()
				}
				m.statusMsg = "Resolving incidents requires the DevSecOps User role"
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		rows := make([]table.Row, 0, len(msg.Incidents))
		for _, inc := range msg.Incidents {
			rows = append(rows, table.Row{inc.Name, inc.Title, inc.AffectedService, inc.Severity, inc.Status})
		}
		m.incidents.SetRows(rows)

	case detailLoadedMsg:
		m.incident = msg.Incident
		m.statusMsg = ""

	case resolvedMsg:
		m.incident = msg.Incident
		m.statusMsg = fmt.Sprintf("Resolved %s", msg.Incident.Name)

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "Incident" {
			return m, m.Init()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	if m.incidentID == "" {
		m.incidents, cmd = m.incidents.Update(msg)
	}
	return m, cmd
}

// updateForm drives the resolve form while it is open.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.formOpen = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formOpen = false
		m.form = nil
		return m, m.resolve()
	}
	return m, cmd
}
