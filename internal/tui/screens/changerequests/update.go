// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package changerequests

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

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
		case "n":
			if m.requireManage() {
				return m, m.openForm(nil)
			}

		case "enter":
			if m.requireManage() {
				if row := m.requests.SelectedRow(); row != nil {
					return m, m.loadEdit(row[0])
				}
			}

		case "x":
			if m.requireManage() {
				if row := m.requests.SelectedRow(); row != nil {
					return m, m.delete(row[0])
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
		rows := make([]table.Row, 0, len(msg.Requests))
		for _, cr := range msg.Requests {
			rows = append(rows, table.Row{cr.Name, cr.Title, cr.Status, cr.Priority, cr.PlannedDate})
		}
		m.requests.SetRows(rows)

	case editLoadedMsg:
		return m, m.openForm(msg.Request)

	case savedMsg:
		m.statusMsg = fmt.Sprintf("Saved %s", msg.Request.Name)
		return m, m.load()

	case deletedMsg:
		m.statusMsg = fmt.Sprintf("Deleted %s", msg.Name)
		return m, m.load()

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "Change Request" {
			return m, m.load()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.requests, cmd = m.requests.Update(msg)
	return m, cmd
}

// requireManage reports whether the session may mutate change requests,
// setting the status line when it may not.
func (m *Model) requireManage() bool {
	if m.caps.ManageChangeRequests {
		return true
	}
	m.statusMsg = "Managing change requests requires the DevSecOps User role"
	return false
}

// updateForm drives the huh form while it is open.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.formOpen = false
		m.form = nil
		m.editing = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formOpen = false
		m.form = nil
		return m, m.submit()
	}
	return m, cmd
}
