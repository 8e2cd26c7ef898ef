// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list consume keys while the filter prompt is open.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(ProjectItem); ok {
				return m, func() tea.Msg {
					return messages.NavigateMsg{Route: nav.RouteProjectDetail, Params: []string{item.ID}}
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
		m.count = len(msg.Projects)
		m.statusMessage = ""
		items := make([]list.Item, 0, len(msg.Projects))
		for _, p := range msg.Projects {
			items = append(items, ProjectItem{
				ID:       p.Name,
				Name:     p.ProjectName,
				Status:   p.Status,
				Progress: p.PercentComplete,
			})
		}
		m.list.SetItems(items)

	case errMsg:
		m.statusMessage = fmt.Sprintf("Error: %s", msg.Err)

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "Project" {
			return m, m.load()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
