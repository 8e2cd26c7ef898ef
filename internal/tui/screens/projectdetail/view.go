// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectdetail

import (
	"fmt"
	"strings"

	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// View renders either the project overview or the focused app panel.
func (m Model) View() string {
	var content string
	if m.appID != "" {
		content = m.appView()
	} else {
		content = m.projectView()
	}
	return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
}

func (m Model) projectView() string {
	if m.project == nil {
		return "Loading..."
	}

	var b strings.Builder
	if m.project.Description != "" {
		b.WriteString(m.project.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(layout.TitleStyle.Render("Applications"))
	b.WriteString("\n")
	b.WriteString(m.apps.View())

	b.WriteString("\n\n")
	b.WriteString(layout.TitleStyle.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))))
	b.WriteString("\n")
	for _, task := range m.tasks {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", task.Status, task.Subject))
	}

	return b.String()
}

func (m Model) appView() string {
	if m.app == nil {
		return "Loading..."
	}

	rows := [][2]string{
		{"Application", m.app.AppName},
		{"Project", m.app.Project},
		{"Environment", m.app.Environment},
		{"Status", m.app.Status},
		{"Repository", m.app.RepositoryURL},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(layout.StatsStyle.Render(fmt.Sprintf("%-12s", row[0])))
		b.WriteString(" ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return b.String()
}
