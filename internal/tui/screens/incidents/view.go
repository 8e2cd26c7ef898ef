// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package incidents

import (
	"fmt"
	"strings"

	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// View renders the list, the detail panel, or the resolve form.
func (m Model) View() string {
	var content string
	switch {
	case m.formOpen && m.form != nil:
		content = m.form.View()
	case m.incidentID != "":
		content = m.detailView()
	default:
		content = m.incidents.View()
	}
	return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
}

func (m Model) detailView() string {
	if m.incident == nil {
		return "Loading..."
	}

	severity := layout.WarningStyle.Render(m.incident.Severity)
	if m.incident.Severity == "P1" || m.incident.Severity == "P2" {
		severity = layout.ErrorStyle.Render(m.incident.Severity)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", severity, m.incident.Title))
	b.WriteString(layout.StatsStyle.Render("Service      "))
	b.WriteString(m.incident.AffectedService + "\n")
	b.WriteString(layout.StatsStyle.Render("Status       "))
	b.WriteString(m.incident.Status + "\n")
	b.WriteString(layout.StatsStyle.Render("Reported by  "))
	b.WriteString(m.incident.ReportedBy + "\n")
	b.WriteString(layout.StatsStyle.Render("Opened       "))
	b.WriteString(m.incident.Creation + "\n")

	if m.incident.Resolution != "" {
		b.WriteString("\n")
		b.WriteString(layout.TitleStyle.Render("Resolution"))
		b.WriteString("\n")
		b.WriteString(m.incident.Resolution)
		b.WriteString("\n")
	}
	return b.String()
}
