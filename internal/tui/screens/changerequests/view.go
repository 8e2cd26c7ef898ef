// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package changerequests

import (
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// View renders the table, or the form while it is open.
func (m Model) View() string {
	content := m.requests.View()
	if m.formOpen && m.form != nil {
		content = m.form.View()
	}
	return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
}
