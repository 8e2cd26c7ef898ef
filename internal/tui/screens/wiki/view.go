// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package wiki

import (
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// View renders whichever wiki level is active.
func (m Model) View() string {
	var content string
	switch {
	case m.formOpen && m.form != nil:
		content = m.form.View()
	case m.space == "":
		content = m.spaces.View()
	case m.pageSlug == "":
		content = m.pages.View()
	case m.page != nil:
		content = m.page.Content
	default:
		content = "Loading..."
	}
	return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
}
