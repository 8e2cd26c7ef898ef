// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// View renders the project list screen
func (m Model) View() string {
	return layout.RenderLayout(m.list.View(), m.GetLayoutInfo(), m.width, m.height)
}
