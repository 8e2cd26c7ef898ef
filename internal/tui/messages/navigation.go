// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/realtime"
)

// Navigation messages for screen transitions within the TUI. Screens emit
// these; the main model resolves them through the navigation store so every
// transition goes through the same fragment round trip.

// NavigateMsg requests a transition to a route. Params follow the route's
// fragment segment order, for example project id then app id.
type NavigateMsg struct {
	Route  nav.Route
	Params []string
}

// GoBackMsg pops the navigation history.
type GoBackMsg struct{}

// FragmentMsg applies a raw fragment, as from the open command or a pasted
// link. Malformed fragments resolve to the dashboard rather than erroring.
type FragmentMsg struct {
	Fragment string
}

// CompactMsg tells the active screen whether to render reduced chrome.
// The main model derives it from the viewport width and the nav store
// carries it across screen switches.
type CompactMsg struct {
	Compact bool
}

// RecordChangedMsg wraps a realtime event for screen refresh.
type RecordChangedMsg struct {
	Change realtime.RecordChanged
}

// SessionChangedMsg reports that the auth store re-resolved the session.
type SessionChangedMsg struct{}
