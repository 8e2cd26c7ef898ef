// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav is the single source of truth for which screen is showing.
// It translates between route fragment strings (the deep-link format shared
// with the hosted web UI, e.g. "project/PROJ-001") and a typed navigation
// state, and exposes the only mutation entry points view code may use.
package nav

import (
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

// Store owns the navigation state for the lifetime of the application.
// All mutations are synchronous and perform no I/O, so a call has fully
// taken effect before it returns. The store is not locked: it must only
// be touched from the UI event loop, which is single-threaded.
type Store struct {
	state    State
	fragment string
	history  []string
}

// NewStore creates a store resolved to the given initial fragment
// (empty resolves to the dashboard, mirroring an empty hash at page load).
// It panics if the route table is internally inconsistent, so a missing
// table entry is caught at startup rather than on first navigation.
func NewStore(initialFragment string) *Store {
	if err := validateTable(); err != nil {
		panic("nav: " + err.Error())
	}
	s := &Store{}
	s.HandleFragmentChange(initialFragment)
	s.history = nil // Initial resolution is not a back target
	return s
}

// State returns a snapshot of the current navigation state.
func (s *Store) State() State {
	return s.state
}

// Fragment returns the serialized form of the current route and selections.
func (s *Store) Fragment() string {
	return s.fragment
}

// NavigateTo transitions to the given route with positional, route-specific
// parameters (e.g. the record id for a detail route). The transition is
// expressed by serializing the target and re-parsing it, so programmatic
// navigation and external fragment changes converge on identical state for
// the same target. A detail route called without its id lands on the
// corresponding list view.
func (s *Store) NavigateTo(route Route, params ...string) {
	target := serializeRoute(route, compact(params))
	if s.fragment != "" && target != s.fragment {
		s.history = append(s.history, s.fragment)
	}
	s.apply(target)
}

// HandleFragmentChange resolves an externally supplied fragment (deep link,
// startup route, restored session). Malformed or unrecognized input is not
// an error: it normalizes to the dashboard. No partial update is observable,
// since the state is replaced in one assignment.
func (s *Store) HandleFragmentChange(fragment string) {
	s.apply(fragment)
}

// Back returns to the previous route, if any. Reports whether a transition
// happened.
func (s *Store) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.apply(prev)
	return true
}

// apply replaces route and selections from a fragment, carrying the
// viewport flags across since they are independent of routing.
func (s *Store) apply(fragment string) {
	next := parseFragment(fragment)
	next.Compact = s.state.Compact
	next.MenuVisible = s.state.MenuVisible

	s.state = next
	// Re-serialize rather than storing the input so the recorded fragment
	// is always canonical ("project//" is recorded as "projects").
	s.fragment = serializeRoute(next.CurrentRoute, selectionParams(next))

	log := logger.GetNavLogger()
	log.Debug().
		Str("route", next.CurrentRoute.String()).
		Str("fragment", s.fragment).
		Msg("navigation state updated")
}

// SetCompact records whether the viewport is below the compact threshold.
// Pure state setter; no fragment interaction.
func (s *Store) SetCompact(compact bool) {
	s.state.Compact = compact
}

// ToggleMenu flips the navigation menu visibility.
func (s *Store) ToggleMenu() {
	s.state.MenuVisible = !s.state.MenuVisible
}

// selectionParams extracts the positional params that serializeRoute expects
// for the state's current route.
func selectionParams(st State) []string {
	switch st.CurrentRoute {
	case RouteProjectDetail:
		return []string{st.Selections.ProjectID}
	case RouteAppDetail:
		return []string{st.Selections.AppID}
	case RouteChangeRequestDetail:
		return []string{st.Selections.ChangeRequestID}
	case RouteIncidentDetail:
		return []string{st.Selections.IncidentID}
	case RouteWikiSpace:
		return []string{st.Selections.WikiSpace}
	case RouteWikiPage:
		return []string{st.Selections.WikiSpace, st.Selections.WikiPage}
	default:
		return nil
	}
}

// compact drops empty params so a nil placeholder before the real id
// (a pattern the hosted UI used for secondary ids) does not shift positions.
func compact(params []string) []string {
	var out []string
	for _, p := range params {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
