// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"fmt"
	"strings"
)

// Route identifies which screen is active. The set is closed: parsing can
// only ever produce one of these values, and unrecognized input normalizes
// to RouteDashboard.
type Route int

const (
	RouteDashboard Route = iota
	RouteProjects
	RouteProjectDetail
	RouteAppDetail
	RouteTasks
	RouteChangeRequests
	RouteChangeRequestDetail
	RouteIncidents
	RouteIncidentDetail
	RouteVault
	RouteWiki
	RouteWikiSpace
	RouteWikiPage
	RouteRACI
	RouteDashboards
	RouteSettings
)

// allRoutes is used by validateTable to check the route table exhaustively.
var allRoutes = []Route{
	RouteDashboard,
	RouteProjects,
	RouteProjectDetail,
	RouteAppDetail,
	RouteTasks,
	RouteChangeRequests,
	RouteChangeRequestDetail,
	RouteIncidents,
	RouteIncidentDetail,
	RouteVault,
	RouteWiki,
	RouteWikiSpace,
	RouteWikiPage,
	RouteRACI,
	RouteDashboards,
	RouteSettings,
}

// String returns the route tag used in logs and breadcrumb labels.
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteProjects:
		return "projects"
	case RouteProjectDetail:
		return "project-detail"
	case RouteAppDetail:
		return "project-apps"
	case RouteTasks:
		return "tasks"
	case RouteChangeRequests:
		return "change-requests"
	case RouteChangeRequestDetail:
		return "change-requests-edit"
	case RouteIncidents:
		return "incidents"
	case RouteIncidentDetail:
		return "incident-detail"
	case RouteVault:
		return "vault"
	case RouteWiki:
		return "wiki"
	case RouteWikiSpace:
		return "wiki-space"
	case RouteWikiPage:
		return "wiki-page"
	case RouteRACI:
		return "raci"
	case RouteDashboards:
		return "dashboards"
	case RouteSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Selections holds the record identifiers scoped to detail routes. A field is
// only meaningful when the matching detail flag on State is set; transitions
// always rebuild Selections from scratch so stale ids never leak across routes.
type Selections struct {
	ProjectID       string
	AppID           string
	ChangeRequestID string
	IncidentID      string
	WikiSpace       string
	WikiPage        string
}

// State is an immutable snapshot of the navigation state. Screens receive
// copies; only the Store mutates the live value.
type State struct {
	CurrentRoute Route
	Selections   Selections

	ShowProjectDetail bool
	ShowAppDetail     bool
	ShowIncidentDetail bool
	ShowWikiPage      bool

	Compact     bool
	MenuVisible bool
}

// familySpec describes one route family: the leading fragment segment, and
// how trailing segments map onto state. resolve receives the trailing
// segments with empty entries already trimmed and must always succeed;
// normalization to a list view or the dashboard is its only failure mode.
type familySpec struct {
	family  string
	resolve func(st *State, segs []string)
}

// routeTable is the single declarative mapping from fragment families to
// routes. Parsing consults it by family; serialization is the inverse,
// implemented per route in serializeRoute. validateTable checks at store
// construction that the two sides agree for every route.
var routeTable = []familySpec{
	{family: "dashboard", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteDashboard
	}},
	{family: "projects", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteProjects
	}},
	{family: "project", resolve: func(st *State, segs []string) {
		// A detail family without an id falls back to the list view,
		// never a detail view with a blank id.
		if len(segs) == 0 {
			st.CurrentRoute = RouteProjects
			return
		}
		st.CurrentRoute = RouteProjectDetail
		st.Selections.ProjectID = segs[0]
		st.ShowProjectDetail = true
	}},
	{family: "app", resolve: func(st *State, segs []string) {
		if len(segs) == 0 {
			st.CurrentRoute = RouteProjects
			return
		}
		st.CurrentRoute = RouteAppDetail
		st.Selections.AppID = segs[0]
		st.ShowAppDetail = true
	}},
	{family: "tasks", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteTasks
	}},
	{family: "change-requests", resolve: func(st *State, segs []string) {
		if len(segs) == 0 {
			st.CurrentRoute = RouteChangeRequests
			return
		}
		st.CurrentRoute = RouteChangeRequestDetail
		st.Selections.ChangeRequestID = segs[0]
	}},
	{family: "incidents", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteIncidents
	}},
	{family: "incident", resolve: func(st *State, segs []string) {
		if len(segs) == 0 {
			st.CurrentRoute = RouteIncidents
			return
		}
		st.CurrentRoute = RouteIncidentDetail
		st.Selections.IncidentID = segs[0]
		st.ShowIncidentDetail = true
	}},
	{family: "vault", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteVault
	}},
	{family: "wiki", resolve: func(st *State, segs []string) {
		switch {
		case len(segs) == 0:
			st.CurrentRoute = RouteWiki
		case len(segs) >= 3 && segs[1] == "pages":
			st.CurrentRoute = RouteWikiPage
			st.Selections.WikiSpace = segs[0]
			st.Selections.WikiPage = segs[2]
			st.ShowWikiPage = true
		default:
			// One segment selects a space; anything else malformed
			// degrades to the space view, ignoring extra segments.
			st.CurrentRoute = RouteWikiSpace
			st.Selections.WikiSpace = segs[0]
		}
	}},
	{family: "raci", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteRACI
	}},
	{family: "dashboards", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteDashboards
	}},
	{family: "settings", resolve: func(st *State, segs []string) {
		st.CurrentRoute = RouteSettings
	}},
}

// parseFragment resolves a fragment string into navigation state. It never
// fails: empty or unrecognized input yields the dashboard. Viewport flags
// are not parsing concerns and are left zero here; the Store carries them
// across transitions.
func parseFragment(fragment string) State {
	var st State

	fragment = strings.TrimPrefix(fragment, "#")
	segs := splitSegments(fragment)
	if len(segs) == 0 {
		st.CurrentRoute = RouteDashboard
		return st
	}

	for _, fam := range routeTable {
		if fam.family == segs[0] {
			fam.resolve(&st, segs[1:])
			return st
		}
	}

	st.CurrentRoute = RouteDashboard
	return st
}

// splitSegments splits a fragment on "/" and drops empty segments, so
// "project/" and "project//" both resolve as a bare "project" family.
func splitSegments(fragment string) []string {
	var segs []string
	for _, s := range strings.Split(fragment, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// serializeRoute builds the fragment for a route and its positional params.
// It is the inverse of parseFragment for every reachable state: the store
// relies on parse(serialize(r, p)) reproducing (r, p).
func serializeRoute(route Route, params []string) string {
	arg := func(i int) string {
		if i < len(params) {
			return params[i]
		}
		return ""
	}

	switch route {
	case RouteDashboard:
		return "dashboard"
	case RouteProjects:
		return "projects"
	case RouteProjectDetail:
		return joinNonEmpty("project", arg(0))
	case RouteAppDetail:
		return joinNonEmpty("app", arg(0))
	case RouteTasks:
		return "tasks"
	case RouteChangeRequests:
		return "change-requests"
	case RouteChangeRequestDetail:
		return joinNonEmpty("change-requests", arg(0))
	case RouteIncidents:
		return "incidents"
	case RouteIncidentDetail:
		return joinNonEmpty("incident", arg(0))
	case RouteVault:
		return "vault"
	case RouteWiki:
		return "wiki"
	case RouteWikiSpace:
		return joinNonEmpty("wiki", arg(0))
	case RouteWikiPage:
		if arg(0) == "" || arg(1) == "" {
			// Missing either slug degrades to the nearest list view.
			return joinNonEmpty("wiki", arg(0))
		}
		return strings.Join([]string{"wiki", arg(0), "pages", arg(1)}, "/")
	case RouteRACI:
		return "raci"
	case RouteDashboards:
		return "dashboards"
	case RouteSettings:
		return "settings"
	default:
		return "dashboard"
	}
}

// joinNonEmpty joins the family with its trailing segments, skipping blanks.
func joinNonEmpty(family string, segs ...string) string {
	parts := []string{family}
	for _, s := range segs {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// validateTable checks that every route is reachable through the table and
// that serialization round-trips for each. Called once at store construction
// so a route added without table support fails immediately, not on first use.
func validateTable() error {
	samples := map[Route][]string{
		RouteProjectDetail:       {"SAMPLE-1"},
		RouteAppDetail:           {"SAMPLE-1"},
		RouteChangeRequestDetail: {"SAMPLE-1"},
		RouteIncidentDetail:      {"SAMPLE-1"},
		RouteWikiSpace:           {"sample-space"},
		RouteWikiPage:            {"sample-space", "sample-page"},
	}

	families := make(map[string]struct{}, len(routeTable))
	for _, fam := range routeTable {
		if _, dup := families[fam.family]; dup {
			return fmt.Errorf("duplicate route family %q", fam.family)
		}
		families[fam.family] = struct{}{}
	}

	for _, route := range allRoutes {
		fragment := serializeRoute(route, samples[route])
		if parsed := parseFragment(fragment); parsed.CurrentRoute != route {
			return fmt.Errorf("route %s does not round-trip: fragment %q parsed as %s",
				route, fragment, parsed.CurrentRoute)
		}
	}

	return nil
}
