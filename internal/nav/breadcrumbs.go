// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

// Crumb is one entry in the breadcrumb trail. Fragment is the deep link to
// activate when the crumb is selected.
type Crumb struct {
	Label    string
	Fragment string
}

// Breadcrumbs derives the navigable trail for the current state. It is
// recomputed on every call from the live state, never cached, so it cannot
// go stale relative to the route it describes.
func (s *Store) Breadcrumbs() []Crumb {
	st := s.state

	crumbs := []Crumb{{Label: "Dashboard", Fragment: "dashboard"}}
	if st.CurrentRoute == RouteDashboard {
		return crumbs
	}

	switch st.CurrentRoute {
	case RouteProjects:
		crumbs = append(crumbs, Crumb{Label: "Projects", Fragment: "projects"})
	case RouteProjectDetail:
		crumbs = append(crumbs,
			Crumb{Label: "Projects", Fragment: "projects"},
			Crumb{Label: st.Selections.ProjectID, Fragment: s.fragment})
	case RouteAppDetail:
		crumbs = append(crumbs,
			Crumb{Label: "Projects", Fragment: "projects"},
			Crumb{Label: st.Selections.AppID, Fragment: s.fragment})
	case RouteTasks:
		crumbs = append(crumbs, Crumb{Label: "Tasks", Fragment: "tasks"})
	case RouteChangeRequests:
		crumbs = append(crumbs, Crumb{Label: "Change Requests", Fragment: "change-requests"})
	case RouteChangeRequestDetail:
		crumbs = append(crumbs,
			Crumb{Label: "Change Requests", Fragment: "change-requests"},
			Crumb{Label: st.Selections.ChangeRequestID, Fragment: s.fragment})
	case RouteIncidents:
		crumbs = append(crumbs, Crumb{Label: "Incidents", Fragment: "incidents"})
	case RouteIncidentDetail:
		crumbs = append(crumbs,
			Crumb{Label: "Incidents", Fragment: "incidents"},
			Crumb{Label: st.Selections.IncidentID, Fragment: s.fragment})
	case RouteVault:
		crumbs = append(crumbs, Crumb{Label: "Password Vault", Fragment: "vault"})
	case RouteWiki:
		crumbs = append(crumbs, Crumb{Label: "Wiki", Fragment: "wiki"})
	case RouteWikiSpace:
		crumbs = append(crumbs,
			Crumb{Label: "Wiki", Fragment: "wiki"},
			Crumb{Label: st.Selections.WikiSpace, Fragment: s.fragment})
	case RouteWikiPage:
		crumbs = append(crumbs,
			Crumb{Label: "Wiki", Fragment: "wiki"},
			Crumb{Label: st.Selections.WikiSpace, Fragment: joinNonEmpty("wiki", st.Selections.WikiSpace)},
			Crumb{Label: st.Selections.WikiPage, Fragment: s.fragment})
	case RouteRACI:
		crumbs = append(crumbs, Crumb{Label: "RACI Templates", Fragment: "raci"})
	case RouteDashboards:
		crumbs = append(crumbs, Crumb{Label: "Monitoring", Fragment: "dashboards"})
	case RouteSettings:
		crumbs = append(crumbs, Crumb{Label: "Settings", Fragment: "settings"})
	}

	return crumbs
}
