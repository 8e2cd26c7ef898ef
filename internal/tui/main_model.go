// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/auth"
	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/changerequests"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/dashboard"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/dashlinks"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/incidents"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/login"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/projectdetail"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/projectlist"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/raci"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/settings"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/tasks"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/vault"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/screens/wiki"
)

// defaultCompactWidth is the viewport width below which chrome is reduced,
// used when the config does not set one.
const defaultCompactWidth = 100

// MainModel owns the navigation store and delegates to the active screen.
// Every transition, whether from a key binding or a raw fragment, funnels
// through the store so both paths land on identical state.
type MainModel struct {
	cfg       *config.AppConfig
	svc       api.Service
	authStore *auth.Store
	navStore  *nav.Store

	screen tea.Model
	width  int
	height int
}

// NewMainModel builds the model with the screen resolved from the store's
// initial state.
func NewMainModel(cfg *config.AppConfig, svc api.Service, authStore *auth.Store, navStore *nav.Store) MainModel {
	m := MainModel{
		cfg:       cfg,
		svc:       svc,
		authStore: authStore,
		navStore:  navStore,
		width:     80,
		height:    24,
	}
	m.screen = m.buildScreen(navStore.State())
	return m
}

func (m MainModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m MainModel) compactWidth() int {
	if m.cfg != nil && m.cfg.UI.CompactWidth > 0 {
		return m.cfg.UI.CompactWidth
	}
	return defaultCompactWidth
}

// sessionUser returns the badge string for the header.
func (m MainModel) sessionUser() string {
	if u := m.authStore.User(); u != nil {
		return u.Name
	}
	return "Guest"
}

// buildScreen maps navigation state to a screen model. Detail flags are
// checked before the route switch; the flag order mirrors the selection
// precedence of the fragment grammar (app, then project, then incident,
// then wiki page).
func (m MainModel) buildScreen(st nav.State) tea.Model {
	if m.authStore.Status() != auth.StatusAuthenticated {
		return login.NewModel(m.authStore)
	}

	user := m.sessionUser()
	caps := perms.For(m.authStore.User())

	switch {
	case st.ShowAppDetail:
		return projectdetail.NewAppModel(m.svc, user, st.Selections.AppID)
	case st.ShowProjectDetail:
		return projectdetail.NewModel(m.svc, user, st.Selections.ProjectID)
	case st.ShowIncidentDetail:
		return incidents.NewDetailModel(m.svc, user, caps, st.Selections.IncidentID)
	case st.ShowWikiPage:
		return wiki.NewModel(m.svc, user, caps, st.Selections.WikiSpace, st.Selections.WikiPage)
	}

	switch st.CurrentRoute {
	case nav.RouteProjects:
		return projectlist.NewModel(m.svc, user)
	case nav.RouteTasks:
		return tasks.NewModel(m.svc, user, caps)
	case nav.RouteChangeRequests:
		return changerequests.NewModel(m.svc, user, caps)
	case nav.RouteChangeRequestDetail:
		return changerequests.NewEditModel(m.svc, user, caps, st.Selections.ChangeRequestID)
	case nav.RouteIncidents:
		return incidents.NewModel(m.svc, user, caps)
	case nav.RouteVault:
		return vault.NewModel(m.svc, user, caps)
	case nav.RouteWiki:
		return wiki.NewModel(m.svc, user, caps, "", "")
	case nav.RouteWikiSpace:
		return wiki.NewModel(m.svc, user, caps, st.Selections.WikiSpace, "")
	case nav.RouteRACI:
		return raci.NewModel(m.svc, user)
	case nav.RouteDashboards:
		return dashlinks.NewModel(m.svc, user)
	case nav.RouteSettings:
		return settings.NewModel(m.cfg, m.authStore)
	default:
		return dashboard.NewModel(m.svc, user)
	}
}

// switchScreen rebuilds the active screen from the store and starts it.
func (m *MainModel) switchScreen() tea.Cmd {
	m.screen = m.buildScreen(m.navStore.State())
	sizeCmd := m.propagateSize()
	return tea.Batch(m.screen.Init(), sizeCmd)
}

// propagateSize forwards the last known terminal size and compact flag to
// the screen, so a freshly built screen renders the right chrome.
func (m *MainModel) propagateSize() tea.Cmd {
	var sizeCmd, compactCmd tea.Cmd
	m.screen, sizeCmd = m.screen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.screen, compactCmd = m.screen.Update(messages.CompactMsg{Compact: m.navStore.State().Compact})
	return tea.Batch(sizeCmd, compactCmd)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.navStore.SetCompact(msg.Width < m.compactWidth())
		return m, m.propagateSize()

	case tea.KeyMsg:
		if msg.String() == "ctrl+n" {
			m.navStore.ToggleMenu()
			return m, nil
		}

	case messages.NavigateMsg:
		m.navStore.NavigateTo(msg.Route, msg.Params...)
		return m, m.switchScreen()

	case messages.FragmentMsg:
		m.navStore.HandleFragmentChange(msg.Fragment)
		return m, m.switchScreen()

	case messages.GoBackMsg:
		if !m.navStore.Back() {
			// Bottom of history lands on the dashboard.
			m.navStore.NavigateTo(nav.RouteDashboard)
		}
		return m, m.switchScreen()

	case messages.SessionChangedMsg:
		log := logger.GetTUILogger()
		log.Debug().Str("status", m.authStore.Status().String()).Msg("session changed")
		return m, m.switchScreen()
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// menuSections maps the menu strip entries to the route family that marks
// them active. Detail routes highlight their list section.
var menuSections = []struct {
	label  string
	routes []nav.Route
}{
	{"Dashboard", []nav.Route{nav.RouteDashboard}},
	{"Projects", []nav.Route{nav.RouteProjects, nav.RouteProjectDetail, nav.RouteAppDetail}},
	{"Tasks", []nav.Route{nav.RouteTasks}},
	{"Change Requests", []nav.Route{nav.RouteChangeRequests, nav.RouteChangeRequestDetail}},
	{"Incidents", []nav.Route{nav.RouteIncidents, nav.RouteIncidentDetail}},
	{"Vault", []nav.Route{nav.RouteVault}},
	{"Wiki", []nav.Route{nav.RouteWiki, nav.RouteWikiSpace, nav.RouteWikiPage}},
	{"RACI", []nav.Route{nav.RouteRACI}},
	{"Monitoring", []nav.Route{nav.RouteDashboards}},
	{"Settings", []nav.Route{nav.RouteSettings}},
}

// menuView renders the navigation strip with the canonical breadcrumb trail
// derived by the nav store.
func (m MainModel) menuView() string {
	st := m.navStore.State()

	items := make([]layout.MenuItem, 0, len(menuSections))
	for _, section := range menuSections {
		active := false
		for _, r := range section.routes {
			if r == st.CurrentRoute {
				active = true
				break
			}
		}
		items = append(items, layout.MenuItem{Label: section.label, Active: active})
	}

	crumbs := m.navStore.Breadcrumbs()
	trail := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		trail = append(trail, c.Label)
	}

	return layout.RenderMenu(items, trail, m.width)
}

func (m MainModel) View() string {
	view := m.screen.View()
	if m.navStore.State().MenuVisible {
		return lipgloss.JoinVertical(lipgloss.Left, m.menuView(), view)
	}
	return view
}
