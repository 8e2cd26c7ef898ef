// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard is the landing screen: headline counts across the
// workspace plus keyboard shortcuts into every other screen.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/components/statuscard"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// summary holds the headline numbers.
type summary struct {
	Projects      int
	OpenTasks     int
	PendingCRs    int
	OpenIncidents int
}

type loadedMsg struct {
	Summary summary
}

type errMsg struct {
	Err error
}

// Model is the dashboard screen model.
type Model struct {
	svc     api.Service
	user    string
	summary summary
	loaded  bool
	errText string
	width   int
	height  int
	compact bool
}

func NewModel(svc api.Service, user string) Model {
	return Model{svc: svc, user: user, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// load gathers counts from the backend in one command.
func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()

		projects, err := svc.ListProjects(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		tasks, err := svc.ListTasks(ctx, "")
		if err != nil {
			return errMsg{Err: err}
		}
		crs, err := svc.ListChangeRequests(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		incidents, err := svc.ListIncidents(ctx)
		if err != nil {
			return errMsg{Err: err}
		}

		return loadedMsg{Summary: summary{
			Projects: len(projects),
			OpenTasks: lo.CountBy(tasks, func(t api.Task) bool {
				return t.Status != "Completed" && t.Status != "Cancelled"
			}),
			PendingCRs: lo.CountBy(crs, func(cr api.ChangeRequest) bool {
				return cr.Status == "Draft" || cr.Status == "Pending Approval"
			}),
			OpenIncidents: lo.CountBy(incidents, func(inc api.Incident) bool {
				return inc.Status != "Resolved" && inc.Status != "Closed"
			}),
		}}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if target, ok := shortcutRoutes[msg.String()]; ok {
			return m, func() tea.Msg {
				return messages.NavigateMsg{Route: target}
			}
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		m.summary = msg.Summary
		m.loaded = true
		m.errText = ""

	case errMsg:
		m.errText = msg.Err.Error()

	case messages.RecordChangedMsg:
		return m, m.load()

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// shortcutRoutes maps dashboard keys to screens.
var shortcutRoutes = map[string]nav.Route{
	"p": nav.RouteProjects,
	"t": nav.RouteTasks,
	"c": nav.RouteChangeRequests,
	"i": nav.RouteIncidents,
	"v": nav.RouteVault,
	"w": nav.RouteWiki,
	"r": nav.RouteRACI,
	"d": nav.RouteDashboards,
	"s": nav.RouteSettings,
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	return layout.LayoutInfo{
		Title:       "DevSecOps Dashboard",
		Breadcrumbs: []string{"Dashboard"},
		User:        m.user,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "p", Description: "projects"},
			{Key: "t", Description: "tasks"},
			{Key: "c", Description: "changes"},
			{Key: "i", Description: "incidents"},
			{Key: "v", Description: "vault"},
			{Key: "w", Description: "wiki"},
			{Key: "q", Description: "quit"},
		},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	var content strings.Builder

	if m.errText != "" {
		content.WriteString(layout.ErrorStyle.Render("Error: " + m.errText))
		content.WriteString("\n\n")
	}

	if m.loaded {
		content.WriteString(statuscard.Row(
			statuscard.Card{Label: "Projects", Value: m.summary.Projects},
			statuscard.Card{Label: "Open Tasks", Value: m.summary.OpenTasks},
			statuscard.Card{Label: "Pending Changes", Value: m.summary.PendingCRs},
			statuscard.Card{Label: "Open Incidents", Value: m.summary.OpenIncidents, Alert: true},
		))
	} else if m.errText == "" {
		content.WriteString("Loading...")
	}

	content.WriteString("\n\n")
	content.WriteString(layout.StatsStyle.Render(fmt.Sprintf("Session: %s", m.user)))

	return layout.RenderLayout(content.String(), m.GetLayoutInfo(), m.width, m.height)
}
