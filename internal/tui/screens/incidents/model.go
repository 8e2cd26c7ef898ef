// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package incidents lists operational incidents and shows a single incident
// with a resolve flow for users holding the DevSecOps role.
package incidents

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

type loadedMsg struct {
	Incidents []api.Incident
}

type detailLoadedMsg struct {
	Incident *api.Incident
}

type resolvedMsg struct {
	Incident *api.Incident
}

type errMsg struct {
	Err error
}

// Model is the incidents screen model.
type Model struct {
	svc  api.Service
	user string
	caps perms.Capabilities

	incidentID string // Nonempty on the detail route

	incidents  table.Model
	incident   *api.Incident
	form       *huh.Form
	formOpen   bool
	resolution string
	statusMsg  string
	width      int
	height     int
	compact    bool
}

// NewModel creates the incident list model.
func NewModel(svc api.Service, user string, caps perms.Capabilities) Model {
	return newModel(svc, user, caps, "")
}

// NewDetailModel creates the model focused on one incident.
func NewDetailModel(svc api.Service, user string, caps perms.Capabilities, incidentID string) Model {
	return newModel(svc, user, caps, incidentID)
}

func newModel(svc api.Service, user string, caps perms.Capabilities, incidentID string) Model {
	columns := []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Title", Width: 36},
		{Title: "Service", Width: 16},
		{Title: "Severity", Width: 8},
		{Title: "Status", Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		svc:        svc,
		user:       user,
		caps:       caps,
		incidentID: incidentID,
		incidents:  t,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	if m.incidentID != "" {
		return m.loadDetail()
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		incidents, err := svc.ListIncidents(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Incidents: incidents}
	}
}

func (m Model) loadDetail() tea.Cmd {
	svc, id := m.svc, m.incidentID
	return func() tea.Msg {
		incident, err := svc.GetIncident(context.Background(), id)
		if err != nil {
			return errMsg{Err: err}
		}
		return detailLoadedMsg{Incident: incident}
	}
}

// openResolveForm asks for the resolution text.
func (m *Model) openResolveForm() tea.Cmd {
	m.resolution = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("resolution").
				Title("Resolution").
				Value(&m.resolution).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("resolution is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCharm())
	m.formOpen = true
	return m.form.Init()
}

// resolve marks the incident resolved with the entered text.
func (m Model) resolve() tea.Cmd {
	svc := m.svc
	incident := *m.incident
	incident.Status = "Resolved"
	incident.Resolution = m.resolution
	return func() tea.Msg {
		updated, err := svc.UpdateIncident(context.Background(), incident.Name, incident)
		if err != nil {
			return errMsg{Err: err}
		}
		return resolvedMsg{Incident: updated}
	}
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	title := "Incidents"
	crumbs := []string{"Dashboard", "Incidents"}
	if m.incidentID != "" {
		title = m.incidentID
		if m.incident != nil {
			title = m.incident.Title
		}
		crumbs = append(crumbs, m.incidentID)
	}

	status := fmt.Sprintf("Total: %d incidents", len(m.incidents.Rows()))
	if m.incidentID != "" && m.incident != nil {
		status = fmt.Sprintf("%s • %s • %s", m.incident.Severity, m.incident.Status, m.incident.AffectedService)
	}
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	help := []layout.HelpItem{
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if m.incidentID == "" {
		help = append([]layout.HelpItem{{Key: "enter", Description: "open"}}, help...)
	} else if m.caps.ResolveIncidents && !m.formOpen {
		help = append([]layout.HelpItem{{Key: "r", Description: "resolve"}}, help...)
	}

	return layout.LayoutInfo{
		Title:       title,
		Breadcrumbs: crumbs,
		User:        m.user,
		Status:      status,
		Compact:     m.compact,
		HelpItems:   help,
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	dims := layout.GetContentArea(m.GetLayoutInfo(), width, height)
	if dims.Valid && dims.Height > 3 {
		m.incidents.SetHeight(dims.Height - 1)
	}
}
