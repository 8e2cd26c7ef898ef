// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectdetail shows a single project with its applications and
// open tasks. The same screen serves the standalone application detail
// route; when an app id is set the application panel takes over the view.
package projectdetail

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

type loadedMsg struct {
	Project *api.Project
	Apps    []api.ProjectApp
	Tasks   []api.Task
}

type appLoadedMsg struct {
	App     *api.ProjectApp
	Project *api.Project
}

type errMsg struct {
	Err error
}

// Model is the project detail screen model.
type Model struct {
	svc       api.Service
	user      string
	projectID string
	appID     string // Nonempty means the app panel is active

	project   *api.Project
	app       *api.ProjectApp
	apps      table.Model
	tasks     []api.Task
	statusMsg string
	width     int
	height    int
	compact   bool
}

// NewModel creates a detail model for a project.
func NewModel(svc api.Service, user, projectID string) Model {
	return newModel(svc, user, projectID, "")
}

// NewAppModel creates a detail model focused on one application.
func NewAppModel(svc api.Service, user, appID string) Model {
	return newModel(svc, user, "", appID)
}

func newModel(svc api.Service, user, projectID, appID string) Model {
	columns := []table.Column{
		{Title: "App", Width: 22},
		{Title: "Environment", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Repository", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	return Model{
		svc:       svc,
		user:      user,
		projectID: projectID,
		appID:     appID,
		apps:      t,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	if m.appID != "" {
		return m.loadApp()
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc, id := m.svc, m.projectID
	return func() tea.Msg {
		ctx := context.Background()
		project, err := svc.GetProject(ctx, id)
		if err != nil {
			return errMsg{Err: err}
		}
		apps, err := svc.ListProjectApps(ctx, id)
		if err != nil {
			return errMsg{Err: err}
		}
		tasks, err := svc.ListTasks(ctx, id)
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Project: project, Apps: apps, Tasks: tasks}
	}
}

// loadApp resolves the app first, then its parent project for the header.
func (m Model) loadApp() tea.Cmd {
	svc, id := m.svc, m.appID
	return func() tea.Msg {
		ctx := context.Background()
		app, err := svc.GetProjectApp(ctx, id)
		if err != nil {
			return errMsg{Err: err}
		}
		project, err := svc.GetProject(ctx, app.Project)
		if err != nil {
			return errMsg{Err: err}
		}
		return appLoadedMsg{App: app, Project: project}
	}
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	title := "Project"
	crumbs := []string{"Dashboard", "Projects"}

	if m.project != nil {
		title = m.project.ProjectName
		crumbs = append(crumbs, m.project.ProjectName)
	}
	if m.appID != "" {
		if m.app != nil {
			crumbs = append(crumbs, m.app.AppName)
			title = m.app.AppName
		} else {
			crumbs = append(crumbs, m.appID)
		}
	}

	status := m.statusMsg
	if status == "" && m.project != nil && m.appID == "" {
		status = fmt.Sprintf("%s • %.0f%% complete • %d apps • %d tasks",
			m.project.Status, m.project.PercentComplete, len(m.apps.Rows()), len(m.tasks))
	}

	help := []layout.HelpItem{
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if m.appID == "" {
		help = append([]layout.HelpItem{{Key: "enter", Description: "open app"}}, help...)
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
	if h := dims.Height - 8; h > 3 {
		m.apps.SetHeight(h)
	}
}
