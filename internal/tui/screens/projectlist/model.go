// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

// ProjectItem represents a project in the list
type ProjectItem struct {
	ID       string
	Name     string
	Status   string
	Progress float64
}

// FilterValue returns the value to filter against
func (p ProjectItem) FilterValue() string {
	return p.Name
}

// Title returns the project name
func (p ProjectItem) Title() string {
	return p.Name
}

// Description returns status and progress
func (p ProjectItem) Description() string {
	return fmt.Sprintf("%s • %.0f%% complete", p.Status, p.Progress)
}

type loadedMsg struct {
	Projects []api.Project
}

type errMsg struct {
	Err error
}

// Model is the model for the project list screen.
type Model struct {
	list          list.Model
	svc           api.Service
	user          string
	count         int
	statusMessage string
	width         int
	height        int
	compact       bool
}

// NewModel creates a new project list model
func NewModel(svc api.Service, user string) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 50, 10)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Title = ""

	return Model{
		list:   l,
		svc:    svc,
		user:   user,
		width:  50,
		height: 10,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		projects, err := svc.ListProjects(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Projects: projects}
	}
}

// GetLayoutInfo returns layout information for the project list screen
func (m Model) GetLayoutInfo() layout.LayoutInfo {
	status := fmt.Sprintf("Total: %d projects", m.count)
	if m.statusMessage != "" {
		status = m.statusMessage
	}

	return layout.LayoutInfo{
		Title:       "Projects",
		Breadcrumbs: []string{"Dashboard", "Projects"},
		User:        m.user,
		Status:      status,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "enter", Description: "open"},
			{Key: "/", Description: "filter"},
			{Key: "esc", Description: "back"},
			{Key: "q", Description: "quit"},
		},
	}
}

// SetSize updates the model's dimensions and list size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	dims := layout.GetContentArea(m.GetLayoutInfo(), width, height)
	m.list.SetWidth(dims.Width)
	m.list.SetHeight(dims.Height)
}
