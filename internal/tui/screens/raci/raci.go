// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package raci shows responsibility matrix templates. Templates are
// read-only; they are maintained on the backend.
package raci

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loadedMsg struct {
	Templates []api.RACITemplate
}

type errMsg struct {
	Err error
}

// Model is the RACI screen model. Left/right cycles templates, the table
// shows the selected template's activities.
type Model struct {
	svc  api.Service
	user string

	templates []api.RACITemplate
	selected  int
	matrix    table.Model
	statusMsg string
	width     int
	height    int
	compact   bool
}

func NewModel(svc api.Service, user string) Model {
	columns := []table.Column{
		{Title: "Activity", Width: 26},
		{Title: "Responsible", Width: 18},
		{Title: "Accountable", Width: 18},
		{Title: "Consulted", Width: 14},
		{Title: "Informed", Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		svc:    svc,
		user:   user,
		matrix: t,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		templates, err := svc.ListRACITemplates(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Templates: templates}
	}
}

// refreshMatrix rebuilds the table rows for the selected template.
func (m *Model) refreshMatrix() {
	if m.selected >= len(m.templates) {
		m.matrix.SetRows(nil)
		return
	}
	rows := lo.Map(m.templates[m.selected].Activities, func(a api.RACIActivity, _ int) table.Row {
		return table.Row{a.Activity, a.Responsible, a.Accountable, a.Consulted, a.Informed}
	})
	m.matrix.SetRows(rows)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.selected > 0 {
				m.selected--
				m.refreshMatrix()
			}

		case "right", "l":
			if m.selected < len(m.templates)-1 {
				m.selected++
				m.refreshMatrix()
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		m.templates = msg.Templates
		m.selected = 0
		m.refreshMatrix()

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "RACI Template" {
			return m, m.Init()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.matrix, cmd = m.matrix.Update(msg)
	return m, cmd
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	title := "RACI"
	if m.selected < len(m.templates) {
		title = m.templates[m.selected].Title
	}

	status := fmt.Sprintf("Template %d of %d", m.selected+1, len(m.templates))
	if len(m.templates) == 0 {
		status = "No templates"
	}
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	return layout.LayoutInfo{
		Title:       title,
		Breadcrumbs: []string{"Dashboard", "RACI"},
		User:        m.user,
		Status:      status,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "←/→", Description: "switch template"},
			{Key: "esc", Description: "back"},
			{Key: "q", Description: "quit"},
		},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	dims := layout.GetContentArea(m.GetLayoutInfo(), width, height)
	if dims.Valid && dims.Height > 3 {
		m.matrix.SetHeight(dims.Height - 1)
	}
}

func (m Model) View() string {
	return layout.RenderLayout(m.matrix.View(), m.GetLayoutInfo(), m.width, m.height)
}
