// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashlinks lists the external monitoring dashboards. Selecting an
// entry copies nothing and opens nothing; the URL is printed so it can be
// used from the terminal.
package dashlinks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loadedMsg struct {
	Links []api.DashboardLink
}

type errMsg struct {
	Err error
}

type linkItem struct {
	Name     string
	LinkName string
	URL      string
	Category string
}

func (l linkItem) FilterValue() string { return l.LinkName }
func (l linkItem) Title() string       { return l.LinkName }
func (l linkItem) Description() string { return fmt.Sprintf("%s • %s", l.Category, l.URL) }

// Model is the dashboard link screen model.
type Model struct {
	svc       api.Service
	user      string
	links     list.Model
	selected  string
	statusMsg string
	width     int
	height    int
	compact   bool
}

func NewModel(svc api.Service, user string) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 50, 10)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Title = ""

	return Model{svc: svc, user: user, links: l, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		links, err := svc.ListDashboardLinks(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Links: links}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.links.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.links.SelectedItem().(linkItem); ok {
				m.selected = item.URL
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		items := make([]list.Item, 0, len(msg.Links))
		for _, link := range msg.Links {
			items = append(items, linkItem{Name: link.Name, LinkName: link.Title, URL: link.URL, Category: link.Category})
		}
		m.links.SetItems(items)

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.links, cmd = m.links.Update(msg)
	return m, cmd
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	status := m.statusMsg
	if status == "" && m.selected != "" {
		status = m.selected
	}

	return layout.LayoutInfo{
		Title:       "Monitoring Dashboards",
		Breadcrumbs: []string{"Dashboard", "Dashboards"},
		User:        m.user,
		Status:      status,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "enter", Description: "show url"},
			{Key: "/", Description: "filter"},
			{Key: "esc", Description: "back"},
			{Key: "q", Description: "quit"},
		},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	dims := layout.GetContentArea(m.GetLayoutInfo(), width, height)
	if dims.Valid {
		m.links.SetWidth(dims.Width)
		m.links.SetHeight(dims.Height)
	}
}

func (m Model) View() string {
	return layout.RenderLayout(m.links.View(), m.GetLayoutInfo(), m.width, m.height)
}
