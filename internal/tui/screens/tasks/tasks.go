// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks lists work items across projects and offers quick task
// creation for users with project edit rights.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loadedMsg struct {
	Tasks []api.Task
}

type createdMsg struct {
	Task *api.Task
}

type errMsg struct {
	Err error
}

// Model is the task list screen model.
type Model struct {
	svc  api.Service
	user string
	caps perms.Capabilities

	tasks     table.Model
	form      *huh.Form
	formOpen  bool
	formSubj  string
	formProj  string
	formPrio  string
	statusMsg string
	width     int
	height    int
	compact   bool
}

func NewModel(svc api.Service, user string, caps perms.Capabilities) Model {
	columns := []table.Column{
		{Title: "Task", Width: 12},
		{Title: "Subject", Width: 38},
		{Title: "Project", Width: 10},
		{Title: "Status", Width: 10},
		{Title: "Priority", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		svc:    svc,
		user:   user,
		caps:   caps,
		tasks:  t,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(context.Background(), "")
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Tasks: tasks}
	}
}

func (m *Model) openForm() tea.Cmd {
	m.formSubj = ""
	m.formProj = ""
	m.formPrio = "Medium"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("subject").
				Title("Subject").
				Value(&m.formSubj).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("subject is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("project").
				Title("Project").
				Placeholder("PROJ-...").
				Value(&m.formProj),
			huh.NewSelect[string]().
				Key("priority").
				Title("Priority").
				Options(huh.NewOptions("Low", "Medium", "High")...).
				Value(&m.formPrio),
		),
	).WithTheme(huh.ThemeCharm())
	m.formOpen = true
	return m.form.Init()
}

func (m Model) submit() tea.Cmd {
	svc := m.svc
	task := api.Task{
		Subject:  m.formSubj,
		Project:  m.formProj,
		Priority: m.formPrio,
		Status:   "Open",
	}
	return func() tea.Msg {
		created, err := svc.CreateTask(context.Background(), task)
		if err != nil {
			return errMsg{Err: err}
		}
		return createdMsg{Task: created}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.formOpen {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			if m.caps.EditProjects {
				return m, m.openForm()
			}
			m.statusMsg = "Creating tasks requires the Projects Manager role"

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		m.statusMsg = ""
		rows := make([]table.Row, 0, len(msg.Tasks))
		for _, task := range msg.Tasks {
			rows = append(rows, table.Row{task.Name, task.Subject, task.Project, task.Status, task.Priority})
		}
		m.tasks.SetRows(rows)

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case createdMsg:
		m.statusMsg = fmt.Sprintf("Created %s", msg.Task.Name)
		return m, m.load()

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "Task" {
			return m, m.load()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

// updateForm drives the huh form while it is open.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.formOpen = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formOpen = false
		m.form = nil
		return m, m.submit()
	}
	return m, cmd
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	status := fmt.Sprintf("Total: %d tasks", len(m.tasks.Rows()))
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	help := []layout.HelpItem{
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if m.caps.EditProjects {
		help = append([]layout.HelpItem{{Key: "n", Description: "new task"}}, help...)
	}

	return layout.LayoutInfo{
		Title:       "Tasks",
		Breadcrumbs: []string{"Dashboard", "Tasks"},
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
		m.tasks.SetHeight(dims.Height - 1)
	}
}

func (m Model) View() string {
	content := m.tasks.View()
	if m.formOpen && m.form != nil {
		content = m.form.View()
	}
	return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
}
