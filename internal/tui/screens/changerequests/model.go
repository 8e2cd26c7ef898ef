// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package changerequests lists change requests and edits them through an
// inline form. The edit route carries the change request id in the fragment
// so a form can be linked to directly.
package changerequests

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
	Requests []api.ChangeRequest
}

type editLoadedMsg struct {
	Request *api.ChangeRequest
}

type savedMsg struct {
	Request *api.ChangeRequest
}

type deletedMsg struct {
	Name string
}

type errMsg struct {
	Err error
}

// Model is the change request screen model.
type Model struct {
	svc  api.Service
	user string
	caps perms.Capabilities

	editID string // Nonempty when constructed on the edit route

	requests  table.Model
	form      *huh.Form
	formOpen  bool
	editing   *api.ChangeRequest // nil while creating
	fields    formFields
	statusMsg string
	width     int
	height    int
	compact   bool
}

// formFields backs the huh inputs.
type formFields struct {
	Title         string
	Project       string
	Status        string
	Priority      string
	ChangeType    string
	Justification string
	PlannedDate   string
}

// NewModel creates the list model.
func NewModel(svc api.Service, user string, caps perms.Capabilities) Model {
	return newModel(svc, user, caps, "")
}

// NewEditModel creates the model already focused on one change request.
func NewEditModel(svc api.Service, user string, caps perms.Capabilities, name string) Model {
	return newModel(svc, user, caps, name)
}

func newModel(svc api.Service, user string, caps perms.Capabilities, editID string) Model {
	columns := []table.Column{
		{Title: "ID", Width: 20},
		{Title: "Title", Width: 36},
		{Title: "Status", Width: 16},
		{Title: "Priority", Width: 8},
		{Title: "Planned", Width: 12},
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
		editID: editID,
		requests: t,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	if m.editID != "" {
		return tea.Batch(m.load(), m.loadEdit(m.editID))
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		requests, err := svc.ListChangeRequests(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Requests: requests}
	}
}

func (m Model) loadEdit(name string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		cr, err := svc.GetChangeRequest(context.Background(), name)
		if err != nil {
			return errMsg{Err: err}
		}
		return editLoadedMsg{Request: cr}
	}
}

// openForm builds the huh form, pre-filled when editing.
func (m *Model) openForm(existing *api.ChangeRequest) tea.Cmd {
	m.editing = existing
	if existing != nil {
		m.fields = formFields{
			Title:         existing.Title,
			Project:       existing.Project,
			Status:        existing.Status,
			Priority:      existing.Priority,
			ChangeType:    existing.ChangeType,
			Justification: existing.Justification,
			PlannedDate:   existing.PlannedDate,
		}
	} else {
		m.fields = formFields{Status: "Draft", Priority: "Medium", ChangeType: "Infrastructure"}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.fields.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("project").
				Title("Project").
				Placeholder("PROJ-...").
				Value(&m.fields.Project),
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(huh.NewOptions("Draft", "Pending Approval", "Approved", "Rejected", "Completed")...).
				Value(&m.fields.Status),
			huh.NewSelect[string]().
				Key("priority").
				Title("Priority").
				Options(huh.NewOptions("Low", "Medium", "High")...).
				Value(&m.fields.Priority),
			huh.NewSelect[string]().
				Key("change_type").
				Title("Type").
				Options(huh.NewOptions("Infrastructure", "Security", "Application", "Process")...).
				Value(&m.fields.ChangeType),
			huh.NewInput().
				Key("planned_date").
				Title("Planned date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.PlannedDate),
			huh.NewText().
				Key("justification").
				Title("Justification").
				Value(&m.fields.Justification),
		),
	).WithTheme(huh.ThemeCharm())
	m.formOpen = true
	return m.form.Init()
}

// submit persists the form, creating or updating as appropriate.
func (m Model) submit() tea.Cmd {
	svc := m.svc
	cr := api.ChangeRequest{
		Title:         m.fields.Title,
		Project:       m.fields.Project,
		Status:        m.fields.Status,
		Priority:      m.fields.Priority,
		ChangeType:    m.fields.ChangeType,
		Justification: m.fields.Justification,
		PlannedDate:   m.fields.PlannedDate,
		RequestedBy:   m.user,
	}
	var name string
	if m.editing != nil {
		name = m.editing.Name
	}
	return func() tea.Msg {
		var saved *api.ChangeRequest
		var err error
		if name != "" {
			saved, err = svc.UpdateChangeRequest(context.Background(), name, cr)
		} else {
			saved, err = svc.CreateChangeRequest(context.Background(), cr)
		}
		if err != nil {
			return errMsg{Err: err}
		}
		return savedMsg{Request: saved}
	}
}

func (m Model) delete(name string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteChangeRequest(context.Background(), name); err != nil {
			return errMsg{Err: err}
		}
		return deletedMsg{Name: name}
	}
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	title := "Change Requests"
	crumbs := []string{"Dashboard", "Change Requests"}
	if m.formOpen {
		if m.editing != nil {
			crumbs = append(crumbs, m.editing.Name)
		} else {
			crumbs = append(crumbs, "New")
		}
	}

	status := fmt.Sprintf("Total: %d change requests", len(m.requests.Rows()))
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	help := []layout.HelpItem{
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if m.caps.ManageChangeRequests && !m.formOpen {
		help = append([]layout.HelpItem{
			{Key: "n", Description: "new"},
			{Key: "enter", Description: "edit"},
			{Key: "x", Description: "delete"},
		}, help...)
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
		m.requests.SetHeight(dims.Height - 1)
	}
}
