// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login is the guest screen: a credentials form that opens a backend
// session through the auth store.
package login

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/auth"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loginResultMsg struct {
	Err error
}

// Model is the login screen model.
type Model struct {
	authStore *auth.Store
	form      *huh.Form
	username  string
	password  string
	statusMsg string
	width     int
	height    int
	compact   bool
}

func NewModel(authStore *auth.Store) Model {
	m := Model{authStore: authStore, width: 80, height: 24}
	m.initForm()
	return m
}

func (m *Model) initForm() {
	m.password = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Email").
				Placeholder("user@example.com").
				Value(&m.username).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCharm())
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) submit() tea.Cmd {
	store, user, pwd := m.authStore, m.username, m.password
	return func() tea.Msg {
		return loginResultMsg{Err: store.Login(context.Background(), user, pwd)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case loginResultMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Login failed: %s", msg.Err)
			m.initForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return messages.SessionChangedMsg{}
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}
	return m, cmd
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	return layout.LayoutInfo{
		Title:       "Sign in",
		Breadcrumbs: []string{"Sign in"},
		User:        "Guest",
		Status:      m.statusMsg,
		Compact:     m.compact,
		HelpItems: []layout.HelpItem{
			{Key: "enter", Description: "submit"},
			{Key: "ctrl+c", Description: "quit"},
		},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	return layout.RenderLayout(m.form.View(), m.GetLayoutInfo(), m.width, m.height)
}
