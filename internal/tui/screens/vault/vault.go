// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vault is the password vault screen. Listing never carries secrets;
// a password is fetched per entry on demand and shown until the selection
// moves. The whole screen is gated on the Vault User role.
package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

type loadedMsg struct {
	Entries []api.VaultEntry
}

type revealedMsg struct {
	Entry *api.VaultEntry
}

type createdMsg struct {
	Entry *api.VaultEntry
}

type deletedMsg struct {
	Name string
}

type errMsg struct {
	Err error
}

// Model is the vault screen model.
type Model struct {
	svc  api.Service
	user string
	caps perms.Capabilities

	entries   table.Model
	revealed  *api.VaultEntry
	form      *huh.Form
	formOpen  bool
	fields    entryFields
	statusMsg string
	width     int
	height    int
	compact   bool
}

type entryFields struct {
	Title    string
	Category string
	Username string
	Password string
	URL      string
}

func NewModel(svc api.Service, user string, caps perms.Capabilities) Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Title", Width: 26},
		{Title: "Category", Width: 12},
		{Title: "Username", Width: 18},
		{Title: "URL", Width: 28},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		svc:     svc,
		user:    user,
		caps:    caps,
		entries: t,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.caps.AccessVault {
		return nil
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		entries, err := svc.ListVaultEntries(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return loadedMsg{Entries: entries}
	}
}

func (m Model) reveal(name string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		entry, err := svc.RevealVaultEntry(context.Background(), name)
		if err != nil {
			return errMsg{Err: err}
		}
		return revealedMsg{Entry: entry}
	}
}

func (m *Model) openForm() tea.Cmd {
	m.fields = entryFields{}
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
				Key("category").
				Title("Category").
				Value(&m.fields.Category),
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.fields.Username),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fields.Password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("url").
				Title("URL").
				Value(&m.fields.URL),
		),
	).WithTheme(huh.ThemeCharm())
	m.formOpen = true
	return m.form.Init()
}

func (m Model) submit() tea.Cmd {
	svc := m.svc
	entry := api.VaultEntry{
		Title:    m.fields.Title,
		Category: m.fields.Category,
		Username: m.fields.Username,
		Password: m.fields.Password,
		URL:      m.fields.URL,
	}
	return func() tea.Msg {
		created, err := svc.CreateVaultEntry(context.Background(), entry)
		if err != nil {
			return errMsg{Err: err}
		}
		return createdMsg{Entry: created}
	}
}

func (m Model) delete(name string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteVaultEntry(context.Background(), name); err != nil {
			return errMsg{Err: err}
		}
		return deletedMsg{Name: name}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if !m.caps.AccessVault {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				return m, func() tea.Msg { return messages.GoBackMsg{} }
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.formOpen {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.revealed != nil {
				m.revealed = nil
				return m, nil
			}
			if row := m.entries.SelectedRow(); row != nil {
				return m, m.reveal(row[0])
			}

		case "n":
			return m, m.openForm()

		case "x":
			if row := m.entries.SelectedRow(); row != nil {
				return m, m.delete(row[0])
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case loadedMsg:
		rows := make([]table.Row, 0, len(msg.Entries))
		for _, e := range msg.Entries {
			rows = append(rows, table.Row{e.Name, e.Title, e.Category, e.Username, e.URL})
		}
		m.entries.SetRows(rows)

	case revealedMsg:
		m.revealed = msg.Entry

	case createdMsg:
		m.statusMsg = fmt.Sprintf("Created %s", msg.Entry.Name)
		return m, m.load()

	case deletedMsg:
		m.statusMsg = fmt.Sprintf("Deleted %s", msg.Name)
		m.revealed = nil
		return m, m.load()

	case errMsg:
		switch {
		case api.IsPermissionError(msg.Err):
			m.statusMsg = "Not permitted to reveal this entry"
		case api.IsNotFound(msg.Err):
			m.statusMsg = "Entry no longer exists"
		default:
			m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)
		}

	case messages.RecordChangedMsg:
		if msg.Change.Doctype == "Vault Entry" {
			return m, m.load()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	prev := m.entries.Cursor()
	m.entries, cmd = m.entries.Update(msg)
	if m.entries.Cursor() != prev {
		// Moving the selection hides any revealed secret.
		m.revealed = nil
	}
	return m, cmd
}

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
	status := fmt.Sprintf("Total: %d entries", len(m.entries.Rows()))
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	help := []layout.HelpItem{
		{Key: "enter", Description: "reveal"},
		{Key: "n", Description: "new"},
		{Key: "x", Description: "delete"},
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if !m.caps.AccessVault {
		help = []layout.HelpItem{
			{Key: "esc", Description: "back"},
			{Key: "q", Description: "quit"},
		}
	}

	return layout.LayoutInfo{
		Title:       "Vault",
		Breadcrumbs: []string{"Dashboard", "Vault"},
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
	if dims.Valid && dims.Height > 5 {
		m.entries.SetHeight(dims.Height - 3)
	}
}

func (m Model) View() string {
	if !m.caps.AccessVault {
		content := layout.WarningStyle.Render("Vault access requires the Vault User role.")
		return layout.RenderLayout(content, m.GetLayoutInfo(), m.width, m.height)
	}

	if m.formOpen && m.form != nil {
		return layout.RenderLayout(m.form.View(), m.GetLayoutInfo(), m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.entries.View())
	if m.revealed != nil {
		b.WriteString("\n\n")
		b.WriteString(layout.StatsStyle.Render(fmt.Sprintf("%s password: ", m.revealed.Title)))
		b.WriteString(layout.WarningStyle.Render(m.revealed.Password))
	}
	return layout.RenderLayout(b.String(), m.GetLayoutInfo(), m.width, m.height)
}
