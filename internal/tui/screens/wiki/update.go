// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package wiki

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.formOpen {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.space == "" {
				if item, ok := m.spaces.SelectedItem().(spaceItem); ok {
					return m, func() tea.Msg {
						return messages.NavigateMsg{Route: nav.RouteWikiSpace, Params: []string{item.Slug}}
					}
				}
			} else if m.pageSlug == "" {
				if item, ok := m.pages.SelectedItem().(pageItem); ok {
					space := m.space
					return m, func() tea.Msg {
						return messages.NavigateMsg{Route: nav.RouteWikiPage, Params: []string{space, item.Slug}}
					}
				}
			}

		case "e":
			if m.pageSlug != "" && m.page != nil {
				if m.caps.EditWiki {
					return m, m.openEditor()
				}
				m.statusMsg = "Editing requires the Wiki Editor role"
			}

		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spacesLoadedMsg:
		items := make([]list.Item, 0, len(msg.Spaces))
		for _, s := range msg.Spaces {
			items = append(items, spaceItem{Slug: s.Slug, Name: s.Title, Desc: s.Description})
		}
		m.spaces.SetItems(items)

	case pagesLoadedMsg:
		items := make([]list.Item, 0, len(msg.Pages))
		for _, p := range msg.Pages {
			items = append(items, pageItem{Slug: p.Slug, Name: p.Title})
		}
		m.pages.SetItems(items)

	case pageLoadedMsg:
		m.page = msg.Page
		m.statusMsg = ""

	case savedMsg:
		m.page = msg.Page
		m.statusMsg = "Saved"

	case errMsg:
		m.statusMsg = fmt.Sprintf("Error: %s", msg.Err)

	case messages.RecordChangedMsg:
		switch msg.Change.Doctype {
		case "Wiki Space", "Wiki Page":
			return m, m.Init()
		}

	case messages.CompactMsg:
		m.compact = msg.Compact

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	switch {
	case m.space == "":
		m.spaces, cmd = m.spaces.Update(msg)
	case m.pageSlug == "":
		m.pages, cmd = m.pages.Update(msg)
	}
	return m, cmd
}

// updateForm drives the page editor while it is open.
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
		return m, m.save()
	}
	return m, cmd
}
