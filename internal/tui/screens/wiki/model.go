// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package wiki covers the three wiki routes: the space index, the page list
// of one space, and a single rendered page with an edit flow for wiki
// editors.
package wiki

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/perms"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

type spacesLoadedMsg struct {
	Spaces []api.WikiSpace
}

type pagesLoadedMsg struct {
	Pages []api.WikiPage
}

type pageLoadedMsg struct {
	Page *api.WikiPage
}

type savedMsg struct {
	Page *api.WikiPage
}

type errMsg struct {
	Err error
}

// spaceItem adapts a wiki space to the bubbles list.
type spaceItem struct {
	Slug  string
	Name  string
	Desc  string
}

func (s spaceItem) FilterValue() string { return s.Name }
func (s spaceItem) Title() string       { return s.Name }
func (s spaceItem) Description() string { return s.Desc }

// pageItem adapts a wiki page to the bubbles list.
type pageItem struct {
	Slug  string
	Name  string
}

func (p pageItem) FilterValue() string { return p.Name }
func (p pageItem) Title() string       { return p.Name }
func (p pageItem) Description() string { return p.Slug }

// Model is the wiki screen model. Space and pageSlug decide which of the
// three views is active.
type Model struct {
	svc  api.Service
	user string
	caps perms.Capabilities

	space    string
	pageSlug string

	spaces    list.Model
	pages     list.Model
	page      *api.WikiPage
	form      *huh.Form
	formOpen  bool
	draft     string
	statusMsg string
	width     int
	height    int
	compact   bool
}

// NewModel creates a wiki model. Empty space shows the space index; empty
// pageSlug with a space shows that space's page list.
func NewModel(svc api.Service, user string, caps perms.Capabilities, space, pageSlug string) Model {
	newList := func() list.Model {
		l := list.New([]list.Item{}, list.NewDefaultDelegate(), 50, 10)
		l.SetShowStatusBar(false)
		l.SetShowHelp(false)
		l.SetFilteringEnabled(false)
		l.Title = ""
		return l
	}

	return Model{
		svc:      svc,
		user:     user,
		caps:     caps,
		space:    space,
		pageSlug: pageSlug,
		spaces:   newList(),
		pages:    newList(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	switch {
	case m.space == "":
		return m.loadSpaces()
	case m.pageSlug == "":
		return m.loadPages()
	default:
		return m.loadPage()
	}
}

func (m Model) loadSpaces() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		spaces, err := svc.ListWikiSpaces(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return spacesLoadedMsg{Spaces: spaces}
	}
}

func (m Model) loadPages() tea.Cmd {
	svc, space := m.svc, m.space
	return func() tea.Msg {
		pages, err := svc.ListWikiPages(context.Background(), space)
		if err != nil {
			return errMsg{Err: err}
		}
		return pagesLoadedMsg{Pages: pages}
	}
}

func (m Model) loadPage() tea.Cmd {
	svc, space, slug := m.svc, m.space, m.pageSlug
	return func() tea.Msg {
		page, err := svc.GetWikiPage(context.Background(), space, slug)
		if err != nil {
			return errMsg{Err: err}
		}
		return pageLoadedMsg{Page: page}
	}
}

// openEditor opens the content editor for the loaded page.
func (m *Model) openEditor() tea.Cmd {
	m.draft = m.page.Content
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("content").
				Title(m.page.Title).
				Value(&m.draft).
				Lines(12),
		),
	).WithTheme(huh.ThemeCharm())
	m.formOpen = true
	return m.form.Init()
}

func (m Model) save() tea.Cmd {
	svc := m.svc
	page := *m.page
	page.Content = m.draft
	return func() tea.Msg {
		saved, err := svc.SaveWikiPage(context.Background(), page)
		if err != nil {
			return errMsg{Err: err}
		}
		return savedMsg{Page: saved}
	}
}

func (m Model) GetLayoutInfo() layout.LayoutInfo {
	title := "Wiki"
	crumbs := []string{"Dashboard", "Wiki"}
	if m.space != "" {
		crumbs = append(crumbs, m.space)
		title = m.space
	}
	if m.pageSlug != "" {
		crumbs = append(crumbs, m.pageSlug)
		if m.page != nil {
			title = m.page.Title
		}
	}

	status := m.statusMsg
	if status == "" && m.page != nil && m.page.ModifiedBy != "" {
		status = fmt.Sprintf("Last edited by %s", m.page.ModifiedBy)
	}

	help := []layout.HelpItem{
		{Key: "esc", Description: "back"},
		{Key: "q", Description: "quit"},
	}
	if m.pageSlug == "" {
		help = append([]layout.HelpItem{{Key: "enter", Description: "open"}}, help...)
	} else if m.caps.EditWiki && !m.formOpen {
		help = append([]layout.HelpItem{{Key: "e", Description: "edit"}}, help...)
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
	if dims.Valid {
		m.spaces.SetWidth(dims.Width)
		m.spaces.SetHeight(dims.Height)
		m.pages.SetWidth(dims.Width)
		m.pages.SetHeight(dims.Height)
	}
}
