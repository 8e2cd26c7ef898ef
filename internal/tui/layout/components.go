// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"strings"
)

// HelpItem represents a single footer help entry.
type HelpItem struct {
	Key         string
	Description string
}

// RenderHeader creates a header with title, breadcrumb trail, user badge and
// an optional status line. Breadcrumbs with a single entry are omitted; the
// title already covers them.
func RenderHeader(title string, breadcrumbs []string, user, status string, width int) string {
	var header strings.Builder

	titleLine := TitleStyle.Render(title)
	if len(breadcrumbs) > 1 {
		titleLine += "  " + BreadcrumbStyle.Render(strings.Join(breadcrumbs, BreadcrumbSeparator.String()))
	}
	if user != "" {
		badge := StatusStyle.Render(user)
		if user == "Guest" {
			badge = GuestBadgeStyle.Render(user)
		}
		titleLine += "  " + badge
	}
	header.WriteString(titleLine)

	if status != "" {
		header.WriteString("\n")
		header.WriteString(StatsStyle.Render(status))
	}

	header.WriteString("\n")
	header.WriteString(GetDivider(width))

	return header.String()
}

// MenuItem is one section entry in the navigation menu strip.
type MenuItem struct {
	Label  string
	Active bool
}

// RenderMenu creates the navigation menu strip: the sections with the
// active one highlighted, and the current breadcrumb trail beneath.
func RenderMenu(items []MenuItem, trail []string, width int) string {
	var menu strings.Builder

	rendered := make([]string, 0, len(items))
	for _, item := range items {
		style := MenuItemStyle
		if item.Active {
			style = MenuActiveStyle
		}
		rendered = append(rendered, style.Render(item.Label))
	}
	menu.WriteString(strings.Join(rendered, " "))

	if len(trail) > 0 {
		menu.WriteString("\n")
		menu.WriteString(BreadcrumbStyle.Render(strings.Join(trail, BreadcrumbSeparator.String())))
	}

	menu.WriteString("\n")
	menu.WriteString(GetDivider(width))

	return menu.String()
}

// RenderFooter creates a footer line from help items.
func RenderFooter(helpItems []HelpItem, width int) string {
	if len(helpItems) == 0 {
		return ""
	}

	var footer strings.Builder
	footer.WriteString(GetDivider(width))
	footer.WriteString("\n")

	helpTexts := make([]string, 0, len(helpItems))
	for _, item := range helpItems {
		helpTexts = append(helpTexts, fmt.Sprintf("[%s] %s",
			HelpKeyStyle.Render(item.Key),
			HelpTextStyle.Render(item.Description)))
	}
	footer.WriteString(FooterStyle.Width(width).Render(strings.Join(helpTexts, " • ")))

	return footer.String()
}
