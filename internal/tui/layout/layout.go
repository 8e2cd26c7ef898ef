// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout renders the shared screen chrome: header with title,
// breadcrumb trail and session badge, content area, and a help footer.
package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// MinimumWidth is the minimum terminal width required
	MinimumWidth = 40
	// MinimumHeight is the minimum terminal height required
	MinimumHeight = 10
)

// LayoutInfo contains all the information needed to render a layout.
type LayoutInfo struct {
	Title       string
	Breadcrumbs []string
	User        string // Session badge, "Guest" renders highlighted
	Status      string
	HelpItems   []HelpItem
	Compact     bool // Drops the status line and footer for small viewports
}

// Dimensions represents the available space for content.
type Dimensions struct {
	Width  int
	Height int
	Valid  bool
	Error  string
}

// ValidateSpace checks if the terminal has enough space to render properly.
func ValidateSpace(width, height int) Dimensions {
	if width < MinimumWidth {
		return Dimensions{
			Width:  width,
			Height: height,
			Error:  fmt.Sprintf("Terminal too narrow (%d cols). Minimum: %d cols", width, MinimumWidth),
		}
	}
	if height < MinimumHeight {
		return Dimensions{
			Width:  width,
			Height: height,
			Error:  fmt.Sprintf("Terminal too short (%d lines). Minimum: %d lines", height, MinimumHeight),
		}
	}
	return Dimensions{Width: width, Height: height, Valid: true}
}

// RenderLayout combines header, content, and footer into a complete screen.
// Returns an error view if the terminal is too small.
func RenderLayout(content string, info LayoutInfo, width, height int) string {
	dims := ValidateSpace(width, height)
	if !dims.Valid {
		return renderSpaceError(dims.Error, width, height)
	}

	status := info.Status
	if info.Compact {
		status = ""
	}
	header := RenderHeader(info.Title, info.Breadcrumbs, info.User, status, width)

	var footer string
	if len(info.HelpItems) > 0 && !info.Compact {
		footer = RenderFooter(info.HelpItems, width)
	}

	contentHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		MaxHeight(contentHeight).
		Height(contentHeight).
		Align(lipgloss.Left, lipgloss.Top).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, styledContent, footer)
}

// GetContentArea calculates the width and height left for content after the
// chrome is rendered.
func GetContentArea(info LayoutInfo, totalWidth, totalHeight int) Dimensions {
	dims := ValidateSpace(totalWidth, totalHeight)
	if !dims.Valid {
		return dims
	}

	status := info.Status
	if info.Compact {
		status = ""
	}
	header := RenderHeader(info.Title, info.Breadcrumbs, info.User, status, totalWidth)

	footerHeight := 0
	if len(info.HelpItems) > 0 && !info.Compact {
		footerHeight = lipgloss.Height(RenderFooter(info.HelpItems, totalWidth))
	}

	contentHeight := totalHeight - lipgloss.Height(header) - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	return Dimensions{Width: totalWidth, Height: contentHeight, Valid: true}
}

// renderSpaceError renders a centered message when the terminal is too small.
func renderSpaceError(message string, width, height int) string {
	errorStyle := lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true).
		Align(lipgloss.Center, lipgloss.Center).
		Width(width).
		Height(height)

	lines := []string{
		"Terminal too small",
		"",
		message,
		"",
		fmt.Sprintf("Current: %dx%d", width, height),
		fmt.Sprintf("Minimum: %dx%d", MinimumWidth, MinimumHeight),
	}
	return errorStyle.Render(strings.Join(lines, "\n"))
}
