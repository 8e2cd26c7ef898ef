// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package statuscard renders small bordered metric cards for the dashboard.
package statuscard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/saleemdev/devsecops-dashboard/internal/tui/layout"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(layout.BorderColor).
			Padding(0, 2)

	valueStyle = lipgloss.NewStyle().
			Foreground(layout.SecondaryColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(layout.MutedColor)

	alertValueStyle = lipgloss.NewStyle().
			Foreground(layout.ErrorColor).
			Bold(true)
)

// Card is one metric tile.
type Card struct {
	Label string
	Value int
	Alert bool // Render the value in the alert color when nonzero
}

// Render draws one card.
func (c Card) Render() string {
	style := valueStyle
	if c.Alert && c.Value > 0 {
		style = alertValueStyle
	}
	body := fmt.Sprintf("%s\n%s", style.Render(fmt.Sprintf("%d", c.Value)), labelStyle.Render(c.Label))
	return cardStyle.Render(body)
}

// Row lays cards out horizontally, wrapping is left to the caller's width.
func Row(cards ...Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, c.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
