// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui is the terminal front end. It wires the backend service, the
// session store, the navigation store and the realtime stream into one
// bubbletea program.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/auth"
	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/realtime"
	"github.com/saleemdev/devsecops-dashboard/internal/tui/messages"
)

// StartTUI runs the dashboard until the user quits. initialFragment deep
// links into a screen; empty means the dashboard.
func StartTUI(cfg *config.AppConfig, initialFragment string) error {
	svc, err := api.NewService(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to create backend service: %w", err)
	}

	authStore := auth.NewStore(svc)
	authStore.CheckAuthentication(context.Background())

	navStore := nav.NewStore(initialFragment)
	mainModel := NewMainModel(cfg, svc, authStore, navStore)

	p := tea.NewProgram(mainModel, tea.WithAltScreen())

	// Feed realtime events into the program for screen refresh.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Realtime.Enabled && !cfg.Backend.MockMode {
		sub := realtime.NewSubscriber(cfg.WebsocketURL(), cfg.Realtime)
		go sub.Run(ctx)
		go func() {
			for change := range sub.Events() {
				p.Send(messages.RecordChangedMsg{Change: change})
			}
		}()
	}

	_, err = p.Run()
	if err != nil {
		log := logger.GetTUILogger()
		log.Error().Err(err).Msg("tui terminated with error")
	}
	return err
}
