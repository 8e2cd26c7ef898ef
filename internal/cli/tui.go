// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
	"github.com/saleemdev/devsecops-dashboard/internal/nav"
	"github.com/saleemdev/devsecops-dashboard/internal/tui"
)

type tuiOptions struct {
	configPath string
	mockMode   bool
}

func tuiCommand(args []string) error {
	opts := &tuiOptions{}
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	fs.BoolVar(&opts.mockMode, "mock", false, "Serve all data from bundled fixtures, no backend required")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mockMode {
		cfg.Backend.MockMode = true
	}
	defer logger.CloseGlobal()

	return tui.StartTUI(cfg, cfg.UI.InitialRoute)
}

func openCommand(args []string) error {
	opts := &tuiOptions{}
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	fs.BoolVar(&opts.mockMode, "mock", false, "Serve all data from bundled fixtures, no backend required")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("open requires a route fragment, e.g. %s open project/PROJ-001", appName)
	}
	fragment := strings.TrimPrefix(remaining[0], "#")

	// Unknown fragments silently land on the dashboard, which is confusing
	// from the command line. Warn when the requested route did not survive.
	normalized := nav.NewStore(fragment).Fragment()
	if normalized != fragment {
		fmt.Printf("Route %q is not recognized, opening %q instead\n", fragment, normalized)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mockMode {
		cfg.Backend.MockMode = true
	}
	defer logger.CloseGlobal()

	return tui.StartTUI(cfg, normalized)
}

func loadConfig(configPath string) (*config.AppConfig, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}
