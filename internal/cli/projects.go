// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

type projectsOptions struct {
	configPath string
	mockMode   bool
}

func projectsCommand(args []string) error {
	opts := &projectsOptions{}
	fs := flag.NewFlagSet("projects", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	fs.BoolVar(&opts.mockMode, "mock", false, "List projects from bundled fixtures, no backend required")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.CloseGlobal()
	if opts.mockMode {
		cfg.Backend.MockMode = true
	}

	return listProjects(cfg.Backend)
}

func listProjects(backend config.BackendConfig) error {
	svc, err := api.NewService(backend)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	// Print table
	fmt.Println()
	fmt.Printf("%-12s  %-32s  %-12s  %s\n", "ID", "NAME", "STATUS", "PROGRESS")
	fmt.Println("────────────  ────────────────────────────────  ────────────  ────────")
	for _, p := range projects {
		name := p.ProjectName
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Printf("%-12s  %-32s  %-12s  %.0f%%\n", p.Name, name, p.Status, p.PercentComplete)
	}
	fmt.Println()

	return nil
}
