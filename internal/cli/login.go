// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

type loginOptions struct {
	configPath string
	user       string
	password   string
}

func loginCommand(args []string) error {
	opts := &loginOptions{}
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	fs.StringVar(&opts.user, "user", "", "Username (overrides backend.username from config)")
	fs.StringVar(&opts.password, "password", "", "Password (overrides backend.password from config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.CloseGlobal()

	if opts.user != "" {
		cfg.Backend.Username = opts.user
	}
	if opts.password != "" {
		cfg.Backend.Password = opts.password
	}
	if cfg.Backend.Username == "" {
		return fmt.Errorf("no username configured, pass --user or set backend.username")
	}

	svc, err := api.NewService(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := svc.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, err := svc.UserInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch user info: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Email)
	if len(user.Roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(user.Roles, ", "))
	}
	return nil
}
