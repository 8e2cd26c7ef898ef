// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saleemdev/devsecops-dashboard/internal/logger"
	"github.com/saleemdev/devsecops-dashboard/internal/mockbackend"
)

type mockOptions struct {
	configPath string
	host       string
	port       int
	fixtures   string
}

func mockCommand(args []string) error {
	opts := &mockOptions{}
	fs := flag.NewFlagSet("mock", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")
	fs.StringVar(&opts.host, "host", "", "Listen host (overrides mock.host from config)")
	fs.IntVar(&opts.port, "port", 0, "Listen port (overrides mock.port from config)")
	fs.StringVar(&opts.fixtures, "fixtures", "", "Path to a fixtures YAML file (default: embedded fixture set)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.CloseGlobal()

	if opts.host != "" {
		cfg.Mock.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Mock.Port = opts.port
	}
	if opts.fixtures != "" {
		cfg.Mock.FixturesPath = opts.fixtures
	}

	server, err := mockbackend.New(&cfg.Mock)
	if err != nil {
		return fmt.Errorf("failed to create mock backend: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mock backend failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
