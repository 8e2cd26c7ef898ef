// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// mockd runs the mock backend server standalone, without the dashboard CLI.
// Useful for pointing a live-mode dashboard at local fixture data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
	"github.com/saleemdev/devsecops-dashboard/internal/mockbackend"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(&cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.CloseGlobal()

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
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
