// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
)

const (
	appName    = "devsecops"
	appVersion = "0.1.0-alpha"
)

// Execute runs the CLI application
func Execute() error {
	if len(os.Args) < 2 {
		return tuiCommand(nil)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "tui":
		return tuiCommand(args)
	case "open":
		return openCommand(args)
	case "login":
		return loginCommand(args)
	case "projects":
		return projectsCommand(args)
	case "mock":
		return mockCommand(args)
	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)
		return nil
	case "help", "-h", "--help":
		return printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		return printUsage()
	}
}

func printUsage() error {
	fmt.Printf(`%s - terminal dashboard for the DevSecOps backend

Usage:
  %s <command> [arguments]

Commands:
  tui              Start the dashboard (default when no command is given)
  open <route>     Start the dashboard at a specific route fragment
  login            Verify backend credentials and print the session roles
  projects         List projects
  mock             Run the bundled mock backend server
  version          Print version information
  help             Show this help message

Examples:
  %s
  %s open project/PROJ-001
  %s open "wiki/engineering/pages/onboarding"
  %s login --user admin@example.com
  %s projects
  %s mock --port 8080

`, appName, appName, appName, appName, appName, appName, appName, appName)
	return nil
}
