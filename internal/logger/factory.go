// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels.
// These ensure consistent component names across the codebase.

// GetAPILogger returns a logger for backend API client operations
func GetAPILogger() zerolog.Logger {
	return GetLogger("api")
}

// GetTUILogger returns a logger for TUI components
func GetTUILogger() zerolog.Logger {
	return GetLogger("tui")
}

// GetNavLogger returns a logger for the navigation store
func GetNavLogger() zerolog.Logger {
	return GetLogger("nav")
}

// GetAuthLogger returns a logger for authentication operations
func GetAuthLogger() zerolog.Logger {
	return GetLogger("auth")
}

// GetRealtimeLogger returns a logger for the websocket event stream
func GetRealtimeLogger() zerolog.Logger {
	return GetLogger("realtime")
}

// GetMockLogger returns a logger for the mock backend server
func GetMockLogger() zerolog.Logger {
	return GetLogger("mock")
}
