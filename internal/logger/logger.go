// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
)

// Manager owns the configured writers and hands out per-component loggers.
// Component levels come from config log.levels; unnamed components inherit
// the global level.
type Manager struct {
	config           *config.LogConfig
	globalLogger     zerolog.Logger
	componentLoggers map[string]zerolog.Logger
	mu               sync.RWMutex
	writers          []io.Writer
}

// NewManager creates a new logger manager from the log configuration.
func NewManager(cfg *config.LogConfig) (*Manager, error) {
	m := &Manager{
		config:           cfg,
		componentLoggers: make(map[string]zerolog.Logger),
	}

	globalLevel := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(globalLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	writers, err := m.createWriters(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writers: %w", err)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		// Nothing enabled: fall back to a plain file so logs are never lost.
		// Writing to stderr would corrupt the TUI.
		fallback := "./logs/devsecops-fallback.log"
		if err := os.MkdirAll(filepath.Dir(fallback), 0755); err != nil {
			return nil, fmt.Errorf("failed to create fallback log directory: %w", err)
		}
		f, err := os.OpenFile(fallback, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open fallback log file: %w", err)
		}
		m.writers = append(m.writers, f)
		out = f
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	m.globalLogger = m.buildLogger(out, globalLevel)
	return m, nil
}

// createWriters builds one writer per enabled output definition.
func (m *Manager) createWriters(cfg *config.LogConfig) ([]io.Writer, error) {
	var writers []io.Writer

	for _, output := range cfg.Output {
		if !output.Enabled {
			continue
		}

		switch output.Type {
		case "console":
			if cfg.Format == "console" {
				writers = append(writers, zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: "15:04:05.000",
					FormatLevel: func(i interface{}) string {
						return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
					},
				})
			} else {
				writers = append(writers, os.Stderr)
			}

		case "file":
			if err := os.MkdirAll(filepath.Dir(output.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
			if output.Rotate.MaxSizeMB > 0 {
				w := &lumberjack.Logger{
					Filename:   output.Path,
					MaxSize:    output.Rotate.MaxSizeMB,
					MaxBackups: output.Rotate.MaxBackups,
					MaxAge:     output.Rotate.MaxAgeDays,
					Compress:   output.Rotate.Compress,
				}
				m.writers = append(m.writers, w)
				writers = append(writers, w)
			} else {
				f, err := os.OpenFile(output.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
				if err != nil {
					return nil, fmt.Errorf("failed to open log file %s: %w", output.Path, err)
				}
				m.writers = append(m.writers, f)
				writers = append(writers, f)
			}

		default:
			return nil, fmt.Errorf("unsupported output type: %s", output.Type)
		}
	}

	return writers, nil
}

// buildLogger applies the configured context and sampling to a base logger.
func (m *Manager) buildLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	lg := zerolog.New(w).Level(level)

	if m.config.Context.IncludeTimestamp {
		lg = lg.With().Timestamp().Logger()
	}
	if m.config.Context.IncludeCaller {
		lg = lg.With().Caller().Logger()
	}
	if m.config.Context.IncludeStackTrace != "" {
		lg = lg.With().Stack().Logger()
	}

	if m.config.Sampling.Enabled {
		lg = lg.Sample(&zerolog.BurstSampler{
			Burst:       m.config.Sampling.Initial,
			Period:      m.config.Sampling.Tick,
			NextSampler: &zerolog.BasicSampler{N: m.config.Sampling.Thereafter},
		})
	}

	return lg
}

// GetLogger returns a logger for a specific component, creating it on first use.
func (m *Manager) GetLogger(component string) zerolog.Logger {
	m.mu.RLock()
	if lg, ok := m.componentLoggers[component]; ok {
		m.mu.RUnlock()
		return lg
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Lost the race: another goroutine created it while we waited.
	if lg, ok := m.componentLoggers[component]; ok {
		return lg
	}

	level := parseLevel(m.config.Level)
	if componentLevel, ok := m.config.Levels[component]; ok {
		level = parseLevel(componentLevel)
	}

	lg := m.globalLogger.With().Str("component", component).Logger().Level(level)
	m.componentLoggers[component] = lg
	return lg
}

// SetComponentLevel dynamically changes the log level for a component.
func (m *Manager) SetComponentLevel(component, level string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.Levels == nil {
		m.config.Levels = make(map[string]string)
	}
	m.config.Levels[component] = level

	if lg, ok := m.componentLoggers[component]; ok {
		m.componentLoggers[component] = lg.Level(parseLevel(level))
	}
}

// Close closes all file writers.
func (m *Manager) Close() error {
	for _, w := range m.writers {
		if closer, ok := w.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseLevel converts a string level to zerolog.Level, defaulting to INFO.
func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	case "PANIC":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Global manager instance
var globalManager *Manager
var once sync.Once

// Initialize initializes the global logger manager. Subsequent calls are no-ops.
func Initialize(cfg *config.LogConfig) error {
	var err error
	once.Do(func() {
		globalManager, err = NewManager(cfg)
	})
	return err
}

// GetLogger returns a logger for the specified component. Before Initialize
// it returns a discard logger so nothing leaks to stdout/stderr.
func GetLogger(component string) zerolog.Logger {
	if globalManager == nil {
		return zerolog.New(io.Discard).With().Timestamp().Logger()
	}
	return globalManager.GetLogger(component)
}

// CloseGlobal closes the global logger manager.
func CloseGlobal() error {
	if globalManager != nil {
		return globalManager.Close()
	}
	return nil
}
