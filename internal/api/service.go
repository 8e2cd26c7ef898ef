// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
)

// Service is the backend surface the UI consumes. Two implementations exist:
// the live HTTP Client and the fixture-backed mock used for offline
// development (backend.mock_mode).
type Service interface {
	// Session
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	LoggedUser(ctx context.Context) (string, error)
	UserInfo(ctx context.Context) (*User, error)

	// Projects and their applications
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, name string) (*Project, error)
	ListProjectApps(ctx context.Context, project string) ([]ProjectApp, error)
	GetProjectApp(ctx context.Context, name string) (*ProjectApp, error)

	// Tasks
	ListTasks(ctx context.Context, project string) ([]Task, error)
	CreateTask(ctx context.Context, task Task) (*Task, error)
	UpdateTask(ctx context.Context, name string, task Task) (*Task, error)

	// Change requests
	ListChangeRequests(ctx context.Context) ([]ChangeRequest, error)
	GetChangeRequest(ctx context.Context, name string) (*ChangeRequest, error)
	CreateChangeRequest(ctx context.Context, cr ChangeRequest) (*ChangeRequest, error)
	UpdateChangeRequest(ctx context.Context, name string, cr ChangeRequest) (*ChangeRequest, error)
	DeleteChangeRequest(ctx context.Context, name string) error

	// Incidents
	ListIncidents(ctx context.Context) ([]Incident, error)
	GetIncident(ctx context.Context, name string) (*Incident, error)
	UpdateIncident(ctx context.Context, name string, inc Incident) (*Incident, error)

	// Password vault
	ListVaultEntries(ctx context.Context) ([]VaultEntry, error)
	RevealVaultEntry(ctx context.Context, name string) (*VaultEntry, error)
	CreateVaultEntry(ctx context.Context, entry VaultEntry) (*VaultEntry, error)
	DeleteVaultEntry(ctx context.Context, name string) error

	// Wiki
	ListWikiSpaces(ctx context.Context) ([]WikiSpace, error)
	ListWikiPages(ctx context.Context, space string) ([]WikiPage, error)
	GetWikiPage(ctx context.Context, space, slug string) (*WikiPage, error)
	SaveWikiPage(ctx context.Context, page WikiPage) (*WikiPage, error)

	// RACI templates
	ListRACITemplates(ctx context.Context) ([]RACITemplate, error)
	GetRACITemplate(ctx context.Context, name string) (*RACITemplate, error)

	// Monitoring dashboards
	ListDashboardLinks(ctx context.Context) ([]DashboardLink, error)
}

// NewService returns the Service implementation selected by configuration:
// the fixture-backed mock when mock_mode is set, the HTTP client otherwise.
func NewService(cfg config.BackendConfig) (Service, error) {
	if cfg.MockMode {
		return NewMockService()
	}
	return NewClient(cfg)
}
