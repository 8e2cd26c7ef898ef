// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const (
	doctypeProject    = "Project"
	doctypeProjectApp = "Project App"
)

var projectFields = []string{
	"name", "project_name", "status", "priority",
	"percent_complete", "expected_end_date", "description",
}

var projectAppFields = []string{
	"name", "project", "app_name", "repository_url", "environment", "status",
}

// ListProjects returns all projects visible to the session.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.listDocs(ctx, doctypeProject, projectFields, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by name.
func (c *Client) GetProject(ctx context.Context, name string) (*Project, error) {
	var project Project
	if err := c.getDoc(ctx, doctypeProject, name, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjectApps returns the applications of a project; with an empty
// project it returns all apps.
func (c *Client) ListProjectApps(ctx context.Context, project string) ([]ProjectApp, error) {
	var filters [][3]string
	if project != "" {
		filters = append(filters, [3]string{"project", "=", project})
	}
	var apps []ProjectApp
	if err := c.listDocs(ctx, doctypeProjectApp, projectAppFields, filters, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetProjectApp fetches a single application record by name.
func (c *Client) GetProjectApp(ctx context.Context, name string) (*ProjectApp, error) {
	var app ProjectApp
	if err := c.getDoc(ctx, doctypeProjectApp, name, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
