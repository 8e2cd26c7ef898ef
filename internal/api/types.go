// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// Backend record shapes. Field tags follow the backend's snake_case naming;
// the structs are the UI-facing shape, so views never touch raw JSON.

// Project is a delivery project tracked on the backend.
type Project struct {
	Name            string  `json:"name"`
	ProjectName     string  `json:"project_name"`
	Status          string  `json:"status"`
	Priority        string  `json:"priority"`
	PercentComplete float64 `json:"percent_complete"`
	ExpectedEndDate string  `json:"expected_end_date"`
	Description     string  `json:"description"`
}

// ProjectApp is an application/service belonging to a project.
type ProjectApp struct {
	Name          string `json:"name"`
	Project       string `json:"project"`
	AppName       string `json:"app_name"`
	RepositoryURL string `json:"repository_url"`
	Environment   string `json:"environment"`
	Status        string `json:"status"`
}

// Task is a work item, optionally scoped to a project.
type Task struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Project     string `json:"project"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ExpEndDate  string `json:"exp_end_date"`
	Description string `json:"description"`
}

// ChangeRequest is a tracked change against a project or service.
type ChangeRequest struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	Project       string `json:"project"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	ChangeType    string `json:"change_type"`
	RequestedBy   string `json:"requested_by"`
	Justification string `json:"justification"`
	PlannedDate   string `json:"planned_date"`
}

// Incident is an operational incident record.
type Incident struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	AffectedService string `json:"affected_service"`
	Severity        string `json:"severity"`
	Status          string `json:"status"`
	ReportedBy      string `json:"reported_by"`
	Resolution      string `json:"resolution"`
	Creation        string `json:"creation"`
}

// VaultEntry is a password vault record. Password is only populated by a
// reveal call, never by list queries.
type VaultEntry struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// WikiSpace groups wiki pages under a slug.
type WikiSpace struct {
	Name        string `json:"name"`
	Slug        string `json:"route"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WikiPage is a single documentation page within a space.
type WikiPage struct {
	Name       string `json:"name"`
	Slug       string `json:"route"`
	Space      string `json:"wiki_space"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ModifiedBy string `json:"modified_by"`
}

// RACIActivity is one row of a RACI matrix.
type RACIActivity struct {
	Activity    string `json:"activity"`
	Responsible string `json:"responsible"`
	Accountable string `json:"accountable"`
	Consulted   string `json:"consulted"`
	Informed    string `json:"informed"`
}

// RACITemplate is a reusable responsibility matrix.
type RACITemplate struct {
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Activities []RACIActivity `json:"activities"`
}

// DashboardLink points at an external monitoring dashboard.
type DashboardLink struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// User is the authenticated user's profile as reported by the backend.
type User struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}
