// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/saleemdev/devsecops-dashboard/internal/mockbackend"
)

// defaultMockUser is the session the mock starts with, so offline
// development drops straight into an authenticated dashboard.
const defaultMockUser = "admin@example.com"

// MockService implements Service against the embedded fixture store without
// any network traffic. It shares the store code with the mock backend server
// so both offline modes present identical data.
type MockService struct {
	store *mockbackend.Store

	mu   sync.RWMutex
	user string // Empty means guest
}

// NewMockService loads the embedded fixtures and starts authenticated as
// the default development user.
func NewMockService() (*MockService, error) {
	store, err := mockbackend.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load mock fixtures: %w", err)
	}
	return &MockService{store: store, user: defaultMockUser}, nil
}

// decodeDoc converts a schemaless store document into a typed record via
// its JSON tags.
func decodeDoc(doc mockbackend.Doc, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// decodeDocs converts a list of store documents.
func decodeDocs(docs []mockbackend.Doc, out any) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// encodeDoc converts a typed record into a store document.
func encodeDoc(in any) (mockbackend.Doc, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var doc mockbackend.Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func notFound(doctype, name string) error {
	return &APIError{
		StatusCode: http.StatusNotFound,
		ExcType:    "DoesNotExistError",
		Message:    fmt.Sprintf("%s %s not found", doctype, name),
	}
}

// Login succeeds for any fixture user with a non-empty password.
func (m *MockService) Login(ctx context.Context, username, password string) error {
	if password == "" || m.store.Get("User", username) == nil {
		return &APIError{
			StatusCode: http.StatusUnauthorized,
			ExcType:    "AuthenticationError",
			Message:    "invalid login credentials",
		}
	}
	m.mu.Lock()
	m.user = username
	m.mu.Unlock()
	return nil
}

// Logout drops to the guest state.
func (m *MockService) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = ""
	m.mu.Unlock()
	return nil
}

// LoggedUser reports the mock session user, or "Guest".
func (m *MockService) LoggedUser(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == "" {
		return "Guest", nil
	}
	return m.user, nil
}

// UserInfo returns the fixture profile of the mock session user.
func (m *MockService) UserInfo(ctx context.Context) (*User, error) {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()

	if user == "" {
		return nil, &APIError{StatusCode: http.StatusUnauthorized, ExcType: "AuthenticationError", Message: "no active session"}
	}
	doc := m.store.Get("User", user)
	if doc == nil {
		return nil, notFound("User", user)
	}
	var out User
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := decodeDocs(m.store.List(doctypeProject, nil, nil), &out)
	return out, err
}

func (m *MockService) GetProject(ctx context.Context, name string) (*Project, error) {
	doc := m.store.Get(doctypeProject, name)
	if doc == nil {
		return nil, notFound(doctypeProject, name)
	}
	var out Project
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListProjectApps(ctx context.Context, project string) ([]ProjectApp, error) {
	var filters []mockbackend.Filter
	if project != "" {
		filters = append(filters, mockbackend.Filter{Field: "project", Operator: "=", Value: project})
	}
	var out []ProjectApp
	err := decodeDocs(m.store.List(doctypeProjectApp, filters, nil), &out)
	return out, err
}

func (m *MockService) GetProjectApp(ctx context.Context, name string) (*ProjectApp, error) {
	doc := m.store.Get(doctypeProjectApp, name)
	if doc == nil {
		return nil, notFound(doctypeProjectApp, name)
	}
	var out ProjectApp
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListTasks(ctx context.Context, project string) ([]Task, error) {
	var filters []mockbackend.Filter
	if project != "" {
		filters = append(filters, mockbackend.Filter{Field: "project", Operator: "=", Value: project})
	}
	var out []Task
	err := decodeDocs(m.store.List(doctypeTask, filters, nil), &out)
	return out, err
}

func (m *MockService) CreateTask(ctx context.Context, task Task) (*Task, error) {
	doc, err := encodeDoc(task)
	if err != nil {
		return nil, err
	}
	var out Task
	if err := decodeDoc(m.store.Insert(doctypeTask, doc), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) UpdateTask(ctx context.Context, name string, task Task) (*Task, error) {
	doc, err := encodeDoc(task)
	if err != nil {
		return nil, err
	}
	updated := m.store.Update(doctypeTask, name, doc)
	if updated == nil {
		return nil, notFound(doctypeTask, name)
	}
	var out Task
	if err := decodeDoc(updated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListChangeRequests(ctx context.Context) ([]ChangeRequest, error) {
	var out []ChangeRequest
	err := decodeDocs(m.store.List(doctypeChangeRequest, nil, nil), &out)
	return out, err
}

func (m *MockService) GetChangeRequest(ctx context.Context, name string) (*ChangeRequest, error) {
	doc := m.store.Get(doctypeChangeRequest, name)
	if doc == nil {
		return nil, notFound(doctypeChangeRequest, name)
	}
	var out ChangeRequest
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) CreateChangeRequest(ctx context.Context, cr ChangeRequest) (*ChangeRequest, error) {
	doc, err := encodeDoc(cr)
	if err != nil {
		return nil, err
	}
	var out ChangeRequest
	if err := decodeDoc(m.store.Insert(doctypeChangeRequest, doc), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) UpdateChangeRequest(ctx context.Context, name string, cr ChangeRequest) (*ChangeRequest, error) {
	doc, err := encodeDoc(cr)
	if err != nil {
		return nil, err
	}
	updated := m.store.Update(doctypeChangeRequest, name, doc)
	if updated == nil {
		return nil, notFound(doctypeChangeRequest, name)
	}
	var out ChangeRequest
	if err := decodeDoc(updated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) DeleteChangeRequest(ctx context.Context, name string) error {
	if !m.store.Delete(doctypeChangeRequest, name) {
		return notFound(doctypeChangeRequest, name)
	}
	return nil
}

func (m *MockService) ListIncidents(ctx context.Context) ([]Incident, error) {
	var out []Incident
	err := decodeDocs(m.store.List(doctypeIncident, nil, nil), &out)
	return out, err
}

func (m *MockService) GetIncident(ctx context.Context, name string) (*Incident, error) {
	doc := m.store.Get(doctypeIncident, name)
	if doc == nil {
		return nil, notFound(doctypeIncident, name)
	}
	var out Incident
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) UpdateIncident(ctx context.Context, name string, inc Incident) (*Incident, error) {
	doc, err := encodeDoc(inc)
	if err != nil {
		return nil, err
	}
	updated := m.store.Update(doctypeIncident, name, doc)
	if updated == nil {
		return nil, notFound(doctypeIncident, name)
	}
	var out Incident
	if err := decodeDoc(updated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVaultEntries strips passwords, matching the live backend's list
// behavior.
func (m *MockService) ListVaultEntries(ctx context.Context) ([]VaultEntry, error) {
	var out []VaultEntry
	if err := decodeDocs(m.store.List(doctypeVaultEntry, nil, nil), &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Password = ""
	}
	return out, nil
}

func (m *MockService) RevealVaultEntry(ctx context.Context, name string) (*VaultEntry, error) {
	doc := m.store.Get(doctypeVaultEntry, name)
	if doc == nil {
		return nil, notFound(doctypeVaultEntry, name)
	}
	var out VaultEntry
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) CreateVaultEntry(ctx context.Context, entry VaultEntry) (*VaultEntry, error) {
	doc, err := encodeDoc(entry)
	if err != nil {
		return nil, err
	}
	var out VaultEntry
	if err := decodeDoc(m.store.Insert(doctypeVaultEntry, doc), &out); err != nil {
		return nil, err
	}
	out.Password = ""
	return &out, nil
}

func (m *MockService) DeleteVaultEntry(ctx context.Context, name string) error {
	if !m.store.Delete(doctypeVaultEntry, name) {
		return notFound(doctypeVaultEntry, name)
	}
	return nil
}

func (m *MockService) ListWikiSpaces(ctx context.Context) ([]WikiSpace, error) {
	var out []WikiSpace
	err := decodeDocs(m.store.List(doctypeWikiSpace, nil, nil), &out)
	return out, err
}

func (m *MockService) ListWikiPages(ctx context.Context, space string) ([]WikiPage, error) {
	filters := []mockbackend.Filter{{Field: "wiki_space", Operator: "=", Value: space}}
	var out []WikiPage
	err := decodeDocs(m.store.List(doctypeWikiPage, filters, nil), &out)
	return out, err
}

func (m *MockService) GetWikiPage(ctx context.Context, space, slug string) (*WikiPage, error) {
	filters := []mockbackend.Filter{
		{Field: "wiki_space", Operator: "=", Value: space},
		{Field: "route", Operator: "=", Value: slug},
	}
	docs := m.store.List(doctypeWikiPage, filters, nil)
	if len(docs) == 0 {
		return nil, notFound(doctypeWikiPage, space+"/"+slug)
	}
	var out WikiPage
	if err := decodeDoc(docs[0], &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) SaveWikiPage(ctx context.Context, page WikiPage) (*WikiPage, error) {
	doc, err := encodeDoc(page)
	if err != nil {
		return nil, err
	}
	var stored mockbackend.Doc
	if page.Name == "" {
		stored = m.store.Insert(doctypeWikiPage, doc)
	} else {
		stored = m.store.Update(doctypeWikiPage, page.Name, doc)
		if stored == nil {
			return nil, notFound(doctypeWikiPage, page.Name)
		}
	}
	var out WikiPage
	if err := decodeDoc(stored, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListRACITemplates(ctx context.Context) ([]RACITemplate, error) {
	var out []RACITemplate
	err := decodeDocs(m.store.List(doctypeRACITemplate, nil, nil), &out)
	return out, err
}

func (m *MockService) GetRACITemplate(ctx context.Context, name string) (*RACITemplate, error) {
	doc := m.store.Get(doctypeRACITemplate, name)
	if doc == nil {
		return nil, notFound(doctypeRACITemplate, name)
	}
	var out RACITemplate
	if err := decodeDoc(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MockService) ListDashboardLinks(ctx context.Context) ([]DashboardLink, error) {
	var out []DashboardLink
	err := decodeDocs(m.store.List(doctypeDashboardLink, nil, nil), &out)
	return out, err
}
