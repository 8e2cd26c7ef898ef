// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
)

func newMock(t *testing.T) *MockService {
	t.Helper()
	svc, err := NewMockService()
	require.NoError(t, err)
	return svc
}

func TestNewServiceSelectsMock(t *testing.T) {
	svc, err := NewService(config.BackendConfig{MockMode: true})
	require.NoError(t, err)
	assert.IsType(t, &MockService{}, svc)

	svc, err = NewService(config.BackendConfig{URL: "http://localhost:8001"})
	require.NoError(t, err)
	assert.IsType(t, &Client{}, svc)
}

func TestMockServiceSession(t *testing.T) {
	svc := newMock(t)
	ctx := context.Background()

	t.Run("starts authenticated for offline development", func(t *testing.T) {
		user, err := svc.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user)

		info, err := svc.UserInfo(ctx)
		require.NoError(t, err)
		assert.Contains(t, info.Roles, "Vault User")
	})

	t.Run("login switches the session user", func(t *testing.T) {
		require.NoError(t, svc.Login(ctx, "viewer@example.com", "anything"))
		user, err := svc.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "viewer@example.com", user)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		err := svc.Login(ctx, "nobody@example.com", "pw")
		require.Error(t, err)
		assert.True(t, IsAuthError(err))
	})

	t.Run("logout drops to guest", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx))
		user, err := svc.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Guest", user)

		_, err = svc.UserInfo(ctx)
		assert.True(t, IsAuthError(err))
	})
}

func TestMockServiceData(t *testing.T) {
	svc := newMock(t)
	ctx := context.Background()

	t.Run("projects", func(t *testing.T) {
		projects, err := svc.ListProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 3)

		project, err := svc.GetProject(ctx, "PROJ-001")
		require.NoError(t, err)
		assert.Equal(t, "Payments Platform", project.ProjectName)

		_, err = svc.GetProject(ctx, "missing")
		assert.True(t, IsNotFound(err))
	})

	t.Run("apps scoped to project", func(t *testing.T) {
		apps, err := svc.ListProjectApps(ctx, "PROJ-001")
		require.NoError(t, err)
		assert.Len(t, apps, 2)
	})

	t.Run("task create and update", func(t *testing.T) {
		created, err := svc.CreateTask(ctx, Task{Subject: "Review firewall rules", Project: "PROJ-002", Status: "Open"})
		require.NoError(t, err)
		require.NotEmpty(t, created.Name)

		created.Status = "Completed"
		updated, err := svc.UpdateTask(ctx, created.Name, *created)
		require.NoError(t, err)
		assert.Equal(t, "Completed", updated.Status)
	})

	t.Run("vault list hides passwords, reveal returns them", func(t *testing.T) {
		entries, err := svc.ListVaultEntries(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		for _, e := range entries {
			assert.Empty(t, e.Password)
		}

		revealed, err := svc.RevealVaultEntry(ctx, "VLT-001")
		require.NoError(t, err)
		assert.NotEmpty(t, revealed.Password)
	})

	t.Run("wiki page lookup by space and slug", func(t *testing.T) {
		page, err := svc.GetWikiPage(ctx, "platform", "on-call")
		require.NoError(t, err)
		assert.Equal(t, "On-call Handbook", page.Title)

		_, err = svc.GetWikiPage(ctx, "platform", "nope")
		assert.True(t, IsNotFound(err))
	})

	t.Run("wiki save creates then updates", func(t *testing.T) {
		saved, err := svc.SaveWikiPage(ctx, WikiPage{Slug: "glossary", Space: "platform", Title: "Glossary", Content: "# Glossary\n"})
		require.NoError(t, err)
		require.NotEmpty(t, saved.Name)

		saved.Content = "# Glossary\n\nTerms.\n"
		again, err := svc.SaveWikiPage(ctx, *saved)
		require.NoError(t, err)
		assert.Equal(t, saved.Name, again.Name)
		assert.Contains(t, again.Content, "Terms.")
	})

	t.Run("raci templates carry activities", func(t *testing.T) {
		tmpl, err := svc.GetRACITemplate(ctx, "RACI-001")
		require.NoError(t, err)
		assert.NotEmpty(t, tmpl.Activities)
		assert.Equal(t, "Approve change window", tmpl.Activities[0].Activity)
	})

	t.Run("dashboard links", func(t *testing.T) {
		links, err := svc.ListDashboardLinks(ctx)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})
}
