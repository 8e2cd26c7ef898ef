// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/mockbackend"
)

func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	backend, err := mockbackend.New(&config.MockConfig{})
	require.NoError(t, err)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.BackendConfig{
		URL:            baseURL,
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestClientSessionLifecycle(t *testing.T) {
	srv := newBackendServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	t.Run("starts as guest", func(t *testing.T) {
		user, err := client.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Guest", user)
	})

	t.Run("login establishes session and csrf token", func(t *testing.T) {
		err := client.Login(ctx, "admin@example.com", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, client.csrfToken)

		user, err := client.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user)
	})

	t.Run("user info includes roles", func(t *testing.T) {
		info, err := client.UserInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", info.Name)
		assert.Contains(t, info.Roles, "System Manager")
	})

	t.Run("logout returns to guest", func(t *testing.T) {
		require.NoError(t, client.Logout(ctx))
		assert.Empty(t, client.csrfToken)

		user, err := client.LoggedUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Guest", user)
	})
}

func TestClientLoginRejected(t *testing.T) {
	srv := newBackendServer(t)
	client := newTestClient(t, srv.URL)

	err := client.Login(context.Background(), "admin@example.com", "")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestClientResourceCRUD(t *testing.T) {
	srv := newBackendServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "admin@example.com", "admin"))

	t.Run("lists seeded projects", func(t *testing.T) {
		projects, err := client.ListProjects(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, projects)
		assert.Equal(t, "PROJ-001", projects[0].Name)
	})

	t.Run("filters apps by project", func(t *testing.T) {
		apps, err := client.ListProjectApps(ctx, "PROJ-001")
		require.NoError(t, err)
		require.NotEmpty(t, apps)
		for _, app := range apps {
			assert.Equal(t, "PROJ-001", app.Project)
		}
	})

	t.Run("fetches one document by name", func(t *testing.T) {
		project, err := client.GetProject(ctx, "PROJ-001")
		require.NoError(t, err)
		assert.Equal(t, "PROJ-001", project.Name)
		assert.NotEmpty(t, project.ProjectName)
	})

	t.Run("missing document is a not found error", func(t *testing.T) {
		_, err := client.GetProject(ctx, "PROJ-404")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("create then update then delete a change request", func(t *testing.T) {
		created, err := client.CreateChangeRequest(ctx, ChangeRequest{
			Title:   "Rotate signing keys",
			Status:  "Draft",
			Project: "PROJ-001",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.Name)

		created.Status = "Approved"
		updated, err := client.UpdateChangeRequest(ctx, created.Name, *created)
		require.NoError(t, err)
		assert.Equal(t, "Approved", updated.Status)

		require.NoError(t, client.DeleteChangeRequest(ctx, created.Name))
		_, err = client.GetChangeRequest(ctx, created.Name)
		assert.True(t, IsNotFound(err))
	})
}

func TestClientMutationsNeedCSRFToken(t *testing.T) {
	srv := newBackendServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "admin@example.com", "admin"))

	// Simulate a stale client whose token no longer matches the session.
	client.csrfToken = "stale-token"

	_, err := client.CreateTask(ctx, Task{Subject: "should fail"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	// Reads are unaffected.
	_, err = client.ListTasks(ctx, "")
	assert.NoError(t, err)
}

func TestClientVaultReveal(t *testing.T) {
	srv := newBackendServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "admin@example.com", "admin"))

	entries, err := client.ListVaultEntries(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Empty(t, entry.Password, "listing must not expose passwords")
	}

	revealed, err := client.RevealVaultEntry(ctx, entries[0].Name)
	require.NoError(t, err)
	assert.NotEmpty(t, revealed.Password)
}

func TestClientSendsCSRFHeaderOnMutations(t *testing.T) {
	var sawHeader string
	var sawMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("X-Frappe-CSRF-Token")
		sawMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"data": []}`))
		} else {
			w.Write([]byte(`{"data": {}}`))
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.csrfToken = "tok-123"
	ctx := context.Background()

	_, err := client.CreateTask(ctx, Task{Subject: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, sawMethod)
	assert.Equal(t, "tok-123", sawHeader)

	_, err = client.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, sawMethod)
	assert.Empty(t, sawHeader, "GET requests never carry the csrf header")
}

func TestClientTokenAuthHeader(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client, err := NewClient(config.BackendConfig{
		URL:            srv.URL,
		APIKey:         "key",
		APISecret:      "secret",
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token key:secret", sawAuth)
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"message envelope", `{"message": "hello"}`, "hello"},
		{"data envelope", `{"data": "world"}`, "world"},
		{"flat payload", `"plain"`, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out string
			require.NoError(t, decodeEnvelope([]byte(tt.raw), &out))
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("null message falls through to data", func(t *testing.T) {
		var out []string
		require.NoError(t, decodeEnvelope([]byte(`{"message": null, "data": ["a"]}`), &out))
		assert.Equal(t, []string{"a"}, out)
	})
}

func TestDecodeError(t *testing.T) {
	t.Run("structured body", func(t *testing.T) {
		err := decodeError(403, []byte(`{"exc_type": "PermissionError", "message": "no access"}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)
		assert.Equal(t, "PermissionError", apiErr.ExcType)
		assert.Equal(t, "no access", apiErr.Message)
		assert.True(t, IsPermissionError(err))
	})

	t.Run("server messages fallback", func(t *testing.T) {
		body := `{"_server_messages": "[\"{\\\"message\\\": \\\"Value too long\\\"}\"]"}`
		err := decodeError(417, []byte(body))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Value too long", apiErr.Message)
	})

	t.Run("non json body", func(t *testing.T) {
		err := decodeError(502, []byte("<html>Bad Gateway</html>"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Bad Gateway", apiErr.Message)
	})
}

func TestResourcePath(t *testing.T) {
	assert.Equal(t, "/api/resource/Project", resourcePath("Project", ""))
	assert.Equal(t, "/api/resource/Change%20Request/CR-001", resourcePath("Change Request", "CR-001"))
}
