// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
)

// backendClient drives the mock server the way the dashboard does: cookie
// session plus CSRF token header on mutations.
type backendClient struct {
	t    *testing.T
	base string
	http *http.Client
	csrf string
}

func newBackendClient(t *testing.T) *backendClient {
	t.Helper()
	server, err := New(&config.MockConfig{})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &backendClient{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *backendClient) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrf != "" && method != http.MethodGet {
		req.Header.Set("X-Frappe-CSRF-Token", c.csrf)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	resp.Body.Close()
	return resp, raw
}

func (c *backendClient) login(user string) {
	c.t.Helper()
	resp, _ := c.do(http.MethodPost, "/api/method/login", map[string]string{"usr": user, "pwd": "anything"})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	resp, raw := c.do(http.MethodGet, "/api/method/frappe.sessions.get_csrf_token", nil)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(c.t, json.Unmarshal(raw, &envelope))
	require.NotEmpty(c.t, envelope.Message)
	c.csrf = envelope.Message
}

func TestLoginLifecycle(t *testing.T) {
	c := newBackendClient(t)

	// Anonymous sessions report the literal Guest.
	resp, raw := c.do(http.MethodGet, "/api/method/frappe.auth.get_logged_user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "Guest")

	c.login("admin@example.com")

	resp, raw = c.do(http.MethodGet, "/api/method/frappe.auth.get_logged_user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "admin@example.com")

	resp, raw = c.do(http.MethodGet, "/api/method/devsecops.api.get_user_info", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info struct {
		Message Doc `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &info))
	assert.Equal(t, "admin@example.com", info.Message["email"])

	resp, _ = c.do(http.MethodPost, "/api/method/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = c.do(http.MethodGet, "/api/method/frappe.auth.get_logged_user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "Guest")
}

func TestLoginRejectsUnknownUserAndEmptyPassword(t *testing.T) {
	c := newBackendClient(t)

	resp, raw := c.do(http.MethodPost, "/api/method/login", map[string]string{"usr": "nobody@example.com", "pwd": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "AuthenticationError")

	resp, _ = c.do(http.MethodPost, "/api/method/login", map[string]string{"usr": "admin@example.com", "pwd": ""})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestResourceRequiresSession(t *testing.T) {
	c := newBackendClient(t)

	resp, raw := c.do(http.MethodGet, "/api/resource/Project", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "AuthenticationError")
}

func TestResourceEnvelopes(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	resp, raw := c.do(http.MethodGet, "/api/resource/Project", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Data []Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Data, 3)

	resp, raw = c.do(http.MethodGet, "/api/resource/Project/PROJ-001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single struct {
		Data Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &single))
	assert.Equal(t, "Payments Platform", single.Data["project_name"])

	resp, raw = c.do(http.MethodGet, "/api/resource/Project/PROJ-999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "DoesNotExistError")
}

func TestResourceListFiltersAndFields(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	filters := `[["status","=","Open"]]`
	fields := `["name","status"]`
	path := fmt.Sprintf("/api/resource/Project?filters=%s&fields=%s",
		url.QueryEscape(filters), url.QueryEscape(fields))

	resp, raw := c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Data []Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Data, 2)
	for _, doc := range list.Data {
		assert.Equal(t, "Open", doc["status"])
		assert.NotContains(t, doc, "project_name")
	}

	resp, _ = c.do(http.MethodGet, "/api/resource/Project?filters=not-json", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMutationsRequireCSRF(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	// Drop the token: mutations must be rejected, reads still work.
	good := c.csrf
	c.csrf = ""

	req, err := http.NewRequest(http.MethodPost, c.base+"/api/resource/Task",
		bytes.NewReader([]byte(`{"subject":"x"}`)))
	require.NoError(t, err)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp2, _ := c.do(http.MethodGet, "/api/resource/Task", nil)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	c.csrf = good
	resp3, _ := c.do(http.MethodPost, "/api/resource/Task", Doc{"subject": "Patch runners"})
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}

func TestResourceCreateUpdateDelete(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	resp, raw := c.do(http.MethodPost, "/api/resource/Change Request", Doc{"title": "Rotate keys", "status": "Draft"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Data Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	name, _ := created.Data["name"].(string)
	require.NotEmpty(t, name)

	resp, raw = c.do(http.MethodPut, "/api/resource/Change Request/"+name, Doc{"status": "Approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Data Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Approved", updated.Data["status"])

	resp, _ = c.do(http.MethodDelete, "/api/resource/Change Request/"+name, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/resource/Change Request/"+name, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEscapedDoctypePath(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	resp, raw := c.do(http.MethodGet, "/api/resource/Change%20Request/CR-001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single struct {
		Data Doc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &single))
	assert.Equal(t, "CR-001", single.Data["name"])
}

func TestRevealVaultEntry(t *testing.T) {
	c := newBackendClient(t)
	c.login("admin@example.com")

	resp, raw := c.do(http.MethodGet, "/api/method/devsecops.api.reveal_vault_entry?entry=VLT-001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Message Doc `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.NotEmpty(t, envelope.Message["password"])

	resp, _ = c.do(http.MethodGet, "/api/method/devsecops.api.reveal_vault_entry?entry=VLT-999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
