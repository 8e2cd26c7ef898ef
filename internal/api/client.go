// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api talks to the ERP backend over its JSON HTTP surface: RPC-style
// /api/method endpoints and /api/resource document CRUD. Responses arrive
// wrapped in a single "message" (method calls) or "data" (resource calls)
// envelope; the client unwraps both uniformly so callers only see typed
// records.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

const csrfHeader = "X-Frappe-CSRF-Token"

// Client is the live HTTP implementation of Service. Session state lives in
// the cookie jar; mutating requests additionally carry the CSRF token the
// backend hands out after login.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	apiSecret string
	csrfToken string
}

// NewClient creates a backend client from configuration. It does not contact
// the backend; call Login (or configure token auth) before issuing requests
// that need a session.
func NewClient(cfg config.BackendConfig) (*Client, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
	}, nil
}

// Login opens a session with username/password credentials, then fetches the
// CSRF token required for subsequent mutating requests. Not needed when
// api_key/api_secret token auth is configured.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{"usr": username, "pwd": password}
	if err := c.call(ctx, http.MethodPost, "/api/method/login", nil, payload, nil); err != nil {
		return err
	}

	var token string
	if err := c.call(ctx, http.MethodGet, "/api/method/frappe.sessions.get_csrf_token", nil, nil, &token); err != nil {
		return fmt.Errorf("failed to fetch csrf token: %w", err)
	}
	c.csrfToken = token
	return nil
}

// Logout terminates the backend session and forgets the CSRF token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/api/method/logout", nil, nil, nil)
	c.csrfToken = ""
	return err
}

// LoggedUser returns the session's user id. A guest or expired session comes
// back as the literal "Guest".
func (c *Client) LoggedUser(ctx context.Context) (string, error) {
	var user string
	err := c.call(ctx, http.MethodGet, "/api/method/frappe.auth.get_logged_user", nil, nil, &user)
	return user, err
}

// UserInfo returns the authenticated user's profile including roles.
func (c *Client) UserInfo(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodGet, "/api/method/devsecops.api.get_user_info", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// listDocs fetches all documents of a doctype with the given fields.
// filters use the backend's triplet form: [field, operator, value].
func (c *Client) listDocs(ctx context.Context, doctype string, fields []string, filters [][3]string, out any) error {
	query := url.Values{}
	query.Set("limit_page_length", "0")
	if len(fields) > 0 {
		encoded, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		query.Set("fields", string(encoded))
	}
	if len(filters) > 0 {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return err
		}
		query.Set("filters", string(encoded))
	}
	return c.call(ctx, http.MethodGet, resourcePath(doctype, ""), query, nil, out)
}

// getDoc fetches one document by name.
func (c *Client) getDoc(ctx context.Context, doctype, name string, out any) error {
	return c.call(ctx, http.MethodGet, resourcePath(doctype, name), nil, nil, out)
}

// createDoc inserts a document and decodes the created record into out.
func (c *Client) createDoc(ctx context.Context, doctype string, doc, out any) error {
	return c.call(ctx, http.MethodPost, resourcePath(doctype, ""), nil, doc, out)
}

// updateDoc applies a partial update to a document by name.
func (c *Client) updateDoc(ctx context.Context, doctype, name string, patch, out any) error {
	return c.call(ctx, http.MethodPut, resourcePath(doctype, name), nil, patch, out)
}

// deleteDoc removes a document by name.
func (c *Client) deleteDoc(ctx context.Context, doctype, name string) error {
	return c.call(ctx, http.MethodDelete, resourcePath(doctype, name), nil, nil, nil)
}

// resourcePath builds /api/resource/<DocType>[/<name>] with proper escaping.
func resourcePath(doctype, name string) string {
	p := "/api/resource/" + url.PathEscape(doctype)
	if name != "" {
		p += "/" + url.PathEscape(name)
	}
	return p
}

// call issues one request and decodes the unwrapped response into out
// (which may be nil when the caller ignores the body).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "token "+c.apiKey+":"+c.apiSecret)
	}
	if c.csrfToken != "" && method != http.MethodGet {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	log := logger.GetAPILogger()
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return decodeEnvelope(raw, out)
}

// decodeEnvelope unwraps the single "message" or "data" envelope field when
// present, otherwise decodes the payload flat.
func decodeEnvelope(raw []byte, out any) error {
	var envelope struct {
		Message json.RawMessage `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if len(envelope.Message) > 0 && !bytes.Equal(envelope.Message, []byte("null")) {
			return json.Unmarshal(envelope.Message, out)
		}
		if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal(raw, out)
}

// decodeError maps a non-2xx body to an APIError, tolerating non-JSON bodies.
func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		ExcType        string `json:"exc_type"`
		Message        string `json:"message"`
		ServerMessages string `json:"_server_messages"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.ExcType = body.ExcType
		apiErr.Message = body.Message
		if apiErr.Message == "" && body.ServerMessages != "" {
			apiErr.Message = flattenServerMessages(body.ServerMessages)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// flattenServerMessages extracts the human text from the backend's
// doubly-encoded _server_messages field (a JSON array of JSON strings).
func flattenServerMessages(encoded string) string {
	var outer []string
	if err := json.Unmarshal([]byte(encoded), &outer); err != nil {
		return encoded
	}
	var parts []string
	for _, item := range outer {
		var inner struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(item), &inner); err == nil && inner.Message != "" {
			parts = append(parts, inner.Message)
		} else {
			parts = append(parts, item)
		}
	}
	return strings.Join(parts, "; ")
}
