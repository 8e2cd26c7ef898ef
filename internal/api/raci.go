// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const doctypeRACITemplate = "RACI Template"

// ListRACITemplates returns template headers (activities omitted on lists).
func (c *Client) ListRACITemplates(ctx context.Context) ([]RACITemplate, error) {
	var templates []RACITemplate
	if err := c.listDocs(ctx, doctypeRACITemplate, []string{"name", "title"}, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetRACITemplate fetches a full template including its activity rows.
func (c *Client) GetRACITemplate(ctx context.Context, name string) (*RACITemplate, error) {
	var tmpl RACITemplate
	if err := c.getDoc(ctx, doctypeRACITemplate, name, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}
