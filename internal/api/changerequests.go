// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const doctypeChangeRequest = "Change Request"

var changeRequestFields = []string{
	"name", "title", "project", "status", "priority",
	"change_type", "requested_by", "justification", "planned_date",
}

// ListChangeRequests returns all change requests.
func (c *Client) ListChangeRequests(ctx context.Context) ([]ChangeRequest, error) {
	var crs []ChangeRequest
	if err := c.listDocs(ctx, doctypeChangeRequest, changeRequestFields, nil, &crs); err != nil {
		return nil, err
	}
	return crs, nil
}

// GetChangeRequest fetches one change request by name.
func (c *Client) GetChangeRequest(ctx context.Context, name string) (*ChangeRequest, error) {
	var cr ChangeRequest
	if err := c.getDoc(ctx, doctypeChangeRequest, name, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// CreateChangeRequest inserts a new change request.
func (c *Client) CreateChangeRequest(ctx context.Context, cr ChangeRequest) (*ChangeRequest, error) {
	var created ChangeRequest
	if err := c.createDoc(ctx, doctypeChangeRequest, cr, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateChangeRequest applies changes to an existing change request.
func (c *Client) UpdateChangeRequest(ctx context.Context, name string, cr ChangeRequest) (*ChangeRequest, error) {
	var updated ChangeRequest
	if err := c.updateDoc(ctx, doctypeChangeRequest, name, cr, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteChangeRequest removes a change request by name.
func (c *Client) DeleteChangeRequest(ctx context.Context, name string) error {
	return c.deleteDoc(ctx, doctypeChangeRequest, name)
}
