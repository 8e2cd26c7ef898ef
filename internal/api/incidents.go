// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const doctypeIncident = "Incident"

var incidentFields = []string{
	"name", "title", "affected_service", "severity", "status",
	"reported_by", "resolution", "creation",
}

// ListIncidents returns all incidents.
func (c *Client) ListIncidents(ctx context.Context) ([]Incident, error) {
	var incidents []Incident
	if err := c.listDocs(ctx, doctypeIncident, incidentFields, nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncident fetches one incident by name.
func (c *Client) GetIncident(ctx context.Context, name string) (*Incident, error) {
	var inc Incident
	if err := c.getDoc(ctx, doctypeIncident, name, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// UpdateIncident applies changes to an incident (status, resolution).
func (c *Client) UpdateIncident(ctx context.Context, name string, inc Incident) (*Incident, error) {
	var updated Incident
	if err := c.updateDoc(ctx, doctypeIncident, name, inc, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
