// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

const doctypeDashboardLink = "Dashboard Link"

// ListDashboardLinks returns the configured monitoring dashboard links.
func (c *Client) ListDashboardLinks(ctx context.Context) ([]DashboardLink, error) {
	var links []DashboardLink
	if err := c.listDocs(ctx, doctypeDashboardLink, []string{"name", "title", "url", "category"}, nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}
