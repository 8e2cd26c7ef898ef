// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

const doctypeVaultEntry = "Vault Entry"

// Password is deliberately absent from list fields; it only travels through
// the reveal endpoint.
var vaultFields = []string{
	"name", "title", "category", "username", "url", "notes",
}

// ListVaultEntries returns vault entries without passwords.
func (c *Client) ListVaultEntries(ctx context.Context) ([]VaultEntry, error) {
	var entries []VaultEntry
	if err := c.listDocs(ctx, doctypeVaultEntry, vaultFields, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RevealVaultEntry fetches a single entry including its decrypted password.
func (c *Client) RevealVaultEntry(ctx context.Context, name string) (*VaultEntry, error) {
	query := url.Values{}
	query.Set("entry", name)
	var entry VaultEntry
	if err := c.call(ctx, http.MethodGet, "/api/method/devsecops.api.reveal_vault_entry", query, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateVaultEntry inserts a new vault entry.
func (c *Client) CreateVaultEntry(ctx context.Context, entry VaultEntry) (*VaultEntry, error) {
	var created VaultEntry
	if err := c.createDoc(ctx, doctypeVaultEntry, entry, &created); err != nil {
		return nil, err
	}
	created.Password = ""
	return &created, nil
}

// DeleteVaultEntry removes a vault entry by name.
func (c *Client) DeleteVaultEntry(ctx context.Context, name string) error {
	return c.deleteDoc(ctx, doctypeVaultEntry, name)
}
