// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
)

const (
	doctypeWikiSpace = "Wiki Space"
	doctypeWikiPage  = "Wiki Page"
)

var wikiSpaceFields = []string{"name", "route", "title", "description"}
var wikiPageFields = []string{"name", "route", "wiki_space", "title", "content", "modified_by"}

// ListWikiSpaces returns all wiki spaces.
func (c *Client) ListWikiSpaces(ctx context.Context) ([]WikiSpace, error) {
	var spaces []WikiSpace
	if err := c.listDocs(ctx, doctypeWikiSpace, wikiSpaceFields, nil, &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}

// ListWikiPages returns the pages of a space, identified by its slug.
func (c *Client) ListWikiPages(ctx context.Context, space string) ([]WikiPage, error) {
	filters := [][3]string{{"wiki_space", "=", space}}
	var pages []WikiPage
	if err := c.listDocs(ctx, doctypeWikiPage, wikiPageFields, filters, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// GetWikiPage resolves a page by space and page slug.
func (c *Client) GetWikiPage(ctx context.Context, space, slug string) (*WikiPage, error) {
	filters := [][3]string{
		{"wiki_space", "=", space},
		{"route", "=", slug},
	}
	var pages []WikiPage
	if err := c.listDocs(ctx, doctypeWikiPage, wikiPageFields, filters, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("wiki page %s/%s not found", space, slug)}
	}
	return &pages[0], nil
}

// SaveWikiPage creates or updates a page depending on whether it has a name.
func (c *Client) SaveWikiPage(ctx context.Context, page WikiPage) (*WikiPage, error) {
	var saved WikiPage
	if page.Name == "" {
		if err := c.createDoc(ctx, doctypeWikiPage, page, &saved); err != nil {
			return nil, err
		}
	} else {
		if err := c.updateDoc(ctx, doctypeWikiPage, page.Name, page, &saved); err != nil {
			return nil, err
		}
	}
	return &saved, nil
}
