// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package perms maps backend roles to UI capabilities. The backend enforces
// the real permissions; these checks only decide what the UI offers, so a
// stale role list degrades to hidden actions, never privilege escalation.
package perms

import (
	"github.com/samber/lo"

	"github.com/saleemdev/devsecops-dashboard/internal/api"
)

// Backend role names.
const (
	RoleSystemManager  = "System Manager"
	RoleProjectManager = "Projects Manager"
	RoleDevSecOpsUser  = "DevSecOps User"
	RoleVaultUser      = "Vault User"
	RoleWikiEditor     = "Wiki Editor"
)

// Capabilities is the full set of UI permissions for one user, computed once
// per session check.
type Capabilities struct {
	EditProjects         bool
	AccessVault          bool
	ManageChangeRequests bool
	ResolveIncidents     bool
	EditWiki             bool
}

func hasAny(user *api.User, roles ...string) bool {
	if user == nil {
		return false
	}
	if lo.Contains(user.Roles, RoleSystemManager) {
		return true
	}
	return lo.Some(user.Roles, roles)
}

// CanEditProjects covers creating and updating projects, apps and tasks.
func CanEditProjects(user *api.User) bool {
	return hasAny(user, RoleProjectManager)
}

// CanAccessVault gates the vault screen entirely, including listing.
func CanAccessVault(user *api.User) bool {
	return hasAny(user, RoleVaultUser)
}

// CanManageChangeRequests covers creating, editing and deleting change
// requests.
func CanManageChangeRequests(user *api.User) bool {
	return hasAny(user, RoleProjectManager, RoleDevSecOpsUser)
}

// CanResolveIncidents covers status transitions and resolution notes.
func CanResolveIncidents(user *api.User) bool {
	return hasAny(user, RoleDevSecOpsUser)
}

// CanEditWiki covers saving wiki pages. Everyone can read.
func CanEditWiki(user *api.User) bool {
	return hasAny(user, RoleWikiEditor)
}

// For computes all capabilities at once.
func For(user *api.User) Capabilities {
	return Capabilities{
		EditProjects:         CanEditProjects(user),
		AccessVault:          CanAccessVault(user),
		ManageChangeRequests: CanManageChangeRequests(user),
		ResolveIncidents:     CanResolveIncidents(user),
		EditWiki:             CanEditWiki(user),
	}
}
