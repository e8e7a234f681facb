// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can review submitted drafts and manage the editorial queue
	RoleEditor UserRole = "editor"

	// External contributor with a site account
	RoleContributor UserRole = "contributor"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleContributor:
		return 10
	default:
		return 0
	}
}
