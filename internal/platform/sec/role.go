// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Registry administrators; they review profiles and set their status.
	RoleAdmin UserRole = "admin"

	// Registry staff with read access to submitted profiles
	RoleOfficer UserRole = "officer"

	// Artists managing their own membership profile
	RoleArtist UserRole = "artist"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleOfficer:
		return 20
	case RoleArtist:
		return 10
	default:
		return 0
	}
}
