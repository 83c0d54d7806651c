// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// ForgeKey is an SSH key as stored on the forge, carrying the forge-side id
// needed to remove it.
type ForgeKey struct {
	ID          int
	Key         string
	Fingerprint string
}

// ForgeUser is a user account on a forge instance.
type ForgeUser struct {
	ID       int
	Username string
	Name     string
	Email    string
	Blocked  bool
	IsAdmin  bool
	External bool
	SSHKeys  []ForgeKey
}

// ForgeGroup is a group on a forge instance. FullPath includes the parent
// path where the group is nested, lower-cased slug form.
type ForgeGroup struct {
	ID       int
	Name     string
	Path     string
	FullPath string
	ParentID int
}

// ForgeMember is a user's membership in a forge group.
type ForgeMember struct {
	ID       int
	Username string
}

// BuiltInUsernames are forge service accounts that are observed but never
// mutated.
var BuiltInUsernames = []string{"root", "ghost", "support-bot", "alert-bot"}

// BuiltInGroupNames are forge groups that are never the subject of a
// mutating call.
var BuiltInGroupNames = []string{"Root", "Users", "GitLab Instance"}

// IsBuiltInUsername reports whether name belongs to a forge service account,
// compared case-insensitively.
func IsBuiltInUsername(name string) bool {
	for _, b := range BuiltInUsernames {
		if EqualFold(name, b) {
			return true
		}
	}
	return false
}

// IsBuiltInGroupName reports whether name is a reserved forge group,
// compared case-insensitively.
func IsBuiltInGroupName(name string) bool {
	for _, b := range BuiltInGroupNames {
		if EqualFold(name, b) {
			return true
		}
	}
	return false
}
