// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "sort"

// RawEntry is a directory entry as returned by the LDAP driver, before any
// normalization: the distinguished name plus the attribute multimap.
type RawEntry struct {
	DN    string
	Attrs map[string][]string
}

// FirstAttr returns the first value of the named attribute, or "" when the
// attribute is absent or empty.
func (e RawEntry) FirstAttr(name string) string {
	values := e.Attrs[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// SSHKey is a public key attached to an identity. Only ssh-rsa keys are
// tracked; the fingerprint is the md5 of the decoded key blob rendered as
// colon-separated hex byte pairs.
type SSHKey struct {
	Key         string
	Fingerprint string
}

// DirectoryUser is a user as the directory describes it.
type DirectoryUser struct {
	DN         string
	Username   string
	MatchID    string
	FullName   string
	Email      string
	IsAdmin    bool
	IsExternal bool
	SSHKeys    []SSHKey
}

// DirectoryGroup is a group as the directory describes it. Name may contain
// a single "/" encoding a parent/child relationship. Members holds resolved
// directory usernames, sorted.
type DirectoryGroup struct {
	Name    string
	Members []string
}

// DirectorySnapshot is the canonical in-memory identity model built once per
// run. Users are keyed by username, groups by name; both keys are unique
// case-insensitively. The snapshot is immutable after construction.
type DirectorySnapshot struct {
	Users  map[string]*DirectoryUser
	Groups map[string]*DirectoryGroup
}

func NewDirectorySnapshot() *DirectorySnapshot {
	return &DirectorySnapshot{
		Users:  make(map[string]*DirectoryUser),
		Groups: make(map[string]*DirectoryGroup),
	}
}

// SortedUsernames returns the usernames in the snapshot in sorted order.
func (s *DirectorySnapshot) SortedUsernames() []string {
	names := make([]string, 0, len(s.Users))
	for name := range s.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedGroupNames returns the group names in the snapshot in sorted order.
func (s *DirectorySnapshot) SortedGroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
