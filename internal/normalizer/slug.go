// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package normalizer

import (
	"regexp"
	"strings"
)

var (
	usernameDisallowed = regexp.MustCompile(`[^A-Za-z0-9\-_.]+`)
	groupDisallowed    = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// UsernameSlug restricts a username to A-Z a-z 0-9 - _ . ; every run of other
// characters collapses to a single comma.
func UsernameSlug(raw string) string {
	return usernameDisallowed.ReplaceAllString(raw, ",")
}

// GroupNameSlug rewrites a group name for the forge: runs of characters
// outside A-Za-z0-9 become a single space, case preserved, trimmed.
func GroupNameSlug(raw string) string {
	return strings.TrimSpace(groupDisallowed.ReplaceAllString(raw, " "))
}

// GroupPathSlug rewrites a group name into a forge path: runs of characters
// outside A-Za-z0-9 become a single hyphen, lower-cased, hyphens trimmed.
func GroupPathSlug(raw string) string {
	return strings.Trim(strings.ToLower(groupDisallowed.ReplaceAllString(raw, "-")), "-")
}
