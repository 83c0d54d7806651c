// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package normalizer

import (
	"sort"
	"strings"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// Normalizer turns raw directory entries into the canonical
// DirectorySnapshot: slugged usernames, deduplicated users and groups,
// resolved group members, admin/external flags, filtered SSH keys.
type Normalizer struct {
	cfg    *config.Config
	logger logging.LoggerInterface
}

func NewNormalizer(cfg *config.Config, logger logging.LoggerInterface) *Normalizer {
	return &Normalizer{cfg: cfg, logger: logger}
}

// BuildSnapshot normalizes the raw user and group entries. Entries that fail
// validation are logged and dropped; the snapshot is always returned.
func (n *Normalizer) BuildSnapshot(rawUsers, rawGroups []types.RawEntry) *types.DirectorySnapshot {
	snapshot := types.NewDirectorySnapshot()

	index := n.normalizeUsers(rawUsers, snapshot)
	n.normalizeGroups(rawGroups, snapshot, index)

	for _, group := range snapshot.Groups {
		sort.Strings(group.Members)
	}

	return snapshot
}

// userIndex supports the two member-resolution schemas: match-id lookup for
// memberUid attributes and DN lookup for member/uniqueMember attributes.
type userIndex struct {
	byMatchID  *types.FoldMap[string]
	byDN       *types.FoldMap[string]
	byUsername *types.FoldMap[string]
}

func (n *Normalizer) normalizeUsers(rawUsers []types.RawEntry, snapshot *types.DirectorySnapshot) *userIndex {
	queries := n.cfg.LDAP.Queries
	ignore := types.NewFoldSet(n.cfg.Gitlab.Options.UserNamesToIgnore...)
	seen := types.NewFoldSet()

	index := &userIndex{
		byMatchID:  types.NewFoldMap[string](),
		byDN:       types.NewFoldMap[string](),
		byUsername: types.NewFoldMap[string](),
	}

	for _, entry := range rawUsers {
		if strings.TrimSpace(entry.DN) == "" {
			n.logger.Warnf("user entry with empty DN dropped")
			continue
		}

		raw, ok := requireFirstString(entry, queries.UserUniqueAttribute)
		if !ok {
			n.logger.Warnf("user %q has no %q value, dropped", entry.DN, queries.UserUniqueAttribute)
			continue
		}

		username := UsernameSlug(raw)
		if username != raw {
			n.logger.Warnf("username %q is not a valid forge username, using %q", raw, username)
		}

		matchID, ok := requireFirstString(entry, queries.UserMatchAttribute)
		if !ok {
			n.logger.Warnf("user %q has no %q value, dropped", entry.DN, queries.UserMatchAttribute)
			continue
		}
		fullName, ok := requireFirstString(entry, queries.UserNameAttribute)
		if !ok {
			n.logger.Warnf("user %q has no %q value, dropped", entry.DN, queries.UserNameAttribute)
			continue
		}
		email, ok := requireFirstString(entry, queries.UserEmailAttribute)
		if !ok {
			n.logger.Warnf("user %q has no %q value, dropped", entry.DN, queries.UserEmailAttribute)
			continue
		}

		if ignore.Has(username) {
			continue
		}
		if seen.Has(username) {
			n.logger.Warnf("duplicate user %q (entry %q) dropped", username, entry.DN)
			continue
		}
		seen.Add(username)

		user := &types.DirectoryUser{
			DN:       strings.TrimSpace(entry.DN),
			Username: username,
			MatchID:  matchID,
			FullName: fullName,
			Email:    email,
		}

		if queries.UserLdapAdminAttribute != "" {
			if value, ok := requireFirstString(entry, queries.UserLdapAdminAttribute); ok {
				user.IsAdmin = parseDirectoryBool(value)
			}
		}

		if queries.UserSshKeyAttribute != "" {
			user.SSHKeys = n.collectKeys(entry, queries.UserSshKeyAttribute, username)
		}

		snapshot.Users[username] = user
		index.byMatchID.Set(matchID, username)
		index.byDN.Set(user.DN, username)
		index.byUsername.Set(username, username)
	}

	return index
}

func (n *Normalizer) collectKeys(entry types.RawEntry, attribute, username string) []types.SSHKey {
	var keys []types.SSHKey
	for _, value := range attrValues(entry, attribute) {
		if !strings.HasPrefix(value, RSAKeyPrefix) {
			continue
		}
		fingerprint, err := Fingerprint(value)
		if err != nil {
			n.logger.Warnf("unparseable SSH key on user %q dropped: %v", username, err)
			continue
		}
		keys = append(keys, types.SSHKey{Key: value, Fingerprint: fingerprint})
	}
	return keys
}

func (n *Normalizer) normalizeGroups(rawGroups []types.RawEntry, snapshot *types.DirectorySnapshot, index *userIndex) {
	queries := n.cfg.LDAP.Queries
	options := n.cfg.Gitlab.Options

	ignore := types.NewFoldSet(options.GroupNamesToIgnore...)
	admins := types.NewFoldSet(options.GroupNamesOfAdministrators...)
	external := types.NewFoldSet(options.GroupNamesOfExternal...)
	seen := types.NewFoldSet()

	for _, entry := range rawGroups {
		name, ok := requireFirstString(entry, queries.GroupUniqueAttribute)
		if !ok {
			n.logger.Warnf("group %q has no %q value, dropped", entry.DN, queries.GroupUniqueAttribute)
			continue
		}

		if ignore.Has(name) {
			n.logger.Debugf("group %q is on the ignore list, skipped", name)
			continue
		}
		if seen.Has(name) {
			n.logger.Warnf("duplicate group %q (entry %q) dropped", name, entry.DN)
			continue
		}
		seen.Add(name)

		members := n.resolveMembers(entry, index, name)

		if admins.Has(name) {
			for _, member := range members {
				snapshot.Users[member].IsAdmin = true
			}
		}
		if external.Has(name) {
			for _, member := range members {
				snapshot.Users[member].IsExternal = true
			}
		}

		snapshot.Groups[name] = &types.DirectoryGroup{Name: name, Members: members}
	}
}

// resolveMembers maps member attribute values to usernames. The schema is
// picked from the member attribute name: memberUid values match each user's
// match id (and the username itself when the match attribute is the unique
// attribute), member/uniqueMember values match by DN.
func (n *Normalizer) resolveMembers(entry types.RawEntry, index *userIndex, groupName string) []string {
	queries := n.cfg.LDAP.Queries
	memberAttr := queries.GroupMemberAttribute

	byMatchID := strings.EqualFold(memberAttr, "memberUid")
	byDN := strings.EqualFold(memberAttr, "member") || strings.EqualFold(memberAttr, "uniqueMember")

	if !byMatchID && !byDN {
		n.logger.Warnf("group member attribute %q matches no known schema, members of %q unresolved", memberAttr, groupName)
		return nil
	}

	matchIsUnique := strings.EqualFold(queries.UserMatchAttribute, queries.UserUniqueAttribute)

	var members []string
	seen := types.NewFoldSet()
	for _, value := range attrValues(entry, memberAttr) {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		var username string
		var ok bool
		if byMatchID {
			username, ok = index.byMatchID.Get(value)
			if !ok && matchIsUnique {
				username, ok = index.byUsername.Get(UsernameSlug(value))
			}
		} else {
			username, ok = index.byDN.Get(value)
		}

		if !ok {
			n.logger.Warnf("member %q of group %q does not resolve to a known user, dropped", value, groupName)
			continue
		}
		if seen.Has(username) {
			continue
		}
		seen.Add(username)
		members = append(members, username)
	}

	return members
}

// requireFirstString extracts the first value of an attribute, trimmed, and
// reports whether it is non-empty. This is the single input-validation point
// for directory attribute maps.
func requireFirstString(entry types.RawEntry, attribute string) (string, bool) {
	values := attrValues(entry, attribute)
	if len(values) == 0 {
		return "", false
	}
	value := strings.TrimSpace(values[0])
	return value, value != ""
}

// attrValues looks an attribute up case-insensitively: servers do not
// necessarily echo the casing the query used.
func attrValues(entry types.RawEntry, attribute string) []string {
	if values, ok := entry.Attrs[attribute]; ok {
		return values
	}
	for name, values := range entry.Attrs {
		if strings.EqualFold(name, attribute) {
			return values
		}
	}
	return nil
}

func parseDirectoryBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
