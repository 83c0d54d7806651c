// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package normalizer

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		LDAP: config.LDAPConfig{
			Queries: config.LDAPQueries{
				BaseDn:                 "dc=example,dc=com",
				UserFilter:             "(objectClass=inetOrgPerson)",
				GroupFilter:            "(objectClass=groupOfNames)",
				UserUniqueAttribute:    "uid",
				UserMatchAttribute:     "uid",
				UserNameAttribute:      "cn",
				UserEmailAttribute:     "mail",
				UserLdapAdminAttribute: "gitlabAdmin",
				UserSshKeyAttribute:    "sshPublicKey",
				GroupUniqueAttribute:   "cn",
				GroupMemberAttribute:   "member",
			},
		},
	}
}

func userEntry(uid, cn, mail string) types.RawEntry {
	return types.RawEntry{
		DN: "uid=" + uid + ",ou=people,dc=example,dc=com",
		Attrs: map[string][]string{
			"uid":  {uid},
			"cn":   {cn},
			"mail": {mail},
		},
	}
}

func TestNormalizeUsers(t *testing.T) {
	n := NewNormalizer(testConfig(), logging.NewNoopLogger())

	rsa := "ssh-rsa " + base64.StdEncoding.EncodeToString([]byte("blob")) + " alice@x"
	aliceEntry := userEntry("alice", "Alice", "alice@example.com")
	aliceEntry.Attrs["gitlabAdmin"] = []string{"TRUE"}
	aliceEntry.Attrs["sshPublicKey"] = []string{rsa, "ssh-ed25519 AAAA alice@x"}

	snapshot := n.BuildSnapshot([]types.RawEntry{
		aliceEntry,
		userEntry("bob", "Bob", "bob@example.com"),
	}, nil)

	require.Len(t, snapshot.Users, 2)
	assert.Equal(t, []string{"alice", "bob"}, snapshot.SortedUsernames())

	alice := snapshot.Users["alice"]
	assert.True(t, alice.IsAdmin)
	assert.Equal(t, "uid=alice,ou=people,dc=example,dc=com", alice.DN)
	require.Len(t, alice.SSHKeys, 1, "only ssh-rsa keys are kept")
	assert.Equal(t, rsa, alice.SSHKeys[0].Key)
	assert.NotEmpty(t, alice.SSHKeys[0].Fingerprint)

	assert.False(t, snapshot.Users["bob"].IsAdmin)
}

func TestNormalizeUserSluggedUsername(t *testing.T) {
	n := NewNormalizer(testConfig(), logging.NewNoopLogger())

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("Alice O'Brien", "Alice", "alice@example.com"),
	}, nil)

	require.Len(t, snapshot.Users, 1)
	user, ok := snapshot.Users["Alice,O,Brien"]
	require.True(t, ok, "the slugged username is the key")
	assert.Equal(t, "Alice,O,Brien", user.Username)
}

func TestNormalizeUserValidation(t *testing.T) {
	tests := []struct {
		name  string
		entry types.RawEntry
	}{
		{name: "empty dn", entry: types.RawEntry{Attrs: map[string][]string{"uid": {"x"}, "cn": {"X"}, "mail": {"x@example.com"}}}},
		{name: "missing uid", entry: types.RawEntry{DN: "cn=x", Attrs: map[string][]string{"cn": {"X"}, "mail": {"x@example.com"}}}},
		{name: "blank mail", entry: types.RawEntry{DN: "uid=x", Attrs: map[string][]string{"uid": {"x"}, "cn": {"X"}, "mail": {"   "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(testConfig(), logging.NewNoopLogger())
			snapshot := n.BuildSnapshot([]types.RawEntry{tt.entry}, nil)
			assert.Empty(t, snapshot.Users)
		})
	}
}

func TestNormalizeUserDuplicatesAndIgnores(t *testing.T) {
	cfg := testConfig()
	cfg.Gitlab.Options.UserNamesToIgnore = []string{"SVC-Backup"}
	n := NewNormalizer(cfg, logging.NewNoopLogger())

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("alice", "Alice", "alice@example.com"),
		userEntry("ALICE", "Alice Again", "alice2@example.com"),
		userEntry("svc-backup", "Backup", "backup@example.com"),
	}, nil)

	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, "alice@example.com", snapshot.Users["alice"].Email, "the first duplicate wins")
}

func TestNormalizeGroupsByDN(t *testing.T) {
	n := NewNormalizer(testConfig(), logging.NewNoopLogger())

	groups := []types.RawEntry{
		{
			DN: "cn=devs,ou=groups,dc=example,dc=com",
			Attrs: map[string][]string{
				"cn": {"devs"},
				"member": {
					"uid=bob,ou=people,dc=example,dc=com",
					"uid=alice,ou=people,dc=example,dc=com",
					"uid=stranger,ou=people,dc=example,dc=com",
				},
			},
		},
	}

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("alice", "Alice", "alice@example.com"),
		userEntry("bob", "Bob", "bob@example.com"),
	}, groups)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, []string{"alice", "bob"}, snapshot.Groups["devs"].Members, "resolved and sorted, stranger dropped")
}

func TestNormalizeGroupsByMemberUID(t *testing.T) {
	cfg := testConfig()
	cfg.LDAP.Queries.GroupMemberAttribute = "memberUid"
	n := NewNormalizer(cfg, logging.NewNoopLogger())

	groups := []types.RawEntry{
		{
			DN:    "cn=devs,ou=groups,dc=example,dc=com",
			Attrs: map[string][]string{"cn": {"devs"}, "memberUid": {"alice", "nobody"}},
		},
	}

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("alice", "Alice", "alice@example.com"),
	}, groups)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, []string{"alice"}, snapshot.Groups["devs"].Members)
}

func TestNormalizeGroupsUnknownSchema(t *testing.T) {
	cfg := testConfig()
	cfg.LDAP.Queries.GroupMemberAttribute = "roleOccupant"
	n := NewNormalizer(cfg, logging.NewNoopLogger())

	groups := []types.RawEntry{
		{
			DN:    "cn=devs,ou=groups,dc=example,dc=com",
			Attrs: map[string][]string{"cn": {"devs"}, "roleOccupant": {"uid=alice,ou=people,dc=example,dc=com"}},
		},
	}

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("alice", "Alice", "alice@example.com"),
	}, groups)

	require.Len(t, snapshot.Groups, 1)
	assert.Empty(t, snapshot.Groups["devs"].Members, "no match is attempted for unknown schemas")
}

func TestAdminAndExternalFlagPropagation(t *testing.T) {
	cfg := testConfig()
	cfg.Gitlab.Options.GroupNamesOfAdministrators = []string{"GitLab-Admins"}
	cfg.Gitlab.Options.GroupNamesOfExternal = []string{"contractors"}
	n := NewNormalizer(cfg, logging.NewNoopLogger())

	groups := []types.RawEntry{
		{
			DN:    "cn=gitlab-admins,ou=groups,dc=example,dc=com",
			Attrs: map[string][]string{"cn": {"gitlab-admins"}, "member": {"uid=alice,ou=people,dc=example,dc=com"}},
		},
		{
			DN:    "cn=contractors,ou=groups,dc=example,dc=com",
			Attrs: map[string][]string{"cn": {"contractors"}, "member": {"uid=bob,ou=people,dc=example,dc=com"}},
		},
	}

	snapshot := n.BuildSnapshot([]types.RawEntry{
		userEntry("alice", "Alice", "alice@example.com"),
		userEntry("bob", "Bob", "bob@example.com"),
	}, groups)

	assert.True(t, snapshot.Users["alice"].IsAdmin)
	assert.False(t, snapshot.Users["alice"].IsExternal)
	assert.True(t, snapshot.Users["bob"].IsExternal)
	assert.False(t, snapshot.Users["bob"].IsAdmin)
}

func TestNormalizeGroupDuplicatesAndIgnores(t *testing.T) {
	cfg := testConfig()
	cfg.Gitlab.Options.GroupNamesToIgnore = []string{"Noise"}
	n := NewNormalizer(cfg, logging.NewNoopLogger())

	groups := []types.RawEntry{
		{DN: "cn=devs,ou=g", Attrs: map[string][]string{"cn": {"devs"}}},
		{DN: "cn=devs2,ou=g", Attrs: map[string][]string{"cn": {"DEVS"}}},
		{DN: "cn=noise,ou=g", Attrs: map[string][]string{"cn": {"noise"}}},
	}

	snapshot := n.BuildSnapshot(nil, groups)
	assert.Equal(t, []string{"devs"}, snapshot.SortedGroupNames())
}
