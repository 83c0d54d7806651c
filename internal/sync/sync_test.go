// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"fmt"
	"testing"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/forge"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_forge.go -source=../forge/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_sync.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_logger.go -source=../logging/interfaces.go

func testConfig() *config.Config {
	return &config.Config{
		Gitlab: config.GitlabConfig{
			Options: config.GitlabOptions{NewMemberAccessLevel: 30},
			Instances: map[string]config.GitlabInstance{
				"main": {URL: "https://gitlab.example.com", Token: "secret", LdapServerName: "ldapmain"},
			},
		},
	}
}

func newTestReconciler(t *testing.T, forgeClient forge.ForgeInterface, opts Options, cfg *config.Config) *Reconciler {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewReconciler(
		"main",
		cfg,
		forgeClient,
		opts,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)
}

func buildSnapshot(users []*types.DirectoryUser, groups []*types.DirectoryGroup) *types.DirectorySnapshot {
	s := types.NewDirectorySnapshot()
	for _, u := range users {
		s.Users[u.Username] = u
	}
	for _, g := range groups {
		s.Groups[g.Name] = g
	}
	return s
}

func dirUser(username string) *types.DirectoryUser {
	return &types.DirectoryUser{
		DN:       fmt.Sprintf("uid=%s,ou=people,dc=example,dc=com", username),
		Username: username,
		MatchID:  username,
		FullName: "User " + username,
		Email:    username + "@example.com",
	}
}

// forgeTwin is the forge-side account a dirUser converges to: same core
// attributes, so the update phase has nothing to write.
func forgeTwin(id int, user *types.DirectoryUser) *types.ForgeUser {
	return &types.ForgeUser{
		ID:       id,
		Username: user.Username,
		Name:     user.FullName,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		External: user.IsExternal,
	}
}

// recordingLogger captures formatted warnings on top of a silent logger.
type recordingLogger struct {
	logging.LoggerInterface
	warnings []string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{LoggerInterface: logging.NewNoopLogger()}
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) count(message string) int {
	n := 0
	for _, w := range l.warnings {
		if w == message {
			n++
		}
	}
	return n
}
