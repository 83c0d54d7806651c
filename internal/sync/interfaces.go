// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/forge"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// DriverInterface produces the authoritative identity snapshot the
// reconciler drives each forge instance toward. A driver failure aborts the
// whole run.
type DriverInterface interface {
	FetchSnapshot(ctx context.Context) (*types.DirectorySnapshot, error)
}

// ForgeFactory builds the adapter for one configured forge instance.
type ForgeFactory func(instance string, cfg config.GitlabInstance) (forge.ForgeInterface, error)
