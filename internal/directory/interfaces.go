// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// ClientInterface is the directory driver the normalizer consumes: two
// searches returning raw attribute maps, over a connection that is opened for
// exactly those searches and then closed.
type ClientInterface interface {
	Connect(ctx context.Context) error
	FetchRawUsers(ctx context.Context) ([]types.RawEntry, error)
	FetchRawGroups(ctx context.Context) ([]types.RawEntry, error)
	Close() error
}
