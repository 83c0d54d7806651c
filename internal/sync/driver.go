// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/directory"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/normalizer"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

var _ DriverInterface = (*LDAPDriver)(nil)

// LDAPDriver ingests the directory: connect, run the two searches, close,
// normalize. The connection lives for exactly one FetchSnapshot call.
type LDAPDriver struct {
	client     directory.ClientInterface
	normalizer *normalizer.Normalizer

	logger logging.LoggerInterface
}

func NewLDAPDriver(client directory.ClientInterface, n *normalizer.Normalizer, logger logging.LoggerInterface) *LDAPDriver {
	return &LDAPDriver{client: client, normalizer: n, logger: logger}
}

func (d *LDAPDriver) FetchSnapshot(ctx context.Context) (*types.DirectorySnapshot, error) {
	if err := d.client.Connect(ctx); err != nil {
		return nil, err
	}
	defer d.client.Close()

	rawUsers, err := d.client.FetchRawUsers(ctx)
	if err != nil {
		return nil, err
	}
	rawGroups, err := d.client.FetchRawGroups(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := d.normalizer.BuildSnapshot(rawUsers, rawGroups)
	d.logger.Infof("directory snapshot: %d users, %d groups", len(snapshot.Users), len(snapshot.Groups))
	return snapshot, nil
}
