// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
)

func testClient(cfg *config.LDAPConfig) *Client {
	return NewClient(cfg, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestSearchWithoutConnect(t *testing.T) {
	c := testClient(&config.LDAPConfig{})

	_, err := c.FetchRawUsers(context.Background())
	require.Error(t, err)

	var dirErr *Error
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, KindTransport, dirErr.Kind)
}

func TestConnectRefused(t *testing.T) {
	c := testClient(&config.LDAPConfig{
		Server: config.LDAPServer{Host: "127.0.0.1", Port: 1, Version: 3, Encryption: config.EncryptionNone},
	})

	err := c.Connect(context.Background())
	require.Error(t, err)

	var dirErr *Error
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, KindConnect, dirErr.Kind)
}

func TestCloseWithoutConnect(t *testing.T) {
	c := testClient(&config.LDAPConfig{})
	assert.NoError(t, c.Close())
}

func TestErrorMessage(t *testing.T) {
	err := newError(KindBind, errors.New("invalid credentials"))
	assert.Equal(t, "directory bind error: invalid credentials", err.Error())
	assert.NotNil(t, errors.Unwrap(err))
}
