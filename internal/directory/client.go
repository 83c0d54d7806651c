// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/go-ldap/ldap/v3"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

const pageSize = 1000

var _ ClientInterface = (*Client)(nil)

// Client talks LDAP to the authoritative directory. The connection is held
// open for exactly the two searches of a run and then closed.
type Client struct {
	cfg  *config.LDAPConfig
	conn *ldap.Conn

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(
	cfg *config.LDAPConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Client {
	c := new(Client)

	c.cfg = cfg

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// Connect dials the directory and binds. The scheme and default port follow
// the configured encryption: ldaps on 636 for ssl, ldap on 389 otherwise,
// with STARTTLS issued after connecting when encryption is tls.
func (c *Client) Connect(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, "directory.Client.Connect")
	defer span.End()

	server := c.cfg.Server

	scheme := "ldap"
	if server.Encryption == config.EncryptionSSL {
		scheme = "ldaps"
	}
	url := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(server.Host, strconv.Itoa(server.Port)))

	c.logger.Debugf("connecting to directory %s (version %d)", url, server.Version)

	conn, err := ldap.DialURL(url)
	if err != nil {
		c.monitor.SetDependencyAvailability("ldap", false)
		return newError(KindConnect, err)
	}
	if c.cfg.Debug {
		conn.Debug = true
	}

	if server.Encryption == config.EncryptionTLS {
		if err := conn.StartTLS(&tls.Config{ServerName: server.Host}); err != nil {
			conn.Close()
			c.monitor.SetDependencyAvailability("ldap", false)
			return newError(KindConnect, fmt.Errorf("starttls: %w", err))
		}
	}

	if server.Version != 3 {
		// The library speaks LDAPv3 only; older configured versions are
		// accepted for compatibility with existing config files.
		c.logger.Warnf("ldap.server.version %d requested, speaking LDAPv3", server.Version)
	}
	if c.cfg.WinCompatibilityMode {
		// Referrals are never chased, which is exactly what the Windows
		// compatibility switch asks for.
		c.logger.Debugf("winCompatibilityMode set: referral following disabled")
	}

	if err := c.bind(conn); err != nil {
		conn.Close()
		return err
	}

	c.monitor.SetDependencyAvailability("ldap", true)
	c.conn = conn
	return nil
}

func (c *Client) bind(conn *ldap.Conn) error {
	server := c.cfg.Server

	if server.BindDn == "" {
		c.logger.Debugf("binding anonymously")
		if err := conn.UnauthenticatedBind(""); err != nil {
			return newError(KindBind, err)
		}
		return nil
	}

	c.logger.Debugf("binding as %q", server.BindDn)
	if err := conn.Bind(server.BindDn, server.BindPassword); err != nil {
		return newError(KindBind, err)
	}
	return nil
}

// FetchRawUsers runs the user search and returns the raw entries.
func (c *Client) FetchRawUsers(ctx context.Context) ([]types.RawEntry, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.FetchRawUsers")
	defer span.End()

	queries := c.cfg.Queries
	return c.search(ctx, queries.UserBaseDN(), queries.UserFilter, queries.UserAttributes())
}

// FetchRawGroups runs the group search and returns the raw entries.
func (c *Client) FetchRawGroups(ctx context.Context) ([]types.RawEntry, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.FetchRawGroups")
	defer span.End()

	queries := c.cfg.Queries
	return c.search(ctx, queries.GroupBaseDN(), queries.GroupFilter, queries.GroupAttributes())
}

func (c *Client) search(ctx context.Context, baseDN, filter string, attributes []string) ([]types.RawEntry, error) {
	if c.conn == nil {
		return nil, newError(KindTransport, fmt.Errorf("not connected"))
	}

	select {
	case <-ctx.Done():
		return nil, newError(KindTransport, ctx.Err())
	default:
	}

	c.logger.Debugf("searching base=%q filter=%q attrs=%v", baseDN, filter, attributes)

	req := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		attributes,
		nil,
	)

	result, err := c.conn.SearchWithPaging(req, pageSize)
	if err != nil {
		return nil, newError(KindSearch, err)
	}

	entries := make([]types.RawEntry, 0, len(result.Entries))
	for _, entry := range result.Entries {
		attrs := make(map[string][]string, len(entry.Attributes))
		for _, attr := range entry.Attributes {
			attrs[attr.Name] = attr.Values
		}
		entries = append(entries, types.RawEntry{DN: entry.DN, Attrs: attrs})
	}

	c.logger.Debugf("search base=%q returned %d entries", baseDN, len(entries))
	return entries, nil
}

// Close unbinds and drops the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		return newError(KindTransport, err)
	}
	return nil
}
