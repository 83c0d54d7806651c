// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package forge

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gitlab "github.com/xanzy/go-gitlab"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

const (
	// listPageSize is the page size for every forge listing; pages advance
	// until an empty one comes back.
	listPageSize = 100

	maxRetries     = 3
	initialBackoff = 250 * time.Millisecond
)

var _ ForgeInterface = (*Client)(nil)

// Client is the retry-aware adapter over one forge instance's REST API.
type Client struct {
	gl       *gitlab.Client
	instance string
	pacer    *Pacer

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// debugPrinter adapts the structured logger to the Printf-style logger the
// GitLab client's transport expects.
type debugPrinter struct {
	logger logging.LoggerInterface
}

func (p debugPrinter) Printf(format string, args ...interface{}) {
	p.logger.Debugf(format, args...)
}

func NewClient(
	instance string,
	cfg config.GitlabInstance,
	debug bool,
	pacer *Pacer,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*Client, error) {
	opts := []gitlab.ClientOptionFunc{gitlab.WithBaseURL(cfg.URL)}
	if debug {
		opts = append(opts, gitlab.WithCustomLogger(debugPrinter{logger: logger}))
	}

	gl, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize forge client for %q: %w", instance, err)
	}

	c := new(Client)

	c.gl = gl
	c.instance = instance
	c.pacer = pacer

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}

// withRetry runs a forge call, retrying transient transport failures with
// bounded exponential backoff.
func (c *Client) withRetry(ctx context.Context, call func() (*gitlab.Response, error)) error {
	backoff := initialBackoff
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(resp) || attempt == maxRetries {
			break
		}

		c.logger.Debugf("forge call failed, retrying in %s: %v", backoff, err)
		select {
		case <-ctx.Done():
			return newError(ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return newError(lastErr)
}

func isRetryable(resp *gitlab.Response) bool {
	if resp == nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
}

func (c *Client) listUsers(ctx context.Context, blocked bool) ([]*types.ForgeUser, error) {
	opt := &gitlab.ListUsersOptions{
		ListOptions: gitlab.ListOptions{Page: 1, PerPage: listPageSize},
	}
	if blocked {
		opt.Blocked = gitlab.Ptr(true)
	}

	var users []*types.ForgeUser
	for {
		var page []*gitlab.User
		err := c.withRetry(ctx, func() (*gitlab.Response, error) {
			var resp *gitlab.Response
			var err error
			page, resp, err = c.gl.Users.ListUsers(opt, gitlab.WithContext(ctx))
			return resp, err
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, u := range page {
			users = append(users, &types.ForgeUser{
				ID:       u.ID,
				Username: u.Username,
				Name:     u.Name,
				Email:    u.Email,
				Blocked:  u.State == "blocked",
				IsAdmin:  u.IsAdmin,
				External: u.External,
			})
		}
		opt.Page++
	}
	return users, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]*types.ForgeUser, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.ListUsers")
	defer span.End()

	return c.listUsers(ctx, false)
}

func (c *Client) ListBlockedUsers(ctx context.Context) ([]*types.ForgeUser, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.ListBlockedUsers")
	defer span.End()

	return c.listUsers(ctx, true)
}

func (c *Client) CreateUser(ctx context.Context, opts *CreateUserOptions) (*types.ForgeUser, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.CreateUser")
	defer span.End()
	defer c.pacer.Wait(ctx)

	var created *gitlab.User
	err := c.withRetry(ctx, func() (*gitlab.Response, error) {
		var resp *gitlab.Response
		var err error
		created, resp, err = c.gl.Users.CreateUser(&gitlab.CreateUserOptions{
			Email:            gitlab.Ptr(opts.Email),
			Password:         gitlab.Ptr(opts.Password),
			ResetPassword:    gitlab.Ptr(false),
			Username:         gitlab.Ptr(opts.Username),
			Name:             gitlab.Ptr(opts.Name),
			ExternUID:        gitlab.Ptr(opts.ExternUID),
			Provider:         gitlab.Ptr(opts.Provider),
			Admin:            gitlab.Ptr(opts.Admin),
			CanCreateGroup:   gitlab.Ptr(opts.CanCreateGroup),
			SkipConfirmation: gitlab.Ptr(true),
			External:         gitlab.Ptr(opts.External),
		}, gitlab.WithContext(ctx))
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	return &types.ForgeUser{
		ID:       created.ID,
		Username: created.Username,
		Name:     created.Name,
		Email:    created.Email,
		IsAdmin:  created.IsAdmin,
		External: created.External,
	}, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, opts *UpdateUserOptions) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.UpdateUser")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		_, resp, err := c.gl.Users.ModifyUser(id, &gitlab.ModifyUserOptions{
			Email:          gitlab.Ptr(opts.Email),
			Name:           gitlab.Ptr(opts.Name),
			ExternUID:      gitlab.Ptr(opts.ExternUID),
			Provider:       gitlab.Ptr(opts.Provider),
			Admin:          gitlab.Ptr(opts.Admin),
			CanCreateGroup: gitlab.Ptr(opts.CanCreateGroup),
			External:       gitlab.Ptr(opts.External),
		}, gitlab.WithContext(ctx))
		return resp, err
	})
}

func (c *Client) BlockUser(ctx context.Context, id int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.BlockUser")
	defer span.End()
	defer c.pacer.Wait(ctx)

	if err := c.gl.Users.BlockUser(id, gitlab.WithContext(ctx)); err != nil {
		return newError(err)
	}
	return nil
}

func (c *Client) UnblockUser(ctx context.Context, id int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.UnblockUser")
	defer span.End()
	defer c.pacer.Wait(ctx)

	if err := c.gl.Users.UnblockUser(id, gitlab.WithContext(ctx)); err != nil {
		return newError(err)
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.DeleteUser")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		return c.gl.Users.DeleteUser(id, gitlab.WithContext(ctx))
	})
}

func (c *Client) ListUserKeys(ctx context.Context, id int) ([]types.ForgeKey, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.ListUserKeys")
	defer span.End()

	opt := &gitlab.ListSSHKeysForUserOptions{Page: 1, PerPage: listPageSize}

	var keys []types.ForgeKey
	for {
		var page []*gitlab.SSHKey
		err := c.withRetry(ctx, func() (*gitlab.Response, error) {
			var resp *gitlab.Response
			var err error
			page, resp, err = c.gl.Users.ListSSHKeysForUser(id, opt, gitlab.WithContext(ctx))
			return resp, err
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, k := range page {
			keys = append(keys, types.ForgeKey{ID: k.ID, Key: k.Key})
		}
		opt.Page++
	}
	return keys, nil
}

func (c *Client) AddUserKey(ctx context.Context, id int, title, key string) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.AddUserKey")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		_, resp, err := c.gl.Users.AddSSHKeyForUser(id, &gitlab.AddSSHKeyOptions{
			Title: gitlab.Ptr(title),
			Key:   gitlab.Ptr(key),
		}, gitlab.WithContext(ctx))
		return resp, err
	})
}

func (c *Client) RemoveUserKey(ctx context.Context, id, keyID int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.RemoveUserKey")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		return c.gl.Users.DeleteSSHKeyForUser(id, keyID, gitlab.WithContext(ctx))
	})
}

func (c *Client) ListGroups(ctx context.Context) ([]*types.ForgeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.ListGroups")
	defer span.End()

	opt := &gitlab.ListGroupsOptions{
		ListOptions:  gitlab.ListOptions{Page: 1, PerPage: listPageSize},
		AllAvailable: gitlab.Ptr(true),
	}

	var groups []*types.ForgeGroup
	for {
		var page []*gitlab.Group
		err := c.withRetry(ctx, func() (*gitlab.Response, error) {
			var resp *gitlab.Response
			var err error
			page, resp, err = c.gl.Groups.ListGroups(opt, gitlab.WithContext(ctx))
			return resp, err
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, g := range page {
			groups = append(groups, &types.ForgeGroup{
				ID:       g.ID,
				Name:     g.Name,
				Path:     g.Path,
				FullPath: g.FullPath,
				ParentID: g.ParentID,
			})
		}
		opt.Page++
	}
	return groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, name, path string, parentID int) (*types.ForgeGroup, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.CreateGroup")
	defer span.End()
	defer c.pacer.Wait(ctx)

	opt := &gitlab.CreateGroupOptions{
		Name:       gitlab.Ptr(name),
		Path:       gitlab.Ptr(path),
		Visibility: gitlab.Ptr(gitlab.PrivateVisibility),
	}
	if parentID != 0 {
		opt.ParentID = gitlab.Ptr(parentID)
	}

	var created *gitlab.Group
	err := c.withRetry(ctx, func() (*gitlab.Response, error) {
		var resp *gitlab.Response
		var err error
		created, resp, err = c.gl.Groups.CreateGroup(opt, gitlab.WithContext(ctx))
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	return &types.ForgeGroup{
		ID:       created.ID,
		Name:     created.Name,
		Path:     created.Path,
		FullPath: created.FullPath,
		ParentID: created.ParentID,
	}, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.DeleteGroup")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		return c.gl.Groups.DeleteGroup(id, nil, gitlab.WithContext(ctx))
	})
}

func (c *Client) CountGroupProjects(ctx context.Context, id int) (int, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.CountGroupProjects")
	defer span.End()

	var total int
	err := c.withRetry(ctx, func() (*gitlab.Response, error) {
		_, resp, err := c.gl.Groups.ListGroupProjects(id, &gitlab.ListGroupProjectsOptions{
			ListOptions: gitlab.ListOptions{Page: 1, PerPage: 1},
		}, gitlab.WithContext(ctx))
		if resp != nil {
			total = resp.TotalItems
		}
		return resp, err
	})
	return total, err
}

func (c *Client) CountGroupSubgroups(ctx context.Context, id int) (int, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.CountGroupSubgroups")
	defer span.End()

	var total int
	err := c.withRetry(ctx, func() (*gitlab.Response, error) {
		_, resp, err := c.gl.Groups.ListSubGroups(id, &gitlab.ListSubGroupsOptions{
			ListOptions: gitlab.ListOptions{Page: 1, PerPage: 1},
		}, gitlab.WithContext(ctx))
		if resp != nil {
			total = resp.TotalItems
		}
		return resp, err
	})
	return total, err
}

func (c *Client) ListGroupMembers(ctx context.Context, id int) ([]*types.ForgeMember, error) {
	ctx, span := c.tracer.Start(ctx, "forge.Client.ListGroupMembers")
	defer span.End()

	opt := &gitlab.ListGroupMembersOptions{
		ListOptions: gitlab.ListOptions{Page: 1, PerPage: listPageSize},
	}

	var members []*types.ForgeMember
	for {
		var page []*gitlab.GroupMember
		err := c.withRetry(ctx, func() (*gitlab.Response, error) {
			var resp *gitlab.Response
			var err error
			page, resp, err = c.gl.Groups.ListGroupMembers(id, opt, gitlab.WithContext(ctx))
			return resp, err
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, m := range page {
			members = append(members, &types.ForgeMember{ID: m.ID, Username: m.Username})
		}
		opt.Page++
	}
	return members, nil
}

func (c *Client) AddGroupMember(ctx context.Context, groupID, userID, accessLevel int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.AddGroupMember")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		_, resp, err := c.gl.GroupMembers.AddGroupMember(groupID, &gitlab.AddGroupMemberOptions{
			UserID:      gitlab.Ptr(userID),
			AccessLevel: gitlab.Ptr(gitlab.AccessLevelValue(accessLevel)),
		}, gitlab.WithContext(ctx))
		return resp, err
	})
}

func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID int) error {
	ctx, span := c.tracer.Start(ctx, "forge.Client.RemoveGroupMember")
	defer span.End()
	defer c.pacer.Wait(ctx)

	return c.withRetry(ctx, func() (*gitlab.Response, error) {
		return c.gl.GroupMembers.RemoveGroupMember(groupID, userID, nil, gitlab.WithContext(ctx))
	})
}
