// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package forge

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// CreateUserOptions carries the attributes of a user account to create.
// Confirmation is always skipped and no password reset is requested.
type CreateUserOptions struct {
	Email          string
	Password       string
	Username       string
	Name           string
	ExternUID      string
	Provider       string
	Admin          bool
	CanCreateGroup bool
	External       bool
}

// UpdateUserOptions carries the mutable core attributes of an existing user:
// the creation set minus username and password.
type UpdateUserOptions struct {
	Email          string
	Name           string
	ExternUID      string
	Provider       string
	Admin          bool
	CanCreateGroup bool
	External       bool
}

// ForgeInterface is the facade over the forge HTTP API that the reconciler
// consumes. Listings paginate internally; mutating calls are paced.
type ForgeInterface interface {
	ListUsers(ctx context.Context) ([]*types.ForgeUser, error)
	ListBlockedUsers(ctx context.Context) ([]*types.ForgeUser, error)
	CreateUser(ctx context.Context, opts *CreateUserOptions) (*types.ForgeUser, error)
	UpdateUser(ctx context.Context, id int, opts *UpdateUserOptions) error
	BlockUser(ctx context.Context, id int) error
	UnblockUser(ctx context.Context, id int) error
	DeleteUser(ctx context.Context, id int) error

	ListUserKeys(ctx context.Context, id int) ([]types.ForgeKey, error)
	AddUserKey(ctx context.Context, id int, title, key string) error
	RemoveUserKey(ctx context.Context, id, keyID int) error

	ListGroups(ctx context.Context) ([]*types.ForgeGroup, error)
	CreateGroup(ctx context.Context, name, path string, parentID int) (*types.ForgeGroup, error)
	DeleteGroup(ctx context.Context, id int) error
	CountGroupProjects(ctx context.Context, id int) (int, error)
	CountGroupSubgroups(ctx context.Context, id int) (int, error)

	ListGroupMembers(ctx context.Context, id int) ([]*types.ForgeMember, error)
	AddGroupMember(ctx context.Context, groupID, userID, accessLevel int) error
	RemoveGroupMember(ctx context.Context, groupID, userID int) error
}
