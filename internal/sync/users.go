// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/forge"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// reconcileUsers runs the users phase: list, create missing, block extra,
// update the rest. Returns every live user keyed by username for the
// membership phase.
func (r *Reconciler) reconcileUsers(ctx context.Context, snapshot *types.DirectorySnapshot) (*types.FoldMap[*userState], error) {
	ctx, span := r.tracer.Start(ctx, "sync.Reconciler.reconcileUsers")
	defer span.End()

	found, err := r.listForgeUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := types.NewFoldMap[*userState]()
	for _, name := range found.Keys() {
		state, _ := found.Get(name)
		users.Set(state.username, state)
	}

	if err := r.createMissingUsers(ctx, snapshot, found, users); err != nil {
		return nil, err
	}
	if err := r.blockExtraUsers(ctx, snapshot, found); err != nil {
		return nil, err
	}
	if err := r.updateExistingUsers(ctx, snapshot, found); err != nil {
		return nil, err
	}

	return users, nil
}

// listForgeUsers pages through the instance's accounts and their SSH keys,
// dropping built-ins, ignored names, and duplicates.
func (r *Reconciler) listForgeUsers(ctx context.Context) (*types.FoldMap[*userState], error) {
	forgeUsers, err := r.forge.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	ignore := types.NewFoldSet(r.cfg.Gitlab.Options.UserNamesToIgnore...)
	seenIDs := make(map[int]struct{})

	found := types.NewFoldMap[*userState]()
	for _, u := range forgeUsers {
		if types.IsBuiltInUsername(u.Username) || ignore.Has(u.Username) {
			continue
		}
		if _, dup := seenIDs[u.ID]; dup {
			r.logger.Warnf("duplicate forge user id %d (%q) dropped", u.ID, u.Username)
			continue
		}
		if found.Has(u.Username) {
			r.logger.Warnf("duplicate forge username %q (id %d) dropped", u.Username, u.ID)
			continue
		}
		seenIDs[u.ID] = struct{}{}

		keys, err := r.forge.ListUserKeys(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		found.Set(u.Username, &userState{id: u.ID, username: u.Username, keys: keys, existing: u})
	}

	r.logger.Debugf("instance %q has %d syncable users", r.instance, found.Len())
	return found, nil
}

func (r *Reconciler) createMissingUsers(ctx context.Context, snapshot *types.DirectorySnapshot, found, users *types.FoldMap[*userState]) error {
	for _, username := range snapshot.SortedUsernames() {
		if found.Has(username) {
			continue
		}
		user := snapshot.Users[username]

		password, err := generatePassword()
		if err != nil {
			return err
		}

		r.stats.UsersCreated++
		r.logger.Infof("creating user %q", username)

		var created *types.ForgeUser
		err = r.apply("users", "create", func() error {
			var err error
			created, err = r.forge.CreateUser(ctx, &forge.CreateUserOptions{
				Email:          user.Email,
				Password:       password,
				Username:       user.Username,
				Name:           user.FullName,
				ExternUID:      user.DN,
				Provider:       r.ldapServerName(),
				Admin:          user.IsAdmin,
				CanCreateGroup: user.IsAdmin,
				External:       user.IsExternal,
			})
			return err
		})
		if err != nil {
			r.stats.UsersCreated--
			r.stats.UsersSkipped++
			if err := r.failure("create user", username, err); err != nil {
				return err
			}
			continue
		}

		state := &userState{username: user.Username}
		if created != nil {
			state.id = created.ID
		} else {
			state.dryLabel = "dry:" + user.DN
		}
		users.Set(user.Username, state)

		if err := r.reconcileUserKeys(ctx, user, state); err != nil {
			return err
		}
	}
	return nil
}

// blockExtraUsers disables forge accounts the directory no longer knows:
// block, then strip privileges and mark external.
func (r *Reconciler) blockExtraUsers(ctx context.Context, snapshot *types.DirectorySnapshot, found *types.FoldMap[*userState]) error {
	dirUsernames := types.NewFoldSet()
	for username := range snapshot.Users {
		dirUsernames.Add(username)
	}

	for _, key := range found.Keys() {
		state, _ := found.Get(key)
		if dirUsernames.Has(state.username) {
			continue
		}

		r.stats.UsersBlocked++
		r.logger.Infof("disabling user %q", state.username)

		err := r.apply("users", "block", func() error {
			return r.forge.BlockUser(ctx, state.id)
		})
		if err != nil {
			r.stats.UsersBlocked--
			r.stats.UsersSkipped++
			if err := r.failure("block user", state.username, err); err != nil {
				return err
			}
			continue
		}

		err = r.apply("users", "update", func() error {
			return r.forge.UpdateUser(ctx, state.id, &forge.UpdateUserOptions{
				Admin:          false,
				CanCreateGroup: false,
				External:       true,
			})
		})
		if err != nil {
			if err := r.failure("demote user", state.username, err); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateExistingUsers refreshes core attributes and keys of users present on
// both sides, unblocking first where the forge has them blocked. Update
// failures are logged and skipped, never fatal.
func (r *Reconciler) updateExistingUsers(ctx context.Context, snapshot *types.DirectorySnapshot, found *types.FoldMap[*userState]) error {
	blocked, err := r.blockedUserIDs(ctx)
	if err != nil {
		return err
	}

	for _, username := range snapshot.SortedUsernames() {
		state, ok := found.Get(username)
		if !ok {
			continue
		}
		user := snapshot.Users[username]

		if _, isBlocked := blocked[state.id]; isBlocked {
			r.logger.Infof("unblocking user %q", state.username)
			err := r.apply("users", "unblock", func() error {
				return r.forge.UnblockUser(ctx, state.id)
			})
			if err != nil {
				if err := r.failure("unblock user", state.username, err); err != nil {
					return err
				}
				continue
			}
		}

		// An account whose core attributes already match is left alone, so a
		// converged instance sees no writes at all.
		if userUpToDate(state.existing, user) {
			r.logger.Debugf("user %q is up to date", state.username)
		} else {
			r.stats.UsersUpdated++
			err := r.apply("users", "update", func() error {
				return r.forge.UpdateUser(ctx, state.id, &forge.UpdateUserOptions{
					Email:          user.Email,
					Name:           user.FullName,
					ExternUID:      user.DN,
					Provider:       r.ldapServerName(),
					Admin:          user.IsAdmin,
					CanCreateGroup: user.IsAdmin,
					External:       user.IsExternal,
				})
			})
			if err != nil {
				r.stats.UsersUpdated--
				r.stats.UsersSkipped++
				r.logger.Warnf("update of user %q failed, skipped: %v", state.username, err)
				continue
			}
		}

		if err := r.reconcileUserKeys(ctx, user, state); err != nil {
			return err
		}
	}
	return nil
}

func userUpToDate(existing *types.ForgeUser, desired *types.DirectoryUser) bool {
	return existing != nil &&
		existing.Email == desired.Email &&
		existing.Name == desired.FullName &&
		existing.IsAdmin == desired.IsAdmin &&
		existing.External == desired.IsExternal
}

func (r *Reconciler) blockedUserIDs(ctx context.Context) (map[int]struct{}, error) {
	blockedUsers, err := r.forge.ListBlockedUsers(ctx)
	if err != nil {
		return nil, err
	}
	blocked := make(map[int]struct{}, len(blockedUsers))
	for _, u := range blockedUsers {
		blocked[u.ID] = struct{}{}
	}
	return blocked, nil
}

func (r *Reconciler) ldapServerName() string {
	return r.cfg.Gitlab.Instances[r.instance].LdapServerName
}
