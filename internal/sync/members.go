// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// reconcileMembers converges each synced group's membership on the
// directory's member list. Runs strictly after the user and group phases so
// every member and group id is known. Parents synthesized for nested groups
// have no directory entry and therefore carry no members of their own.
func (r *Reconciler) reconcileMembers(
	ctx context.Context,
	snapshot *types.DirectorySnapshot,
	users *types.FoldMap[*userState],
	plan *types.FoldMap[*groupState],
) error {
	ctx, span := r.tracer.Start(ctx, "sync.Reconciler.reconcileMembers")
	defer span.End()

	for _, name := range snapshot.SortedGroupNames() {
		group := snapshot.Groups[name]
		state, ok := plan.Get(name)
		if !ok {
			continue
		}

		wanted := types.NewFoldMap[*userState]()
		for _, member := range group.Members {
			if user, ok := users.Get(member); ok {
				wanted.Set(member, user)
			}
		}

		var existing []*types.ForgeMember
		if state.dryLabel == "" {
			var err error
			existing, err = r.forge.ListGroupMembers(ctx, state.id)
			if err != nil {
				return err
			}
		}

		present := types.NewFoldSet()
		for _, member := range existing {
			if types.IsBuiltInUsername(member.Username) {
				continue
			}
			present.Add(member.Username)
		}

		for _, username := range wanted.Keys() {
			if present.Has(username) {
				continue
			}
			user, _ := wanted.Get(username)

			r.stats.MembersAdded++
			r.logger.Infof("adding %q to group %q", user.label(), state.fullPath)

			err := r.apply("members", "add", func() error {
				return r.forge.AddGroupMember(ctx, state.id, user.id, r.cfg.Gitlab.Options.NewMemberAccessLevel)
			})
			if err != nil {
				r.stats.MembersAdded--
				if err := r.failure("add member to", state.fullPath, err); err != nil {
					return err
				}
			}
		}

		for _, member := range existing {
			if types.IsBuiltInUsername(member.Username) || wanted.Has(member.Username) {
				continue
			}

			r.stats.MembersRemoved++
			r.logger.Infof("removing %q from group %q", member.Username, state.fullPath)

			member := member
			err := r.apply("members", "remove", func() error {
				return r.forge.RemoveGroupMember(ctx, state.id, member.ID)
			})
			if err != nil {
				r.stats.MembersRemoved--
				if err := r.failure("remove member from", state.fullPath, err); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
