// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"strings"

	"github.com/canonical/gitlab-ldap-sync/internal/normalizer"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// reconcileGroups runs the groups phase: list, create missing (parents
// before children, one nesting level), delete extra. Returns the forge group
// state for each directory group name, for the membership phase.
func (r *Reconciler) reconcileGroups(ctx context.Context, snapshot *types.DirectorySnapshot) (*types.FoldMap[*groupState], error) {
	ctx, span := r.tracer.Start(ctx, "sync.Reconciler.reconcileGroups")
	defer span.End()

	found, err := r.listForgeGroups(ctx)
	if err != nil {
		return nil, err
	}

	plan := types.NewFoldMap[*groupState]()
	expected := types.NewFoldSet()

	if err := r.createMissingGroups(ctx, snapshot, found, plan, expected); err != nil {
		return nil, err
	}
	if err := r.deleteExtraGroups(ctx, found, expected); err != nil {
		return nil, err
	}

	return plan, nil
}

// listForgeGroups pages through the instance's groups, dropping invalid
// entries, reserved names, ignored names, and duplicate paths. The result is
// keyed by lower-cased full path.
func (r *Reconciler) listForgeGroups(ctx context.Context) (*types.FoldMap[*groupState], error) {
	forgeGroups, err := r.forge.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	ignore := types.NewFoldSet(r.cfg.Gitlab.Options.GroupNamesToIgnore...)

	found := types.NewFoldMap[*groupState]()
	for _, g := range forgeGroups {
		if g.Name == "" || g.Path == "" || g.FullPath == "" {
			r.logger.Warnf("forge group id %d has empty name or path, dropped", g.ID)
			continue
		}
		if types.IsBuiltInGroupName(g.Name) || ignore.Has(g.Name) {
			continue
		}
		if found.Has(g.FullPath) {
			r.logger.Warnf("duplicate forge group path %q (id %d) dropped", g.FullPath, g.ID)
			continue
		}
		found.Set(g.FullPath, &groupState{id: g.ID, name: g.Name, fullPath: g.FullPath})
	}

	r.logger.Debugf("instance %q has %d syncable groups", r.instance, found.Len())
	return found, nil
}

func (r *Reconciler) createMissingGroups(
	ctx context.Context,
	snapshot *types.DirectorySnapshot,
	found, plan *types.FoldMap[*groupState],
	expected *types.FoldSet,
) error {
	for _, name := range snapshot.SortedGroupNames() {
		group := snapshot.Groups[name]

		// One nesting level: the first "/" splits parent from child, any
		// further "/" stays inside the child component.
		parent, child, nested := strings.Cut(name, "/")

		parentID := 0
		single := name
		fullPath := normalizer.GroupPathSlug(name)

		if nested {
			parentPath := normalizer.GroupPathSlug(parent)
			expected.Add(parentPath)

			parentState, ok := found.Get(parentPath)
			if !ok {
				var err error
				parentState, err = r.createGroup(ctx, parent, parentPath, 0, found)
				if err != nil {
					return err
				}
				if parentState == nil {
					continue
				}
			}
			parentID = parentState.id

			single = child
			fullPath = parentPath + "/" + normalizer.GroupPathSlug(child)
		}

		expected.Add(fullPath)

		if state, ok := found.Get(fullPath); ok {
			plan.Set(name, state)
			continue
		}

		if len(group.Members) == 0 && !r.cfg.Gitlab.Options.CreateEmptyGroups {
			r.logger.Warnf("group %q is empty and createEmptyGroups is off, skipped", name)
			r.stats.GroupsSkipped++
			continue
		}

		state, err := r.createGroup(ctx, single, fullPath, parentID, found)
		if err != nil {
			return err
		}
		if state == nil {
			continue
		}
		plan.Set(name, state)
	}
	return nil
}

// createGroup creates one group with slugged name and path and records it
// under fullPath. A nil state with a nil error means the creation was
// skipped and the run carries on.
func (r *Reconciler) createGroup(ctx context.Context, rawName, fullPath string, parentID int, found *types.FoldMap[*groupState]) (*groupState, error) {
	slugName := normalizer.GroupNameSlug(rawName)
	slugPath := normalizer.GroupPathSlug(rawName)

	r.stats.GroupsCreated++
	r.logger.Infof("creating group %q (path %q)", slugName, fullPath)

	var created *types.ForgeGroup
	err := r.apply("groups", "create", func() error {
		var err error
		created, err = r.forge.CreateGroup(ctx, slugName, slugPath, parentID)
		return err
	})
	if err != nil {
		r.stats.GroupsCreated--
		r.stats.GroupsSkipped++
		return nil, r.failure("create group", fullPath, err)
	}

	state := &groupState{name: slugName, fullPath: fullPath}
	if created != nil {
		state.id = created.ID
	} else {
		state.dryLabel = "dry:" + fullPath
	}
	found.Set(fullPath, state)
	return state, nil
}

func (r *Reconciler) deleteExtraGroups(ctx context.Context, found *types.FoldMap[*groupState], expected *types.FoldSet) error {
	for _, fullPath := range found.Keys() {
		state, _ := found.Get(fullPath)
		if expected.Has(fullPath) {
			continue
		}

		if !r.cfg.Gitlab.Options.DeleteExtraGroups {
			r.logger.Infof("group %q is not in the directory, left in place", state.fullPath)
			continue
		}

		projects, err := r.forge.CountGroupProjects(ctx, state.id)
		if err != nil {
			return err
		}
		subgroups, err := r.forge.CountGroupSubgroups(ctx, state.id)
		if err != nil {
			return err
		}
		if projects > 0 || subgroups > 0 {
			r.logger.Warnf("group %q still has %d projects and %d subgroups, not deleted", state.fullPath, projects, subgroups)
			continue
		}

		r.stats.GroupsDeleted++
		r.logger.Infof("deleting group %q", state.fullPath)

		err = r.apply("groups", "delete", func() error {
			return r.forge.DeleteGroup(ctx, state.id)
		})
		if err != nil {
			r.stats.GroupsDeleted--
			r.stats.GroupsSkipped++
			if err := r.failure("delete group", state.fullPath, err); err != nil {
				return err
			}
		}
	}
	return nil
}
