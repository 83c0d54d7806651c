// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

func TestNestedGroupCreatesParentFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := NewMockForgeInterface(ctrl)

	alice := dirUser("alice")
	snapshot := buildSnapshot(
		[]*types.DirectoryUser{alice},
		[]*types.DirectoryGroup{{Name: "devs/backend", Members: []string{"alice"}}},
	)

	mockForge.EXPECT().ListUsers(gomock.Any()).Return([]*types.ForgeUser{forgeTwin(1, alice)}, nil)
	mockForge.EXPECT().ListUserKeys(gomock.Any(), 1).Return(nil, nil)
	mockForge.EXPECT().ListBlockedUsers(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListGroups(gomock.Any()).Return(nil, nil)

	gomock.InOrder(
		mockForge.EXPECT().CreateGroup(gomock.Any(), "devs", "devs", 0).Return(
			&types.ForgeGroup{ID: 10, Name: "devs", Path: "devs", FullPath: "devs"}, nil,
		),
		mockForge.EXPECT().CreateGroup(gomock.Any(), "backend", "backend", 10).Return(
			&types.ForgeGroup{ID: 11, Name: "backend", Path: "backend", FullPath: "devs/backend", ParentID: 10}, nil,
		),
	)

	// The synthesized parent has no directory entry, so only the child gets
	// a membership pass.
	mockForge.EXPECT().ListGroupMembers(gomock.Any(), 11).Return(nil, nil)
	mockForge.EXPECT().AddGroupMember(gomock.Any(), 11, 1, 30).Return(nil)

	r := newTestReconciler(t, mockForge, Options{}, nil)
	stats, err := r.Run(context.Background(), snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.GroupsCreated != 2 || stats.MembersAdded != 1 {
		t.Fatalf("expected 2 groups created and 1 member added, got %+v", stats)
	}
}

func TestEmptyGroupPolicy(t *testing.T) {
	tests := []struct {
		name              string
		createEmptyGroups bool
		expectCreate      bool
	}{
		{name: "skipped by default"},
		{name: "created when enabled", createEmptyGroups: true, expectCreate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockForge := NewMockForgeInterface(ctrl)

			cfg := testConfig()
			cfg.Gitlab.Options.CreateEmptyGroups = tt.createEmptyGroups

			snapshot := buildSnapshot(nil, []*types.DirectoryGroup{{Name: "lonely"}})

			mockForge.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)
			mockForge.EXPECT().ListBlockedUsers(gomock.Any()).Return(nil, nil)
			mockForge.EXPECT().ListGroups(gomock.Any()).Return(nil, nil)

			if tt.expectCreate {
				mockForge.EXPECT().CreateGroup(gomock.Any(), "lonely", "lonely", 0).Return(
					&types.ForgeGroup{ID: 7, Name: "lonely", Path: "lonely", FullPath: "lonely"}, nil,
				)
				mockForge.EXPECT().ListGroupMembers(gomock.Any(), 7).Return(nil, nil)
			}

			r := newTestReconciler(t, mockForge, Options{}, cfg)
			stats, err := r.Run(context.Background(), snapshot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectCreate && stats.GroupsCreated != 1 {
				t.Fatalf("expected a created group, got %+v", stats)
			}
			if !tt.expectCreate && stats.GroupsSkipped != 1 {
				t.Fatalf("expected a skipped group, got %+v", stats)
			}
		})
	}
}

func TestGroupNameIsSlugged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := NewMockForgeInterface(ctrl)

	cfg := testConfig()
	cfg.Gitlab.Options.CreateEmptyGroups = true

	snapshot := buildSnapshot(nil, []*types.DirectoryGroup{{Name: "Data & Insights"}})

	mockForge.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListBlockedUsers(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListGroups(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().CreateGroup(gomock.Any(), "Data Insights", "data-insights", 0).Return(
		&types.ForgeGroup{ID: 8, Name: "Data Insights", Path: "data-insights", FullPath: "data-insights"}, nil,
	)
	mockForge.EXPECT().ListGroupMembers(gomock.Any(), 8).Return(nil, nil)

	r := newTestReconciler(t, mockForge, Options{}, cfg)
	if _, err := r.Run(context.Background(), snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtraGroupDeletion(t *testing.T) {
	tests := []struct {
		name              string
		deleteExtraGroups bool
		projects          int
		subgroups         int
		expectDelete      bool
	}{
		{name: "left in place by default"},
		{name: "deleted when empty", deleteExtraGroups: true, expectDelete: true},
		{name: "refused with projects", deleteExtraGroups: true, projects: 2},
		{name: "refused with subgroups", deleteExtraGroups: true, subgroups: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockForge := NewMockForgeInterface(ctrl)

			cfg := testConfig()
			cfg.Gitlab.Options.DeleteExtraGroups = tt.deleteExtraGroups

			snapshot := buildSnapshot(nil, nil)

			mockForge.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)
			mockForge.EXPECT().ListBlockedUsers(gomock.Any()).Return(nil, nil)
			mockForge.EXPECT().ListGroups(gomock.Any()).Return([]*types.ForgeGroup{
				{ID: 5, Name: "old", Path: "old", FullPath: "old"},
			}, nil)

			if tt.deleteExtraGroups {
				mockForge.EXPECT().CountGroupProjects(gomock.Any(), 5).Return(tt.projects, nil)
				mockForge.EXPECT().CountGroupSubgroups(gomock.Any(), 5).Return(tt.subgroups, nil)
			}
			if tt.expectDelete {
				mockForge.EXPECT().DeleteGroup(gomock.Any(), 5).Return(nil)
			}

			r := newTestReconciler(t, mockForge, Options{}, cfg)
			stats, err := r.Run(context.Background(), snapshot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectDelete != (stats.GroupsDeleted == 1) {
				t.Fatalf("delete expectation mismatch: %+v", stats)
			}
		})
	}
}

func TestReservedGroupsAreNeverTouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForge := NewMockForgeInterface(ctrl)

	cfg := testConfig()
	cfg.Gitlab.Options.DeleteExtraGroups = true
	cfg.Gitlab.Options.GroupNamesToIgnore = []string{"Sandbox"}

	snapshot := buildSnapshot(nil, nil)

	mockForge.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListBlockedUsers(gomock.Any()).Return(nil, nil)
	mockForge.EXPECT().ListGroups(gomock.Any()).Return([]*types.ForgeGroup{
		{ID: 1, Name: "Root", Path: "root", FullPath: "root"},
		{ID: 2, Name: "Users", Path: "users", FullPath: "users"},
		{ID: 3, Name: "GitLab Instance", Path: "gitlab-instance", FullPath: "gitlab-instance"},
		{ID: 4, Name: "Sandbox", Path: "sandbox", FullPath: "sandbox"},
	}, nil)

	r := newTestReconciler(t, mockForge, Options{}, cfg)
	stats, err := r.Run(context.Background(), snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.GroupsDeleted != 0 {
		t.Fatalf("expected no deletion, got %+v", stats)
	}
}
