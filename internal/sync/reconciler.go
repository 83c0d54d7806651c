// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/forge"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
	"github.com/canonical/gitlab-ldap-sync/internal/types"
)

// Options are the run modes of a reconciliation.
type Options struct {
	// DryRun suppresses every mutating forge call; reads and bookkeeping
	// still happen.
	DryRun bool
	// ContinueOnFail downgrades transient per-entity forge failures from
	// fatal to logged skips.
	ContinueOnFail bool
}

// Stats are the per-phase counters of one instance's reconciliation. Under
// dry-run they count intended mutations.
type Stats struct {
	UsersCreated int
	UsersBlocked int
	UsersUpdated int
	UsersSkipped int

	GroupsCreated int
	GroupsDeleted int
	GroupsSkipped int

	MembersAdded   int
	MembersRemoved int

	KeysAdded   int
	KeysRemoved int
}

// userState is the reconciler's view of one forge user across phases. A user
// created under dry-run has no real id; dryLabel stands in for it.
type userState struct {
	id       int
	username string
	dryLabel string
	keys     []types.ForgeKey
	existing *types.ForgeUser
}

func (s *userState) label() string {
	if s.dryLabel != "" {
		return s.dryLabel
	}
	return s.username
}

// groupState is the reconciler's view of one forge group across phases.
type groupState struct {
	id       int
	name     string
	fullPath string
	dryLabel string
}

// Reconciler drives one forge instance toward the directory snapshot:
// users, then groups, then memberships. It is single-threaded; the pacing
// inside the forge adapter is the only throttle.
type Reconciler struct {
	instance string
	cfg      *config.Config
	forge    forge.ForgeInterface
	opts     Options

	stats Stats

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewReconciler(
	instance string,
	cfg *config.Config,
	forgeClient forge.ForgeInterface,
	opts Options,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	r := new(Reconciler)

	r.instance = instance
	r.cfg = cfg
	r.forge = forgeClient
	r.opts = opts

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}

// Run reconciles the instance. Ordering: users created, blocked, then
// updated; groups created (parents first) then deleted; memberships last.
func (r *Reconciler) Run(ctx context.Context, snapshot *types.DirectorySnapshot) (*Stats, error) {
	ctx, span := r.tracer.Start(ctx, "sync.Reconciler.Run")
	defer span.End()

	users, err := r.reconcileUsers(ctx, snapshot)
	if err != nil {
		return &r.stats, err
	}

	groups, err := r.reconcileGroups(ctx, snapshot)
	if err != nil {
		return &r.stats, err
	}

	if err := r.reconcileMembers(ctx, snapshot, users, groups); err != nil {
		return &r.stats, err
	}

	r.logger.Infof(
		"instance %q: %d users created, %d users disabled, %d users updated, %d users skipped, "+
			"%d groups created, %d groups deleted, %d groups skipped, "+
			"%d members added, %d members removed, %d keys added, %d keys removed",
		r.instance,
		r.stats.UsersCreated, r.stats.UsersBlocked, r.stats.UsersUpdated, r.stats.UsersSkipped,
		r.stats.GroupsCreated, r.stats.GroupsDeleted, r.stats.GroupsSkipped,
		r.stats.MembersAdded, r.stats.MembersRemoved, r.stats.KeysAdded, r.stats.KeysRemoved,
	)

	return &r.stats, nil
}

// apply gates one mutating forge call behind dry-run and records its
// outcome. Under dry-run the call is skipped and reported successful so
// bookkeeping proceeds as if it happened.
func (r *Reconciler) apply(phase, action string, fn func() error) error {
	if r.opts.DryRun {
		r.logger.Warnf("Operation skipped due to dry run.")
		r.monitor.IncSyncOperation(r.instance, phase, action, "dryrun")
		return nil
	}
	if err := fn(); err != nil {
		r.monitor.IncSyncOperation(r.instance, phase, action, "failed")
		return err
	}
	r.monitor.IncSyncOperation(r.instance, phase, action, "applied")
	return nil
}

// failure applies the error policy to a failed mutating call: known forge
// errors are always a skip, transient ones are a skip only under
// continue-on-fail, anything else is fatal. Returns nil when the run should
// carry on.
func (r *Reconciler) failure(action, target string, err error) error {
	if forge.IsKnown(err) {
		r.logger.Warnf("%s %q skipped: %v", action, target, err)
		return nil
	}
	if r.opts.ContinueOnFail {
		r.logger.Errorf("%s %q failed, continuing: %v", action, target, err)
		return nil
	}
	return err
}
