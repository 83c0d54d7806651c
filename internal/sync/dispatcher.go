// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
)

// Dispatcher is the top-level driver: it ingests the directory once, then
// reconciles each selected forge instance in turn. Instances never share
// mutable state beyond the read-only snapshot and config.
type Dispatcher struct {
	cfg    *config.Config
	driver DriverInterface
	forges ForgeFactory
	opts   Options

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDispatcher(
	cfg *config.Config,
	driver DriverInterface,
	forges ForgeFactory,
	opts Options,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Dispatcher {
	d := new(Dispatcher)

	d.cfg = cfg
	d.driver = driver
	d.forges = forges
	d.opts = opts

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d
}

// Run syncs the named instance, or every configured instance when instance
// is empty. A directory failure is always fatal; forge failures follow the
// continue-on-fail policy inside the reconciler.
func (d *Dispatcher) Run(ctx context.Context, instance string) error {
	ctx, span := d.tracer.Start(ctx, "sync.Dispatcher.Run")
	defer span.End()

	logger := d.logger.With("run_id", uuid.New().String())

	instances, err := d.selectInstances(instance)
	if err != nil {
		return err
	}

	snapshot, err := d.driver.FetchSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("directory ingestion failed: %w", err)
	}

	for _, name := range instances {
		logger.Infof("syncing instance %q", name)

		forgeClient, err := d.forges(name, d.cfg.Gitlab.Instances[name])
		if err != nil {
			return err
		}
		d.monitor.SetDependencyAvailability("forge:"+name, true)

		reconciler := NewReconciler(name, d.cfg, forgeClient, d.opts, d.tracer, d.monitor, logger)
		if _, err := reconciler.Run(ctx, snapshot); err != nil {
			d.monitor.SetDependencyAvailability("forge:"+name, false)
			return fmt.Errorf("sync of instance %q failed: %w", name, err)
		}
	}

	return nil
}

func (d *Dispatcher) selectInstances(instance string) ([]string, error) {
	if instance != "" {
		if _, ok := d.cfg.Gitlab.Instances[instance]; !ok {
			return nil, fmt.Errorf("unknown forge instance %q", instance)
		}
		return []string{instance}, nil
	}

	names := make([]string, 0, len(d.cfg.Gitlab.Instances))
	for name := range d.cfg.Gitlab.Instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
