// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/gitlab-ldap-sync/internal/config"
	"github.com/canonical/gitlab-ldap-sync/internal/directory"
	"github.com/canonical/gitlab-ldap-sync/internal/forge"
	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring/prometheus"
	"github.com/canonical/gitlab-ldap-sync/internal/normalizer"
	"github.com/canonical/gitlab-ldap-sync/internal/sync"
	"github.com/canonical/gitlab-ldap-sync/internal/tracing"
)

const configPath = "config.yml"

var syncCmd = &cobra.Command{
	Use:   "sync [instance]",
	Short: "Run one full reconciliation of the configured GitLab instances",
	Long: `Read users and groups from the directory, then drive each configured
GitLab instance toward that state: create, update and block users, create and
delete groups, and converge memberships and SSH keys.

With an instance argument only that instance is synced; all instances
otherwise. Configuration is read from ./config.yml.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSync(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	syncCmd.Flags().BoolP("dryrun", "d", false, "Compute and log all mutations without issuing any")
	syncCmd.Flags().Bool("continueOnFail", false, "Log recoverable GitLab errors and keep going instead of aborting")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dryrun")
	continueOnFail, _ := cmd.Flags().GetBool("continueOnFail")

	instance := ""
	if len(args) == 1 {
		instance = args[0]
	}

	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	logLevel := specs.LogLevel
	if specs.Debug {
		logLevel = "debug"
	}
	logger := logging.NewLogger(logLevel)
	defer logger.Sync()

	var monitor monitoring.MonitorInterface = monitoring.NewNoopMonitor()
	if specs.MonitoringEnabled {
		monitor = prometheus.NewMonitor("gitlab-ldap-sync", logger)
	}
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return err
	}

	if dryRun {
		logger.Warnf("dry run: no mutation will reach any instance")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ldapClient := directory.NewClient(&cfg.LDAP, tracer, monitor, logger)
	driver := sync.NewLDAPDriver(ldapClient, normalizer.NewNormalizer(cfg, logger), logger)

	pacer := forge.NewPacer(forge.DefaultMutationDelay)
	factory := func(name string, instanceCfg config.GitlabInstance) (forge.ForgeInterface, error) {
		return forge.NewClient(name, instanceCfg, cfg.Gitlab.Debug, pacer, tracer, monitor, logger)
	}

	dispatcher := sync.NewDispatcher(
		cfg,
		driver,
		factory,
		sync.Options{DryRun: dryRun, ContinueOnFail: continueOnFail},
		tracer,
		monitor,
		logger,
	)

	return dispatcher.Run(ctx, instance)
}
