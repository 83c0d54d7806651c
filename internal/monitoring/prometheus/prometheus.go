// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/gitlab-ldap-sync/internal/logging"
	"github.com/canonical/gitlab-ldap-sync/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	syncOperations *prometheus.CounterVec
	dependencyUp   *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) IncSyncOperation(instance, phase, action, outcome string) {
	m.syncOperations.WithLabelValues(instance, phase, action, outcome).Inc()
}

func (m *Monitor) SetDependencyAvailability(dependency string, available bool) {
	value := 0.0
	if available {
		value = 1.0
	}
	m.dependencyUp.WithLabelValues(dependency).Set(value)
}

func (m *Monitor) registerMetrics() {
	m.syncOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_operations_total",
			Help: "Reconciliation operations by instance, phase, action and outcome.",
		},
		[]string{"instance", "phase", "action", "outcome"},
	)

	m.dependencyUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "Availability of external dependencies (ldap, forge instances).",
		},
		[]string{"dependency"},
	)

	for _, collector := range []prometheus.Collector{m.syncOperations, m.dependencyUp} {
		if err := prometheus.Register(collector); err != nil {
			m.logger.Errorf("failed to register collector: %v", err)
		}
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerMetrics()

	return m
}
