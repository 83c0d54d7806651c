// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

var _ MonitorInterface = (*NoopMonitor)(nil)

// NoopMonitor discards every metric. Used when monitoring is disabled and in
// tests.
type NoopMonitor struct{}

func NewNoopMonitor() *NoopMonitor { return &NoopMonitor{} }

func (m *NoopMonitor) GetService() string { return "gitlab-ldap-sync" }

func (m *NoopMonitor) IncSyncOperation(instance, phase, action, outcome string) {}

func (m *NoopMonitor) SetDependencyAvailability(dependency string, available bool) {}
