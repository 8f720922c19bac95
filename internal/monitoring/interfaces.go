// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(map[string]string, float64) error
	SetDependencyAvailability(map[string]string, float64) error
	// SetActivityRecords reports how many tenant activity records are tracked
	SetActivityRecords(float64) error
	// IncActivityEvictions counts records removed for the given reason (idle, retention, reset)
	IncActivityEvictions(string, float64) error
}
