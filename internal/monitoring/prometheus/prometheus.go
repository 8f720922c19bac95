// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"errors"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	activityRecords        prometheus.Gauge
	activityEvictions      *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return errors.New("metric not instantiated")
	}

	observer, err := m.responseTime.GetMetricWith(tags)
	if err != nil {
		return err
	}

	observer.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return errors.New("metric not instantiated")
	}

	gauge, err := m.dependencyAvailability.GetMetricWith(tags)
	if err != nil {
		return err
	}

	gauge.Set(value)

	return nil
}

func (m *Monitor) SetActivityRecords(value float64) error {
	if m.activityRecords == nil {
		return errors.New("metric not instantiated")
	}

	m.activityRecords.Set(value)

	return nil
}

func (m *Monitor) IncActivityEvictions(reason string, value float64) error {
	if m.activityEvictions == nil {
		return errors.New("metric not instantiated")
	}

	counter, err := m.activityEvictions.GetMetricWith(prometheus.Labels{"reason": reason})
	if err != nil {
		return err
	}

	counter.Add(value)

	return nil
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_response_time_seconds",
			Help:        "http_response_time_seconds",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"route", "status"},
	)

	if c, ok := m.register(m.responseTime).(*prometheus.HistogramVec); ok {
		m.responseTime = c
	}
}

func (m *Monitor) registerGauges() {
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "dependency_available",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"component"},
	)

	m.activityRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "tenant_activity_records",
			Help:        "number of tracked (user, tenant) activity records",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
	)

	if c, ok := m.register(m.dependencyAvailability).(*prometheus.GaugeVec); ok {
		m.dependencyAvailability = c
	}

	if c, ok := m.register(m.activityRecords).(prometheus.Gauge); ok {
		m.activityRecords = c
	}
}

func (m *Monitor) registerCounters() {
	m.activityEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "tenant_activity_evictions_total",
			Help:        "number of activity records evicted, by reason",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"reason"},
	)

	if c, ok := m.register(m.activityEvictions).(*prometheus.CounterVec); ok {
		m.activityEvictions = c
	}
}

// register adds the collector to the default registry, returning the
// collector already registered under the same descriptor if there is one
func (m *Monitor) register(c prometheus.Collector) prometheus.Collector {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return are.ExistingCollector
	}

	m.logger.Errorf("failed registering metric: %v", err)
	return c
}

// NewMonitor creates a new prometheus backed monitor, registering all the
// collectors on the default registry
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
