// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

// Monitor keeps collector metrics in a private registry so a CLI run can dump them to a file.
type Monitor struct {
	service string

	registry               *prometheus.Registry
	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	cacheLookups           *prometheus.CounterVec
	corruptRecords         *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencyAvailability.With(tags).Set(value)

	return nil
}

func (m *Monitor) IncCacheLookup(tags map[string]string) error {
	if m.cacheLookups == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.cacheLookups.With(tags).Inc()

	return nil
}

func (m *Monitor) IncCorruptRecord(tags map[string]string) error {
	if m.corruptRecords == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.corruptRecords.With(tags).Inc()

	return nil
}

// WriteToFile dumps the registry in the text exposition format, for node_exporter's textfile collector.
func (m *Monitor) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "cli_call_duration_seconds",
			Help:        "Duration of provider CLI invocations",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"platform", "command"},
	)

	if err := m.registry.Register(m.responseTime); err != nil {
		m.logger.Errorf("failed to register response time metric: %v", err)
	}
}

func (m *Monitor) registerGauges() {
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "Availability of the provider CLI and its login session",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"platform"},
	)

	if err := m.registry.Register(m.dependencyAvailability); err != nil {
		m.logger.Errorf("failed to register dependency availability metric: %v", err)
	}
}

func (m *Monitor) registerCounters() {
	m.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "cache_lookups_total",
			Help:        "Tenant cache lookups by category and result",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"platform", "category", "result"},
	)

	if err := m.registry.Register(m.cacheLookups); err != nil {
		m.logger.Errorf("failed to register cache lookup metric: %v", err)
	}

	m.corruptRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "store_corrupt_records_total",
			Help:        "Stored records skipped because they failed to parse or validate",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"record"},
	)

	if err := m.registry.Register(m.corruptRecords); err != nil {
		m.logger.Errorf("failed to register corrupt record metric: %v", err)
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger
	m.registry = prometheus.NewRegistry()

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
