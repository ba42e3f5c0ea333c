// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics"
	"github.com/xmidt-org/dispatchcore/xmetrics"
)

const (
	ResourceCount = "semaphore_resources_value"
	FailureCount  = "semaphore_wait_failure_count"
)

// Measures contains the built metrics for instrumented semaphores
type Measures struct {
	Resources metrics.Gauge
	Failures  metrics.Counter
}

// Metrics is the metric module for instrumented semaphores
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ResourceCount,
			Help: "The number of semaphore permits currently held",
			Type: xmetrics.GaugeType,
		},
		{
			Name: FailureCount,
			Help: "The number of semaphore waits that ended in failure",
			Type: xmetrics.CounterType,
		},
	}
}

// ApplyMetricsData builds the Measures from a registry
func ApplyMetricsData(registry xmetrics.Registry) (m Measures) {
	m.Resources = registry.NewGauge(ResourceCount)
	m.Resources.Add(0.0)
	m.Failures = registry.NewCounter(FailureCount)
	m.Failures.Add(0.0)
	return
}

// Instrument decorates the given semaphore with these measures
func (m Measures) Instrument(s Interface) Interface {
	return Instrument(s, WithResources(m.Resources), WithFailures(m.Failures))
}
