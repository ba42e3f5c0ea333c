// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package execctx

import (
	"github.com/go-kit/kit/metrics"
	"github.com/xmidt-org/dispatchcore/xmetrics"
)

const (
	QueueDepth = "loop_queue_depth_value"
	TaskCount  = "loop_task_count"
)

// Measures contains the built metrics for a Loop
type Measures struct {
	QueueDepth metrics.Gauge
	Tasks      metrics.Counter
}

// Metrics is the metric module for loops
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: QueueDepth,
			Help: "The number of tasks waiting in the loop's queue",
			Type: xmetrics.GaugeType,
		},
		{
			Name: TaskCount,
			Help: "The number of tasks the loop has executed",
			Type: xmetrics.CounterType,
		},
	}
}

// ApplyMetricsData builds the Measures from a registry
func ApplyMetricsData(registry xmetrics.Registry) (m Measures) {
	m.QueueDepth = registry.NewGauge(QueueDepth)
	m.QueueDepth.Set(0.0)
	m.Tasks = registry.NewCounter(TaskCount)
	m.Tasks.Add(0.0)
	return
}

// Options returns the LoopOptions that wire these measures into a Loop
func (m Measures) Options() []LoopOption {
	return []LoopOption{
		WithQueueDepth(m.QueueDepth),
		WithTasks(m.Tasks),
	}
}
