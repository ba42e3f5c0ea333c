package xmetrics

import (
	"fmt"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific metric factory.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a
// go-kit metric factory all in one.
//
// For any metric that is already defined, the factory methods return a new go-kit wrapper
// for that metric.  New metrics, including ad hoc metrics, are cached and returned by
// subsequent calls.
type Registry interface {
	PrometheusProvider
	prometheus.Gatherer
	prometheus.Registerer

	NewCounter(string) metrics.Counter
	NewGauge(string) metrics.Gauge
	NewHistogram(string) metrics.Histogram
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string
	cache     map[string]prometheus.Collector
}

func (r *registry) adHoc(name, metricType string) prometheus.Collector {
	if existing, ok := r.cache[name]; ok {
		return existing
	}

	collector, err := NewCollector(Metric{
		Name:      name,
		Type:      metricType,
		Namespace: r.namespace,
		Subsystem: r.subsystem,
	})

	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			collector = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = collector
	return collector
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	counterVec, ok := r.adHoc(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	gaugeVec, ok := r.adHoc(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	histogramVec, ok := r.adHoc(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return histogramVec
}

func (r *registry) NewHistogram(name string) metrics.Histogram {
	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

// NewRegistry creates a Registry from an Options and zero or more metric modules.
// Each module's metrics are preregistered.  Duplicate metric names across
// modules produce an error.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, module := range append(modules, o.Module) {
		for _, m := range module() {
			if _, ok := r.cache[m.Name]; ok {
				return nil, fmt.Errorf("duplicate metric with name: %s", m.Name)
			}

			if len(m.Namespace) == 0 {
				m.Namespace = r.namespace
			}

			if len(m.Subsystem) == 0 {
				m.Subsystem = r.subsystem
			}

			collector, err := NewCollector(m)
			if err != nil {
				return nil, err
			}

			if err := r.Registry.Register(collector); err != nil {
				return nil, fmt.Errorf("error while preregistering metric %s: %s", m.Name, err)
			}

			r.cache[m.Name] = collector
		}
	}

	return r, nil
}
