package metrics

import (
	"log"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics is a structure that implements the Metrics interface using Prometheus as the backend.
// It stores mappings for different Prometheus metric types (Counter, Gauge, Histogram) and their vector counterparts.
type PrometheusMetrics struct {
	mu            sync.RWMutex
	registry      *prometheus.Registry
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	gauges        map[string]prometheus.Gauge
	gaugeVecs     map[string]*prometheus.GaugeVec
	histograms    map[string]prometheus.Histogram
	histogramVecs map[string]*prometheus.HistogramVec
	customBuckets map[string][]float64 // Stores custom buckets for histograms
}

// NewPrometheusMetrics creates a PrometheusMetrics backed by its own registry,
// so several instances (one per test, say) never clash over metric names.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		registry:      prometheus.NewRegistry(),
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		gauges:        make(map[string]prometheus.Gauge),
		gaugeVecs:     make(map[string]*prometheus.GaugeVec),
		histograms:    make(map[string]prometheus.Histogram),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
		customBuckets: make(map[string][]float64),
	}
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

// SetCustomBuckets sets the bucket thresholds used when the histogram called
// name is registered. It has no effect on histograms already registered.
func (p *PrometheusMetrics) SetCustomBuckets(name string, buckets []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customBuckets[name] = buckets
}

func (p *PrometheusMetrics) buckets(name string) []float64 {
	if b, ok := p.customBuckets[name]; ok {
		return b
	}
	return prometheus.DefBuckets
}

// Register creates and registers a new metric based on the provided type.
// Supported metric types include 'Counter', 'Gauge', and 'Histogram'.
func (p *PrometheusMetrics) Register(name, metricType, help string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch metricType {
	case "Counter":
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		p.registry.MustRegister(counter)
		p.counters[name] = counter
	case "Gauge":
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		p.registry.MustRegister(gauge)
		p.gauges[name] = gauge
	case "Histogram":
		histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: p.buckets(name),
		})
		p.registry.MustRegister(histogram)
		p.histograms[name] = histogram
	default:
		log.Printf("Error: Attempted to register unknown metric type '%s' with name '%s'", metricType, name)
	}
}

// Record updates the value of a metric without labels: 'Add' for counters,
// 'Set' for gauges, and 'Observe' for histograms.
func (p *PrometheusMetrics) Record(name string, value float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if counter, ok := p.counters[name]; ok {
		counter.Add(value)
		return
	}
	if gauge, ok := p.gauges[name]; ok {
		gauge.Set(value)
		return
	}
	if histogram, ok := p.histograms[name]; ok {
		histogram.Observe(value)
	}
}

// RegisterWithLabels is Register for metrics with labels (CounterVec, GaugeVec, HistogramVec).
func (p *PrometheusMetrics) RegisterWithLabels(name, metricType, help string, labels []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch metricType {
	case "Counter":
		counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
		p.registry.MustRegister(counterVec)
		p.counterVecs[name] = counterVec
	case "Gauge":
		gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
		p.registry.MustRegister(gaugeVec)
		p.gaugeVecs[name] = gaugeVec
	case "Histogram":
		histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: p.buckets(name),
		}, labels)
		p.registry.MustRegister(histogramVec)
		p.histogramVecs[name] = histogramVec
	default:
		log.Printf("Error: Attempted to register unknown metric type '%s' with name '%s'", metricType, name)
	}
}

// RecordWithLabels updates a labeled metric. labelValues must match the
// order and number of labels given at registration.
func (p *PrometheusMetrics) RecordWithLabels(name string, value float64, labelValues ...string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if counterVec, ok := p.counterVecs[name]; ok {
		counterVec.WithLabelValues(labelValues...).Add(value)
		return
	}
	if gaugeVec, ok := p.gaugeVecs[name]; ok {
		gaugeVec.WithLabelValues(labelValues...).Set(value)
		return
	}
	if histogramVec, ok := p.histogramVecs[name]; ok {
		histogramVec.WithLabelValues(labelValues...).Observe(value)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on port. It blocks, so it is usually run in its own goroutine.
func (p *PrometheusMetrics) StartMetricsServer(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	return http.ListenAndServe(":"+port, mux)
}
