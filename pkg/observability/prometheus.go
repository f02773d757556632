package observability

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements Metrics on a private Prometheus registry.
// Collectors are created on first use; the label set seen first for a name
// is fixed for that name, later tags outside it are dropped and missing ones
// are reported as empty.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	labels     map[string][]string
}

// NewPrometheusMetrics creates a registry with the Go runtime and process
// collectors already registered.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &PrometheusMetrics{
		registry:   reg,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labels:     make(map[string][]string),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	if value < 0 {
		return
	}
	metricName := PromName(name) + "_total"

	p.mu.Lock()
	vec, ok := p.counters[metricName]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: metricName, Help: name}, p.labelNames(metricName, tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return
		}
		p.counters[metricName] = vec
	}
	values := p.labelValues(metricName, tags)
	p.mu.Unlock()

	vec.WithLabelValues(values...).Add(float64(value))
}

func (p *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	metricName := PromName(name)

	p.mu.Lock()
	vec, ok := p.gauges[metricName]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metricName, Help: name}, p.labelNames(metricName, tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return
		}
		p.gauges[metricName] = vec
	}
	values := p.labelValues(metricName, tags)
	p.mu.Unlock()

	vec.WithLabelValues(values...).Set(value)
}

func (p *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	p.observe(PromName(name), name, value, prometheus.DefBuckets, tags)
}

func (p *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	p.observe(PromName(name)+"_seconds", name, duration.Seconds(), prometheus.DefBuckets, tags)
}

func (p *PrometheusMetrics) observe(metricName, help string, value float64, buckets []float64, tags []Tag) {
	p.mu.Lock()
	vec, ok := p.histograms[metricName]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metricName,
			Help:    help,
			Buckets: buckets,
		}, p.labelNames(metricName, tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return
		}
		p.histograms[metricName] = vec
	}
	values := p.labelValues(metricName, tags)
	p.mu.Unlock()

	vec.WithLabelValues(values...).Observe(value)
}

// labelNames must be called with mu held.
func (p *PrometheusMetrics) labelNames(metricName string, tags []Tag) []string {
	if names, ok := p.labels[metricName]; ok {
		return names
	}
	names := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		key := PromName(t.Key)
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	sort.Strings(names)
	p.labels[metricName] = names
	return names
}

// labelValues must be called with mu held.
func (p *PrometheusMetrics) labelValues(metricName string, tags []Tag) []string {
	names := p.labels[metricName]
	byKey := make(map[string]string, len(tags))
	for _, t := range tags {
		byKey[PromName(t.Key)] = t.Value
	}
	values := make([]string, len(names))
	for i, n := range names {
		values[i] = byKey[n]
	}
	return values
}

// PromName converts a dotted metric name into a valid Prometheus name.
func PromName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
