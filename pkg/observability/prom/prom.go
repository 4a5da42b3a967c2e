// Package prom implements the observability hooks with Prometheus collectors.
//
// The CLI is short-lived, so metrics are not scraped; they are written once to
// a node_exporter textfile (see WriteTextfile) when the command finishes.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/causalid/pkg/observability"
)

// Registry holds all causalid metrics and implements every hook interface.
type Registry struct {
	// Identification
	NormalizeSwaps      prometheus.Histogram
	ComponentsTotal     prometheus.Histogram
	FactorTerms         prometheus.Histogram
	IdentifyTotal       *prometheus.CounterVec
	IdentifyDuration    prometheus.Histogram
	IdentifyTargetCount prometheus.Histogram

	// Cache
	CacheRequestsTotal *prometheus.CounterVec
	CacheWriteBytes    *prometheus.CounterVec

	// Rendering
	RenderTotal    *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	RenderBytes    *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	_ observability.IdentifyHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.RenderHooks   = (*Registry)(nil)
)

// New creates a registry with all metrics initialized.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initIdentifyMetrics()
	r.initCacheMetrics()
	r.initRenderMetrics()
	return r
}

func (r *Registry) initIdentifyMetrics() {
	f := promauto.With(r.registry)
	r.NormalizeSwaps = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "causalid_normalize_displaced_nodes",
		Help:    "Nodes whose index changed during topological normalization",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	r.ComponentsTotal = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "causalid_components",
		Help:    "Number of c-components per decomposition",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
	r.FactorTerms = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "causalid_factor_terms",
		Help:    "Number of conditional terms per built factor",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
	r.IdentifyTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "causalid_identify_total",
		Help: "Total number of identification queries",
	}, []string{"status"})
	r.IdentifyDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "causalid_identify_duration_seconds",
		Help:    "Identification duration in seconds",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
	})
	r.IdentifyTargetCount = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "causalid_identify_targets",
		Help:    "Number of target nodes per identification query",
		Buckets: []float64{0, 1, 2, 5, 10, 25},
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)
	r.CacheRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "causalid_cache_requests_total",
		Help: "Cache lookups by key type and result",
	}, []string{"key_type", "result"})
	r.CacheWriteBytes = f.NewCounterVec(prometheus.CounterOpts{
		Name: "causalid_cache_write_bytes_total",
		Help: "Bytes written to the cache",
	}, []string{"key_type"})
}

func (r *Registry) initRenderMetrics() {
	f := promauto.With(r.registry)
	r.RenderTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "causalid_render_total",
		Help: "Total number of diagram renders",
	}, []string{"format", "status"})
	r.RenderDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "causalid_render_duration_seconds",
		Help:    "Diagram render duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	}, []string{"format"})
	r.RenderBytes = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "causalid_render_bytes",
		Help:    "Size of rendered diagrams",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"format"})
}

// Gatherer returns the underlying Prometheus registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Install registers r for every hook category.
func (r *Registry) Install() {
	observability.SetIdentifyHooks(r)
	observability.SetCacheHooks(r)
	observability.SetRenderHooks(r)
}

func (r *Registry) OnNormalize(_ context.Context, order []int) {
	displaced := 0
	for i, v := range order {
		if i != v {
			displaced++
		}
	}
	r.NormalizeSwaps.Observe(float64(displaced))
}

func (r *Registry) OnDecompose(_ context.Context, _, components int) {
	r.ComponentsTotal.Observe(float64(components))
}

func (r *Registry) OnFactor(_ context.Context, _, terms int) {
	r.FactorTerms.Observe(float64(terms))
}

func (r *Registry) OnIdentifyStart(_ context.Context, _, targets int) {
	r.IdentifyTargetCount.Observe(float64(targets))
}

func (r *Registry) OnIdentifyComplete(_ context.Context, _ int, d time.Duration, err error) {
	r.IdentifyTotal.WithLabelValues(status(err)).Inc()
	r.IdentifyDuration.Observe(d.Seconds())
}

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWriteBytes.WithLabelValues(keyType).Add(float64(size))
}

func (r *Registry) OnRenderStart(context.Context, string) {}

func (r *Registry) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	r.RenderTotal.WithLabelValues(format, status(err)).Inc()
	if err != nil {
		return
	}
	r.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
	r.RenderBytes.WithLabelValues(format).Observe(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
