// Package telemetry exports Prometheus metrics and OpenTelemetry spans for the
// comment tagger. A nil *Provider is valid and records nothing.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "comment-tagger"
	namespace   = "comment_tagger"
)

// Analyzer call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeTimeout     = "timeout"
	OutcomeCacheHit    = "cache_hit"
	OutcomeCircuitOpen = "circuit_open"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	// Rule engine
	CommentsClassified *prometheus.CounterVec
	RuleMatchDuration  prometheus.Histogram
	RulesEvaluated     prometheus.Counter
	RulesMatched       prometheus.Counter

	// Pipeline
	PrescreenOutcomes *prometheus.CounterVec
	MergeSource       *prometheus.CounterVec
	BatchSize         prometheus.Histogram
	ActiveWorkers     prometheus.Gauge

	// External analyzer
	AnalyzerCalls   *prometheus.CounterVec
	AnalyzerLatency *prometheus.HistogramVec

	CatalogLoadFailures prometheus.Counter
}

// Provider wraps the tracer and metrics.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewProvider registers metrics with reg. A nil reg uses the process-wide
// default registry, which accepts a single provider per process.
func NewProvider(reg *prometheus.Registry) *Provider {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(registerer)),
		gatherer: gatherer,
	}
}

// Handler serves the registry in Prometheus text format.
func (p *Provider) Handler() http.Handler {
	if p == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func initMetrics(f promauto.Factory) *Metrics {
	m := &Metrics{}
	initRuleEngineMetrics(f, m)
	initPipelineMetrics(f, m)
	initAnalyzerMetrics(f, m)
	return m
}

func initRuleEngineMetrics(f promauto.Factory, m *Metrics) {
	m.CommentsClassified = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_classified_total",
		Help:      "Comments scored by the rule engine, by level",
	}, []string{"level"})

	m.RuleMatchDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rule_match_duration_seconds",
		Help:      "Time spent evaluating the rule catalog against one comment",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	m.RulesEvaluated = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rules_evaluated_total",
		Help:      "Total rule evaluations",
	})

	m.RulesMatched = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rules_matched_total",
		Help:      "Total rules that matched",
	})

	m.CatalogLoadFailures = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_load_failures_total",
		Help:      "Rule catalog definitions rejected at load",
	})
}

func initPipelineMetrics(f promauto.Factory, m *Metrics) {
	m.PrescreenOutcomes = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescreen_total",
		Help:      "Pre-screen routing decisions",
	}, []string{"outcome"})

	m.MergeSource = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merged_total",
		Help:      "Tagged comments by analysis source",
	}, []string{"source"})

	m.BatchSize = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_size",
		Help:      "Comments per analysis request",
		Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 5000},
	})

	m.ActiveWorkers = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_workers",
		Help:      "Rule classification workers currently running",
	})
}

func initAnalyzerMetrics(f promauto.Factory, m *Metrics) {
	m.AnalyzerCalls = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyzer_calls_total",
		Help:      "External analyzer calls by outcome",
	}, []string{"analyzer", "outcome"})

	m.AnalyzerLatency = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analyzer_latency_seconds",
		Help:      "External analyzer round-trip time",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"analyzer"})
}

// RecordRuleMatch records one catalog evaluation.
func (p *Provider) RecordRuleMatch(_ context.Context, duration time.Duration, rulesEvaluated, rulesMatched int) {
	if p == nil {
		return
	}
	p.Metrics.RuleMatchDuration.Observe(duration.Seconds())
	p.Metrics.RulesEvaluated.Add(float64(rulesEvaluated))
	p.Metrics.RulesMatched.Add(float64(rulesMatched))
}

// RecordClassification counts a scored comment under its level.
func (p *Provider) RecordClassification(_ context.Context, level string) {
	if p == nil {
		return
	}
	p.Metrics.CommentsClassified.WithLabelValues(level).Inc()
}

// RecordPrescreen counts a routing decision.
func (p *Provider) RecordPrescreen(_ context.Context, safe bool) {
	if p == nil {
		return
	}
	outcome := "suspect"
	if safe {
		outcome = "safe"
	}
	p.Metrics.PrescreenOutcomes.WithLabelValues(outcome).Inc()
}

// RecordMerge counts a tagged comment by source.
func (p *Provider) RecordMerge(_ context.Context, source string) {
	if p == nil {
		return
	}
	p.Metrics.MergeSource.WithLabelValues(source).Inc()
}

// RecordAnalyzerCall records one external analyzer call.
func (p *Provider) RecordAnalyzerCall(_ context.Context, analyzer, outcome string, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.AnalyzerCalls.WithLabelValues(analyzer, outcome).Inc()
	if outcome != OutcomeCacheHit && outcome != OutcomeCircuitOpen {
		p.Metrics.AnalyzerLatency.WithLabelValues(analyzer).Observe(duration.Seconds())
	}
}

// RecordBatchSize records the size of an analysis request.
func (p *Provider) RecordBatchSize(size int) {
	if p == nil {
		return
	}
	p.Metrics.BatchSize.Observe(float64(size))
}

// AddActiveWorkers adjusts the active worker gauge by delta.
func (p *Provider) AddActiveWorkers(delta int) {
	if p == nil {
		return
	}
	p.Metrics.ActiveWorkers.Add(float64(delta))
}

// IncrementCatalogLoadFailure counts a rejected catalog definition.
func (p *Provider) IncrementCatalogLoadFailure() {
	if p == nil {
		return
	}
	p.Metrics.CatalogLoadFailures.Inc()
}

// StartSpan starts a span. The caller ends it.
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
