// Package bootstrap wires the comment-tagger components from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/metrics"
	infraredis "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/redis"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/processor"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/storage"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

const metricsNamespace = "comment_tagger"

// Components holds everything a binary needs to serve requests.
type Components struct {
	Config    *config.Config
	Logger    infralogger.Logger
	Telemetry *telemetry.Provider
	// HTTPMetrics shares the telemetry registry.
	HTTPMetrics *metrics.HTTPMetrics
	Engine      *classifier.Engine
	Analyzer    analyzer.Analyzer
	Evidence    *ontology.EvidenceMatcher
	Pipeline    *processor.Pipeline
	// Redis is nil when no cache is configured or reachable.
	Redis *redis.Client
}

// NewComponents builds the engine, analyzer and pipeline. Metrics are
// registered on a fresh registry that also carries the Go runtime collectors.
// A catalog that fails to load is fatal and reported as an error.
func NewComponents(ctx context.Context, cfg *config.Config, logger infralogger.Logger) (*Components, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tp := telemetry.NewProvider(reg)

	catalog, err := classifier.LoadCatalog(cfg.Classification.CatalogPath)
	if err != nil {
		tp.IncrementCatalogLoadFailure()
		logger.Error("Failed to load rule catalog",
			infralogger.ErrorCode("catalog_invalid"),
			infralogger.String("path", cfg.Classification.CatalogPath),
			infralogger.Error(err),
		)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	engine := classifier.NewEngine(catalog, classifier.MergeOptions{
		FloorMargin: cfg.Classification.MergeFloorMargin,
	}, logger, tp)

	comps := &Components{
		Config:      cfg,
		Logger:      logger,
		Telemetry:   tp,
		HTTPMetrics: metrics.NewHTTPMetrics(reg, metricsNamespace),
		Engine:      engine,
		Evidence:    ontology.DefaultEvidenceMatcher(),
	}

	var cache analyzer.Cache
	if cfg.AnalyzerEnabled() {
		cache = comps.setupCache(ctx)
	}

	comps.Analyzer, err = NewAnalyzer(cfg, cache, logger, tp)
	if err != nil {
		comps.Close()
		return nil, err
	}

	comps.Pipeline = processor.NewPipeline(engine, comps.Analyzer, comps.Evidence, processor.Config{
		PrescreenThreshold: &cfg.Classification.PrescreenThreshold,
		Workers:            cfg.Classification.Workers,
		MaxConcurrent:      cfg.Analyzer.MaxConcurrent,
		MaxComments:        cfg.Classification.MaxComments,
	}, logger, tp)

	logger.Info("Pipeline initialized",
		infralogger.Int("prescreen_threshold", cfg.Classification.PrescreenThreshold),
		infralogger.Int("evidence_indicators", comps.Evidence.Len()),
		infralogger.String("analyzer", comps.Analyzer.Name()),
	)
	return comps, nil
}

// setupCache connects to Redis for the analysis cache. The cache is
// optional: an unset or unreachable server disables it.
func (c *Components) setupCache(ctx context.Context) analyzer.Cache {
	if c.Config.Redis.Address == "" {
		return nil
	}
	client, err := infraredis.NewClient(ctx, c.Config.Redis)
	if err != nil {
		c.Logger.Warn("Failed to connect to Redis, analysis cache disabled", infralogger.Error(err))
		return nil
	}
	c.Redis = client
	c.Logger.Info("Analysis cache enabled",
		infralogger.String("redis_address", c.Config.Redis.Address),
		infralogger.Duration("ttl", c.Config.Analyzer.CacheTTL),
	)
	return storage.NewAnalysisCache(client, c.Config.Analyzer.CacheTTL)
}

// Close releases the Redis connection, if any.
func (c *Components) Close() {
	if c.Redis == nil {
		return
	}
	if err := c.Redis.Close(); err != nil {
		c.Logger.Warn("Failed to close Redis client", infralogger.Error(err))
	}
}
