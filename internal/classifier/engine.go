package classifier

import (
	"context"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

// Engine is the library entry point: one catalog, one set of merge options,
// and optional telemetry. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	catalog   *Catalog
	opts      MergeOptions
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// NewEngine builds an engine. A nil catalog means DefaultCatalog; a nil
// logger means no logging.
func NewEngine(catalog *Catalog, opts MergeOptions, log logger.Logger, tp *telemetry.Provider) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if log == nil {
		log = logger.NewNop()
	}
	log.Info("toxicity engine initialized",
		logger.Int("rules", catalog.Len()),
		logger.Int("relations", len(catalog.relations)),
		logger.Int("merge_floor_margin", opts.FloorMargin),
	)
	return &Engine{catalog: catalog, opts: opts, telemetry: tp, logger: log}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Normalize applies NFC so decomposed Hangul matches the catalog.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Classify returns the rule matches for text after normalization.
func (e *Engine) Classify(ctx context.Context, text string) []domain.RuleMatch {
	start := time.Now()
	matches := Classify(e.catalog, Normalize(text))
	e.telemetry.RecordRuleMatch(ctx, time.Since(start), e.catalog.Len(), len(matches))
	return matches
}

// ClassifyAndScore runs the rule layer end to end.
func (e *Engine) ClassifyAndScore(ctx context.Context, text string) domain.AnalysisResult {
	result := Score(e.Classify(ctx, text), e.catalog.relations)
	e.telemetry.RecordClassification(ctx, string(LevelFor(result.ToxicityScore)))
	return result
}

// MergeResult merges one comment's verdicts using the engine's options.
func (e *Engine) MergeResult(
	ctx context.Context,
	item domain.Comment,
	rule domain.AnalysisResult,
	external *domain.ExternalAnalysis,
	failureNote string,
) domain.TaggedComment {
	tagged := Merge(item, rule, external, failureNote, e.opts)
	e.telemetry.RecordMerge(ctx, string(tagged.AnalysisSource))
	return tagged
}

// Summarize aggregates tagged comments.
func (e *Engine) Summarize(items []domain.TaggedComment, stats domain.PipelineStats) domain.Summary {
	return Summarize(items, stats)
}
