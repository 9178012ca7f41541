package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

const (
	defaultMaxConcurrent = 4
	defaultMaxComments   = 1000
	shortIDLength        = 8
)

var (
	// ErrNoComments is returned when a request carries no comments.
	ErrNoComments = errors.New("no comments to analyze")
	// ErrTooManyComments is returned when a request exceeds the comment limit.
	ErrTooManyComments = errors.New("too many comments")
	// ErrEmptyText is returned by RunSingle for blank input.
	ErrEmptyText = errors.New("comment text is required")
)

// Config tunes the pipeline.
type Config struct {
	// PrescreenThreshold defaults to DefaultPrescreenThreshold when nil.
	// Zero sends every comment to the analyzer.
	PrescreenThreshold *int
	// Workers sizes the rule classification pool; zero means one per CPU.
	Workers int
	// MaxConcurrent bounds in-flight analyzer calls.
	MaxConcurrent int
	MaxComments   int
}

// Request is one batch of comments from a single video.
type Request struct {
	Comments   []domain.Comment
	VideoTitle string
	Transcript string
}

// Report is the outcome of a pipeline run.
type Report struct {
	TaggedComments   []domain.TaggedComment `json:"tagged_comments"`
	Summary          domain.Summary         `json:"summary"`
	TranscriptLength int                    `json:"transcript_length"`
}

// Pipeline classifies comments, sends suspects to the analyzer and merges
// the verdicts. Every comment is tagged exactly once; analyzer failures
// only affect the comment they happened on.
type Pipeline struct {
	engine    *classifier.Engine
	threshold int
	batch     *BatchClassifier
	analyzer  analyzer.Analyzer
	evidence  *ontology.EvidenceMatcher
	cfg       Config
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// NewPipeline wires a pipeline. A nil analyzer means rule-only operation and
// a nil evidence matcher means no ontology hints in analyzer requests.
func NewPipeline(
	engine *classifier.Engine,
	a analyzer.Analyzer,
	evidence *ontology.EvidenceMatcher,
	cfg Config,
	log logger.Logger,
	tp *telemetry.Provider,
) *Pipeline {
	if a == nil {
		a = analyzer.Nop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	threshold := DefaultPrescreenThreshold
	if cfg.PrescreenThreshold != nil {
		threshold = *cfg.PrescreenThreshold
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.MaxComments <= 0 {
		cfg.MaxComments = defaultMaxComments
	}
	return &Pipeline{
		engine:    engine,
		threshold: threshold,
		batch:     NewBatchClassifier(engine, cfg.Workers, log, tp),
		analyzer:  a,
		evidence:  evidence,
		cfg:       cfg,
		telemetry: tp,
		logger:    log,
	}
}

// Analyzer returns the configured analyzer.
func (p *Pipeline) Analyzer() analyzer.Analyzer { return p.analyzer }

// Engine returns the rule engine.
func (p *Pipeline) Engine() *classifier.Engine { return p.engine }

// Run tags every comment in req and summarizes the batch. Cancelling ctx
// stops new analyzer calls; comments not yet analyzed resolve rule-only.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	if len(req.Comments) == 0 {
		return nil, ErrNoComments
	}
	if len(req.Comments) > p.cfg.MaxComments {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyComments, len(req.Comments), p.cfg.MaxComments)
	}

	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.run",
		attribute.Int("comments", len(req.Comments)),
		attribute.String("analyzer", p.analyzer.Name()),
	)
	defer span.End()
	p.telemetry.RecordBatchSize(len(req.Comments))

	texts := make([]string, len(req.Comments))
	for i, c := range req.Comments {
		texts[i] = c.Text
	}
	ruleResults := p.batch.Classify(ctx, texts)

	var suspects []int
	stats := domain.PipelineStats{}
	for i, r := range ruleResults {
		safe := PreScreen(r, p.threshold)
		p.telemetry.RecordPrescreen(ctx, safe)
		if safe {
			stats.RuleSkipped++
			continue
		}
		suspects = append(suspects, i)
	}

	stats.LLMAnalyzed = len(suspects)

	externals := make([]*domain.ExternalAnalysis, len(req.Comments))
	notes := make([]string, len(req.Comments))
	if analyzer.Enabled(p.analyzer) && len(suspects) > 0 {
		stats.AnalyzerCalls = p.analyzeSuspects(ctx, req, ruleResults, suspects, externals, notes)
	}

	tagged := make([]domain.TaggedComment, len(req.Comments))
	for i, c := range req.Comments {
		tagged[i] = p.engine.MergeResult(ctx, c, ruleResults[i], externals[i], notes[i])
	}

	summary := p.engine.Summarize(tagged, stats)
	p.logger.Info("Pipeline run complete",
		logger.Int("total", len(tagged)),
		logger.Int("rule_skipped", stats.RuleSkipped),
		logger.Int("llm_analyzed", stats.LLMAnalyzed),
		logger.Int("analyzer_calls", stats.AnalyzerCalls),
		logger.Int("toxic", summary.ToxicComments),
	)

	return &Report{
		TaggedComments:   tagged,
		Summary:          summary,
		TranscriptLength: utf8.RuneCountInString(req.Transcript),
	}, nil
}

// analyzeSuspects calls the analyzer for each suspect with bounded
// concurrency and returns how many calls were made. Each goroutine writes
// only its own slots of externals and notes.
func (p *Pipeline) analyzeSuspects(
	ctx context.Context,
	req Request,
	ruleResults []domain.AnalysisResult,
	suspects []int,
	externals []*domain.ExternalAnalysis,
	notes []string,
) int {
	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.analyze",
		attribute.Int("suspects", len(suspects)),
	)
	defer span.End()

	sem := make(chan struct{}, p.cfg.MaxConcurrent)
	var wg sync.WaitGroup
	submitted := 0

	for _, idx := range suspects {
		if ctx.Err() != nil {
			notes[idx] = classifier.FailureNote(ctx.Err())
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			notes[idx] = classifier.FailureNote(ctx.Err())
			continue
		}

		submitted++
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			externals[idx], notes[idx] = p.analyzeOne(ctx, req, req.Comments[idx], ruleResults[idx])
		}(idx)
	}
	wg.Wait()
	return submitted
}

func (p *Pipeline) analyzeOne(
	ctx context.Context,
	req Request,
	c domain.Comment,
	rule domain.AnalysisResult,
) (*domain.ExternalAnalysis, string) {
	ext, err := p.analyzer.Analyze(ctx, analyzer.Request{
		CommentID:      c.CommentID,
		Text:           c.Text,
		VideoTitle:     req.VideoTitle,
		Transcript:     req.Transcript,
		RuleCategories: rule.MatchedCategories,
		Evidence:       p.evidence.Match(classifier.Normalize(c.Text)),
	})
	if err != nil {
		p.logger.Warn("Analyzer failed, using rule result",
			logger.CommentID(c.CommentID),
			logger.Error(err),
		)
		return nil, classifier.FailureNote(err)
	}
	return ext, ""
}

// RunSingle tags one free-standing comment under a generated short id.
func (p *Pipeline) RunSingle(ctx context.Context, text, transcript, videoTitle string) (*domain.TaggedComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	report, err := p.Run(ctx, Request{
		Comments:   []domain.Comment{{CommentID: NewShortID(), Text: text}},
		VideoTitle: videoTitle,
		Transcript: transcript,
	})
	if err != nil {
		return nil, err
	}
	return &report.TaggedComments[0], nil
}

// NewShortID returns the first eight characters of a random UUID.
func NewShortID() string {
	return uuid.NewString()[:shortIDLength]
}
