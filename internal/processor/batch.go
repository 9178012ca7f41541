// Package processor runs comments through the rule layer, routes suspects
// to the external analyzer and merges the verdicts.
package processor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

// BatchClassifier scores many comments in parallel using a worker pool
type BatchClassifier struct {
	engine      *classifier.Engine
	concurrency int
	telemetry   *telemetry.Provider
	logger      logger.Logger
}

type batchJob struct {
	index int
	text  string
}

// NewBatchClassifier creates a batch classifier. concurrency <= 0 uses one
// worker per CPU.
func NewBatchClassifier(
	engine *classifier.Engine,
	concurrency int,
	log logger.Logger,
	tp *telemetry.Provider,
) *BatchClassifier {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchClassifier{engine: engine, concurrency: concurrency, telemetry: tp, logger: log}
}

// Concurrency returns the worker count.
func (b *BatchClassifier) Concurrency() int { return b.concurrency }

// Classify scores every text. Results are in input order. Rule scoring is
// cheap and pure, so the batch always completes even if ctx is cancelled.
func (b *BatchClassifier) Classify(ctx context.Context, texts []string) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, len(texts))
	if len(texts) == 0 {
		return results
	}

	start := time.Now()
	workers := min(b.concurrency, len(texts))
	jobs := make(chan batchJob, len(texts))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go b.worker(ctx, jobs, results, &wg)
	}

	for i, text := range texts {
		jobs <- batchJob{index: i, text: text}
	}
	close(jobs)
	wg.Wait()

	b.logger.Debug("Batch classification complete",
		logger.Int("total", len(texts)),
		logger.Int("workers", workers),
		logger.Duration("duration", time.Since(start)),
	)
	return results
}

// worker writes each result into its own slot, so no locking is needed.
func (b *BatchClassifier) worker(
	ctx context.Context,
	jobs <-chan batchJob,
	results []domain.AnalysisResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()
	b.telemetry.AddActiveWorkers(1)
	defer b.telemetry.AddActiveWorkers(-1)

	for job := range jobs {
		results[job.index] = b.engine.ClassifyAndScore(ctx, job.text)
	}
}
