package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/circuitbreaker"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/retry"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

const defaultTimeout = 30 * time.Second

// Cache stores analyzer results between runs.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.ExternalAnalysis, bool, error)
	Set(ctx context.Context, key string, result *domain.ExternalAnalysis) error
}

// GuardConfig bounds calls to the wrapped analyzer.
type GuardConfig struct {
	// Timeout applies to each attempt.
	Timeout time.Duration
	// RateLimit is calls per second; zero disables limiting.
	RateLimit float64
	Burst     int
	Retry     retry.Config
	Breaker   circuitbreaker.Config
}

// Guarded wraps an Analyzer with a per-attempt timeout, a token bucket,
// retries on transient failures, a circuit breaker and an optional cache.
type Guarded struct {
	next      Analyzer
	timeout   time.Duration
	limiter   *rate.Limiter
	retry     retry.Config
	breaker   *circuitbreaker.Breaker
	cache     Cache
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// GuardOption configures optional collaborators of a Guarded analyzer.
type GuardOption func(*Guarded)

// WithCache enables result caching.
func WithCache(c Cache) GuardOption { return func(g *Guarded) { g.cache = c } }

// WithTelemetry records call outcomes.
func WithTelemetry(tp *telemetry.Provider) GuardOption {
	return func(g *Guarded) { g.telemetry = tp }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) GuardOption { return func(g *Guarded) { g.logger = l } }

// NewGuarded wraps next.
func NewGuarded(next Analyzer, cfg GuardConfig, opts ...GuardOption) *Guarded {
	g := &Guarded{
		next:    next,
		timeout: cfg.Timeout,
		retry:   cfg.Retry,
		logger:  logger.NewNop(),
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	if cfg.RateLimit > 0 {
		burst := max(cfg.Burst, 1)
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if g.retry.IsRetryable == nil {
		g.retry.IsRetryable = IsTransient
	}
	for _, opt := range opts {
		opt(g)
	}

	breakerCfg := cfg.Breaker
	breakerCfg.IsFailure = countsAgainstBreaker
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		g.logger.Warn("analyzer circuit state changed",
			logger.String("analyzer", next.Name()),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	}
	g.breaker = circuitbreaker.New(breakerCfg)
	return g
}

// Name returns the wrapped analyzer's name.
func (g *Guarded) Name() string { return g.next.Name() }

// Health delegates to the wrapped analyzer.
func (g *Guarded) Health(ctx context.Context) error { return g.next.Health(ctx) }

// BreakerState reports the circuit breaker state.
func (g *Guarded) BreakerState() circuitbreaker.State { return g.breaker.State() }

// Analyze runs one guarded analysis. Every failure is returned as an error.
func (g *Guarded) Analyze(ctx context.Context, req Request) (*domain.ExternalAnalysis, error) {
	start := time.Now()
	name := g.next.Name()

	key := ""
	if g.cache != nil {
		key = CacheKey(name, req)
		cached, ok, err := g.cache.Get(ctx, key)
		switch {
		case err != nil:
			g.logger.Warn("analysis cache read failed", logger.CommentID(req.CommentID), logger.Error(err))
		case ok:
			g.telemetry.RecordAnalyzerCall(ctx, name, telemetry.OutcomeCacheHit, time.Since(start))
			return cached, nil
		}
	}

	var result *domain.ExternalAnalysis
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, g.retryConfig(req), func(ctx context.Context) error {
			r, callErr := g.attempt(ctx, req)
			if callErr != nil {
				return callErr
			}
			result = r
			return nil
		})
	})

	g.telemetry.RecordAnalyzerCall(ctx, name, outcomeOf(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if g.cache != nil && result != nil {
		if setErr := g.cache.Set(ctx, key, result); setErr != nil {
			g.logger.Warn("analysis cache write failed", logger.CommentID(req.CommentID), logger.Error(setErr))
		}
	}
	return result, nil
}

func (g *Guarded) attempt(ctx context.Context, req Request) (*domain.ExternalAnalysis, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Analyze(callCtx, req)
}

func (g *Guarded) retryConfig(req Request) retry.Config {
	cfg := g.retry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		g.logger.Debug("retrying analyzer call",
			logger.CommentID(req.CommentID),
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err),
		)
	}
	return cfg
}

// IsTransient reports whether an analyzer failure may succeed on retry.
func IsTransient(err error) bool {
	if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrUnavailable) {
		return true
	}
	return retry.DefaultIsRetryable(err)
}

// Invalid replies and caller cancellation say nothing about analyzer health.
func countsAgainstBreaker(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return !errors.Is(err, ErrInvalidResponse)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeSuccess
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return telemetry.OutcomeCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		return telemetry.OutcomeTimeout
	default:
		return telemetry.OutcomeError
	}
}
