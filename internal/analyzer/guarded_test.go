package analyzer_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/circuitbreaker"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/retry"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

// scriptedAnalyzer returns errs in order, then result.
type scriptedAnalyzer struct {
	mu     sync.Mutex
	errs   []error
	result *domain.ExternalAnalysis
	block  bool
	calls  atomic.Int32
}

func (s *scriptedAnalyzer) Analyze(ctx context.Context, _ analyzer.Request) (*domain.ExternalAnalysis, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	return s.result, nil
}

func (s *scriptedAnalyzer) Health(context.Context) error { return nil }
func (s *scriptedAnalyzer) Name() string                 { return "scripted" }

type memoryCache struct {
	mu   sync.Mutex
	data map[string]*domain.ExternalAnalysis
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]*domain.ExternalAnalysis)}
}

func (m *memoryCache) Get(_ context.Context, key string) (*domain.ExternalAnalysis, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, r *domain.ExternalAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = r
	return nil
}

func fastRetry(attempts int) retry.Config {
	return retry.Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func toxic() *domain.ExternalAnalysis {
	return &domain.ExternalAnalysis{
		Score:      75,
		Level:      domain.LevelSevere,
		Categories: []domain.Category{domain.CategoryPersonalAttack},
	}
}

func TestGuarded_SuccessIsCached(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{result: toxic()}
	cache := newMemoryCache()
	tp := telemetry.NewProvider(prometheus.NewRegistry())
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{Retry: fastRetry(1)},
		analyzer.WithCache(cache), analyzer.WithTelemetry(tp))

	req := analyzer.Request{CommentID: "c1", Text: "관종"}
	got, err := g.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Score)

	again, err := g.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), next.calls.Load())

	calls := tp.Metrics.AnalyzerCalls
	assert.InDelta(t, 1, testutil.ToFloat64(calls.WithLabelValues("scripted", telemetry.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(calls.WithLabelValues("scripted", telemetry.OutcomeCacheHit)), 0)
}

func TestGuarded_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{
		errs:   []error{analyzer.ErrQuotaExhausted, analyzer.ErrUnavailable},
		result: toxic(),
	}
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{Retry: fastRetry(3)})

	got, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, 75, got.Score)
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestGuarded_PermanentFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{errs: []error{analyzer.ErrInvalidResponse}}
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{Retry: fastRetry(3)})

	_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.ErrorIs(t, err, analyzer.ErrInvalidResponse)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestGuarded_RetriesExhausted(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{errs: []error{
		analyzer.ErrQuotaExhausted, analyzer.ErrQuotaExhausted, analyzer.ErrQuotaExhausted,
	}}
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{Retry: fastRetry(2)})

	_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.ErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	require.ErrorIs(t, err, analyzer.ErrQuotaExhausted)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestGuarded_TimeoutPerAttempt(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{block: true}
	tp := telemetry.NewProvider(prometheus.NewRegistry())
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{Timeout: 10 * time.Millisecond, Retry: fastRetry(1)},
		analyzer.WithTelemetry(tp))

	_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.InDelta(t, 1,
		testutil.ToFloat64(tp.Metrics.AnalyzerCalls.WithLabelValues("scripted", telemetry.OutcomeTimeout)), 0)
}

func TestGuarded_CircuitOpens(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	next := &scriptedAnalyzer{errs: []error{boom, boom, boom}}
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{
		Retry:   fastRetry(1),
		Breaker: circuitbreaker.Config{FailureThreshold: 2, Timeout: time.Hour},
	})

	for range 2 {
		_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, circuitbreaker.StateOpen, g.BreakerState())

	_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestGuarded_InvalidResponsesKeepCircuitClosed(t *testing.T) {
	t.Parallel()

	next := &scriptedAnalyzer{errs: []error{
		analyzer.ErrInvalidResponse, analyzer.ErrInvalidResponse, analyzer.ErrInvalidResponse,
	}}
	g := analyzer.NewGuarded(next, analyzer.GuardConfig{
		Retry:   fastRetry(1),
		Breaker: circuitbreaker.Config{FailureThreshold: 2},
	})

	for range 3 {
		_, err := g.Analyze(context.Background(), analyzer.Request{Text: "x"})
		require.ErrorIs(t, err, analyzer.ErrInvalidResponse)
	}
	assert.Equal(t, circuitbreaker.StateClosed, g.BreakerState())
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, analyzer.IsTransient(analyzer.ErrQuotaExhausted))
	assert.True(t, analyzer.IsTransient(context.DeadlineExceeded))
	assert.False(t, analyzer.IsTransient(context.Canceled))
	assert.False(t, analyzer.IsTransient(analyzer.ErrInvalidResponse))
}
