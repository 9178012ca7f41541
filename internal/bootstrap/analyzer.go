package bootstrap

import (
	"fmt"
	"strings"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/circuitbreaker"
	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/retry"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/llmclient"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/mlclient"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/telemetry"
)

// NewAnalyzer builds the configured external analyzer. Provider "none"
// returns analyzer.Nop; the others are wrapped in a Guarded decorator.
// A nil cache disables result caching.
func NewAnalyzer(
	cfg *config.Config,
	cache analyzer.Cache,
	logger infralogger.Logger,
	tp *telemetry.Provider,
) (analyzer.Analyzer, error) {
	var base analyzer.Analyzer
	a := cfg.Analyzer

	switch strings.ToLower(a.Provider) {
	case "", config.ProviderNone:
		logger.Info("External analyzer disabled, running rule-only")
		return analyzer.Nop{}, nil
	case config.ProviderAnthropic:
		client, err := llmclient.New(llmclient.Config{
			APIKey:      a.Anthropic.APIKey,
			BaseURL:     a.Anthropic.BaseURL,
			Model:       a.Anthropic.Model,
			MaxTokens:   a.Anthropic.MaxTokens,
			Temperature: &a.Anthropic.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create anthropic analyzer: %w", err)
		}
		base = client
	case config.ProviderSidecar:
		base = mlclient.NewClient(a.Sidecar.URL, a.Sidecar.Timeout)
	default:
		return nil, fmt.Errorf("unknown analyzer provider %q", a.Provider)
	}

	opts := []analyzer.GuardOption{
		analyzer.WithLogger(logger),
		analyzer.WithTelemetry(tp),
	}
	if cache != nil {
		opts = append(opts, analyzer.WithCache(cache))
	}

	guarded := analyzer.NewGuarded(base, analyzer.GuardConfig{
		Timeout:   a.Timeout,
		RateLimit: a.RateLimitRPS,
		Burst:     a.Burst,
		Retry: retry.Config{
			MaxAttempts:  a.Retry.MaxAttempts,
			InitialDelay: a.Retry.InitialDelay,
			MaxDelay:     a.Retry.MaxDelay,
		},
		Breaker: circuitbreaker.Config{
			FailureThreshold: a.Breaker.FailureThreshold,
			SuccessThreshold: a.Breaker.SuccessThreshold,
			Timeout:          a.Breaker.Timeout,
		},
	}, opts...)

	logger.Info("External analyzer enabled",
		infralogger.String("analyzer", base.Name()),
		infralogger.Duration("timeout", a.Timeout),
		infralogger.Int("max_concurrent", a.MaxConcurrent),
		infralogger.Bool("cache", cache != nil),
	)
	return guarded, nil
}
