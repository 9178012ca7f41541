// Package config holds the comment-tagger service configuration.
package config

import (
	"errors"
	"strings"
	"time"

	infraconfig "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/config"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/profiling"
	infraredis "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/redis"
)

// Default configuration values.
const (
	defaultServiceName    = "comment-tagger"
	defaultServiceVersion = "1.0.0"
	defaultPort           = 8090

	defaultLogLevel  = "info"
	defaultLogFormat = "json"

	defaultPrescreenThreshold = 20
	defaultMergeFloorMargin   = 10
	defaultMaxComments        = 1000

	defaultAnalyzerTimeout   = 30 * time.Second
	defaultMaxConcurrent     = 4
	defaultRetryAttempts     = 3
	defaultRetryInitialDelay = 500 * time.Millisecond
	defaultRetryMaxDelay     = 10 * time.Second
	defaultBreakerFailures   = 5
	defaultBreakerSuccesses  = 2
	defaultBreakerTimeout    = 30 * time.Second
	defaultCacheTTL          = 24 * time.Hour

	defaultAnthropicModel     = "claude-sonnet-4-5"
	defaultAnthropicMaxTokens = 1024
	defaultTemperature        = 0.3
	defaultSidecarTimeout     = 10 * time.Second

	maxScore = 100
)

// Analyzer providers.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderSidecar   = "sidecar"
)

// ErrNoConfig is returned by Validate on a nil config.
var ErrNoConfig = errors.New("config is nil")

// Config holds the service configuration.
type Config struct {
	Service        ServiceConfig        `yaml:"service"`
	Logging        LoggingConfig        `yaml:"logging"`
	Auth           AuthConfig           `yaml:"auth"`
	Classification ClassificationConfig `yaml:"classification"`
	Analyzer       AnalyzerConfig       `yaml:"analyzer"`
	Redis          infraredis.Config    `yaml:"redis"`
	Profiling      profiling.Config     `yaml:"profiling"`
}

// ServiceConfig holds HTTP service settings.
type ServiceConfig struct {
	Name    string `env:"SERVICE_NAME"          yaml:"name"`
	Version string `env:"SERVICE_VERSION"       yaml:"version"`
	Port    int    `env:"COMMENT_TAGGER_PORT"   yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"             yaml:"debug"`
	// CORSOrigins limits browser origins; empty allows any.
	CORSOrigins []string `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `env:"LOG_OUTPUT" yaml:"output"`
}

// AuthConfig holds API authentication settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// ClassificationConfig tunes the rule engine and pipeline.
type ClassificationConfig struct {
	// CatalogPath points at a YAML rule catalog; empty uses the built-in one.
	CatalogPath        string `env:"CATALOG_PATH"        yaml:"catalog_path"`
	PrescreenThreshold int    `env:"PRESCREEN_THRESHOLD" yaml:"prescreen_threshold"`
	MergeFloorMargin   int    `env:"MERGE_FLOOR_MARGIN"  yaml:"merge_floor_margin"`
	Workers            int    `env:"CLASSIFY_WORKERS"    yaml:"workers"`
	MaxComments        int    `env:"MAX_COMMENTS"        yaml:"max_comments"`
}

// AnalyzerConfig selects and guards the external analyzer.
type AnalyzerConfig struct {
	Provider      string          `env:"ANALYZER_PROVIDER"       yaml:"provider"`
	Timeout       time.Duration   `env:"ANALYZER_TIMEOUT"        yaml:"timeout"`
	MaxConcurrent int             `env:"ANALYZER_MAX_CONCURRENT" yaml:"max_concurrent"`
	RateLimitRPS  float64         `env:"ANALYZER_RATE_LIMIT_RPS" yaml:"rate_limit_rps"`
	Burst         int             `env:"ANALYZER_BURST"          yaml:"burst"`
	CacheTTL      time.Duration   `env:"ANALYZER_CACHE_TTL"      yaml:"cache_ttl"`
	Retry         RetryConfig     `yaml:"retry"`
	Breaker       BreakerConfig   `yaml:"breaker"`
	Anthropic     AnthropicConfig `yaml:"anthropic"`
	Sidecar       SidecarConfig   `yaml:"sidecar"`
}

// RetryConfig is the backoff schedule for transient analyzer failures.
type RetryConfig struct {
	MaxAttempts  int           `env:"ANALYZER_RETRY_MAX_ATTEMPTS" yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// BreakerConfig configures the analyzer circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

// AnthropicConfig configures the Claude analyzer.
type AnthropicConfig struct {
	APIKey      string  `env:"ANTHROPIC_API_KEY"     yaml:"api_key"`
	BaseURL     string  `env:"ANTHROPIC_BASE_URL"    yaml:"base_url"`
	Model       string  `env:"ANTHROPIC_MODEL"       yaml:"model"`
	MaxTokens   int64   `env:"ANTHROPIC_MAX_TOKENS"  yaml:"max_tokens"`
	Temperature float64 `env:"ANTHROPIC_TEMPERATURE" yaml:"temperature"`
}

// SidecarConfig configures the self-hosted model sidecar.
type SidecarConfig struct {
	URL     string        `env:"ANALYZER_SIDECAR_URL"     yaml:"url"`
	Timeout time.Duration `env:"ANALYZER_SIDECAR_TIMEOUT" yaml:"timeout"`
}

// Load starts from the defaults, then applies path and environment overrides.
// An explicit zero, such as prescreen_threshold 0 or temperature 0, is kept.
// A missing file yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, true, setDefaults)
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNoConfig
	}

	errs := []error{
		infraconfig.ValidatePort("service.port", c.Service.Port),
		infraconfig.ValidateOneOf("logging.level", c.Logging.Level, "debug", "info", "warn", "error"),
		infraconfig.ValidateOneOf("logging.format", c.Logging.Format, "json", "console"),
		infraconfig.ValidateRange("classification.prescreen_threshold", c.Classification.PrescreenThreshold, 0, maxScore),
		infraconfig.ValidateRange("classification.merge_floor_margin", c.Classification.MergeFloorMargin, 0, maxScore),
		infraconfig.ValidatePositive("classification.max_comments", c.Classification.MaxComments),
		infraconfig.ValidateOneOf("analyzer.provider", c.Analyzer.Provider,
			ProviderNone, ProviderAnthropic, ProviderSidecar),
		infraconfig.ValidatePositive("analyzer.max_concurrent", c.Analyzer.MaxConcurrent),
		infraconfig.ValidatePositive("analyzer.timeout", int64(c.Analyzer.Timeout)),
	}
	if c.Classification.Workers < 0 {
		errs = append(errs, &infraconfig.ValidationError{
			Field: "classification.workers", Message: "must not be negative",
		})
	}
	if c.Analyzer.RateLimitRPS < 0 {
		errs = append(errs, &infraconfig.ValidationError{
			Field: "analyzer.rate_limit_rps", Message: "must not be negative",
		})
	}

	switch strings.ToLower(c.Analyzer.Provider) {
	case ProviderAnthropic:
		if strings.TrimSpace(c.Analyzer.Anthropic.APIKey) == "" {
			errs = append(errs, &infraconfig.ValidationError{
				Field: "analyzer.anthropic.api_key", Message: "is required for the anthropic provider",
			})
		}
		if t := c.Analyzer.Anthropic.Temperature; t < 0 || t > 1 {
			errs = append(errs, &infraconfig.ValidationError{
				Field: "analyzer.anthropic.temperature", Message: "must be between 0 and 1",
			})
		}
	case ProviderSidecar:
		if strings.TrimSpace(c.Analyzer.Sidecar.URL) == "" {
			errs = append(errs, &infraconfig.ValidationError{
				Field: "analyzer.sidecar.url", Message: "is required for the sidecar provider",
			})
		}
	}

	return infraconfig.Join(errs...)
}

// AnalyzerEnabled reports whether an external analyzer is configured.
func (c *Config) AnalyzerEnabled() bool {
	p := strings.ToLower(c.Analyzer.Provider)
	return p != "" && p != ProviderNone
}

// setDefaults runs on a zero Config before the file is read.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setClassificationDefaults(&cfg.Classification)
	setAnalyzerDefaults(&cfg.Analyzer)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultPort
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.Output == "" {
		l.Output = "stdout"
	}
}

func setClassificationDefaults(c *ClassificationConfig) {
	if c.PrescreenThreshold == 0 {
		c.PrescreenThreshold = defaultPrescreenThreshold
	}
	if c.MergeFloorMargin == 0 {
		c.MergeFloorMargin = defaultMergeFloorMargin
	}
	if c.MaxComments == 0 {
		c.MaxComments = defaultMaxComments
	}
}

func setAnalyzerDefaults(a *AnalyzerConfig) {
	if a.Provider == "" {
		a.Provider = ProviderNone
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAnalyzerTimeout
	}
	if a.MaxConcurrent == 0 {
		a.MaxConcurrent = defaultMaxConcurrent
	}
	if a.CacheTTL == 0 {
		a.CacheTTL = defaultCacheTTL
	}
	if a.Retry.MaxAttempts == 0 {
		a.Retry.MaxAttempts = defaultRetryAttempts
	}
	if a.Retry.InitialDelay == 0 {
		a.Retry.InitialDelay = defaultRetryInitialDelay
	}
	if a.Retry.MaxDelay == 0 {
		a.Retry.MaxDelay = defaultRetryMaxDelay
	}
	if a.Breaker.FailureThreshold == 0 {
		a.Breaker.FailureThreshold = defaultBreakerFailures
	}
	if a.Breaker.SuccessThreshold == 0 {
		a.Breaker.SuccessThreshold = defaultBreakerSuccesses
	}
	if a.Breaker.Timeout == 0 {
		a.Breaker.Timeout = defaultBreakerTimeout
	}
	if a.Anthropic.Model == "" {
		a.Anthropic.Model = defaultAnthropicModel
	}
	if a.Anthropic.MaxTokens == 0 {
		a.Anthropic.MaxTokens = defaultAnthropicMaxTokens
	}
	if a.Anthropic.Temperature == 0 {
		a.Anthropic.Temperature = defaultTemperature
	}
	if a.Sidecar.Timeout == 0 {
		a.Sidecar.Timeout = defaultSidecarTimeout
	}
}
