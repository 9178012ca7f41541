package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "comment-tagger", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.Classification.PrescreenThreshold)
	assert.Equal(t, 10, cfg.Classification.MergeFloorMargin)
	assert.Equal(t, 1000, cfg.Classification.MaxComments)
	assert.Equal(t, config.ProviderNone, cfg.Analyzer.Provider)
	assert.Equal(t, 30*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, 4, cfg.Analyzer.MaxConcurrent)
	assert.Equal(t, 24*time.Hour, cfg.Analyzer.CacheTTL)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Analyzer.Anthropic.Model)
	assert.InDelta(t, 0.3, cfg.Analyzer.Anthropic.Temperature, 1e-9)
	assert.False(t, cfg.AnalyzerEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
service:
  port: 9000
classification:
  prescreen_threshold: 25
  merge_floor_margin: 15
analyzer:
  provider: sidecar
  timeout: 5s
  sidecar:
    url: http://localhost:8077
redis:
  address: localhost:6379
`)
	t.Setenv("PRESCREEN_THRESHOLD", "30")
	t.Setenv("ANALYZER_MAX_CONCURRENT", "8")
	t.Setenv("CORS_ORIGINS", "https://hub.example, https://studio.example")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, 30, cfg.Classification.PrescreenThreshold)
	assert.Equal(t, 15, cfg.Classification.MergeFloorMargin)
	assert.Equal(t, config.ProviderSidecar, cfg.Analyzer.Provider)
	assert.Equal(t, 5*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, 8, cfg.Analyzer.MaxConcurrent)
	assert.Equal(t, "http://localhost:8077", cfg.Analyzer.Sidecar.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, []string{"https://hub.example", "https://studio.example"}, cfg.Service.CORSOrigins)
	assert.True(t, cfg.AnalyzerEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitZeroKeepsValue(t *testing.T) {
	path := writeConfig(t, `
classification:
  prescreen_threshold: 0
analyzer:
  provider: anthropic
  anthropic:
    api_key: sk-test
    temperature: 0
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Classification.PrescreenThreshold)
	assert.InDelta(t, 0, cfg.Analyzer.Anthropic.Temperature, 1e-9)
	assert.Equal(t, 10, cfg.Classification.MergeFloorMargin)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Analyzer.Anthropic.Model)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "service: [unterminated")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "threshold above range",
			mutate:  func(c *config.Config) { c.Classification.PrescreenThreshold = 101 },
			wantErr: "classification.prescreen_threshold",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *config.Config) { c.Analyzer.Provider = "gemini" },
			wantErr: "analyzer.provider",
		},
		{
			name: "anthropic without key",
			mutate: func(c *config.Config) {
				c.Analyzer.Provider = config.ProviderAnthropic
				c.Analyzer.Anthropic.APIKey = ""
			},
			wantErr: "analyzer.anthropic.api_key",
		},
		{
			name: "sidecar without url",
			mutate: func(c *config.Config) {
				c.Analyzer.Provider = config.ProviderSidecar
				c.Analyzer.Sidecar.URL = ""
			},
			wantErr: "analyzer.sidecar.url",
		},
		{
			name:    "bad port",
			mutate:  func(c *config.Config) { c.Service.Port = 70000 },
			wantErr: "service.port",
		},
		{
			name:    "negative workers",
			mutate:  func(c *config.Config) { c.Classification.Workers = -1 },
			wantErr: "classification.workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	var cfg *config.Config
	require.ErrorIs(t, cfg.Validate(), config.ErrNoConfig)
}
