package bootstrap

import (
	"fmt"

	infraconfig "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/config"
	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
)

const defaultConfigPath = "config.yml"

// LoadConfig loads and validates configuration from $CONFIG_PATH or
// config.yml. A missing file is allowed; defaults and env overrides apply.
func LoadConfig() (*config.Config, error) {
	return LoadConfigFrom(infraconfig.GetConfigPath(defaultConfigPath))
}

// LoadConfigFrom is LoadConfig with an explicit path.
func LoadConfigFrom(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	logCfg := infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	}
	if cfg.Logging.Output != "" {
		logCfg.OutputPaths = []string{cfg.Logging.Output}
	}
	logger, err := infralogger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger.With(infralogger.String("service", cfg.Service.Name)), nil
}
