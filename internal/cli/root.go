// Package cli implements the toxictag command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/config"
	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/bootstrap"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	debug      bool
}

// NewRootCommand builds the toxictag command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "toxictag",
		Short:         "Tag comments for toxicity",
		Long:          `Classify Korean comments with the rule engine and, when configured, an external analyzer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "toxictag version %s\n", version)
		},
	})
	root.AddCommand(newClassifyCommand(opts))
	root.AddCommand(newAnalyzeCommand(opts))
	root.AddCommand(newRulesCommand(opts))

	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCommand(version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// load reads configuration and builds a logger that writes to stderr so
// command output stays machine-readable.
func (o *options) load() (*config.Config, infralogger.Logger, error) {
	path := o.configPath
	if path == "" {
		path = infraconfig.GetConfigPath("config.yml")
	}
	cfg, err := bootstrap.LoadConfigFrom(path)
	if err != nil {
		return nil, nil, err
	}

	cfg.Logging.Output = "stderr"
	if o.debug {
		cfg.Logging.Level = "debug"
	} else if cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func validateFormat(format string) error {
	if format != formatJSON && format != formatTable {
		return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatJSON, formatTable)
	}
	return nil
}
