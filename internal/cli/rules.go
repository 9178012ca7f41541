package cli

import (
	"github.com/spf13/cobra"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
)

func newRulesCommand(opts *options) *cobra.Command {
	var relations bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the detection rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			catalog, err := classifier.LoadCatalog(cfg.Classification.CatalogPath)
			if err != nil {
				return err
			}

			renderRules(cmd.OutOrStdout(), catalog.Rules())
			if relations {
				renderRelations(cmd.OutOrStdout(), catalog.Relations())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&relations, "relations", false, "also list category relations")
	return cmd
}
