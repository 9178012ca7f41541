package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// classifyOutput is the JSON shape of the classify command.
type classifyOutput struct {
	Text    string                `json:"text"`
	Result  domain.AnalysisResult `json:"result"`
	Level   domain.Level          `json:"level"`
	Matches []domain.RuleMatch    `json:"matches"`
}

func newClassifyCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Run the rule engine on one comment",
		Long:  `Classify a single comment with the rule engine only. The external analyzer is never called.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			catalog, err := classifier.LoadCatalog(cfg.Classification.CatalogPath)
			if err != nil {
				return err
			}
			engine := classifier.NewEngine(catalog, classifier.MergeOptions{
				FloorMargin: cfg.Classification.MergeFloorMargin,
			}, log, nil)

			text := strings.Join(args, " ")
			matches := engine.Classify(cmd.Context(), text)
			result := classifier.Score(matches, catalog.Relations())
			out := classifyOutput{
				Text:    text,
				Result:  result,
				Level:   classifier.LevelFor(result.ToxicityScore),
				Matches: matches,
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			renderClassification(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: json or table")
	return cmd
}
