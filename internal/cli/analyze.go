package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/bootstrap"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/processor"
)

var errNoInput = errors.New("--file is required")

// commentsFile is the object form of an input file. A bare JSON array of
// comments is accepted as well.
type commentsFile struct {
	VideoTitle string           `json:"video_title"`
	Transcript string           `json:"transcript"`
	Comments   []domain.Comment `json:"comments"`
}

func newAnalyzeCommand(opts *options) *cobra.Command {
	var (
		file           string
		title          string
		transcriptFile string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Tag a file of comments with the full pipeline",
		Long: `Run the rule engine, pre-screen, configured external analyzer and merge
over every comment in a JSON file, then print the tagged comments and summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errNoInput
			}
			if err := validateFormat(format); err != nil {
				return err
			}

			input, err := readComments(file)
			if err != nil {
				return err
			}
			if title != "" {
				input.VideoTitle = title
			}
			if transcriptFile != "" {
				data, readErr := os.ReadFile(transcriptFile)
				if readErr != nil {
					return fmt.Errorf("read transcript: %w", readErr)
				}
				input.Transcript = string(data)
			}
			for i := range input.Comments {
				if input.Comments[i].CommentID == "" {
					input.Comments[i].CommentID = processor.NewShortID()
				}
			}

			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			comps, err := bootstrap.NewComponents(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comps.Close()

			report, err := comps.Pipeline.Run(cmd.Context(), processor.Request{
				Comments:   input.Comments,
				VideoTitle: input.VideoTitle,
				Transcript: input.Transcript,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file with comments (array or {\"comments\": [...]})")
	cmd.Flags().StringVar(&title, "title", "", "video title")
	cmd.Flags().StringVar(&transcriptFile, "transcript-file", "", "plain-text transcript file")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: json or table")
	return cmd
}

func readComments(path string) (*commentsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var comments []domain.Comment
		if err = json.Unmarshal(trimmed, &comments); err != nil {
			return nil, fmt.Errorf("parse comments: %w", err)
		}
		return &commentsFile{Comments: comments}, nil
	}

	var f commentsFile
	if err = json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("parse comments: %w", err)
	}
	return &f, nil
}
