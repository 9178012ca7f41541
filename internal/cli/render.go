package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/processor"
)

const maxTextWidth = 40

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func joinCategories(cats []domain.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func renderClassification(w io.Writer, out classifyOutput) {
	t := newTable(w)
	t.SetTitle("score %d (%s)", out.Result.ToxicityScore, out.Level)
	t.AppendHeader(table.Row{"Rule", "Category", "Confidence", "Modifier", "Matched"})
	for _, m := range out.Matches {
		t.AppendRow(table.Row{m.RuleID, m.Category, m.Confidence, m.ScoreModifier, m.MatchedPattern})
	}
	t.AppendFooter(table.Row{"", "", "", "toxic", out.Result.IsToxic})
	t.Render()
}

func renderReport(w io.Writer, report *processor.Report) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Comment", "Score", "Level", "Categories", "Source"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxTextWidth},
	})
	for _, tc := range report.TaggedComments {
		t.AppendRow(table.Row{
			tc.CommentID,
			tc.Text,
			tc.Score,
			tc.Level,
			joinCategories(tc.Categories),
			tc.AnalysisSource,
		})
	}
	t.Render()

	s := report.Summary
	st := newTable(w)
	st.SetTitle("Summary")
	st.AppendRows([]table.Row{
		{"Total comments", s.TotalComments},
		{"Toxic comments", fmt.Sprintf("%d (%.1f%%)", s.ToxicComments, s.ToxicPercentage)},
		{"Clean comments", fmt.Sprintf("%d (%.1f%%)", s.CleanComments, s.CleanPercentage)},
		{"Average score", fmt.Sprintf("%.1f", s.AverageToxicityScore)},
		{"Rule skipped", s.PipelineStats.RuleSkipped},
		{"Sent to analyzer", s.PipelineStats.LLMAnalyzed},
		{"Analyzer calls", s.PipelineStats.AnalyzerCalls},
		{"Skip ratio", fmt.Sprintf("%.1f%%", s.PipelineStats.SkipRatio)},
	})
	st.Render()
}

func renderRules(w io.Writer, rules []domain.DetectionRule) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Category", "Modifier", "Confidence", "Patterns", "Exclusions"})
	for _, r := range rules {
		t.AppendRow(table.Row{r.ID, r.Category, r.ScoreModifier, r.Confidence, len(r.Patterns), len(r.NegativePatterns)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "total", len(rules)})
	t.Render()
}

func renderRelations(w io.Writer, relations []domain.CategoryRelation) {
	t := newTable(w)
	t.AppendHeader(table.Row{"From", "To", "Type", "Bonus"})
	for _, r := range relations {
		t.AppendRow(table.Row{r.From, r.To, r.Type, r.Bonus})
	}
	t.Render()
}
