package domain

// PipelineStats describes how comments were routed. RuleSkipped comments were
// settled by the pre-screen; LLMAnalyzed comments were routed to the external
// analyzer stage, so the two add up to the total. AnalyzerCalls counts the
// calls actually made, which is 0 in rule-only mode.
type PipelineStats struct {
	RuleSkipped   int     `json:"rule_skipped"`
	LLMAnalyzed   int     `json:"llm_analyzed"`
	AnalyzerCalls int     `json:"analyzer_calls"`
	SkipRatio     float64 `json:"skip_ratio"`
}

// Summary aggregates a set of tagged comments.
type Summary struct {
	TotalComments        int              `json:"total_comments"`
	CleanComments        int              `json:"clean_comments"`
	CleanPercentage      float64          `json:"clean_percentage"`
	ToxicComments        int              `json:"toxic_comments"`
	ToxicPercentage      float64          `json:"toxic_percentage"`
	AverageToxicityScore float64          `json:"average_toxicity_score"`
	CategoryDistribution map[Category]int `json:"category_distribution"`
	LevelDistribution    map[Level]int    `json:"level_distribution"`
	PipelineStats        PipelineStats    `json:"pipeline_stats"`
}
