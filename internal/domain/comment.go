package domain

// Comment is one piece of user text plus the metadata carried through to the
// tagged output.
type Comment struct {
	CommentID   string `json:"comment_id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	PublishedAt string `json:"published_at"`
	LikeCount   int    `json:"like_count"`
}

// TaggedComment is the final per-comment record. It is created once by the
// merge step and not modified afterwards.
type TaggedComment struct {
	Comment

	Score          int            `json:"toxicity_score"`
	Level          Level          `json:"toxicity_level"`
	Categories     []Category     `json:"categories"`
	Explanation    string         `json:"explanation"`
	Suggestion     *string        `json:"suggestion"`
	AnalysisSource AnalysisSource `json:"analysis_source"`
}
