// Package api exposes the comment-tagger over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/analyzer"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/classifier"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/processor"
)

const (
	healthCheckTimeout = 5 * time.Second

	statusOK          = "ok"
	statusDisabled    = "disabled"
	statusUnavailable = "unavailable"
)

// Handler handles HTTP requests for the comment-tagger API.
type Handler struct {
	pipeline *processor.Pipeline
	engine   *classifier.Engine
	analyzer analyzer.Analyzer
	logger   infralogger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(pipeline *processor.Pipeline, logger infralogger.Logger) *Handler {
	if logger == nil {
		logger = infralogger.NewNop()
	}
	return &Handler{
		pipeline: pipeline,
		engine:   pipeline.Engine(),
		analyzer: pipeline.Analyzer(),
		logger:   logger,
	}
}

// Analyze handles POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid analyze request", err)
		return
	}

	for i := range req.Comments {
		if req.Comments[i].CommentID == "" {
			req.Comments[i].CommentID = processor.NewShortID()
		}
	}

	report, err := h.pipeline.Run(c.Request.Context(), processor.Request{
		Comments:   req.Comments,
		VideoTitle: req.VideoTitle,
		Transcript: req.Transcript,
	})
	if err != nil {
		h.pipelineError(c, err)
		return
	}

	h.logger.Info("Comments analyzed",
		infralogger.String("video_id", req.VideoID),
		infralogger.Int("total", len(report.TaggedComments)),
		infralogger.Int("toxic", report.Summary.ToxicComments),
	)

	c.JSON(http.StatusOK, AnalyzeResponse{
		VideoID:          req.VideoID,
		TranscriptLength: report.TranscriptLength,
		TotalComments:    len(report.TaggedComments),
		TaggedComments:   report.TaggedComments,
		Summary:          report.Summary,
	})
}

// AnalyzeComment handles POST /api/v1/analyze/comment
func (h *Handler) AnalyzeComment(c *gin.Context) {
	var req AnalyzeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid comment request", err)
		return
	}

	tagged, err := h.pipeline.RunSingle(c.Request.Context(), req.CommentText, req.Transcript, req.VideoTitle)
	if err != nil {
		h.pipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, AnalyzeCommentResponse{TaggedComment: *tagged})
}

// Classify handles POST /api/v1/classify
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid classify request", err)
		return
	}

	matches := h.engine.Classify(c.Request.Context(), req.Text)
	result := classifier.Score(matches, h.engine.Catalog().Relations())
	if matches == nil {
		matches = []domain.RuleMatch{}
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		Result:  result,
		Level:   classifier.LevelFor(result.ToxicityScore),
		Matches: matches,
	})
}

// Merge handles POST /api/v1/merge
func (h *Handler) Merge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid merge request", err)
		return
	}

	rule := req.RuleResult
	rule.MatchedCategories = knownCategories(rule.MatchedCategories)
	external, note := h.externalVerdict(req)

	tagged := h.engine.MergeResult(c.Request.Context(), req.Comment, rule, external, note)
	c.JSON(http.StatusOK, tagged)
}

// Summarize handles POST /api/v1/summarize
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid summarize request", err)
		return
	}
	c.JSON(http.StatusOK, h.engine.Summarize(req.TaggedComments, req.PipelineStats))
}

// ListRules handles GET /api/v1/rules
func (h *Handler) ListRules(c *gin.Context) {
	rules := h.engine.Catalog().Rules()
	resp := RulesListResponse{Rules: make([]RuleResponse, len(rules)), Total: len(rules)}
	for i, r := range rules {
		resp.Rules[i] = toRuleResponse(r)
	}
	c.JSON(http.StatusOK, resp)
}

// ListRelations handles GET /api/v1/relations
func (h *Handler) ListRelations(c *gin.Context) {
	relations := h.engine.Catalog().Relations()
	c.JSON(http.StatusOK, RelationsListResponse{Relations: relations, Total: len(relations)})
}

// GetOntology handles GET /api/v1/ontology
func (h *Handler) GetOntology(c *gin.Context) {
	nodes := ontology.Nodes()
	c.JSON(http.StatusOK, OntologyResponse{Nodes: nodes, Total: len(nodes)})
}

// GetAnalyzerHealth handles GET /api/v1/analyzer/health
func (h *Handler) GetAnalyzerHealth(c *gin.Context) {
	resp := AnalyzerHealthResponse{
		Analyzer: h.analyzer.Name(),
		Enabled:  analyzer.Enabled(h.analyzer),
		Status:   statusDisabled,
	}
	if !resp.Enabled {
		c.JSON(http.StatusOK, resp)
		return
	}

	if g, ok := h.analyzer.(*analyzer.Guarded); ok {
		resp.CircuitState = g.BreakerState().String()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.analyzer.Health(ctx); err != nil {
		h.logger.Warn("Analyzer health check failed",
			infralogger.String("analyzer", resp.Analyzer),
			infralogger.Error(err),
		)
		resp.Status = statusUnavailable
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.Status = statusOK
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Warn(msg, infralogger.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// pipelineError maps request-shape errors to 400 and the rest to 500.
func (h *Handler) pipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrNoComments),
		errors.Is(err, processor.ErrTooManyComments),
		errors.Is(err, processor.ErrEmptyText):
		h.badRequest(c, "Rejected analysis request", err)
	default:
		h.logger.Error("Analysis failed", infralogger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
	}
}

// externalVerdict decodes req.External. An unusable verdict counts as absent
// and its decode error becomes the failure note.
func (h *Handler) externalVerdict(req MergeRequest) (*domain.ExternalAnalysis, string) {
	raw := bytes.TrimSpace(req.External)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, req.FailureNote
	}
	ext, err := analyzer.ParseResponse(raw)
	if err != nil {
		h.logger.Warn("Unusable external verdict, using rule result",
			infralogger.CommentID(req.Comment.CommentID),
			infralogger.Error(err),
		)
		return nil, classifier.FailureNote(err)
	}
	return ext, ""
}

func knownCategories(cats []domain.Category) []domain.Category {
	out := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}
