package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/annotate"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/reconcile"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/rules"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/segmenter"
)

// Ensure analysisService implements AnalysisService
var _ driving.AnalysisService = (*analysisService)(nil)

// analysisService runs the annotation pipeline:
// segment -> evaluate -> inject -> reconcile.
// Each pass is pure given its inputs; a RuleSet is built per call so
// concurrent analyses with different thresholds never share state.
type analysisService struct {
	store     driven.AnalysisStore
	cache     driven.AnalysisCache
	segmenter *segmenter.Segmenter
	logger    *slog.Logger
	cacheTTL  time.Duration
}

// AnalysisServiceConfig holds dependencies for the analysis service.
// Cache is optional; without it every request runs the full pass.
type AnalysisServiceConfig struct {
	Store    driven.AnalysisStore
	Cache    driven.AnalysisCache
	Logger   *slog.Logger
	CacheTTL time.Duration
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(cfg AnalysisServiceConfig) driving.AnalysisService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &analysisService{
		store:     cfg.Store,
		cache:     cfg.Cache,
		segmenter: segmenter.Default(),
		logger:    logger,
		cacheTTL:  ttl,
	}
}

// Analyze runs one annotation pass and persists the result
func (s *analysisService) Analyze(ctx context.Context, auth *domain.AuthContext, req driving.AnalyzeRequest) (*domain.Analysis, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if req.PlainText == "" {
		return nil, domain.ErrInvalidInput
	}

	opts := domain.RuleOptions{}.Normalized()
	if req.Options != nil {
		opts = req.Options.Normalized()
	}

	result, cached := s.cachedResult(ctx, req, opts)
	if !cached {
		var err error
		result, err = s.runPass(ctx, req, opts)
		if err != nil {
			return nil, err
		}
		s.storeResult(ctx, req, opts, result)
	}

	now := time.Now()
	analysis := &domain.Analysis{
		ID:     domain.GenerateID(),
		UserID: auth.UserID,
		Document: domain.Document{
			PlainText:        req.PlainText,
			FormattedContent: req.FormattedContent,
		},
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, analysis); err != nil {
		return nil, err
	}

	s.logger.Info("analysis completed",
		"analysis_id", analysis.ID,
		"user_id", auth.UserID,
		"sentences", len(result.PerSentence),
		"issues", result.IssueCount(),
		"cached", cached)

	return analysis, nil
}

// runPass executes the pipeline. Cancellation is checked between
// sentences so an abandoned request stops within one sentence's cost.
func (s *analysisService) runPass(ctx context.Context, req driving.AnalyzeRequest, opts domain.RuleOptions) (*domain.AnalysisResult, error) {
	sentences := s.segmenter.Segment(req.PlainText)
	ruleSet := rules.DefaultRuleSet(opts)

	var findings []domain.Finding
	perSentence := make([]domain.SentenceIssues, 0, len(sentences))
	for _, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sentenceFindings := ruleSet.EvaluateSentence(sentence)
		findings = append(findings, sentenceFindings...)

		if len(sentenceFindings) > 0 {
			perSentence = append(perSentence, summarise(sentence, sentenceFindings))
		}
	}

	documentLevel := ruleSet.EvaluateDocument(req.PlainText, sentences)
	findings = append(findings, documentLevel...)

	annotated, spans := annotate.Inject(req.PlainText, sentences, findings, opts)

	result := &domain.AnalysisResult{
		AnnotatedText: annotated,
		Spans:         spans,
		DocumentLevel: documentLevel,
		PerSentence:   perSentence,
	}

	if req.FormattedContent != "" {
		rec := reconcile.Reconcile(annotated, req.FormattedContent)
		result.Highlights = rec.Highlights
		result.MalformedMarkers = rec.Malformed
		result.Desync = rec.Desync
		if rec.Desync != nil {
			s.logger.Warn("plain and formatted content diverged",
				"plain_offset", rec.Desync.PlainOffset,
				"formatted_offset", rec.Desync.FormattedOffset,
				"reason", rec.Desync.Reason)
		}
	}

	return result, nil
}

// summarise collects the issue kinds found in one sentence
func summarise(sentence domain.Sentence, findings []domain.Finding) domain.SentenceIssues {
	seen := make(map[domain.IssueKind]bool)
	var kinds []domain.IssueKind
	for _, f := range findings {
		if !seen[f.Kind] {
			seen[f.Kind] = true
			kinds = append(kinds, f.Kind)
		}
	}
	return domain.SentenceIssues{
		SentenceText: sentence.Text,
		Start:        sentence.Start,
		End:          sentence.End,
		Kinds:        kinds,
		Findings:     findings,
	}
}

func (s *analysisService) cachedResult(ctx context.Context, req driving.AnalyzeRequest, opts domain.RuleOptions) (*domain.AnalysisResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, err := s.cache.Get(ctx, cacheKey(req, opts))
	if err != nil {
		return nil, false
	}
	return result, true
}

func (s *analysisService) storeResult(ctx context.Context, req driving.AnalyzeRequest, opts domain.RuleOptions, result *domain.AnalysisResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(req, opts), result, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache analysis result", "error", err)
	}
}

// cacheKey digests the full input of a pass; identical inputs always
// produce identical output, so the digest is a safe cache key.
func cacheKey(req driving.AnalyzeRequest, opts domain.RuleOptions) string {
	h := sha256.New()
	h.Write([]byte(req.PlainText))
	h.Write([]byte{0})
	h.Write([]byte(req.FormattedContent))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d:%d:%d", opts.HardToReadWordLimit, opts.EmojiLimit, opts.MinSpanLength)
	return "analysis:" + hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a stored analysis
func (s *analysisService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Analysis, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}

	analysis, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Members only see their own analyses
	if analysis.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return analysis, nil
}

// List retrieves the caller's recent analyses, newest first
func (s *analysisService) List(ctx context.Context, auth *domain.AuthContext, limit int) ([]*domain.Analysis, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListByUser(ctx, auth.UserID, limit)
}

// Delete removes a stored analysis
func (s *analysisService) Delete(ctx context.Context, auth *domain.AuthContext, id string) error {
	if auth == nil {
		return domain.ErrUnauthorized
	}

	analysis, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if analysis.UserID != auth.UserID && !auth.IsAdmin() {
		return domain.ErrForbidden
	}

	return s.store.Delete(ctx, id)
}
