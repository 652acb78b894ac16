package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/diffalign"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/runtime"
)

// Ensure draftService implements DraftService
var _ driving.DraftService = (*draftService)(nil)

// draftService manages rewrite drafts. The collaborator call runs in a
// worker via the task queue; only parsing and alignment happen here.
type draftService struct {
	draftStore    driven.DraftStore
	analysisStore driven.AnalysisStore
	taskQueue     driven.TaskQueue
	services      *runtime.Services
	logger        *slog.Logger
}

// DraftServiceConfig holds dependencies for the draft service.
type DraftServiceConfig struct {
	DraftStore    driven.DraftStore
	AnalysisStore driven.AnalysisStore
	TaskQueue     driven.TaskQueue
	Services      *runtime.Services
	Logger        *slog.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(cfg DraftServiceConfig) driving.DraftService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &draftService{
		draftStore:    cfg.DraftStore,
		analysisStore: cfg.AnalysisStore,
		taskQueue:     cfg.TaskQueue,
		services:      cfg.Services,
		logger:        logger,
	}
}

// Request creates a pending draft and enqueues the rewrite task
func (s *draftService) Request(ctx context.Context, auth *domain.AuthContext, req driving.RewriteDraftRequest) (*domain.Draft, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if req.AnalysisID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !s.services.Config().RewriteAvailable() {
		return nil, domain.ErrRewriteNotConfigured
	}

	analysis, err := s.analysisStore.Get(ctx, req.AnalysisID)
	if err != nil {
		return nil, err
	}
	if analysis.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	draft := &domain.Draft{
		ID:         domain.GenerateID(),
		AnalysisID: analysis.ID,
		UserID:     auth.UserID,
		Status:     domain.DraftStatusPending,
		Audience:   req.Audience,
		Goal:       req.Goal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}

	task := domain.NewRewriteDraftTask(draft.ID, analysis.ID)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		_ = s.draftStore.UpdateStatus(ctx, draft.ID, domain.DraftStatusFailed, "failed to enqueue rewrite task")
		return nil, err
	}

	s.logger.Info("rewrite draft requested",
		"draft_id", draft.ID,
		"analysis_id", analysis.ID,
		"task_id", task.ID)

	return draft, nil
}

// Get retrieves a draft by ID
func (s *draftService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Draft, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}

	draft, err := s.draftStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return draft, nil
}

// GetByAnalysis retrieves the latest draft for an analysis
func (s *draftService) GetByAnalysis(ctx context.Context, auth *domain.AuthContext, analysisID string) (*domain.Draft, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}

	draft, err := s.draftStore.GetByAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return draft, nil
}

// Process runs the rewrite pass for a pending draft. Called from the
// worker. Collaborator failures fail the draft, never the worker.
func (s *draftService) Process(ctx context.Context, draftID string) error {
	draft, err := s.draftStore.Get(ctx, draftID)
	if err != nil {
		return err
	}

	rewrite := s.services.RewriteService()
	if rewrite == nil {
		_ = s.draftStore.UpdateStatus(ctx, draft.ID, domain.DraftStatusFailed, "rewrite service not configured")
		return domain.ErrRewriteNotConfigured
	}

	analysis, err := s.analysisStore.Get(ctx, draft.AnalysisID)
	if err != nil {
		_ = s.draftStore.UpdateStatus(ctx, draft.ID, domain.DraftStatusFailed, "analysis no longer exists")
		return err
	}

	if err := s.draftStore.UpdateStatus(ctx, draft.ID, domain.DraftStatusRunning, ""); err != nil {
		return err
	}

	markup, err := rewrite.Rewrite(ctx, driven.RewriteRequest{
		PlainText: analysis.Document.PlainText,
		Audience:  draft.Audience,
		Goal:      draft.Goal,
	})
	if err != nil {
		s.logger.Error("rewrite collaborator failed",
			"draft_id", draft.ID,
			"error", err)
		_ = s.draftStore.UpdateStatus(ctx, draft.ID, domain.DraftStatusFailed, err.Error())
		return err
	}

	pairs := diffalign.ParsePairs(markup)
	columns, misses := diffalign.Align(analysis.Document.PlainText, pairs)

	draft.RawMarkup = markup
	draft.Columns = &columns
	draft.Misses = misses
	draft.Status = domain.DraftStatusCompleted
	draft.Error = ""
	draft.UpdatedAt = time.Now()

	if err := s.draftStore.Save(ctx, draft); err != nil {
		return err
	}

	// Link the analysis to its improved draft
	analysis.DraftID = draft.ID
	analysis.UpdatedAt = time.Now()
	if err := s.analysisStore.Save(ctx, analysis); err != nil {
		s.logger.Warn("failed to link draft to analysis",
			"draft_id", draft.ID,
			"analysis_id", analysis.ID,
			"error", err)
	}

	s.logger.Info("rewrite draft completed",
		"draft_id", draft.ID,
		"pairs", len(pairs),
		"misses", len(misses))

	return nil
}

// Score asks the collaborator for a holistic grade
func (s *draftService) Score(ctx context.Context, auth *domain.AuthContext, analysisID string) (*domain.HolisticScore, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}

	rewrite := s.services.RewriteService()
	if rewrite == nil {
		return nil, domain.ErrRewriteNotConfigured
	}

	analysis, err := s.analysisStore.Get(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if analysis.UserID != auth.UserID && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return rewrite.Score(ctx, analysis.Document.PlainText)
}
