package driving

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// RewriteDraftRequest asks for an improved rewrite of an analysed document
type RewriteDraftRequest struct {
	AnalysisID string `json:"analysis_id"`
	Audience   string `json:"audience,omitempty"`
	Goal       string `json:"goal,omitempty"`
}

// DraftService manages rewrite drafts and their diff alignment
type DraftService interface {
	// Request creates a pending draft for an analysis and enqueues the
	// rewrite task. The collaborator call itself happens in a worker.
	Request(ctx context.Context, auth *domain.AuthContext, req RewriteDraftRequest) (*domain.Draft, error)

	// Get retrieves a draft by ID
	Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Draft, error)

	// GetByAnalysis retrieves the latest draft for an analysis
	GetByAnalysis(ctx context.Context, auth *domain.AuthContext, analysisID string) (*domain.Draft, error)

	// Process runs the rewrite pass for a pending draft: it calls the
	// collaborator, parses the paired-span markup and aligns the diff
	// columns. Called from the worker, not from request handlers.
	Process(ctx context.Context, draftID string) error

	// Score asks the collaborator for a holistic grade of the analysed
	// document. Synchronous; tolerates collaborator failure by
	// returning the error as-is.
	Score(ctx context.Context, auth *domain.AuthContext, analysisID string) (*domain.HolisticScore, error)
}
