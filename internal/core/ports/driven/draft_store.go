package driven

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// DraftStore handles rewrite draft persistence (PostgreSQL)
type DraftStore interface {
	// Save creates or updates a draft
	Save(ctx context.Context, draft *domain.Draft) error

	// Get retrieves a draft by ID
	Get(ctx context.Context, id string) (*domain.Draft, error)

	// GetByAnalysis retrieves the latest draft for an analysis
	GetByAnalysis(ctx context.Context, analysisID string) (*domain.Draft, error)

	// UpdateStatus transitions a draft's lifecycle status. The error
	// message is stored only for failed drafts.
	UpdateStatus(ctx context.Context, id string, status domain.DraftStatus, errMsg string) error

	// Delete deletes a draft
	Delete(ctx context.Context, id string) error
}
