package driven

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// AnalysisStore handles analysis persistence (PostgreSQL)
type AnalysisStore interface {
	// Save creates or updates an analysis
	Save(ctx context.Context, analysis *domain.Analysis) error

	// Get retrieves an analysis by ID
	Get(ctx context.Context, id string) (*domain.Analysis, error)

	// ListByUser retrieves the most recent analyses for a user,
	// newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error)

	// Delete deletes an analysis
	Delete(ctx context.Context, id string) error
}
