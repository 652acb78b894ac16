package driving

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// AnalyzeRequest is one annotation pass over a document snapshot.
// FormattedContent is optional; when present the result also carries
// highlight spans in formatted-content offsets.
type AnalyzeRequest struct {
	PlainText        string              `json:"plain_text"`
	FormattedContent string              `json:"formatted_content,omitempty"`
	Options          *domain.RuleOptions `json:"options,omitempty"`
}

// AnalysisService runs the grading pass and manages stored analyses
type AnalysisService interface {
	// Analyze segments, evaluates and annotates the document, persists
	// the analysis and returns it. Cancellation is checked between
	// sentences, so a superseded request stops within one sentence's
	// evaluation cost.
	Analyze(ctx context.Context, auth *domain.AuthContext, req AnalyzeRequest) (*domain.Analysis, error)

	// Get retrieves a stored analysis
	Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Analysis, error)

	// List retrieves the caller's recent analyses, newest first
	List(ctx context.Context, auth *domain.AuthContext, limit int) ([]*domain.Analysis, error)

	// Delete removes a stored analysis
	Delete(ctx context.Context, auth *domain.AuthContext, id string) error
}
