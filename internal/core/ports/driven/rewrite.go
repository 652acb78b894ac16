package driven

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// RewriteRequest carries the document text and optional audience/goal
// context forwarded to the rewrite collaborator.
type RewriteRequest struct {
	PlainText string
	Audience  string
	Goal      string
}

// RewriteService is the external language-model collaborator. Its output
// is treated as opaque markup or a score record to parse, never as a
// live connection the core manages.
type RewriteService interface {
	// Rewrite returns the collaborator's paired-span markup
	// (<old_draft>...</old_draft><optimized_draft>...</optimized_draft>)
	// for the given document. The raw markup is returned verbatim.
	Rewrite(ctx context.Context, req RewriteRequest) (string, error)

	// Score returns the collaborator's holistic grade for the document
	Score(ctx context.Context, plainText string) (*domain.HolisticScore, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the rewrite service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the service
	Close() error
}

// RewriteServiceFactory creates rewrite services based on configuration
type RewriteServiceFactory interface {
	// CreateRewriteService creates a rewrite service from settings.
	// Returns nil, nil if settings are not configured.
	CreateRewriteService(settings *domain.RewriteSettings) (RewriteService, error)
}
