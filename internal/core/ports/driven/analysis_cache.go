package driven

import (
	"context"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// AnalysisCache caches analysis results keyed by a content digest so
// repeat grading of unchanged text skips the rule pass (Redis)
type AnalysisCache interface {
	// Get retrieves a cached result. Returns domain.ErrNotFound on miss.
	Get(ctx context.Context, key string) (*domain.AnalysisResult, error)

	// Set stores a result with the given TTL
	Set(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) error

	// Delete drops a cached result
	Delete(ctx context.Context, key string) error
}
