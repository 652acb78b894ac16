package driven

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// SettingsStore persists rewrite collaborator settings
type SettingsStore interface {
	// GetRewriteSettings retrieves the configured rewrite settings.
	// Returns domain.ErrNotFound if never configured.
	GetRewriteSettings(ctx context.Context) (*domain.RewriteSettings, error)

	// SaveRewriteSettings persists rewrite settings
	SaveRewriteSettings(ctx context.Context, settings *domain.RewriteSettings) error
}
