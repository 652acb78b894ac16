package driving

import (
	"context"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// UpdateRewriteSettingsRequest configures the rewrite collaborator
type UpdateRewriteSettingsRequest struct {
	Provider domain.RewriteProvider `json:"provider"`
	Model    string                 `json:"model"`
	APIKey   string                 `json:"api_key,omitempty"`
	BaseURL  string                 `json:"base_url,omitempty"`
}

// SettingsService manages rewrite collaborator configuration (admin only)
type SettingsService interface {
	// GetRewriteSettings retrieves the current settings with the API
	// key redacted
	GetRewriteSettings(ctx context.Context, auth *domain.AuthContext) (*domain.RewriteSettings, error)

	// UpdateRewriteSettings persists new settings and refreshes the
	// runtime rewrite service
	UpdateRewriteSettings(ctx context.Context, auth *domain.AuthContext, req UpdateRewriteSettingsRequest) (*domain.RewriteSettings, error)
}
