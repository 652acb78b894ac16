package ai

import (
	"fmt"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure Factory implements RewriteServiceFactory
var _ driven.RewriteServiceFactory = (*Factory)(nil)

// Factory creates rewrite services based on configuration
type Factory struct{}

// NewFactory creates a new rewrite service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateRewriteService creates a rewrite service from settings
func (f *Factory) CreateRewriteService(settings *domain.RewriteSettings) (driven.RewriteService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.RewriteProviderOpenAI:
		return NewOpenAIRewrite(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.RewriteProviderOllama:
		return NewOllamaRewrite(settings.BaseURL, settings.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
