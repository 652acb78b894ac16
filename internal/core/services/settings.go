package services

import (
	"context"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.SettingsStore
	factory       driven.RewriteServiceFactory
	services      *runtime.Services
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsStore driven.SettingsStore,
	factory driven.RewriteServiceFactory,
	services *runtime.Services,
) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
		factory:       factory,
		services:      services,
	}
}

// GetRewriteSettings retrieves the current settings with the API key
// redacted
func (s *settingsService) GetRewriteSettings(ctx context.Context, auth *domain.AuthContext) (*domain.RewriteSettings, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	settings, err := s.settingsStore.GetRewriteSettings(ctx)
	if err != nil {
		return nil, err
	}

	redacted := *settings
	redacted.APIKey = ""
	return &redacted, nil
}

// UpdateRewriteSettings persists new settings and swaps the runtime
// rewrite service
func (s *settingsService) UpdateRewriteSettings(ctx context.Context, auth *domain.AuthContext, req driving.UpdateRewriteSettingsRequest) (*domain.RewriteSettings, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if req.Provider != domain.RewriteProviderOpenAI && req.Provider != domain.RewriteProviderOllama {
		return nil, domain.ErrInvalidProvider
	}
	if req.Model == "" {
		return nil, domain.ErrInvalidInput
	}

	settings := &domain.RewriteSettings{
		Provider:  req.Provider,
		Model:     req.Model,
		APIKey:    req.APIKey,
		BaseURL:   req.BaseURL,
		UpdatedAt: time.Now(),
		UpdatedBy: auth.UserID,
	}

	svc, err := s.factory.CreateRewriteService(settings)
	if err != nil {
		return nil, err
	}

	// Validate before persisting so a bad key never sticks
	if err := s.services.ValidateAndSetRewrite(ctx, svc); err != nil {
		return nil, err
	}

	if err := s.settingsStore.SaveRewriteSettings(ctx, settings); err != nil {
		return nil, err
	}

	redacted := *settings
	redacted.APIKey = ""
	return &redacted, nil
}
