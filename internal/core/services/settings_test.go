package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven/mocks"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driving"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/runtime"
)

func newTestSettingsService(factory *mocks.MockRewriteServiceFactory) (*mocks.MockSettingsStore, *runtime.Services, *settingsService) {
	settingsStore := mocks.NewMockSettingsStore()
	services := runtime.NewServices(domain.NewRuntimeConfig("postgres"))
	svc := NewSettingsService(settingsStore, factory, services).(*settingsService)
	return settingsStore, services, svc
}

func adminAuth() *domain.AuthContext {
	return &domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}
}

func TestSettingsService_GetRewriteSettings(t *testing.T) {
	settingsStore, _, svc := newTestSettingsService(mocks.NewMockRewriteServiceFactory(nil))

	if _, err := svc.GetRewriteSettings(context.Background(), nil); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.GetRewriteSettings(context.Background(), memberAuth("u1")); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetRewriteSettings(context.Background(), adminAuth()); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound before setup, got %v", err)
	}

	_ = settingsStore.SaveRewriteSettings(context.Background(), &domain.RewriteSettings{
		Provider: domain.RewriteProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-secret",
	})

	settings, err := svc.GetRewriteSettings(context.Background(), adminAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.APIKey != "" {
		t.Error("API key must be redacted")
	}
	if settings.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %s", settings.Model)
	}
}

func TestSettingsService_UpdateRewriteSettings(t *testing.T) {
	rewrite := mocks.NewMockRewriteService()
	factory := mocks.NewMockRewriteServiceFactory(rewrite)
	settingsStore, services, svc := newTestSettingsService(factory)

	tests := []struct {
		name    string
		auth    *domain.AuthContext
		req     driving.UpdateRewriteSettingsRequest
		wantErr error
	}{
		{
			name:    "nil auth",
			auth:    nil,
			req:     driving.UpdateRewriteSettingsRequest{Provider: domain.RewriteProviderOpenAI, Model: "gpt-4o-mini"},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "member forbidden",
			auth:    memberAuth("u1"),
			req:     driving.UpdateRewriteSettingsRequest{Provider: domain.RewriteProviderOpenAI, Model: "gpt-4o-mini"},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "unknown provider",
			auth:    adminAuth(),
			req:     driving.UpdateRewriteSettingsRequest{Provider: "anthropic", Model: "m"},
			wantErr: domain.ErrInvalidProvider,
		},
		{
			name:    "missing model",
			auth:    adminAuth(),
			req:     driving.UpdateRewriteSettingsRequest{Provider: domain.RewriteProviderOpenAI},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "valid",
			auth: adminAuth(),
			req: driving.UpdateRewriteSettingsRequest{
				Provider: domain.RewriteProviderOpenAI,
				Model:    "gpt-4o-mini",
				APIKey:   "sk-secret",
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := svc.UpdateRewriteSettings(context.Background(), tt.auth, tt.req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if settings.APIKey != "" {
				t.Error("API key must be redacted in the response")
			}
			if settings.UpdatedBy != "admin-1" {
				t.Errorf("expected UpdatedBy admin-1, got %s", settings.UpdatedBy)
			}
		})
	}

	// Valid update installed the service and persisted the key.
	if services.RewriteService() == nil {
		t.Error("expected rewrite service installed")
	}
	if !services.Config().RewriteAvailable() {
		t.Error("expected rewrite availability flag set")
	}
	stored, _ := settingsStore.GetRewriteSettings(context.Background())
	if stored.APIKey != "sk-secret" {
		t.Errorf("expected stored API key, got %q", stored.APIKey)
	}
}

func TestSettingsService_UpdateValidationFailureKeepsPrevious(t *testing.T) {
	working := mocks.NewMockRewriteService()
	factory := mocks.NewMockRewriteServiceFactory(working)
	settingsStore, services, svc := newTestSettingsService(factory)

	_, err := svc.UpdateRewriteSettings(context.Background(), adminAuth(), driving.UpdateRewriteSettingsRequest{
		Provider: domain.RewriteProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-good",
	})
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// The replacement fails its connectivity check.
	broken := mocks.NewMockRewriteService()
	broken.Err = errors.New("unreachable")
	factory.Service = broken

	_, err = svc.UpdateRewriteSettings(context.Background(), adminAuth(), driving.UpdateRewriteSettingsRequest{
		Provider: domain.RewriteProviderOpenAI,
		Model:    "gpt-4o",
		APIKey:   "sk-bad",
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	// Previous service and settings survive a failed swap.
	if services.RewriteService() != working {
		t.Error("expected previous rewrite service kept")
	}
	stored, _ := settingsStore.GetRewriteSettings(context.Background())
	if stored.APIKey != "sk-good" {
		t.Errorf("expected previous settings kept, got key %q", stored.APIKey)
	}
}
