package mocks

import (
	"context"
	"sync"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure MockSettingsStore implements SettingsStore
var _ driven.SettingsStore = (*MockSettingsStore)(nil)

// MockSettingsStore is a mock implementation of SettingsStore for testing
type MockSettingsStore struct {
	mu       sync.RWMutex
	settings *domain.RewriteSettings
}

// NewMockSettingsStore creates a new MockSettingsStore
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{}
}

func (m *MockSettingsStore) GetRewriteSettings(ctx context.Context) (*domain.RewriteSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil, domain.ErrNotFound
	}
	return m.settings, nil
}

func (m *MockSettingsStore) SaveRewriteSettings(ctx context.Context, settings *domain.RewriteSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
	return nil
}
