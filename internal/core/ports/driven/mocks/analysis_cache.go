package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure MockAnalysisCache implements AnalysisCache
var _ driven.AnalysisCache = (*MockAnalysisCache)(nil)

// MockAnalysisCache is an in-memory AnalysisCache for testing.
// TTLs are ignored.
type MockAnalysisCache struct {
	mu      sync.RWMutex
	results map[string]*domain.AnalysisResult
}

// NewMockAnalysisCache creates a new MockAnalysisCache
func NewMockAnalysisCache() *MockAnalysisCache {
	return &MockAnalysisCache{
		results: make(map[string]*domain.AnalysisResult),
	}
}

func (m *MockAnalysisCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

func (m *MockAnalysisCache) Set(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[key] = result
	return nil
}

func (m *MockAnalysisCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.results, key)
	return nil
}
