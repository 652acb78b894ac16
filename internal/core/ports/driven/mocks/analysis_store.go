package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure MockAnalysisStore implements AnalysisStore
var _ driven.AnalysisStore = (*MockAnalysisStore)(nil)

// MockAnalysisStore is a mock implementation of AnalysisStore for testing
type MockAnalysisStore struct {
	mu       sync.RWMutex
	analyses map[string]*domain.Analysis
}

// NewMockAnalysisStore creates a new MockAnalysisStore
func NewMockAnalysisStore() *MockAnalysisStore {
	return &MockAnalysisStore{
		analyses: make(map[string]*domain.Analysis),
	}
}

func (m *MockAnalysisStore) Save(ctx context.Context, analysis *domain.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[analysis.ID] = analysis
	return nil
}

func (m *MockAnalysisStore) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	analysis, ok := m.analyses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return analysis, nil
}

func (m *MockAnalysisStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Analysis
	for _, a := range m.analyses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockAnalysisStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.analyses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.analyses, id)
	return nil
}

// Helper methods for testing

func (m *MockAnalysisStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = make(map[string]*domain.Analysis)
}

func (m *MockAnalysisStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.analyses)
}
