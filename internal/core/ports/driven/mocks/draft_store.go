package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure MockDraftStore implements DraftStore
var _ driven.DraftStore = (*MockDraftStore)(nil)

// MockDraftStore is a mock implementation of DraftStore for testing
type MockDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*domain.Draft
}

// NewMockDraftStore creates a new MockDraftStore
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{
		drafts: make(map[string]*domain.Draft),
	}
}

func (m *MockDraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draft.ID] = draft
	return nil
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	draft, ok := m.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

func (m *MockDraftStore) GetByAnalysis(ctx context.Context, analysisID string) (*domain.Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Draft
	for _, d := range m.drafts {
		if d.AnalysisID != analysisID {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *MockDraftStore) UpdateStatus(ctx context.Context, id string, status domain.DraftStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[id]
	if !ok {
		return domain.ErrNotFound
	}
	draft.Status = status
	draft.Error = errMsg
	draft.UpdatedAt = time.Now()
	return nil
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.drafts, id)
	return nil
}

// Helper methods for testing

func (m *MockDraftStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts = make(map[string]*domain.Draft)
}
