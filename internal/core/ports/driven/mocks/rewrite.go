package mocks

import (
	"context"
	"sync"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Ensure MockRewriteService implements RewriteService
var _ driven.RewriteService = (*MockRewriteService)(nil)

// MockRewriteService is a scripted RewriteService for testing. Set Markup
// or Err to control what the next Rewrite call returns.
type MockRewriteService struct {
	mu sync.Mutex

	Markup   string
	ScoreOut *domain.HolisticScore
	Err      error

	RewriteCalls []driven.RewriteRequest
}

// NewMockRewriteService creates a new MockRewriteService
func NewMockRewriteService() *MockRewriteService {
	return &MockRewriteService{}
}

func (m *MockRewriteService) Rewrite(ctx context.Context, req driven.RewriteRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RewriteCalls = append(m.RewriteCalls, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Markup, nil
}

func (m *MockRewriteService) Score(ctx context.Context, plainText string) (*domain.HolisticScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ScoreOut != nil {
		return m.ScoreOut, nil
	}
	return &domain.HolisticScore{Overall: 80, Clarity: 80, Engagement: 80, Readability: 80}, nil
}

func (m *MockRewriteService) Model() string {
	return "mock-model"
}

func (m *MockRewriteService) Ping(ctx context.Context) error {
	return m.Err
}

func (m *MockRewriteService) Close() error {
	return nil
}

// Ensure MockRewriteServiceFactory implements RewriteServiceFactory
var _ driven.RewriteServiceFactory = (*MockRewriteServiceFactory)(nil)

// MockRewriteServiceFactory returns a scripted service (or error) from
// CreateRewriteService.
type MockRewriteServiceFactory struct {
	Service driven.RewriteService
	Err     error

	CreateCalls []*domain.RewriteSettings
}

// NewMockRewriteServiceFactory creates a factory that always returns svc
func NewMockRewriteServiceFactory(svc driven.RewriteService) *MockRewriteServiceFactory {
	return &MockRewriteServiceFactory{Service: svc}
}

func (m *MockRewriteServiceFactory) CreateRewriteService(settings *domain.RewriteSettings) (driven.RewriteService, error) {
	m.CreateCalls = append(m.CreateCalls, settings)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Service, nil
}
