package runtime

import (
	"context"
	"sync"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The rewrite collaborator can be reconfigured at runtime via API.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Dynamic services (can be nil, updated at runtime)
	rewriteService driven.RewriteService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// RewriteService returns the current rewrite service (may be nil)
func (s *Services) RewriteService() driven.RewriteService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rewriteService
}

// SetRewriteService updates the rewrite service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetRewriteService(svc driven.RewriteService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Close old service
	if s.rewriteService != nil {
		_ = s.rewriteService.Close()
	}

	s.rewriteService = svc
	s.config.SetRewriteAvailable(svc != nil)
}

// ValidateAndSetRewrite validates connectivity before setting the
// rewrite service
func (s *Services) ValidateAndSetRewrite(ctx context.Context, svc driven.RewriteService) error {
	if svc == nil {
		s.SetRewriteService(nil)
		return nil
	}

	// Validate connectivity
	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetRewriteService(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rewriteService != nil {
		_ = s.rewriteService.Close()
		s.rewriteService = nil
	}

	s.config.SetRewriteAvailable(false)

	return nil
}
