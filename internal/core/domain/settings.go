package domain

import (
	"sync"
	"time"
)

// RewriteProvider identifies the rewrite/scoring backend
type RewriteProvider string

const (
	RewriteProviderOpenAI RewriteProvider = "openai"
	RewriteProviderOllama RewriteProvider = "ollama"
)

// RewriteSettings configures the rewrite collaborator service.
// This can be updated at runtime via API.
type RewriteSettings struct {
	Provider RewriteProvider `json:"provider"`
	Model    string          `json:"model"`
	APIKey   string          `json:"-"` // Never serialize
	BaseURL  string          `json:"base_url,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"` // User ID
}

// IsConfigured reports whether the settings are usable
func (s *RewriteSettings) IsConfigured() bool {
	if s == nil || s.Provider == "" {
		return false
	}
	if s.Provider == RewriteProviderOllama {
		return s.BaseURL != ""
	}
	return s.APIKey != ""
}

// DefaultRewriteSettings returns unconfigured defaults
func DefaultRewriteSettings() *RewriteSettings {
	return &RewriteSettings{
		Provider:  RewriteProviderOpenAI,
		Model:     "gpt-4o-mini",
		UpdatedAt: time.Now(),
	}
}

// RuntimeConfig tracks which services are available at runtime.
// This is determined at startup and can be updated dynamically for the
// rewrite backend. Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// SessionBackend is "redis" or "postgres" (set at startup, read-only)
	SessionBackend string

	rewriteAvailable bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{SessionBackend: sessionBackend}
}

// RewriteAvailable returns whether a rewrite backend is configured
func (c *RuntimeConfig) RewriteAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rewriteAvailable
}

// SetRewriteAvailable updates the rewrite availability flag
func (c *RuntimeConfig) SetRewriteAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rewriteAvailable = available
}
