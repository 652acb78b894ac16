package postgres

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// encryptedKeyPrefix marks API keys stored encrypted. Rows written before
// an encryption key was configured stay readable as plaintext.
const encryptedKeyPrefix = "enc:"

// ErrEncryptedKey is returned when the stored API key is encrypted but the
// store has no encryptor to decrypt it.
var ErrEncryptedKey = errors.New("api key is encrypted but no encryption key is configured")

// SettingsStore implements driven.SettingsStore using PostgreSQL.
// The rewrite collaborator has exactly one global configuration, stored
// as a single fixed-ID row.
type SettingsStore struct {
	db        *DB
	encryptor *SecretEncryptor
}

// NewSettingsStore creates a new SettingsStore. API keys are stored in
// plaintext; use NewSettingsStoreWithEncryption to encrypt them at rest.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// NewSettingsStoreWithEncryption creates a SettingsStore that encrypts
// API keys at rest with AES-256-GCM.
func NewSettingsStoreWithEncryption(db *DB, encryptor *SecretEncryptor) *SettingsStore {
	return &SettingsStore{db: db, encryptor: encryptor}
}

// GetRewriteSettings retrieves the configured rewrite settings
func (s *SettingsStore) GetRewriteSettings(ctx context.Context) (*domain.RewriteSettings, error) {
	query := `
		SELECT provider, model, api_key, base_url, updated_at, updated_by
		FROM rewrite_settings
		WHERE id = 1
	`

	var settings domain.RewriteSettings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.Provider,
		&settings.Model,
		&settings.APIKey,
		&settings.BaseURL,
		&settings.UpdatedAt,
		&settings.UpdatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	apiKey, err := s.decodeAPIKey(settings.APIKey)
	if err != nil {
		return nil, err
	}
	settings.APIKey = apiKey

	return &settings, nil
}

// SaveRewriteSettings persists rewrite settings
func (s *SettingsStore) SaveRewriteSettings(ctx context.Context, settings *domain.RewriteSettings) error {
	apiKey, err := s.encodeAPIKey(settings.APIKey)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rewrite_settings (id, provider, model, api_key, base_url, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			provider = EXCLUDED.provider,
			model = EXCLUDED.model,
			api_key = EXCLUDED.api_key,
			base_url = EXCLUDED.base_url,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`

	_, err = s.db.ExecContext(ctx, query,
		string(settings.Provider),
		settings.Model,
		apiKey,
		settings.BaseURL,
		settings.UpdatedAt,
		settings.UpdatedBy,
	)
	return err
}

// encodeAPIKey encrypts the API key when an encryptor is configured.
// Empty keys (the ollama provider needs none) are stored as-is.
func (s *SettingsStore) encodeAPIKey(apiKey string) (string, error) {
	if s.encryptor == nil || apiKey == "" {
		return apiKey, nil
	}

	blob, err := s.encryptor.EncryptString(apiKey)
	if err != nil {
		return "", fmt.Errorf("encrypt api key: %w", err)
	}
	return encryptedKeyPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// decodeAPIKey reverses encodeAPIKey, passing plaintext keys through.
func (s *SettingsStore) decodeAPIKey(stored string) (string, error) {
	if !strings.HasPrefix(stored, encryptedKeyPrefix) {
		return stored, nil
	}
	if s.encryptor == nil {
		return "", ErrEncryptedKey
	}

	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, encryptedKeyPrefix))
	if err != nil {
		return "", fmt.Errorf("decode api key blob: %w", err)
	}

	apiKey, err := s.encryptor.DecryptString(blob)
	if err != nil {
		return "", fmt.Errorf("decrypt api key: %w", err)
	}
	return apiKey, nil
}
