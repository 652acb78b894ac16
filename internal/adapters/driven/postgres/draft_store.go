package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DraftStore = (*DraftStore)(nil)

// DraftStore implements driven.DraftStore using PostgreSQL
type DraftStore struct {
	db *DB
}

// NewDraftStore creates a new DraftStore
func NewDraftStore(db *DB) *DraftStore {
	return &DraftStore{db: db}
}

// Save creates or updates a draft
func (s *DraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	var columns []byte
	if draft.Columns != nil {
		var err error
		columns, err = json.Marshal(draft.Columns)
		if err != nil {
			return fmt.Errorf("failed to marshal diff columns: %w", err)
		}
	}

	var misses []byte
	if len(draft.Misses) > 0 {
		var err error
		misses, err = json.Marshal(draft.Misses)
		if err != nil {
			return fmt.Errorf("failed to marshal alignment misses: %w", err)
		}
	}

	query := `
		INSERT INTO drafts (id, analysis_id, user_id, status, audience, goal, raw_markup, columns, misses, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			raw_markup = EXCLUDED.raw_markup,
			columns = EXCLUDED.columns,
			misses = EXCLUDED.misses,
			error = EXCLUDED.error,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		draft.ID,
		draft.AnalysisID,
		draft.UserID,
		string(draft.Status),
		draft.Audience,
		draft.Goal,
		draft.RawMarkup,
		columns,
		misses,
		draft.Error,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	return err
}

// Get retrieves a draft by ID
func (s *DraftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	query := `
		SELECT id, analysis_id, user_id, status, audience, goal, raw_markup, columns, misses, error, created_at, updated_at
		FROM drafts
		WHERE id = $1
	`

	draft, err := scanDraft(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return draft, err
}

// GetByAnalysis retrieves the latest draft for an analysis
func (s *DraftStore) GetByAnalysis(ctx context.Context, analysisID string) (*domain.Draft, error) {
	query := `
		SELECT id, analysis_id, user_id, status, audience, goal, raw_markup, columns, misses, error, created_at, updated_at
		FROM drafts
		WHERE analysis_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	draft, err := scanDraft(s.db.QueryRowContext(ctx, query, analysisID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return draft, err
}

// UpdateStatus transitions a draft's lifecycle status
func (s *DraftStore) UpdateStatus(ctx context.Context, id string, status domain.DraftStatus, errMsg string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE drafts SET status = $1, error = $2, updated_at = $3 WHERE id = $4`,
		string(status), errMsg, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete deletes a draft
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func scanDraft(row rowScanner) (*domain.Draft, error) {
	var draft domain.Draft
	var columns, misses []byte

	err := row.Scan(
		&draft.ID,
		&draft.AnalysisID,
		&draft.UserID,
		&draft.Status,
		&draft.Audience,
		&draft.Goal,
		&draft.RawMarkup,
		&columns,
		&misses,
		&draft.Error,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(columns) > 0 {
		draft.Columns = &domain.DiffColumns{}
		if err := json.Unmarshal(columns, draft.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal diff columns: %w", err)
		}
	}
	if len(misses) > 0 {
		if err := json.Unmarshal(misses, &draft.Misses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alignment misses: %w", err)
		}
	}

	return &draft, nil
}
