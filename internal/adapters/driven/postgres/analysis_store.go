package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnalysisStore = (*AnalysisStore)(nil)

// AnalysisStore implements driven.AnalysisStore using PostgreSQL.
// The structured result (spans, highlights, per-sentence findings) is
// stored as JSONB; the document text is kept in plain columns so it can
// be queried and re-analyzed without unmarshalling.
type AnalysisStore struct {
	db *DB
}

// NewAnalysisStore creates a new AnalysisStore
func NewAnalysisStore(db *DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// Save creates or updates an analysis
func (s *AnalysisStore) Save(ctx context.Context, analysis *domain.Analysis) error {
	var result []byte
	if analysis.Result != nil {
		var err error
		result, err = json.Marshal(analysis.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis result: %w", err)
		}
	}

	query := `
		INSERT INTO analyses (id, user_id, plain_text, formatted_content, result, draft_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			result = EXCLUDED.result,
			draft_id = EXCLUDED.draft_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.Document.PlainText,
		analysis.Document.FormattedContent,
		result,
		analysis.DraftID,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	return err
}

// Get retrieves an analysis by ID
func (s *AnalysisStore) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	query := `
		SELECT id, user_id, plain_text, formatted_content, result, draft_id, created_at, updated_at
		FROM analyses
		WHERE id = $1
	`

	analysis, err := scanAnalysis(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return analysis, err
}

// ListByUser retrieves the most recent analyses for a user, newest first
func (s *AnalysisStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	query := `
		SELECT id, user_id, plain_text, formatted_content, result, draft_id, created_at, updated_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*domain.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analyses, nil
}

// Delete deletes an analysis
func (s *AnalysisStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var analysis domain.Analysis
	var result []byte

	err := row.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.Document.PlainText,
		&analysis.Document.FormattedContent,
		&result,
		&analysis.DraftID,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(result) > 0 {
		analysis.Result = &domain.AnalysisResult{}
		if err := json.Unmarshal(result, analysis.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
		}
	}

	return &analysis, nil
}
