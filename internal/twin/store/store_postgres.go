package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
)

// PostgresStore persists composite results in a single zip_cache table with a
// JSONB payload. Document-style key/value access only: no secondary indexes
// and no transactions are needed by the orchestrator.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed composite cache.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the cache table when it does not exist yet. Called once
// at startup; deployments with managed migrations can skip it.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS zip_cache (
			zip_code   TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure zip_cache schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, zip domain.ZIPCode) (*models.CompositeResult, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM zip_cache WHERE zip_code = $1`, zip.String(),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select zip_cache %s: %w", zip, errors.Join(sentinel.ErrUnavailable, err))
	}

	var result models.CompositeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, sentinel.ErrNotFound
	}
	return &result, nil
}

func (s *PostgresStore) Put(ctx context.Context, zip domain.ZIPCode, result *models.CompositeResult) error {
	if result == nil {
		return fmt.Errorf("composite result is required")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO zip_cache (zip_code, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (zip_code) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		zip.String(), raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert zip_cache %s: %w", zip, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
