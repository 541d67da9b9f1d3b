package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrChartNotFound is returned when no stored analysis matches the id.
var ErrChartNotFound = errors.New("chart analysis not found")

// ChartRecord is a persisted ashtakavarga analysis.
type ChartRecord struct {
	// ID is the unique identifier.
	ID uuid.UUID `json:"id" db:"id"`
	// AscendantSign is the chart's ascendant sign index.
	AscendantSign int `json:"ascendant_sign" db:"ascendant_sign"`
	// Positions is the JSON-encoded input positions.
	Positions json.RawMessage `json:"positions" db:"positions"`
	// Result is the JSON-encoded calculation output.
	Result json.RawMessage `json:"result" db:"result"`
	// CreatedAt is when the analysis was stored.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DatabasePool defines the interface for database pool operations.
// This interface allows for both real pool and mock pool implementations.
type DatabasePool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// ChartRepository handles database operations for stored chart analyses.
type ChartRepository struct {
	pool DatabasePool
}

// NewChartRepository creates a new chart repository.
func NewChartRepository(pool DatabasePool) *ChartRepository {
	return &ChartRepository{
		pool: pool,
	}
}

// Save stores an analysis and returns the stored record with its timestamp.
func (r *ChartRepository) Save(ctx context.Context, record *ChartRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	query := `
		INSERT INTO chart_analyses (id, ascendant_sign, positions, result)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		record.ID, record.AscendantSign, record.Positions, record.Result,
	).Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save chart analysis: %w", err)
	}

	return nil
}

// GetByID fetches a stored analysis.
func (r *ChartRepository) GetByID(ctx context.Context, id uuid.UUID) (*ChartRecord, error) {
	query := `
		SELECT id, ascendant_sign, positions, result, created_at
		FROM chart_analyses
		WHERE id = $1
	`

	var record ChartRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.AscendantSign,
		&record.Positions,
		&record.Result,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChartNotFound
		}
		return nil, fmt.Errorf("failed to get chart analysis: %w", err)
	}

	return &record, nil
}

// ListRecent returns the most recently stored analyses, newest first.
func (r *ChartRepository) ListRecent(ctx context.Context, limit int) ([]ChartRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, ascendant_sign, positions, result, created_at
		FROM chart_analyses
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart analyses: %w", err)
	}
	defer rows.Close()

	var records []ChartRecord
	for rows.Next() {
		var record ChartRecord
		if err := rows.Scan(
			&record.ID,
			&record.AscendantSign,
			&record.Positions,
			&record.Result,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chart analysis: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chart analyses: %w", err)
	}

	return records, nil
}

// Delete removes a stored analysis.
func (r *ChartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chart_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chart analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrChartNotFound
	}
	return nil
}
