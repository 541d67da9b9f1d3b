package database

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPoolAdapter wraps pgxmock.PgxPoolIface to implement DatabasePool
type MockPoolAdapter struct {
	mock pgxmock.PgxPoolIface
}

func NewMockPoolAdapter(mock pgxmock.PgxPoolIface) DatabasePool {
	return &MockPoolAdapter{mock: mock}
}

func (m *MockPoolAdapter) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return m.mock.QueryRow(ctx, sql, args...)
}

func (m *MockPoolAdapter) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	result, err := m.mock.Exec(ctx, sql, args...)
	if err == nil {
		rows := result.RowsAffected()
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", rows)), nil
	}
	return pgconn.CommandTag{}, err
}

func (m *MockPoolAdapter) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return m.mock.Query(ctx, sql, args...)
}

func newMockRepo(t *testing.T) (*ChartRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewChartRepository(NewMockPoolAdapter(mock)), mock
}

func samplePositionsJSON() json.RawMessage {
	return json.RawMessage(`{"sun":{"sign":4,"degree":15.5}}`)
}

func TestChartRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now()
	mock.ExpectQuery("INSERT INTO chart_analyses").
		WithArgs(pgxmock.AnyArg(), 6, samplePositionsJSON(), json.RawMessage(`{}`)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	record := &ChartRecord{
		AscendantSign: 6,
		Positions:     samplePositionsJSON(),
		Result:        json.RawMessage(`{}`),
	}

	err := repo.Save(context.Background(), record)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, created, record.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_Save_PreservesProvidedID(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO chart_analyses").
		WithArgs(id, 0, samplePositionsJSON(), json.RawMessage(`{}`)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	record := &ChartRecord{
		ID:        id,
		Positions: samplePositionsJSON(),
		Result:    json.RawMessage(`{}`),
	}

	require.NoError(t, repo.Save(context.Background(), record))
	assert.Equal(t, id, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	created := time.Now()
	mock.ExpectQuery("SELECT id, ascendant_sign, positions, result, created_at").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "ascendant_sign", "positions", "result", "created_at"}).
			AddRow(id, 6, samplePositionsJSON(), json.RawMessage(`{"sav":[]}`), created))

	record, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, 6, record.AscendantSign)
	assert.Equal(t, created, record.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, ascendant_sign, positions, result, created_at").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	record, err := repo.GetByID(context.Background(), id)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrChartNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_ListRecent(t *testing.T) {
	repo, mock := newMockRepo(t)

	first, second := uuid.New(), uuid.New()
	mock.ExpectQuery("SELECT id, ascendant_sign, positions, result, created_at").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "ascendant_sign", "positions", "result", "created_at"}).
			AddRow(first, 6, samplePositionsJSON(), json.RawMessage(`{}`), time.Now()).
			AddRow(second, 3, samplePositionsJSON(), json.RawMessage(`{}`), time.Now().Add(-time.Hour)))

	records, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, second, records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_ListRecent_DefaultsLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, ascendant_sign, positions, result, created_at").
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "ascendant_sign", "positions", "result", "created_at"}))

	records, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM chart_analyses").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM chart_analyses").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrChartNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
