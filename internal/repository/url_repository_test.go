package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"technext-be/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newURLRepoMock(t *testing.T) (URLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewURLRepository(db, zap.NewNop()), mock
}

func urlRows(shortCode string, clicks int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "original_url", "short_code", "clicks", "user_id",
		"created_at", "updated_at", "id", "full_name", "email",
	}).AddRow(
		"url-1", "https://example.com", shortCode, clicks, "user-1",
		now, now, "user-1", "Jane Doe", "jane@example.com",
	)
}

func TestURLRepositoryCreate(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`INSERT INTO shortened_urls`).
		WithArgs("https://example.com", "abc123", "user-1").
		WillReturnRows(urlRows("abc123", 0))

	url, err := repo.Create(context.Background(), "https://example.com", "abc123", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", url.ShortCode)
	assert.Equal(t, 0, url.Clicks)
	require.NotNil(t, url.User)
	assert.Equal(t, "jane@example.com", url.User.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryCreateUniquenessRace(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`INSERT INTO shortened_urls`).
		WithArgs("https://example.com", "abc123", "user-1").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), "https://example.com", "abc123", "user-1")
	assert.ErrorIs(t, err, ErrDuplicateShortCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryFindByShortCode(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM shortened_urls su`).
		WithArgs("abc123").
		WillReturnRows(urlRows("abc123", 7))

	url, err := repo.FindByShortCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, 7, url.Clicks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryFindByShortCodeNotFound(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM shortened_urls su`).
		WithArgs("gone42").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByShortCode(context.Background(), "gone42")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryFindOwnedMergesMissingAndForeign(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM shortened_urls su`).
		WithArgs("abc123", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindOwned(context.Background(), "abc123", "intruder")
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryShortCodeExists(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ShortCodeExists(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryIncrementClicks(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectExec(`UPDATE shortened_urls`).
		WithArgs("abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementClicks(context.Background(), "abc123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryDelete(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectExec(`DELETE FROM shortened_urls`).
		WithArgs("abc123", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "abc123", "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryDeleteNotOwned(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectExec(`DELETE FROM shortened_urls`).
		WithArgs("abc123", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "abc123", "intruder")
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryGetByUser(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	rows := urlRows("abc123", 1).AddRow(
		"url-2", "https://example.org", "def456", 0, "user-1",
		time.Now(), time.Now(), "user-1", "Jane Doe", "jane@example.com",
	)
	mock.ExpectQuery(`(?s)SELECT .+ FROM shortened_urls su`).
		WithArgs("user-1", 10, 0).
		WillReturnRows(rows)

	urls, err := repo.GetByUser(context.Background(), "user-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestURLRepositoryCountByUser(t *testing.T) {
	repo, mock := newURLRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	total, err := repo.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
