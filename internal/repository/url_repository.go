package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"technext-be/internal/apperr"
	"technext-be/internal/entities"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrDuplicateShortCode is returned when an insert loses the race against the
// unique index on short_code. The index is the authoritative uniqueness
// layer; the allocator's pre-check only makes this rare.
var ErrDuplicateShortCode = errors.New("duplicate short code")

// URLRepository defines the database operations for shortened URLs
type URLRepository interface {
	Create(ctx context.Context, originalURL, shortCode, userID string) (*entities.ShortenedURL, error)
	FindByShortCode(ctx context.Context, shortCode string) (*entities.ShortenedURL, error)
	FindOwned(ctx context.Context, shortCode, userID string) (*entities.ShortenedURL, error)
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
	IncrementClicks(ctx context.Context, shortCode string) error
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.ShortenedURL, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, shortCode, userID string) error
}

type urlRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *sql.DB, logger *zap.Logger) URLRepository {
	return &urlRepository{db: db, logger: logger}
}

const urlWithOwnerColumns = `
	su.id, su.original_url, su.short_code, su.clicks, su.user_id,
	su.created_at, su.updated_at, u.id, u.full_name, u.email`

func scanURLWithOwner(row interface{ Scan(...any) error }) (*entities.ShortenedURL, error) {
	var url entities.ShortenedURL
	var owner entities.OwnerSummary
	err := row.Scan(
		&url.ID,
		&url.OriginalURL,
		&url.ShortCode,
		&url.Clicks,
		&url.UserID,
		&url.CreatedAt,
		&url.UpdatedAt,
		&owner.ID,
		&owner.FullName,
		&owner.Email,
	)
	if err != nil {
		return nil, err
	}
	url.User = &owner
	return &url, nil
}

// Create inserts a new URL row and returns it joined with the owner summary
func (r *urlRepository) Create(ctx context.Context, originalURL, shortCode, userID string) (*entities.ShortenedURL, error) {
	query := `
		WITH inserted AS (
			INSERT INTO shortened_urls (original_url, short_code, user_id)
			VALUES ($1, $2, $3)
			RETURNING id, original_url, short_code, clicks, user_id, created_at, updated_at
		)
		SELECT su.id, su.original_url, su.short_code, su.clicks, su.user_id,
		       su.created_at, su.updated_at, u.id, u.full_name, u.email
		FROM inserted su
		JOIN users u ON u.id = su.user_id
	`

	url, err := scanURLWithOwner(r.db.QueryRowContext(ctx, query, originalURL, shortCode, userID))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.logger.Warn("short code insert lost uniqueness race", zap.String("short_code", shortCode))
			return nil, ErrDuplicateShortCode
		}
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	return url, nil
}

// FindByShortCode finds a URL by its short code. Public lookup, no ownership check.
func (r *urlRepository) FindByShortCode(ctx context.Context, shortCode string) (*entities.ShortenedURL, error) {
	query := `
		SELECT ` + urlWithOwnerColumns + `
		FROM shortened_urls su
		JOIN users u ON u.id = su.user_id
		WHERE su.short_code = $1
	`

	url, err := scanURLWithOwner(r.db.QueryRowContext(ctx, query, shortCode))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}

	return url, nil
}

// FindOwned finds a URL matching both the short code and the owner in a
// single predicate, so a missing row and a foreign row are indistinguishable.
func (r *urlRepository) FindOwned(ctx context.Context, shortCode, userID string) (*entities.ShortenedURL, error) {
	query := `
		SELECT ` + urlWithOwnerColumns + `
		FROM shortened_urls su
		JOIN users u ON u.id = su.user_id
		WHERE su.short_code = $1 AND su.user_id = $2
	`

	url, err := scanURLWithOwner(r.db.QueryRowContext(ctx, query, shortCode, userID))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}

	return url, nil
}

// ShortCodeExists reports whether a short code is present
func (r *urlRepository) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM shortened_urls WHERE short_code = $1)`,
		shortCode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check short code: %w", err)
	}
	return exists, nil
}

// IncrementClicks adds one visit to the URL's click counter
func (r *urlRepository) IncrementClicks(ctx context.Context, shortCode string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shortened_urls
		SET clicks = clicks + 1, updated_at = NOW()
		WHERE short_code = $1
	`, shortCode)
	if err != nil {
		return fmt.Errorf("failed to increment clicks: %w", err)
	}
	return nil
}

// GetByUser retrieves one page of a user's URLs, newest first
func (r *urlRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.ShortenedURL, error) {
	query := `
		SELECT ` + urlWithOwnerColumns + `
		FROM shortened_urls su
		JOIN users u ON u.id = su.user_id
		WHERE su.user_id = $1
		ORDER BY su.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get URLs: %w", err)
	}
	defer rows.Close()

	var urls []*entities.ShortenedURL
	for rows.Next() {
		url, err := scanURLWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, url)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating URLs: %w", err)
	}

	return urls, nil
}

// CountByUser returns the total number of URLs owned by a user
func (r *urlRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shortened_urls WHERE user_id = $1`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count URLs: %w", err)
	}
	return total, nil
}

// Delete removes a URL only when both the short code and owner match.
// Concurrent deletes resolve at the database: exactly one caller sees the
// row, the other gets zero rows affected.
func (r *urlRepository) Delete(ctx context.Context, shortCode, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM shortened_urls WHERE short_code = $1 AND user_id = $2`,
		shortCode, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete URL: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.ErrNotFoundOrForbidden
	}

	return nil
}
