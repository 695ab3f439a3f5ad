package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"technext-be/internal/apperr"
	"technext-be/internal/entities"
	"technext-be/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Searchable fields for the listing search term, and the allow-listed sort
// columns. Client-supplied keys are validated against these fixed maps and
// never interpolated into SQL identifiers.
var (
	userSearchColumns = []string{"full_name", "email", "contact_number", "address", "country"}

	userSortColumns = map[string]string{
		"createdAt": "created_at",
		"fullName":  "full_name",
		"email":     "email",
	}
)

const userColumns = `
	id, email, password, full_name, profile_image, contact_number,
	address, country, role, status, fcm_token, created_at, updated_at`

// UserRepository defines the database operations for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindActiveByID(ctx context.Context, id string) (*entities.User, error)
	Update(ctx context.Context, id string, patch *models.UpdateUserRequest, profileImage *string) (*entities.User, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.UserFilter, opts *models.PaginationOptions) ([]*entities.User, int, error)
}

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func scanUser(row interface{ Scan(...any) error }) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FullName,
		&u.ProfileImage,
		&u.ContactNumber,
		&u.Address,
		&u.Country,
		&u.Role,
		&u.Status,
		&u.FcmToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row. Emails are stored lowercase so the unique
// index compares case-insensitively.
func (r *userRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password, full_name, contact_number, address, country, role)
		VALUES (LOWER($1), $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.ContactNumber,
		user.Address,
		user.Country,
		user.Role,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// FindActiveByEmail finds an ACTIVE user by email, case-insensitively
func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1) AND status = 'ACTIVE'
	`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindByID finds a user by id regardless of status. This deliberately differs
// from FindActiveByID: the public profile endpoint serves INACTIVE users too,
// matching the reference behavior rather than silently unifying them.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindActiveByID finds an ACTIVE user by id
func (r *userRepository) FindActiveByID(ctx context.Context, id string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND status = 'ACTIVE'
	`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// Update applies the non-nil patch fields to an ACTIVE user and returns the
// updated row
func (r *userRepository) Update(ctx context.Context, id string, patch *models.UpdateUserRequest, profileImage *string) (*entities.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		addSet("full_name", *patch.FullName)
	}
	if patch.ContactNumber != nil {
		addSet("contact_number", *patch.ContactNumber)
	}
	if patch.Address != nil {
		addSet("address", *patch.Address)
	}
	if patch.Country != nil {
		addSet("country", *patch.Country)
	}
	if patch.FcmToken != nil {
		addSet("fcm_token", *patch.FcmToken)
	}
	if profileImage != nil {
		addSet("profile_image", *profileImage)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1 AND status = 'ACTIVE'
		RETURNING %s`, strings.Join(sets, ", "), userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Deactivate soft-deletes an ACTIVE user by flipping status to INACTIVE.
// The row is never removed.
func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET status = 'INACTIVE', updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// List returns ACTIVE users with role USER matching the filter, plus the
// total count for the same predicates.
func (r *userRepository) List(ctx context.Context, filter *models.UserFilter, opts *models.PaginationOptions) ([]*entities.User, int, error) {
	where := []string{"role = 'USER'", "status = 'ACTIVE'"}
	var args []any

	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.SearchTerm != "" {
		placeholder := arg("%" + filter.SearchTerm + "%")
		clauses := make([]string, len(userSearchColumns))
		for i, column := range userSearchColumns {
			clauses[i] = fmt.Sprintf("%s ILIKE %s", column, placeholder)
		}
		where = append(where, "("+strings.Join(clauses, " OR ")+")")
	}

	if filter.Email != "" {
		where = append(where, fmt.Sprintf("LOWER(email) = LOWER(%s)", arg(filter.Email)))
	}
	if filter.Country != "" {
		where = append(where, fmt.Sprintf("country = %s", arg(filter.Country)))
	}
	if filter.ContactNumber != "" {
		where = append(where, fmt.Sprintf("contact_number = %s", arg(filter.ContactNumber)))
	}

	if since, ok := timeRangeStart(filter.TimeRange, time.Now()); ok {
		where = append(where, fmt.Sprintf("created_at >= %s", arg(since)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM users WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortColumn, ok := userSortColumns[opts.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY %s %s
		LIMIT %s OFFSET %s`,
		userColumns, whereClause, sortColumn, sortOrder,
		arg(opts.Limit), arg((opts.Page-1)*opts.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

// timeRangeStart maps a named range to its inclusive start time.
func timeRangeStart(timeRange string, now time.Time) (time.Time, bool) {
	switch timeRange {
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}
