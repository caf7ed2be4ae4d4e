// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	IsVerified   bool       `db:"is_verified"`
	IsDeleted    bool       `db:"is_deleted"`
	DeletedAt    *time.Time `db:"deleted_at"`
	DefinedCount int        `db:"defined_count"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.UserRole(r.Role),
		IsVerified:   r.IsVerified,
		IsDeleted:    r.IsDeleted,
		DeletedAt:    r.DeletedAt,
		DefinedCount: r.DefinedCount,
		CreatedAt:    r.CreatedAt,
	}
}

const userColumns = `id, email, password_hash, role, is_verified, is_deleted, deleted_at, defined_count, created_at`

// GetByID returns a user by id, including soft-deleted accounts.
func (r *Repo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}

	u := row.toDomain()
	return &u, nil
}

// GetByEmail returns a non-deleted user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_deleted = FALSE`, email)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}

	u := row.toDomain()
	return &u, nil
}

// Create inserts a user and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO users (email, password_hash, role, is_verified)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.Role.String(), u.IsVerified)
	if err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// List returns all non-deleted users ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []userRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+userColumns+` FROM users WHERE is_deleted = FALSE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}

	return users, nil
}

// AdminExists reports whether any non-deleted admin account exists.
func (r *Repo) AdminExists(ctx context.Context) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin' AND is_deleted = FALSE)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check admin exists: %w", err)
	}

	return exists, nil
}

// UpdateRole sets a user's role.
func (r *Repo) UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET role = $2 WHERE id = $1 AND is_deleted = FALSE`,
		userID, role.String())
	if err != nil {
		return postgres.MapError(err, "user", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// IncrementDefinedCount adds delta to a user's defined entry counter.
// The counter never goes below zero.
func (r *Repo) IncrementDefinedCount(ctx context.Context, userID int64, delta int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET defined_count = GREATEST(defined_count + $2, 0) WHERE id = $1`,
		userID, delta)
	if err != nil {
		return postgres.MapError(err, "user", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete marks a user account deleted.
func (r *Repo) SoftDelete(ctx context.Context, userID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET is_deleted = TRUE, deleted_at = now() WHERE id = $1 AND is_deleted = FALSE`,
		userID)
	if err != nil {
		return postgres.MapError(err, "user", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	return nil
}
