// Package token implements the refresh token repository using PostgreSQL.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides refresh token persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new refresh token repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type tokenRow struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r tokenRow) toDomain() domain.RefreshToken {
	return domain.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: r.ExpiresAt,
		RevokedAt: r.RevokedAt,
		CreatedAt: r.CreatedAt,
	}
}

const tokenColumns = `id, user_id, token_hash, expires_at, revoked_at, created_at`

// Create stores a hashed refresh token.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row tokenRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING `+tokenColumns,
		t.UserID, t.TokenHash, t.ExpiresAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// GetByHash returns a token by its hash regardless of expiry or revocation.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row tokenRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+tokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", 0)
	}

	t := row.toDomain()
	return &t, nil
}

// Revoke marks a single token revoked.
func (r *Repo) Revoke(ctx context.Context, tokenID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`,
		tokenID)
	if err != nil {
		return postgres.MapError(err, "refresh token", tokenID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh token %d: %w", tokenID, domain.ErrNotFound)
	}

	return nil
}

// RevokeAllForUser revokes every live token of a user. Revoking a user with
// no live tokens is not an error.
func (r *Repo) RevokeAllForUser(ctx context.Context, userID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID)
	if err != nil {
		return postgres.MapError(err, "refresh token", 0)
	}

	return nil
}

// DeleteExpired removes tokens expired or revoked before the cutoff and
// returns how many rows were deleted.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1 OR revoked_at < $1`, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "refresh token", 0)
	}

	return tag.RowsAffected(), nil
}
