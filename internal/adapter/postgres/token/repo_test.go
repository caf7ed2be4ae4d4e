package token_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/token"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*token.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return token.New(mock), mock
}

func TestRepo_GetByHash(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	// revoked_at needs a typed nil so it scans into *time.Time as NULL.
	rows := pgxmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at"}).
		AddRow(int64(7), int64(3), "hash-abc", now.Add(time.Hour), (*time.Time)(nil), now)

	mock.ExpectQuery(`SELECT .+ FROM refresh_tokens WHERE token_hash = \$1`).
		WithArgs("hash-abc").
		WillReturnRows(rows)

	got, err := repo.GetByHash(context.Background(), "hash-abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, "hash-abc", got.TokenHash)
	assert.Nil(t, got.RevokedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByHash_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM refresh_tokens WHERE token_hash = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByHash(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Revoke(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = now\(\) WHERE id = \$1 AND revoked_at IS NULL`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Revoke(context.Background(), 5)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Revoke_AlreadyRevoked(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_RevokeAllForUser_NoLiveTokens(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = now\(\) WHERE user_id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.RevokeAllForUser(context.Background(), 9)
	assert.NoError(t, err, "zero affected rows is fine here")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteExpired(t *testing.T) {
	repo, mock := newMockRepo(t)

	cutoff := time.Now()
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE expires_at < \$1 OR revoked_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := repo.DeleteExpired(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteExpired_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	cutoff := time.Now()
	mock.ExpectExec(`DELETE FROM refresh_tokens`).
		WithArgs(cutoff).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteExpired(context.Background(), cutoff)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
