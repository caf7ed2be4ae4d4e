package domain

import (
	"time"
)

// User is a registered contributor account. Accounts are the only entities
// with soft delete; dictionary data is never soft-deleted.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         UserRole
	IsVerified   bool
	IsDeleted    bool
	DeletedAt    *time.Time
	DefinedCount int
	CreatedAt    time.Time
}

// IsActive reports whether the account can authenticate.
func (u *User) IsActive() bool {
	return !u.IsDeleted
}

// UserRef identifies an acting user for attribution fields. Write operations
// take an optional *UserRef: nil means the write is anonymous and attribution
// is skipped.
type UserRef struct {
	ID int64
}

// RefreshToken is a stored, hashed refresh token.
type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at the given time.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsRevoked reports whether the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
