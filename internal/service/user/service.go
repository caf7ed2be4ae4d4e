// Package user implements account profile and administration operations.
package user

import (
	"context"
	"log/slog"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AdminExists(ctx context.Context) (bool, error)
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
	SoftDelete(ctx context.Context, userID int64) error
}

// Service implements user profile and administration operations.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}
