package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/pkg/ctxutil"
)

// Me returns the authenticated user's account.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !u.IsActive() {
		return nil, domain.ErrUnauthorized
	}

	return u, nil
}

// DeleteAccount soft-deletes the authenticated user's account. Dictionary
// contributions stay attributed to the deleted account's id.
func (s *Service) DeleteAccount(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}

	s.log.InfoContext(ctx, "account deleted", slog.Int64("user_id", userID))
	return nil
}
