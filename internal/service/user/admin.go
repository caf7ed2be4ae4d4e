package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/pkg/ctxutil"
)

// List returns all active accounts. The transport layer restricts this to
// admins.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRoleInput identifies the target account and the role to assign.
type UpdateRoleInput struct {
	Email string
	Role  domain.UserRole
}

// Validate checks all fields and collects all errors.
func (i *UpdateRoleInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be one of: user, admin"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateRole assigns a role to the account with the given email.
//
// Bootstrap rule: while no admin account exists yet, any authenticated user
// may promote one. Once an admin exists, only admins may change roles.
func (s *Service) UpdateRole(ctx context.Context, input UpdateRoleInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	adminExists, err := s.users.AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check admin exists: %w", err)
	}
	if adminExists && !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get target user: %w", err)
	}

	if err := s.users.UpdateRole(ctx, target.ID, input.Role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	target.Role = input.Role

	s.log.InfoContext(ctx, "role updated",
		slog.Int64("caller_id", callerID),
		slog.Int64("target_id", target.ID),
		slog.String("role", input.Role.String()),
	)

	return target, nil
}
