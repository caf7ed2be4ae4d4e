package middleware

import (
	"context"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context user is not admin.
// Call it at the top of admin-only handlers rather than wiring it as HTTP
// middleware, so the error maps through the usual handler error path.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
