package middleware

import (
	"context"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// RequireModerator returns domain.ErrForbidden if the context user is
// not a moderator or admin. Use in handlers, not as HTTP middleware.
func RequireModerator(ctx context.Context) error {
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAdmin returns domain.ErrForbidden if the context user is not
// an admin.
func RequireAdmin(ctx context.Context) error {
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
