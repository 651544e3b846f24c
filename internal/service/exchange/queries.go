package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// GetByID returns an exchange visible to the caller: its parties or a
// moderator.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	e, err := s.exchanges.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	if !e.IsParty(actorID) && !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

// ListForUser returns the caller's exchanges, newest first.
func (s *Service) ListForUser(ctx context.Context, input ListInput) ([]*domain.Exchange, int, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	return s.exchanges.List(ctx, domain.ExchangeFilter{
		UserID: actorID,
		Status: input.Status,
		Page:   input.Page,
	})
}

// List returns exchanges matching an arbitrary filter. Moderators only.
func (s *Service) List(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, 0, domain.ErrForbidden
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domain.NewValidationError("status", "unknown status")
	}

	return s.exchanges.List(ctx, filter)
}
