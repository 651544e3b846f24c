package reputation

import (
	"context"
	"fmt"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// SetModerationStatus applies a moderation verdict and recomputes the
// reviewee's aggregate in the same transaction. Approving, rejecting, or
// hiding a review therefore takes effect on the public rating atomically
// with the verdict.
func (s *Service) SetModerationStatus(ctx context.Context, input ModerateInput) (*domain.Review, error) {
	moderatorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	rv, err := s.reviews.GetByID(ctx, input.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.profiles.GetForUpdate(txCtx, rv.RevieweeID); err != nil {
			return fmt.Errorf("lock reviewee profile: %w", err)
		}
		if err := s.reviews.SetModeration(txCtx, input.ReviewID, input.Status, moderatorID); err != nil {
			return fmt.Errorf("set moderation: %w", err)
		}
		if err := s.recomputeRating(txCtx, rv.RevieweeID); err != nil {
			return fmt.Errorf("recompute rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:     events.TypeReviewModerated,
		ActorID:  moderatorID,
		ReviewID: input.ReviewID,
	})

	s.log.InfoContext(ctx, "review moderated",
		"review_id", input.ReviewID,
		"status", input.Status,
		"moderator_id", moderatorID,
	)

	updated, err := s.reviews.GetByID(ctx, input.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return updated, nil
}

// ListForModeration returns the moderation queue. Moderators only.
func (s *Service) ListForModeration(ctx context.Context, input ModerationQueueInput) ([]*domain.Review, int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, 0, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	status := input.Status
	if status == "" && !input.FlaggedOnly {
		status = domain.ModerationPending
	}

	return s.reviews.List(ctx, domain.ReviewFilter{
		Status:      status,
		FlaggedOnly: input.FlaggedOnly,
		Page:        input.Page,
	})
}
