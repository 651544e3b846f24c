package reputation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// ListForReviewee returns a profile's approved reviews, newest first. The
// listing is public to any authenticated user; only moderators see the
// unapproved ones through the moderation queue.
func (s *Service) ListForReviewee(ctx context.Context, input ListForRevieweeInput) ([]*domain.Review, int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	return s.reviews.List(ctx, domain.ReviewFilter{
		RevieweeID: input.RevieweeID,
		Status:     domain.ModerationApproved,
		Page:       input.Page,
	})
}

// StatsForProfile returns the public reputation summary of a profile.
func (s *Service) StatsForProfile(ctx context.Context, profileID uuid.UUID) (domain.ReviewStats, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ReviewStats{}, domain.ErrUnauthorized
	}
	if profileID == uuid.Nil {
		return domain.ReviewStats{}, domain.NewValidationError("profile_id", "required")
	}

	stats, err := s.reviews.StatsForReviewee(ctx, profileID)
	if err != nil {
		return domain.ReviewStats{}, fmt.Errorf("stats for reviewee: %w", err)
	}
	return stats, nil
}
