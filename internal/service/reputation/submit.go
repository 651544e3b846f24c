package reputation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// SubmitReview records one party's review of the other after a completed
// exchange and folds it into the reviewee's aggregate in the same
// transaction. A second submission for the same (reviewer, reviewee,
// exchange) returns ErrAlreadyExists — the first write wins, identically
// under concurrency.
func (s *Service) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	reviewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.exchanges.GetByID(ctx, input.ExchangeID)
	if err != nil {
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	revieweeID, err := e.OtherParty(reviewerID)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.ExchangeStatusCompleted {
		return nil, fmt.Errorf("only completed exchanges can be reviewed: %w", domain.ErrInvalidTransition)
	}

	rv := &domain.Review{
		ID:             uuid.New(),
		ExchangeID:     input.ExchangeID,
		ReviewerID:     reviewerID,
		RevieweeID:     revieweeID,
		Rating:         input.Rating,
		Detailed:       input.Detailed,
		Comment:        input.Comment,
		Tags:           input.Tags,
		WasSuccessful:  input.WasSuccessful,
		WouldRecommend: input.WouldRecommend,
		// Reviews publish immediately; moderation pulls them back down.
		Moderation: domain.Moderation{Status: domain.ModerationApproved},
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Lock first: the insert below changes the approved set, and two
		// concurrent reviewers of the same profile must recompute in turn.
		if _, err := s.profiles.GetForUpdate(txCtx, revieweeID); err != nil {
			return fmt.Errorf("lock reviewee profile: %w", err)
		}
		if err := s.reviews.Create(txCtx, rv); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return fmt.Errorf("review for this exchange already submitted: %w", domain.ErrAlreadyExists)
			}
			return fmt.Errorf("create review: %w", err)
		}
		if err := s.recomputeRating(txCtx, revieweeID); err != nil {
			return fmt.Errorf("recompute rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:       events.TypeReviewSubmitted,
		ActorID:    reviewerID,
		ExchangeID: input.ExchangeID,
		ReviewID:   rv.ID,
	})

	s.log.InfoContext(ctx, "review submitted",
		"review_id", rv.ID,
		"exchange_id", input.ExchangeID,
		"reviewee_id", revieweeID,
		"rating", input.Rating,
	)
	return rv, nil
}

// Respond stores the reviewee's single public reply to a review.
func (s *Service) Respond(ctx context.Context, input RespondInput) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	rv, err := s.reviews.GetByID(ctx, input.ReviewID)
	if err != nil {
		return fmt.Errorf("get review: %w", err)
	}
	if rv.RevieweeID != actorID {
		return fmt.Errorf("only the reviewee may respond: %w", domain.ErrForbidden)
	}

	responded, err := s.reviews.SetResponse(ctx, input.ReviewID, input.Body)
	if err != nil {
		return fmt.Errorf("set response: %w", err)
	}
	if !responded {
		return fmt.Errorf("review already has a response: %w", domain.ErrAlreadyExists)
	}
	return nil
}

// Flag marks a review for moderator attention. Any authenticated user may
// flag; the moderation queue sorts it out.
func (s *Service) Flag(ctx context.Context, input FlagInput) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.reviews.Flag(ctx, input.ReviewID, input.Reason); err != nil {
		return fmt.Errorf("flag review: %w", err)
	}
	return nil
}
