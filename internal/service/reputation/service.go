// Package reputation implements review submission, moderation, and the
// aggregate rating recompute. The aggregate is never adjusted
// incrementally: every mutation recomputes {mean, count} from the
// currently approved reviews while holding the reviewee's profile row
// lock, so concurrent submissions and moderation verdicts serialize.
package reputation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
)

type reviewRepo interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	SetResponse(ctx context.Context, id uuid.UUID, body string) (bool, error)
	SetModeration(ctx context.Context, id uuid.UUID, status domain.ModerationStatus, moderatedBy uuid.UUID) error
	Flag(ctx context.Context, id uuid.UUID, reason string) error
	AggregateForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.Rating, error)
	StatsForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error)
}

type profileRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating) error
}

type exchangeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	Publish(ctx context.Context, e events.Event)
}

// Service implements the reputation business logic.
type Service struct {
	reviews   reviewRepo
	profiles  profileRepo
	exchanges exchangeRepo
	tx        txManager
	events    eventPublisher
	log       *slog.Logger
}

// NewService creates a new Reputation service.
func NewService(
	log *slog.Logger,
	reviews reviewRepo,
	profiles profileRepo,
	exchanges exchangeRepo,
	tx txManager,
	events eventPublisher,
) *Service {
	return &Service{
		reviews:   reviews,
		profiles:  profiles,
		exchanges: exchanges,
		tx:        tx,
		events:    events,
		log:       log.With("service", "reputation"),
	}
}

// recomputeRating refreshes the reviewee's aggregate from scratch. The
// caller must already hold the profile row lock in the current
// transaction.
func (s *Service) recomputeRating(ctx context.Context, revieweeID uuid.UUID) error {
	rating, err := s.reviews.AggregateForReviewee(ctx, revieweeID)
	if err != nil {
		return err
	}
	return s.profiles.SetRating(ctx, revieweeID, rating)
}
