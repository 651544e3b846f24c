// Package profile manages skill profiles: registration, self-service
// updates, the public profile view, and the admin switches for account
// activation and verification.
package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

type profileRepo interface {
	Create(ctx context.Context, p *domain.SkillProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	Update(ctx context.Context, p *domain.SkillProfile) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

type reviewRepo interface {
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error)
	StatsForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error)
}

// Service implements profile management.
type Service struct {
	profiles profileRepo
	reviews  reviewRepo
	log      *slog.Logger
}

// NewService creates a new Profile service.
func NewService(log *slog.Logger, profiles profileRepo, reviews reviewRepo) *Service {
	return &Service{
		profiles: profiles,
		reviews:  reviews,
		log:      log.With("service", "profile"),
	}
}
