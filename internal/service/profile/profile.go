package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// Register creates the caller's profile. New profiles start active,
// unverified, with the plain user role.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.SkillProfile, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p := &domain.SkillProfile{
		ID:          actorID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		University:  input.University,
		Course:      input.Course,
		YearOfStudy: input.YearOfStudy,
		County:      input.County,
		Town:        input.Town,
		Bio:         input.Bio,
		Role:        domain.UserRoleUser,
		IsActive:    true,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile registered", "profile_id", p.ID, "county", p.County)
	return p, nil
}

// Update applies a partial self-service update to the caller's profile.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.SkillProfile, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if input.FirstName != nil {
		p.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		p.LastName = *input.LastName
	}
	if input.University != nil {
		p.University = *input.University
	}
	if input.Course != nil {
		p.Course = *input.Course
	}
	if input.YearOfStudy != nil {
		p.YearOfStudy = *input.YearOfStudy
	}
	if input.County != nil {
		p.County = *input.County
	}
	if input.Town != nil {
		p.Town = *input.Town
	}
	if input.Bio != nil {
		p.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		p.AvatarURL = input.AvatarURL
	}
	if input.SkillsOffered != nil {
		p.SkillsOffered = input.SkillsOffered
	}
	if input.SkillsNeeded != nil {
		p.SkillsNeeded = input.SkillsNeeded
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// GetByID returns a profile by ID. Any authenticated user may look up
// any profile; the rating and counters on it are public by design of
// the platform.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.profiles.GetByID(ctx, id)
}

// PublicProfile is the profile page payload: the profile, its first page
// of approved reviews, and the reputation summary.
type PublicProfile struct {
	Profile      *domain.SkillProfile
	Reviews      []*domain.Review
	ReviewsTotal int
	Stats        domain.ReviewStats
}

// GetPublicProfile assembles the public view of a profile.
func (s *Service) GetPublicProfile(ctx context.Context, id uuid.UUID) (*PublicProfile, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.reviews.List(ctx, domain.ReviewFilter{
		RevieweeID: id,
		Status:     domain.ModerationApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	stats, err := s.reviews.StatsForReviewee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	return &PublicProfile{
		Profile:      p,
		Reviews:      reviews,
		ReviewsTotal: total,
		Stats:        stats,
	}, nil
}

// SetActive toggles a profile's active flag. Users may deactivate and
// reactivate themselves; admins may do it to anyone.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if actorID != id && !domain.UserRole(ctxutil.RoleFromCtx(ctx)).IsAdmin() {
		return fmt.Errorf("only the owner or an admin may change activation: %w", domain.ErrForbidden)
	}

	if err := s.profiles.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	s.log.InfoContext(ctx, "profile activation changed",
		"profile_id", id,
		"active", active,
		"actor_id", actorID,
	)
	return nil
}

// Verify marks a profile as verified. Admin only.
func (s *Service) Verify(ctx context.Context, id uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).IsAdmin() {
		return domain.ErrForbidden
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.profiles.SetVerified(ctx, id, true); err != nil {
		return fmt.Errorf("set verified: %w", err)
	}

	s.log.InfoContext(ctx, "profile verified", "profile_id", id, "admin_id", actorID)
	return nil
}

// RecordActivity bumps the profile's last-active timestamp. Called by
// the auth middleware on every authenticated request; failures are not
// surfaced to the caller.
func (s *Service) RecordActivity(ctx context.Context, id uuid.UUID) {
	if err := s.profiles.TouchLastActive(ctx, id); err != nil {
		s.log.WarnContext(ctx, "touch last active failed", "profile_id", id, "error", err)
	}
}
