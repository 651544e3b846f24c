// Package matching finds exchange partners: ranked suggestions from the
// viewer's needed skills, filtered profile search, and same-county
// discovery. Scores come from domain.SkillProfile.CompatibilityWith and
// are always computed candidate -> viewer: what the candidate can give
// the person looking.
package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

// suggestionPoolSize is how many candidates the repository returns per
// matched skill set before ranking trims to the page.
const (
	suggestionPoolSize = 50
	suggestionLimit    = 10
	nearbyLimit        = 20
)

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	OfferingAny(ctx context.Context, excludeID uuid.UUID, skills []string, limit int) ([]*domain.SkillProfile, error)
	Nearby(ctx context.Context, excludeID uuid.UUID, county string, limit int) ([]*domain.SkillProfile, error)
	Search(ctx context.Context, filter domain.ProfileFilter) ([]*domain.SkillProfile, int, error)
}

// Match is one candidate profile with its compatibility annotation.
type Match struct {
	Profile        *domain.SkillProfile
	Score          int
	MatchingSkills []domain.OfferedSkill
}

// Service implements partner discovery.
type Service struct {
	profiles profileRepo
	log      *slog.Logger
}

// NewService creates a new Matching service.
func NewService(log *slog.Logger, profiles profileRepo) *Service {
	return &Service{
		profiles: profiles,
		log:      log.With("service", "matching"),
	}
}
