package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// Suggestions returns up to ten candidates offering something the viewer
// needs, ranked by compatibility score (candidate -> viewer), ties
// broken by the candidate's average rating.
func (s *Service) Suggestions(ctx context.Context) ([]Match, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	viewer, err := s.profiles.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get viewer profile: %w", err)
	}

	if len(viewer.SkillsNeeded) == 0 {
		return nil, nil
	}
	skills := make([]string, 0, len(viewer.SkillsNeeded))
	for _, n := range viewer.SkillsNeeded {
		skills = append(skills, n.Skill)
	}

	candidates, err := s.profiles.OfferingAny(ctx, viewerID, skills, suggestionPoolSize)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	matches := rank(viewer, candidates)
	if len(matches) > suggestionLimit {
		matches = matches[:suggestionLimit]
	}

	s.log.DebugContext(ctx, "suggestions computed",
		"viewer_id", viewerID,
		"candidates", len(candidates),
		"returned", len(matches),
	)
	return matches, nil
}

// Nearby returns active profiles in the viewer's county, annotated with
// compatibility. Viewers without a county on file get an empty list.
func (s *Service) Nearby(ctx context.Context) ([]Match, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	viewer, err := s.profiles.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get viewer profile: %w", err)
	}
	if viewer.County == "" {
		return nil, nil
	}

	candidates, err := s.profiles.Nearby(ctx, viewerID, viewer.County, nearbyLimit)
	if err != nil {
		return nil, fmt.Errorf("find nearby: %w", err)
	}
	return rank(viewer, candidates), nil
}

// Search runs a filtered profile search and annotates each hit with the
// candidate's compatibility toward the viewer. The viewer is always
// excluded from the results.
func (s *Service) Search(ctx context.Context, filter domain.ProfileFilter) ([]Match, int, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, 0, domain.NewValidationError("category", "unknown skill category")
	}

	viewer, err := s.profiles.GetByID(ctx, viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("get viewer profile: %w", err)
	}

	filter.ExcludeID = viewerID
	profiles, total, err := s.profiles.Search(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("search profiles: %w", err)
	}

	// Search order comes from the repository (rating desc); annotate
	// without re-sorting so pagination stays stable.
	matches := make([]Match, 0, len(profiles))
	for _, c := range profiles {
		matches = append(matches, Match{
			Profile:        c,
			Score:          c.CompatibilityWith(viewer),
			MatchingSkills: c.MatchingSkills(viewer),
		})
	}
	return matches, total, nil
}

func rank(viewer *domain.SkillProfile, candidates []*domain.SkillProfile) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{
			Profile:        c,
			Score:          c.CompatibilityWith(viewer),
			MatchingSkills: c.MatchingSkills(viewer),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Profile.Rating.Average > matches[j].Profile.Rating.Average
	})
	return matches
}
