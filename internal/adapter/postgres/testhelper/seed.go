package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates an active skill profile with one offered and one
// needed skill. Returns the filled domain.SkillProfile.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.SkillProfile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.SkillProfile{
		ID:          uuid.New(),
		FirstName:   "Test",
		LastName:    "Student " + suffix,
		Email:       "student-" + suffix + "@example.com",
		University:  "University of Nairobi",
		Course:      "Computer Science",
		YearOfStudy: 2,
		County:      "Nairobi",
		Town:        "Nairobi",
		SkillsOffered: []domain.OfferedSkill{
			{Skill: "Python", Category: domain.SkillCategoryTechnical, Level: domain.SkillLevelAdvanced},
		},
		SkillsNeeded: []domain.NeededSkill{
			{Skill: "Guitar", Category: domain.SkillCategoryMusic, Urgency: domain.UrgencyMedium},
		},
		Role:         domain.UserRoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActiveAt: now,
	}

	offered, err := json.Marshal(p.SkillsOffered)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile marshal skills_offered: %v", err)
	}
	needed, err := json.Marshal(p.SkillsNeeded)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile marshal skills_needed: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO skill_profiles (id, first_name, last_name, email, university, course, year_of_study,
		                             county, town, skills_offered, skills_needed, role, is_active,
		                             created_at, updated_at, last_active_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.FirstName, p.LastName, p.Email, p.University, p.Course, p.YearOfStudy,
		p.County, p.Town, offered, needed, string(p.Role), p.IsActive,
		p.CreatedAt, p.UpdatedAt, p.LastActiveAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}

	return p
}

// SeedModerator creates an active profile with the moderator role.
func SeedModerator(t *testing.T, pool *pgxpool.Pool) domain.SkillProfile {
	t.Helper()

	p := SeedProfile(t, pool)
	_, err := pool.Exec(context.Background(),
		`UPDATE skill_profiles SET role = $2 WHERE id = $1`,
		p.ID, string(domain.UserRoleModerator),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedModerator update role: %v", err)
	}
	p.Role = domain.UserRoleModerator
	return p
}

// SeedExchange creates an exchange between the two profiles in the given
// status. Returns the filled domain.Exchange.
func SeedExchange(t *testing.T, pool *pgxpool.Pool, requesterID, providerID uuid.UUID, status domain.ExchangeStatus) domain.Exchange {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Exchange{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ProviderID:  providerID,
		Title:       "Guitar for Python " + uniqueSuffix(),
		RequestedSkill: domain.RequestedSkill{
			Skill:          "Guitar",
			Category:       domain.SkillCategoryMusic,
			Urgency:        domain.UrgencyMedium,
			EstimatedHours: 5,
		},
		OfferedInReturn: domain.OfferedInReturn{
			Skill:          "Python",
			Category:       domain.SkillCategoryTechnical,
			Level:          domain.SkillLevelAdvanced,
			EstimatedHours: 5,
		},
		Status:            status,
		MeetingPreference: domain.MeetingBoth,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO exchanges (id, requester_id, provider_id, title,
		                        requested_skill, requested_category, requested_urgency, requested_hours,
		                        offered_skill, offered_category, offered_level, offered_hours,
		                        status, meeting_preference, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		e.ID, e.RequesterID, e.ProviderID, e.Title,
		e.RequestedSkill.Skill, string(e.RequestedSkill.Category), string(e.RequestedSkill.Urgency), e.RequestedSkill.EstimatedHours,
		e.OfferedInReturn.Skill, string(e.OfferedInReturn.Category), string(e.OfferedInReturn.Level), e.OfferedInReturn.EstimatedHours,
		string(e.Status), string(e.MeetingPreference), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExchange insert: %v", err)
	}

	return e
}

// SeedReview creates an approved review on the exchange. Returns the
// filled domain.Review.
func SeedReview(t *testing.T, pool *pgxpool.Pool, exchangeID, reviewerID, revieweeID uuid.UUID, rating int) domain.Review {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	r := domain.Review{
		ID:             uuid.New(),
		ExchangeID:     exchangeID,
		ReviewerID:     reviewerID,
		RevieweeID:     revieweeID,
		Rating:         rating,
		Comment:        "Seeded review " + uniqueSuffix(),
		Tags:           []string{"patient"},
		WasSuccessful:  true,
		WouldRecommend: true,
		Moderation:     domain.Moderation{Status: domain.ModerationApproved},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO reviews (id, exchange_id, reviewer_id, reviewee_id, rating, comment, tags,
		                      was_successful, would_recommend, moderation_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.ExchangeID, r.ReviewerID, r.RevieweeID, r.Rating, r.Comment, r.Tags,
		r.WasSuccessful, r.WouldRecommend, string(r.Moderation.Status), r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReview insert: %v", err)
	}

	return r
}
