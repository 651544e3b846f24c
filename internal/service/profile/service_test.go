package profile

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

var (
	_ profileRepo = &profileRepoMock{}
	_ reviewRepo  = &reviewRepoMock{}
)

type profileRepoMock struct {
	CreateFunc          func(ctx context.Context, p *domain.SkillProfile) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	UpdateFunc          func(ctx context.Context, p *domain.SkillProfile) error
	SetActiveFunc       func(ctx context.Context, id uuid.UUID, active bool) error
	SetVerifiedFunc     func(ctx context.Context, id uuid.UUID, verified bool) error
	TouchLastActiveFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *profileRepoMock) Create(ctx context.Context, p *domain.SkillProfile) error {
	if m.CreateFunc == nil {
		panic("profileRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, p)
}

func (m *profileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	if m.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *profileRepoMock) Update(ctx context.Context, p *domain.SkillProfile) error {
	if m.UpdateFunc == nil {
		panic("profileRepoMock.UpdateFunc: method is nil but Update was just called")
	}
	return m.UpdateFunc(ctx, p)
}

func (m *profileRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetActiveFunc == nil {
		panic("profileRepoMock.SetActiveFunc: method is nil but SetActive was just called")
	}
	return m.SetActiveFunc(ctx, id, active)
}

func (m *profileRepoMock) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if m.SetVerifiedFunc == nil {
		panic("profileRepoMock.SetVerifiedFunc: method is nil but SetVerified was just called")
	}
	return m.SetVerifiedFunc(ctx, id, verified)
}

func (m *profileRepoMock) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	if m.TouchLastActiveFunc == nil {
		panic("profileRepoMock.TouchLastActiveFunc: method is nil but TouchLastActive was just called")
	}
	return m.TouchLastActiveFunc(ctx, id)
}

type reviewRepoMock struct {
	ListFunc             func(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error)
	StatsForRevieweeFunc func(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error)
}

func (m *reviewRepoMock) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error) {
	if m.ListFunc == nil {
		panic("reviewRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *reviewRepoMock) StatsForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error) {
	if m.StatsForRevieweeFunc == nil {
		panic("reviewRepoMock.StatsForRevieweeFunc: method is nil but StatsForReviewee was just called")
	}
	return m.StatsForRevieweeFunc(ctx, revieweeID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func userCtx(id uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), id)
}

func adminCtx(id uuid.UUID) context.Context {
	return ctxutil.WithRole(userCtx(id), string(domain.UserRoleAdmin))
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:   "Wanjiku",
		LastName:    "Kamau",
		Email:       "wanjiku@students.uonbi.ac.ke",
		University:  "University of Nairobi",
		Course:      "Computer Science",
		YearOfStudy: 3,
		County:      "Nairobi",
		Town:        "Westlands",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	profiles := &profileRepoMock{
		CreateFunc: func(_ context.Context, p *domain.SkillProfile) error {
			if p.ID != actorID {
				t.Errorf("profile ID = %s, want the authenticated subject %s", p.ID, actorID)
			}
			if !p.IsActive {
				t.Error("new profile should start active")
			}
			if p.IsVerified {
				t.Error("new profile should start unverified")
			}
			if p.Role != domain.UserRoleUser {
				t.Errorf("role = %s, want user", p.Role)
			}
			return nil
		},
	}
	svc := NewService(testLogger(), profiles, &reviewRepoMock{})

	p, err := svc.Register(userCtx(actorID), validRegisterInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if p.FullName() != "Wanjiku Kamau" {
		t.Errorf("full name = %q", p.FullName())
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &profileRepoMock{}, &reviewRepoMock{})

	input := validRegisterInput()
	input.FirstName = ""
	input.Email = "not-an-email"
	input.YearOfStudy = 12

	_, err := svc.Register(userCtx(uuid.New()), input)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	if len(vErr.Errors) != 3 {
		t.Errorf("field errors = %d, want 3: %v", len(vErr.Errors), vErr.Errors)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	profiles := &profileRepoMock{
		CreateFunc: func(_ context.Context, p *domain.SkillProfile) error {
			return domain.ErrAlreadyExists
		},
	}
	svc := NewService(testLogger(), profiles, &reviewRepoMock{})

	_, err := svc.Register(userCtx(uuid.New()), validRegisterInput())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	current := &domain.SkillProfile{
		ID:        actorID,
		FirstName: "Wanjiku",
		LastName:  "Kamau",
		County:    "Nairobi",
		Bio:       "old bio",
	}

	var saved *domain.SkillProfile
	profiles := &profileRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
			return current, nil
		},
		UpdateFunc: func(_ context.Context, p *domain.SkillProfile) error {
			saved = p
			return nil
		},
	}
	svc := NewService(testLogger(), profiles, &reviewRepoMock{})

	bio := "Final-year CS student, trades Python lessons for guitar."
	skills := []domain.OfferedSkill{{
		Skill:    "Python",
		Category: domain.SkillCategoryTechnical,
		Level:    domain.SkillLevelAdvanced,
	}}

	_, err := svc.Update(userCtx(actorID), UpdateInput{Bio: &bio, SkillsOffered: skills})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if saved.Bio != bio {
		t.Errorf("bio = %q, want the new bio", saved.Bio)
	}
	if saved.FirstName != "Wanjiku" || saved.County != "Nairobi" {
		t.Error("untouched fields changed")
	}
	if len(saved.SkillsOffered) != 1 {
		t.Errorf("skills offered = %v, want the replacement slice", saved.SkillsOffered)
	}
}

func TestUpdate_RejectsInvalidSkill(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &profileRepoMock{}, &reviewRepoMock{})

	_, err := svc.Update(userCtx(uuid.New()), UpdateInput{
		SkillsOffered: []domain.OfferedSkill{{Skill: "Python", Category: "Cooking", Level: domain.SkillLevelAdvanced}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestGetPublicProfile(t *testing.T) {
	t.Parallel()

	profileID := uuid.New()
	profiles := &profileRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
			return &domain.SkillProfile{ID: id, FirstName: "Wanjiku"}, nil
		},
	}
	reviews := &reviewRepoMock{
		ListFunc: func(_ context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error) {
			if filter.Status != domain.ModerationApproved {
				t.Errorf("filter status = %s, want approved", filter.Status)
			}
			if filter.RevieweeID != profileID {
				t.Errorf("filter reviewee = %s, want %s", filter.RevieweeID, profileID)
			}
			return []*domain.Review{{ID: uuid.New()}}, 4, nil
		},
		StatsForRevieweeFunc: func(_ context.Context, id uuid.UUID) (domain.ReviewStats, error) {
			return domain.ReviewStats{Rating: domain.Rating{Average: 4.8, Count: 4}}, nil
		},
	}
	svc := NewService(testLogger(), profiles, reviews)

	pp, err := svc.GetPublicProfile(userCtx(uuid.New()), profileID)
	if err != nil {
		t.Fatalf("GetPublicProfile() error = %v", err)
	}
	if pp.ReviewsTotal != 4 || len(pp.Reviews) != 1 {
		t.Errorf("reviews = %d (total %d)", len(pp.Reviews), pp.ReviewsTotal)
	}
	if pp.Stats.Rating.Average != 4.8 {
		t.Errorf("stats average = %v, want 4.8", pp.Stats.Rating.Average)
	}
}

func TestSetActive_OwnerAndAdmin(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	profiles := &profileRepoMock{
		SetActiveFunc: func(_ context.Context, id uuid.UUID, active bool) error {
			return nil
		},
	}
	svc := NewService(testLogger(), profiles, &reviewRepoMock{})

	if err := svc.SetActive(userCtx(ownerID), ownerID, false); err != nil {
		t.Errorf("owner SetActive() error = %v", err)
	}
	if err := svc.SetActive(adminCtx(uuid.New()), ownerID, true); err != nil {
		t.Errorf("admin SetActive() error = %v", err)
	}
}

func TestSetActive_StrangerForbidden(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &profileRepoMock{}, &reviewRepoMock{})

	err := svc.SetActive(userCtx(uuid.New()), uuid.New(), false)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestVerify_AdminOnly(t *testing.T) {
	t.Parallel()

	verified := false
	profiles := &profileRepoMock{
		SetVerifiedFunc: func(_ context.Context, id uuid.UUID, v bool) error {
			verified = v
			return nil
		},
	}
	svc := NewService(testLogger(), profiles, &reviewRepoMock{})

	if err := svc.Verify(userCtx(uuid.New()), uuid.New()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin error = %v, want ErrForbidden", err)
	}
	if err := svc.Verify(adminCtx(uuid.New()), uuid.New()); err != nil {
		t.Errorf("admin Verify() error = %v", err)
	}
	if !verified {
		t.Error("SetVerified was not called with true")
	}
}
