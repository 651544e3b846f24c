package reputation

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
)

var (
	_ reviewRepo     = &reviewRepoMock{}
	_ profileRepo    = &profileRepoMock{}
	_ exchangeRepo   = &exchangeRepoMock{}
	_ txManager      = &txManagerMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type reviewRepoMock struct {
	CreateFunc               func(ctx context.Context, rv *domain.Review) error
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	SetResponseFunc          func(ctx context.Context, id uuid.UUID, body string) (bool, error)
	SetModerationFunc        func(ctx context.Context, id uuid.UUID, status domain.ModerationStatus, moderatedBy uuid.UUID) error
	FlagFunc                 func(ctx context.Context, id uuid.UUID, reason string) error
	AggregateForRevieweeFunc func(ctx context.Context, revieweeID uuid.UUID) (domain.Rating, error)
	StatsForRevieweeFunc     func(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error)
	ListFunc                 func(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error)
}

func (m *reviewRepoMock) Create(ctx context.Context, rv *domain.Review) error {
	if m.CreateFunc == nil {
		panic("reviewRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, rv)
}

func (m *reviewRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	if m.GetByIDFunc == nil {
		panic("reviewRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *reviewRepoMock) SetResponse(ctx context.Context, id uuid.UUID, body string) (bool, error) {
	if m.SetResponseFunc == nil {
		panic("reviewRepoMock.SetResponseFunc: method is nil but SetResponse was just called")
	}
	return m.SetResponseFunc(ctx, id, body)
}

func (m *reviewRepoMock) SetModeration(ctx context.Context, id uuid.UUID, status domain.ModerationStatus, moderatedBy uuid.UUID) error {
	if m.SetModerationFunc == nil {
		panic("reviewRepoMock.SetModerationFunc: method is nil but SetModeration was just called")
	}
	return m.SetModerationFunc(ctx, id, status, moderatedBy)
}

func (m *reviewRepoMock) Flag(ctx context.Context, id uuid.UUID, reason string) error {
	if m.FlagFunc == nil {
		panic("reviewRepoMock.FlagFunc: method is nil but Flag was just called")
	}
	return m.FlagFunc(ctx, id, reason)
}

func (m *reviewRepoMock) AggregateForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.Rating, error) {
	if m.AggregateForRevieweeFunc == nil {
		panic("reviewRepoMock.AggregateForRevieweeFunc: method is nil but AggregateForReviewee was just called")
	}
	return m.AggregateForRevieweeFunc(ctx, revieweeID)
}

func (m *reviewRepoMock) StatsForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error) {
	if m.StatsForRevieweeFunc == nil {
		panic("reviewRepoMock.StatsForRevieweeFunc: method is nil but StatsForReviewee was just called")
	}
	return m.StatsForRevieweeFunc(ctx, revieweeID)
}

func (m *reviewRepoMock) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error) {
	if m.ListFunc == nil {
		panic("reviewRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, filter)
}

type profileRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	SetRatingFunc    func(ctx context.Context, id uuid.UUID, rating domain.Rating) error
}

func (m *profileRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	if m.GetForUpdateFunc == nil {
		panic("profileRepoMock.GetForUpdateFunc: method is nil but GetForUpdate was just called")
	}
	return m.GetForUpdateFunc(ctx, id)
}

func (m *profileRepoMock) SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating) error {
	if m.SetRatingFunc == nil {
		panic("profileRepoMock.SetRatingFunc: method is nil but SetRating was just called")
	}
	return m.SetRatingFunc(ctx, id, rating)
}

type exchangeRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
}

func (m *exchangeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	if m.GetByIDFunc == nil {
		panic("exchangeRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type eventPublisherMock struct {
	events []events.Event
}

func (m *eventPublisherMock) Publish(_ context.Context, e events.Event) {
	m.events = append(m.events, e)
}
