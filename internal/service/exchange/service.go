// Package exchange implements the barter exchange lifecycle: proposals,
// status transitions, the message transcript, progress checklists, and
// disputes. Every status change and its counter side effects commit in a
// single transaction.
package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type exchangeRepo interface {
	Create(ctx context.Context, e *domain.Exchange) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next domain.ExchangeStatus) (bool, error)
	SetCompletion(ctx context.Context, id uuid.UUID, c domain.Completion) error
	SetDispute(ctx context.Context, id uuid.UUID, raisedBy uuid.UUID, reason string) error
	SetResolution(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution string) error
	List(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error)

	AppendMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error)

	AddTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID uuid.UUID) error
	ListTasks(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error)
}

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	AdjustCounters(ctx context.Context, id uuid.UUID, activeDelta, completedDelta int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	Publish(ctx context.Context, e events.Event)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the exchange lifecycle business logic.
type Service struct {
	exchanges       exchangeRepo
	profiles        profileRepo
	tx              txManager
	events          eventPublisher
	maxActive       int
	defaultDeadline time.Duration
	log             *slog.Logger
}

// NewService creates a new Exchange service. maxActivePerUser caps how
// many non-terminal exchanges a requester may hold when proposing.
// defaultDeadline is applied to proposals that omit a deadline.
func NewService(
	log *slog.Logger,
	exchanges exchangeRepo,
	profiles profileRepo,
	tx txManager,
	events eventPublisher,
	maxActivePerUser int,
	defaultDeadline time.Duration,
) *Service {
	return &Service{
		exchanges:       exchanges,
		profiles:        profiles,
		tx:              tx,
		events:          events,
		maxActive:       maxActivePerUser,
		defaultDeadline: defaultDeadline,
		log:             log.With("service", "exchange"),
	}
}

// counterDeltas returns the per-party counter change caused by entering a
// status. Both parties always receive the same deltas.
func counterDeltas(to domain.ExchangeStatus) (activeDelta, completedDelta int, apply bool) {
	switch to {
	case domain.ExchangeStatusCompleted:
		return -1, 1, true
	case domain.ExchangeStatusCancelled, domain.ExchangeStatusRejected:
		return -1, 0, true
	}
	return 0, 0, false
}

// adjustBothParties applies the counter deltas for entering a status to
// both parties. Must run inside the status-change transaction.
func (s *Service) adjustBothParties(ctx context.Context, e *domain.Exchange, to domain.ExchangeStatus) error {
	activeDelta, completedDelta, apply := counterDeltas(to)
	if !apply {
		return nil
	}
	if err := s.profiles.AdjustCounters(ctx, e.RequesterID, activeDelta, completedDelta); err != nil {
		return err
	}
	return s.profiles.AdjustCounters(ctx, e.ProviderID, activeDelta, completedDelta)
}
