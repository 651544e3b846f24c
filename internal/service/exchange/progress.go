package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// AddTask appends a checklist item to the caller's side of the exchange.
// Each party maintains its own checklist; tasks may be added any time
// before the exchange closes, including while pending or disputed.
func (s *Service) AddTask(ctx context.Context, input AddTaskInput) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
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
	if !e.IsParty(actorID) {
		return nil, domain.ErrForbidden
	}
	if e.Status.IsTerminal() {
		return nil, fmt.Errorf("exchange is closed: %w", domain.ErrInvalidTransition)
	}

	side := domain.TaskSideProvider
	if actorID == e.RequesterID {
		side = domain.TaskSideRequester
	}

	t := &domain.Task{
		ID:         uuid.New(),
		ExchangeID: input.ExchangeID,
		Side:       side,
		Title:      input.Title,
	}
	if err := s.exchanges.AddTask(ctx, t); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return t, nil
}

// CompleteTask marks one of the caller's own tasks done and returns the
// updated progress. Completing a completed task changes nothing — the
// progress percentage is stable under retries.
func (s *Service) CompleteTask(ctx context.Context, taskID uuid.UUID) (domain.Progress, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Progress{}, domain.ErrUnauthorized
	}

	task, err := s.exchanges.GetTask(ctx, taskID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("get task: %w", err)
	}

	e, err := s.exchanges.GetByID(ctx, task.ExchangeID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("get exchange: %w", err)
	}
	if !e.IsParty(actorID) {
		return domain.Progress{}, domain.ErrForbidden
	}

	owns := (task.Side == domain.TaskSideRequester && actorID == e.RequesterID) ||
		(task.Side == domain.TaskSideProvider && actorID == e.ProviderID)
	if !owns {
		return domain.Progress{}, fmt.Errorf("task belongs to the other party: %w", domain.ErrForbidden)
	}

	if err := s.exchanges.CompleteTask(ctx, taskID); err != nil {
		return domain.Progress{}, fmt.Errorf("complete task: %w", err)
	}

	return s.exchanges.ListTasks(ctx, task.ExchangeID)
}

// Progress returns both checklists of an exchange. Progress is advisory:
// it never gates completion.
func (s *Service) Progress(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Progress{}, domain.ErrUnauthorized
	}

	e, err := s.exchanges.GetByID(ctx, exchangeID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("get exchange: %w", err)
	}
	if !e.IsParty(actorID) && !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return domain.Progress{}, domain.ErrForbidden
	}

	return s.exchanges.ListTasks(ctx, exchangeID)
}
