package exchange

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
)

var (
	_ exchangeRepo   = &exchangeRepoMock{}
	_ profileRepo    = &profileRepoMock{}
	_ txManager      = &txManagerMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type exchangeRepoMock struct {
	CreateFunc         func(ctx context.Context, e *domain.Exchange) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	UpdateStatusIfFunc func(ctx context.Context, id uuid.UUID, expected, next domain.ExchangeStatus) (bool, error)
	SetCompletionFunc  func(ctx context.Context, id uuid.UUID, c domain.Completion) error
	SetDisputeFunc     func(ctx context.Context, id uuid.UUID, raisedBy uuid.UUID, reason string) error
	SetResolutionFunc  func(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution string) error
	ListFunc           func(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error)
	AppendMessageFunc  func(ctx context.Context, m *domain.Message) error
	ListMessagesFunc   func(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error)
	AddTaskFunc        func(ctx context.Context, t *domain.Task) error
	GetTaskFunc        func(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)
	CompleteTaskFunc   func(ctx context.Context, taskID uuid.UUID) error
	ListTasksFunc      func(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error)
}

func (m *exchangeRepoMock) Create(ctx context.Context, e *domain.Exchange) error {
	if m.CreateFunc == nil {
		panic("exchangeRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, e)
}

func (m *exchangeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	if m.GetByIDFunc == nil {
		panic("exchangeRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *exchangeRepoMock) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next domain.ExchangeStatus) (bool, error) {
	if m.UpdateStatusIfFunc == nil {
		panic("exchangeRepoMock.UpdateStatusIfFunc: method is nil but UpdateStatusIf was just called")
	}
	return m.UpdateStatusIfFunc(ctx, id, expected, next)
}

func (m *exchangeRepoMock) SetCompletion(ctx context.Context, id uuid.UUID, c domain.Completion) error {
	if m.SetCompletionFunc == nil {
		panic("exchangeRepoMock.SetCompletionFunc: method is nil but SetCompletion was just called")
	}
	return m.SetCompletionFunc(ctx, id, c)
}

func (m *exchangeRepoMock) SetDispute(ctx context.Context, id uuid.UUID, raisedBy uuid.UUID, reason string) error {
	if m.SetDisputeFunc == nil {
		panic("exchangeRepoMock.SetDisputeFunc: method is nil but SetDispute was just called")
	}
	return m.SetDisputeFunc(ctx, id, raisedBy, reason)
}

func (m *exchangeRepoMock) SetResolution(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution string) error {
	if m.SetResolutionFunc == nil {
		panic("exchangeRepoMock.SetResolutionFunc: method is nil but SetResolution was just called")
	}
	return m.SetResolutionFunc(ctx, id, resolvedBy, resolution)
}

func (m *exchangeRepoMock) List(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error) {
	if m.ListFunc == nil {
		panic("exchangeRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *exchangeRepoMock) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if m.AppendMessageFunc == nil {
		panic("exchangeRepoMock.AppendMessageFunc: method is nil but AppendMessage was just called")
	}
	return m.AppendMessageFunc(ctx, msg)
}

func (m *exchangeRepoMock) ListMessages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error) {
	if m.ListMessagesFunc == nil {
		panic("exchangeRepoMock.ListMessagesFunc: method is nil but ListMessages was just called")
	}
	return m.ListMessagesFunc(ctx, exchangeID)
}

func (m *exchangeRepoMock) AddTask(ctx context.Context, t *domain.Task) error {
	if m.AddTaskFunc == nil {
		panic("exchangeRepoMock.AddTaskFunc: method is nil but AddTask was just called")
	}
	return m.AddTaskFunc(ctx, t)
}

func (m *exchangeRepoMock) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFunc == nil {
		panic("exchangeRepoMock.GetTaskFunc: method is nil but GetTask was just called")
	}
	return m.GetTaskFunc(ctx, taskID)
}

func (m *exchangeRepoMock) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	if m.CompleteTaskFunc == nil {
		panic("exchangeRepoMock.CompleteTaskFunc: method is nil but CompleteTask was just called")
	}
	return m.CompleteTaskFunc(ctx, taskID)
}

func (m *exchangeRepoMock) ListTasks(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error) {
	if m.ListTasksFunc == nil {
		panic("exchangeRepoMock.ListTasksFunc: method is nil but ListTasks was just called")
	}
	return m.ListTasksFunc(ctx, exchangeID)
}

type profileRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	AdjustCountersFunc func(ctx context.Context, id uuid.UUID, activeDelta, completedDelta int) error
}

func (m *profileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	if m.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *profileRepoMock) AdjustCounters(ctx context.Context, id uuid.UUID, activeDelta, completedDelta int) error {
	if m.AdjustCountersFunc == nil {
		panic("profileRepoMock.AdjustCountersFunc: method is nil but AdjustCounters was just called")
	}
	return m.AdjustCountersFunc(ctx, id, activeDelta, completedDelta)
}

// txManagerMock runs the callback directly: no transaction semantics, the
// tests assert on call ordering instead.
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
