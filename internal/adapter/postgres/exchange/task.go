package exchange

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres"
	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const insertTaskSQL = `
INSERT INTO exchange_tasks (id, exchange_id, side, title)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

const getTaskSQL = `
SELECT id, exchange_id, side, title, completed, completed_at, created_at
FROM exchange_tasks
WHERE id = $1`

// completeTaskSQL only touches tasks that are still open, which makes
// completion idempotent: the second call affects zero rows.
const completeTaskSQL = `
UPDATE exchange_tasks SET completed = true, completed_at = now()
WHERE id = $1 AND NOT completed`

const listTasksSQL = `
SELECT id, exchange_id, side, title, completed, completed_at, created_at
FROM exchange_tasks
WHERE exchange_id = $1
ORDER BY created_at, id`

// AddTask adds a checklist item to one side of the exchange.
func (r *Repo) AddTask(ctx context.Context, t *domain.Task) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertTaskSQL, t.ID, t.ExchangeID, t.Side, t.Title).
		Scan(&t.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "exchange_task", t.ID)
	}
	return nil
}

// GetTask returns a single task by ID.
func (r *Repo) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTask(querier.QueryRow(ctx, getTaskSQL, taskID))
	if err != nil {
		return nil, postgres.MapError(err, "exchange_task", taskID)
	}
	return t, nil
}

// CompleteTask marks a task done. Completing an already-completed task is
// a no-op; the original completion timestamp survives.
func (r *Repo) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, completeTaskSQL, taskID); err != nil {
		return postgres.MapError(err, "exchange_task", taskID)
	}
	return nil
}

// ListTasks returns both checklists of an exchange grouped by side.
func (r *Repo) ListTasks(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTasksSQL, exchangeID)
	if err != nil {
		return domain.Progress{}, postgres.MapError(err, "exchange_task", exchangeID)
	}
	defer rows.Close()

	var progress domain.Progress
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return domain.Progress{}, postgres.MapError(err, "exchange_task", exchangeID)
		}
		switch t.Side {
		case domain.TaskSideRequester:
			progress.RequesterTasks = append(progress.RequesterTasks, *t)
		case domain.TaskSideProvider:
			progress.ProviderTasks = append(progress.ProviderTasks, *t)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Progress{}, postgres.MapError(err, "exchange_task", exchangeID)
	}
	return progress, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t    domain.Task
		side string
	)
	if err := row.Scan(&t.ID, &t.ExchangeID, &side, &t.Title, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Side = domain.TaskSide(side)
	return &t, nil
}
