// Package exchange implements the Exchange repository using PostgreSQL.
// Status changes go through a conditional UPDATE guarded by the expected
// current status, which is what serializes concurrent transitions on the
// same exchange.
package exchange

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres"
	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

// Repo provides exchange persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new exchange repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const exchangeColumns = `id, requester_id, provider_id, title,
requested_skill, requested_category, requested_description, requested_urgency, requested_hours,
offered_skill, offered_category, offered_description, offered_level, offered_hours,
status, meeting_preference, deadline,
completed_by, completed_at, requester_confirmed, provider_confirmed, completion_notes,
disputed, dispute_raised_by, dispute_reason, dispute_raised_at,
dispute_resolution, dispute_resolved_by, dispute_resolved_at,
monetized, monetization_amount, monetization_currency,
created_at, updated_at`

const insertSQL = `
INSERT INTO exchanges (
    id, requester_id, provider_id, title,
    requested_skill, requested_category, requested_description, requested_urgency, requested_hours,
    offered_skill, offered_category, offered_description, offered_level, offered_hours,
    status, meeting_preference, deadline
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING created_at, updated_at`

const getByIDSQL = `SELECT ` + exchangeColumns + ` FROM exchanges WHERE id = $1`

// updateStatusIfSQL is the compare-and-set at the heart of the state
// machine. Zero rows affected means the expected status no longer holds.
const updateStatusIfSQL = `
UPDATE exchanges SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`

const setCompletionSQL = `
UPDATE exchanges SET
    completed_by = $2, completed_at = now(),
    requester_confirmed = $3, provider_confirmed = $4,
    completion_notes = $5, updated_at = now()
WHERE id = $1`

const setDisputeSQL = `
UPDATE exchanges SET
    disputed = true, dispute_raised_by = $2, dispute_reason = $3,
    dispute_raised_at = now(), updated_at = now()
WHERE id = $1`

const setResolutionSQL = `
UPDATE exchanges SET
    dispute_resolution = $2, dispute_resolved_by = $3,
    dispute_resolved_at = now(), updated_at = now()
WHERE id = $1`

// Create inserts a new exchange in its initial status. The caller supplies
// the ID.
func (r *Repo) Create(ctx context.Context, e *domain.Exchange) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertSQL,
		e.ID, e.RequesterID, e.ProviderID, e.Title,
		e.RequestedSkill.Skill, e.RequestedSkill.Category, e.RequestedSkill.Description,
		e.RequestedSkill.Urgency, e.RequestedSkill.EstimatedHours,
		e.OfferedInReturn.Skill, e.OfferedInReturn.Category, e.OfferedInReturn.Description,
		e.OfferedInReturn.Level, e.OfferedInReturn.EstimatedHours,
		e.Status, e.MeetingPreference, e.Deadline,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "exchange", e.ID)
	}
	return nil
}

// GetByID returns an exchange by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExchange(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "exchange", id)
	}
	return e, nil
}

// UpdateStatusIf moves the exchange from the expected status to the new
// one. It reports false, without error, when the row exists but its status
// is no longer the expected one — the caller decides how to surface that.
func (r *Repo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next domain.ExchangeStatus) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusIfSQL, id, expected, next)
	if err != nil {
		return false, postgres.MapError(err, "exchange", id)
	}
	return tag.RowsAffected() == 1, nil
}

// SetCompletion records who completed the exchange and the sign-off flags.
func (r *Repo) SetCompletion(ctx context.Context, id uuid.UUID, c domain.Completion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setCompletionSQL,
		id, c.CompletedBy, c.RequesterConfirmed, c.ProviderConfirmed, c.Notes)
	if err != nil {
		return postgres.MapError(err, "exchange", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetDispute stamps the dispute block when a dispute is raised.
func (r *Repo) SetDispute(ctx context.Context, id uuid.UUID, raisedBy uuid.UUID, reason string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setDisputeSQL, id, raisedBy, reason)
	if err != nil {
		return postgres.MapError(err, "exchange", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetResolution stamps the resolution half of the dispute block.
func (r *Repo) SetResolution(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setResolutionSQL, id, resolution, resolvedBy)
	if err != nil {
		return postgres.MapError(err, "exchange", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns exchanges matching the filter, newest first, plus the total
// match count.
func (r *Repo) List(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	conds := sq.And{}
	if filter.UserID != uuid.Nil {
		conds = append(conds, sq.Or{
			sq.Eq{"requester_id": filter.UserID},
			sq.Eq{"provider_id": filter.UserID},
		})
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}
	if filter.Disputed != nil {
		conds = append(conds, sq.Eq{"disputed": *filter.Disputed})
	}
	if len(conds) == 0 {
		conds = append(conds, sq.Expr("true"))
	}

	countSQL, countArgs, err := r.sb.Select("count(*)").From("exchanges").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build exchange count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "exchange", uuid.Nil)
	}

	page := filter.Page.Normalize()
	querySQL, queryArgs, err := r.sb.
		Select(exchangeColumns).
		From("exchanges").
		Where(conds).
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build exchange list query: %w", err)
	}

	rows, err := querier.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "exchange", uuid.Nil)
	}
	defer rows.Close()

	var out []*domain.Exchange
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "exchange", uuid.Nil)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "exchange", uuid.Nil)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExchange(row rowScanner) (*domain.Exchange, error) {
	var (
		e                 domain.Exchange
		status            string
		meetingPreference string
		requestedCategory string
		requestedUrgency  string
		offeredCategory   string
		offeredLevel      string
		deadline          *time.Time
	)

	err := row.Scan(
		&e.ID, &e.RequesterID, &e.ProviderID, &e.Title,
		&e.RequestedSkill.Skill, &requestedCategory, &e.RequestedSkill.Description,
		&requestedUrgency, &e.RequestedSkill.EstimatedHours,
		&e.OfferedInReturn.Skill, &offeredCategory, &e.OfferedInReturn.Description,
		&offeredLevel, &e.OfferedInReturn.EstimatedHours,
		&status, &meetingPreference, &deadline,
		&e.Completion.CompletedBy, &e.Completion.CompletedAt,
		&e.Completion.RequesterConfirmed, &e.Completion.ProviderConfirmed, &e.Completion.Notes,
		&e.Dispute.Disputed, &e.Dispute.RaisedBy, &e.Dispute.Reason, &e.Dispute.RaisedAt,
		&e.Dispute.Resolution, &e.Dispute.ResolvedBy, &e.Dispute.ResolvedAt,
		&e.Monetization.Monetized, &e.Monetization.Amount, &e.Monetization.Currency,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.RequestedSkill.Category = domain.SkillCategory(requestedCategory)
	e.RequestedSkill.Urgency = domain.UrgencyLevel(requestedUrgency)
	e.OfferedInReturn.Category = domain.SkillCategory(offeredCategory)
	e.OfferedInReturn.Level = domain.SkillLevel(offeredLevel)
	e.Status = domain.ExchangeStatus(status)
	e.MeetingPreference = domain.MeetingPreference(meetingPreference)
	e.Deadline = deadline
	return &e, nil
}
