// Package review implements the Review repository using PostgreSQL.
// The (reviewer, reviewee, exchange) uniqueness lives in the schema, so a
// duplicate submission surfaces as domain.ErrAlreadyExists regardless of
// which replica or goroutine raced.
package review

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

// Repo provides review persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new review repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const reviewColumns = `id, exchange_id, reviewer_id, reviewee_id,
rating, rating_communication, rating_skill, rating_reliability, rating_friendliness,
comment, tags, was_successful, would_recommend,
moderation_status, flagged, flag_reason, moderated_by, moderated_at,
response_body, response_at, created_at, updated_at`

const insertSQL = `
INSERT INTO reviews (
    id, exchange_id, reviewer_id, reviewee_id,
    rating, rating_communication, rating_skill, rating_reliability, rating_friendliness,
    comment, tags, was_successful, would_recommend, moderation_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING created_at, updated_at`

const getByIDSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

// setResponseSQL only fires when no response exists yet; the reviewee gets
// exactly one public reply.
const setResponseSQL = `
UPDATE reviews SET response_body = $2, response_at = now(), updated_at = now()
WHERE id = $1 AND response_body IS NULL`

const setModerationSQL = `
UPDATE reviews SET
    moderation_status = $2, moderated_by = $3, moderated_at = now(),
    flagged = false, updated_at = now()
WHERE id = $1`

const flagSQL = `
UPDATE reviews SET flagged = true, flag_reason = $2, updated_at = now()
WHERE id = $1`

// aggregateSQL recomputes the full aggregate from scratch. COALESCE keeps
// the zero-review case at average 0, matching a fresh profile.
const aggregateSQL = `
SELECT COALESCE(avg(rating), 0), count(*)
FROM reviews
WHERE reviewee_id = $1 AND moderation_status = 'approved'`

const statsSQL = `
SELECT
    COALESCE(avg(rating), 0),
    count(*),
    count(*) FILTER (WHERE rating = 1),
    count(*) FILTER (WHERE rating = 2),
    count(*) FILTER (WHERE rating = 3),
    count(*) FILTER (WHERE rating = 4),
    count(*) FILTER (WHERE rating = 5),
    COALESCE(avg(CASE WHEN would_recommend THEN 100.0 ELSE 0.0 END), 0),
    COALESCE(avg(CASE WHEN was_successful THEN 100.0 ELSE 0.0 END), 0)
FROM reviews
WHERE reviewee_id = $1 AND moderation_status = 'approved'`

// Create inserts a new review. A duplicate (reviewer, reviewee, exchange)
// maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rv *domain.Review) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tags := rv.Tags
	if tags == nil {
		tags = []string{}
	}

	err := querier.QueryRow(ctx, insertSQL,
		rv.ID, rv.ExchangeID, rv.ReviewerID, rv.RevieweeID,
		rv.Rating, rv.Detailed.Communication, rv.Detailed.SkillLevel,
		rv.Detailed.Reliability, rv.Detailed.Friendliness,
		rv.Comment, tags, rv.WasSuccessful, rv.WouldRecommend, rv.Moderation.Status,
	).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "review", rv.ID)
	}
	return nil
}

// GetByID returns a review by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rv, err := scanReview(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "review", id)
	}
	return rv, nil
}

// SetResponse stores the reviewee's single reply. It reports false when
// the review already has one.
func (r *Repo) SetResponse(ctx context.Context, id uuid.UUID, body string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setResponseSQL, id, body)
	if err != nil {
		return false, postgres.MapError(err, "review", id)
	}
	return tag.RowsAffected() == 1, nil
}

// SetModeration updates the moderation status and clears any flag.
func (r *Repo) SetModeration(ctx context.Context, id uuid.UUID, status domain.ModerationStatus, moderatedBy uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setModerationSQL, id, status, moderatedBy)
	if err != nil {
		return postgres.MapError(err, "review", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Flag marks a review for moderator attention.
func (r *Repo) Flag(ctx context.Context, id uuid.UUID, reason string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, flagSQL, id, reason)
	if err != nil {
		return postgres.MapError(err, "review", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AggregateForReviewee recomputes {mean, count} over currently approved
// reviews. Run inside the transaction that holds the reviewee's profile
// row lock.
func (r *Repo) AggregateForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.Rating, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var rating domain.Rating
	err := querier.QueryRow(ctx, aggregateSQL, revieweeID).Scan(&rating.Average, &rating.Count)
	if err != nil {
		return domain.Rating{}, postgres.MapError(err, "review", revieweeID)
	}
	return rating, nil
}

// StatsForReviewee returns the public reputation summary of a profile.
func (r *Repo) StatsForReviewee(ctx context.Context, revieweeID uuid.UUID) (domain.ReviewStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.ReviewStats
	err := querier.QueryRow(ctx, statsSQL, revieweeID).Scan(
		&s.Rating.Average, &s.Rating.Count,
		&s.Distribution.One, &s.Distribution.Two, &s.Distribution.Three,
		&s.Distribution.Four, &s.Distribution.Five,
		&s.RecommendPct, &s.SuccessPct,
	)
	if err != nil {
		return domain.ReviewStats{}, postgres.MapError(err, "review", revieweeID)
	}
	return s, nil
}

// List returns reviews matching the filter, newest first, plus the total
// match count.
func (r *Repo) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	conds := sq.And{}
	if filter.RevieweeID != uuid.Nil {
		conds = append(conds, sq.Eq{"reviewee_id": filter.RevieweeID})
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"moderation_status": filter.Status})
	}
	if filter.FlaggedOnly {
		conds = append(conds, sq.Eq{"flagged": true})
	}
	if len(conds) == 0 {
		conds = append(conds, sq.Expr("true"))
	}

	countSQL, countArgs, err := r.sb.Select("count(*)").From("reviews").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build review count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "review", uuid.Nil)
	}

	page := filter.Page.Normalize()
	querySQL, queryArgs, err := r.sb.
		Select(reviewColumns).
		From("reviews").
		Where(conds).
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build review list query: %w", err)
	}

	rows, err := querier.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "review", uuid.Nil)
	}
	defer rows.Close()

	var out []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "review", uuid.Nil)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "review", uuid.Nil)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var (
		rv           domain.Review
		status       string
		responseBody *string
		responseAt   *time.Time
	)

	err := row.Scan(
		&rv.ID, &rv.ExchangeID, &rv.ReviewerID, &rv.RevieweeID,
		&rv.Rating, &rv.Detailed.Communication, &rv.Detailed.SkillLevel,
		&rv.Detailed.Reliability, &rv.Detailed.Friendliness,
		&rv.Comment, &rv.Tags, &rv.WasSuccessful, &rv.WouldRecommend,
		&status, &rv.Moderation.Flagged, &rv.Moderation.FlagReason,
		&rv.Moderation.ModeratedBy, &rv.Moderation.ModeratedAt,
		&responseBody, &responseAt, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rv.Moderation.Status = domain.ModerationStatus(status)
	if responseBody != nil {
		resp := &domain.ReviewResponse{Body: *responseBody}
		if responseAt != nil {
			resp.RespondedAt = *responseAt
		}
		rv.Response = resp
	}
	return &rv, nil
}
