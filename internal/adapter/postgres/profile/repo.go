// Package profile implements the SkillProfile repository using PostgreSQL.
// Fixed-shape queries are raw SQL constants; filtered search queries are
// built with squirrel.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres"
	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

// Repo provides skill profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new skill profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const profileColumns = `id, first_name, last_name, email, university, course, year_of_study,
county, town, bio, avatar_url, skills_offered, skills_needed,
rating_average, rating_count, completed_exchanges, active_exchanges,
role, is_active, is_verified, created_at, updated_at, last_active_at`

const insertSQL = `
INSERT INTO skill_profiles (
    id, first_name, last_name, email, university, course, year_of_study,
    county, town, bio, avatar_url, skills_offered, skills_needed, role
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING created_at, updated_at, last_active_at`

const getByIDSQL = `SELECT ` + profileColumns + ` FROM skill_profiles WHERE id = $1`

// getForUpdateSQL locks the profile row for the rest of the transaction.
// Rating recomputes and counter updates for the same profile serialize on it.
const getForUpdateSQL = `SELECT ` + profileColumns + ` FROM skill_profiles WHERE id = $1 FOR UPDATE`

const getByIDsSQL = `SELECT ` + profileColumns + ` FROM skill_profiles WHERE id = ANY($1::uuid[])`

const updateSQL = `
UPDATE skill_profiles SET
    first_name = $2, last_name = $3, university = $4, course = $5,
    year_of_study = $6, county = $7, town = $8, bio = $9, avatar_url = $10,
    skills_offered = $11, skills_needed = $12, updated_at = now()
WHERE id = $1`

// Counter decrements clamp at zero. A profile restored from a partial
// backfill must never block a cancel with a check violation.
const adjustCountersSQL = `
UPDATE skill_profiles SET
    active_exchanges = GREATEST(active_exchanges + $2, 0),
    completed_exchanges = GREATEST(completed_exchanges + $3, 0),
    updated_at = now()
WHERE id = $1`

const setRatingSQL = `
UPDATE skill_profiles SET rating_average = $2, rating_count = $3, updated_at = now()
WHERE id = $1`

const setActiveSQL = `UPDATE skill_profiles SET is_active = $2, updated_at = now() WHERE id = $1`

const setVerifiedSQL = `UPDATE skill_profiles SET is_verified = $2, updated_at = now() WHERE id = $1`

const touchLastActiveSQL = `UPDATE skill_profiles SET last_active_at = now() WHERE id = $1`

// offeringAnySQL finds active profiles offering at least one of the given
// skill names (already lowercased by the caller).
const offeringAnySQL = `
SELECT ` + profileColumns + `
FROM skill_profiles
WHERE is_active
  AND id <> $1
  AND EXISTS (
      SELECT 1 FROM jsonb_array_elements(skills_offered) AS s
      WHERE lower(s->>'skill') = ANY($2::text[])
  )
ORDER BY rating_average DESC, rating_count DESC
LIMIT $3`

const nearbySQL = `
SELECT ` + profileColumns + `
FROM skill_profiles
WHERE is_active AND id <> $1 AND lower(county) = lower($2)
ORDER BY last_active_at DESC
LIMIT $3`

// Create inserts a new profile. The caller supplies the ID.
func (r *Repo) Create(ctx context.Context, p *domain.SkillProfile) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	offered, needed, err := marshalSkills(p)
	if err != nil {
		return err
	}

	role := p.Role
	if role == "" {
		role = domain.UserRoleUser
	}

	err = querier.QueryRow(ctx, insertSQL,
		p.ID, p.FirstName, p.LastName, p.Email, p.University, p.Course, p.YearOfStudy,
		p.County, p.Town, p.Bio, p.AvatarURL, offered, needed, role,
	).Scan(&p.CreatedAt, &p.UpdatedAt, &p.LastActiveAt)
	if err != nil {
		return postgres.MapError(err, "skill_profile", p.ID)
	}
	p.Role = role
	p.IsActive = true
	return nil
}

// GetByID returns a profile by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "skill_profile", id)
	}
	return p, nil
}

// GetForUpdate returns a profile by ID with its row locked until the
// surrounding transaction ends. Must be called inside RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "skill_profile", id)
	}
	return p, nil
}

// GetByIDs returns the profiles for the given IDs, keyed by ID. Missing
// IDs are silently absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.SkillProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, postgres.MapError(err, "skill_profile", uuid.Nil)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*domain.SkillProfile, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, postgres.MapError(err, "skill_profile", uuid.Nil)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "skill_profile", uuid.Nil)
	}
	return out, nil
}

// Update persists profile fields editable by the owner.
func (r *Repo) Update(ctx context.Context, p *domain.SkillProfile) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	offered, needed, err := marshalSkills(p)
	if err != nil {
		return err
	}

	tag, err := querier.Exec(ctx, updateSQL,
		p.ID, p.FirstName, p.LastName, p.University, p.Course,
		p.YearOfStudy, p.County, p.Town, p.Bio, p.AvatarURL, offered, needed,
	)
	if err != nil {
		return postgres.MapError(err, "skill_profile", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skill_profile %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// AdjustCounters applies deltas to the exchange counters. Intended to run
// inside the same transaction as the status change that causes them.
func (r *Repo) AdjustCounters(ctx context.Context, id uuid.UUID, activeDelta, completedDelta int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, adjustCountersSQL, id, activeDelta, completedDelta)
	if err != nil {
		return postgres.MapError(err, "skill_profile", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skill_profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetRating overwrites the aggregate rating. Call with the profile row
// locked (GetForUpdate) so concurrent recomputes serialize.
func (r *Repo) SetRating(ctx context.Context, id uuid.UUID, rating domain.Rating) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setRatingSQL, id, rating.Average, rating.Count)
	if err != nil {
		return postgres.MapError(err, "skill_profile", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skill_profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetActive activates or deactivates a profile.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.execByID(ctx, setActiveSQL, id, active)
}

// SetVerified marks a profile verified or unverified.
func (r *Repo) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.execByID(ctx, setVerifiedSQL, id, verified)
}

// TouchLastActive bumps last_active_at to now.
func (r *Repo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := querier.Exec(ctx, touchLastActiveSQL, id)
	return postgres.MapError(err, "skill_profile", id)
}

func (r *Repo) execByID(ctx context.Context, query string, id uuid.UUID, arg any) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, id, arg)
	if err != nil {
		return postgres.MapError(err, "skill_profile", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("skill_profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// OfferingAny returns active profiles (excluding excludeID) that offer at
// least one of the given skill names, best-rated first.
func (r *Repo) OfferingAny(ctx context.Context, excludeID uuid.UUID, skills []string, limit int) ([]*domain.SkillProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		lowered = append(lowered, strings.ToLower(s))
	}

	rows, err := querier.Query(ctx, offeringAnySQL, excludeID, lowered, limit)
	if err != nil {
		return nil, postgres.MapError(err, "skill_profile", excludeID)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// Nearby returns active profiles in the same county, most recently active
// first.
func (r *Repo) Nearby(ctx context.Context, excludeID uuid.UUID, county string, limit int) ([]*domain.SkillProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, nearbySQL, excludeID, county, limit)
	if err != nil {
		return nil, postgres.MapError(err, "skill_profile", excludeID)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// Search returns active profiles matching the filter plus the total match
// count for pagination.
func (r *Repo) Search(ctx context.Context, filter domain.ProfileFilter) ([]*domain.SkillProfile, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := r.searchConditions(filter)

	countSQL, countArgs, err := r.sb.Select("count(*)").From("skill_profiles").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build profile count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "skill_profile", uuid.Nil)
	}

	page := filter.Page.Normalize()
	querySQL, queryArgs, err := r.sb.
		Select(profileColumns).
		From("skill_profiles").
		Where(where).
		OrderBy("rating_average DESC", "rating_count DESC", "last_active_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build profile search query: %w", err)
	}

	rows, err := querier.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "skill_profile", uuid.Nil)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *Repo) searchConditions(filter domain.ProfileFilter) sq.And {
	conds := sq.And{sq.Eq{"is_active": true}}

	if filter.Skill != "" {
		conds = append(conds, sq.Expr(
			`EXISTS (SELECT 1 FROM jsonb_array_elements(skills_offered) AS s
			 WHERE lower(s->>'skill') LIKE lower(?))`,
			"%"+filter.Skill+"%",
		))
	}
	if filter.Category != "" {
		conds = append(conds, sq.Expr(
			`skills_offered @> ?::jsonb`,
			fmt.Sprintf(`[{"category": %q}]`, filter.Category),
		))
	}
	if filter.County != "" {
		conds = append(conds, sq.Expr("lower(county) = lower(?)", filter.County))
	}
	if filter.University != "" {
		conds = append(conds, sq.Expr("lower(university) = lower(?)", filter.University))
	}
	if filter.MinRating > 0 {
		conds = append(conds, sq.GtOrEq{"rating_average": filter.MinRating})
	}
	if filter.OnlyVerified {
		conds = append(conds, sq.Eq{"is_verified": true})
	}
	if filter.ExcludeID != uuid.Nil {
		conds = append(conds, sq.NotEq{"id": filter.ExcludeID})
	}
	return conds
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.SkillProfile, error) {
	var (
		p               domain.SkillProfile
		offered, needed []byte
		role            string
		createdAt       time.Time
		updatedAt       time.Time
		lastActiveAt    time.Time
	)

	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.University, &p.Course, &p.YearOfStudy,
		&p.County, &p.Town, &p.Bio, &p.AvatarURL, &offered, &needed,
		&p.Rating.Average, &p.Rating.Count, &p.CompletedExchanges, &p.ActiveExchanges,
		&role, &p.IsActive, &p.IsVerified, &createdAt, &updatedAt, &lastActiveAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(offered, &p.SkillsOffered); err != nil {
		return nil, fmt.Errorf("unmarshal skills_offered: %w", err)
	}
	if err := json.Unmarshal(needed, &p.SkillsNeeded); err != nil {
		return nil, fmt.Errorf("unmarshal skills_needed: %w", err)
	}

	p.Role = domain.UserRole(role)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	p.LastActiveAt = lastActiveAt
	return &p, nil
}

func collectProfiles(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]*domain.SkillProfile, error) {
	var out []*domain.SkillProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, postgres.MapError(err, "skill_profile", uuid.Nil)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "skill_profile", uuid.Nil)
	}
	return out, nil
}

func marshalSkills(p *domain.SkillProfile) (offered, needed []byte, err error) {
	so := p.SkillsOffered
	if so == nil {
		so = []domain.OfferedSkill{}
	}
	sn := p.SkillsNeeded
	if sn == nil {
		sn = []domain.NeededSkill{}
	}

	offered, err = json.Marshal(so)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal skills_offered: %w", err)
	}
	needed, err = json.Marshal(sn)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal skills_needed: %w", err)
	}
	return offered, needed, nil
}
