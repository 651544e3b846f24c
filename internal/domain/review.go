package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds and comment limit.
const (
	MinReviewRating  = 1
	MaxReviewRating  = 5
	MaxCommentLength = 500
)

// DetailedRatings are optional per-aspect sub-ratings, each on the same
// 1..5 scale as the overall rating.
type DetailedRatings struct {
	Communication *int
	SkillLevel    *int
	Reliability   *int
	Friendliness  *int
}

// ReviewResponse is the reviewee's single public reply to a review.
type ReviewResponse struct {
	Body        string
	RespondedAt time.Time
}

// Moderation is the moderation block of a review.
type Moderation struct {
	Status      ModerationStatus
	Flagged     bool
	FlagReason  string
	ModeratedBy *uuid.UUID
	ModeratedAt *time.Time
}

// Review is one participant's rating of the other after an exchange.
// At most one review exists per (reviewer, reviewee, exchange).
type Review struct {
	ID         uuid.UUID
	ExchangeID uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID

	Rating   int
	Detailed DetailedRatings
	Comment  string
	Tags     []string

	WasSuccessful  bool
	WouldRecommend bool

	Moderation Moderation
	Response   *ReviewResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardRating reports whether the review contributes to the
// reviewee's aggregate rating.
func (r *Review) CountsTowardRating() bool {
	return r.Moderation.Status == ModerationApproved
}

// RatingDistribution counts approved reviews per star value for a
// profile's public stats.
type RatingDistribution struct {
	One   int
	Two   int
	Three int
	Four  int
	Five  int
}

// ReviewStats is the public reputation summary of a profile.
type ReviewStats struct {
	Rating       Rating
	Distribution RatingDistribution
	RecommendPct float64
	SuccessPct   float64
}
