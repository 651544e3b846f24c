package reputation

import (
	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const (
	maxTags          = 10
	maxTagLength     = 30
	maxResponseChars = 500
)

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	ExchangeID     uuid.UUID
	Rating         int
	Detailed       domain.DetailedRatings
	Comment        string
	Tags           []string
	WasSuccessful  bool
	WouldRecommend bool
}

// Validate checks all fields and collects all errors.
func (i *SubmitReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if i.Rating < domain.MinReviewRating || i.Rating > domain.MaxReviewRating {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if len(i.Comment) > domain.MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 500 characters"})
	}
	if len(i.Tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 10 tags"})
	}
	for _, tag := range i.Tags {
		if tag == "" || len(tag) > maxTagLength {
			errs = append(errs, domain.FieldError{Field: "tags", Message: "each tag must be 1-30 characters"})
			break
		}
	}

	errs = append(errs, validateSubRating("detailed.communication", i.Detailed.Communication)...)
	errs = append(errs, validateSubRating("detailed.skill_level", i.Detailed.SkillLevel)...)
	errs = append(errs, validateSubRating("detailed.reliability", i.Detailed.Reliability)...)
	errs = append(errs, validateSubRating("detailed.friendliness", i.Detailed.Friendliness)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateSubRating(field string, v *int) []domain.FieldError {
	if v != nil && (*v < domain.MinReviewRating || *v > domain.MaxReviewRating) {
		return []domain.FieldError{{Field: field, Message: "must be between 1 and 5"}}
	}
	return nil
}

// RespondInput holds the parameters for the reviewee's reply.
type RespondInput struct {
	ReviewID uuid.UUID
	Body     string
}

// Validate checks all fields and collects all errors.
func (i *RespondInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if i.Body == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	}
	if len(i.Body) > maxResponseChars {
		errs = append(errs, domain.FieldError{Field: "body", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// FlagInput holds the parameters for flagging a review.
type FlagInput struct {
	ReviewID uuid.UUID
	Reason   string
}

// Validate checks all fields and collects all errors.
func (i *FlagInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ModerateInput holds the parameters for a moderation verdict.
type ModerateInput struct {
	ReviewID uuid.UUID
	Status   domain.ModerationStatus
}

// Validate checks all fields and collects all errors.
func (i *ModerateInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be pending, approved, rejected, or hidden"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListForRevieweeInput holds the parameters for the public review listing.
type ListForRevieweeInput struct {
	RevieweeID uuid.UUID
	Page       domain.Page
}

// Validate checks all fields and collects all errors.
func (i *ListForRevieweeInput) Validate() error {
	if i.RevieweeID == uuid.Nil {
		return domain.NewValidationError("reviewee_id", "required")
	}
	return nil
}

// ModerationQueueInput holds the parameters for the moderation listing.
type ModerationQueueInput struct {
	Status      domain.ModerationStatus
	FlaggedOnly bool
	Page        domain.Page
}

// Validate checks all fields and collects all errors.
func (i *ModerationQueueInput) Validate() error {
	if i.Status != "" && !i.Status.IsValid() {
		return domain.NewValidationError("status", "unknown moderation status")
	}
	return nil
}
