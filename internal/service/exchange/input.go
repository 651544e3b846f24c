package exchange

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const maxTitleLength = 200

// ProposeInput holds the parameters for proposing an exchange.
type ProposeInput struct {
	ProviderID        uuid.UUID
	Title             string
	RequestedSkill    domain.RequestedSkill
	OfferedInReturn   domain.OfferedInReturn
	MeetingPreference domain.MeetingPreference
	Deadline          *time.Time
}

// Validate checks all fields and collects all errors.
func (i *ProposeInput) Validate() error {
	var errs []domain.FieldError

	if i.ProviderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "provider_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	errs = append(errs, validateRequested("requested_skill", i.RequestedSkill)...)
	errs = append(errs, validateOffered("offered_in_return", i.OfferedInReturn)...)

	if i.MeetingPreference != "" && !i.MeetingPreference.IsValid() {
		errs = append(errs, domain.FieldError{Field: "meeting_preference", Message: "must be online, in_person, or both"})
	}
	if i.Deadline != nil && !i.Deadline.After(time.Now()) {
		errs = append(errs, domain.FieldError{Field: "deadline", Message: "must be in the future"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateRequested(field string, r domain.RequestedSkill) []domain.FieldError {
	var errs []domain.FieldError

	if r.Skill == "" {
		errs = append(errs, domain.FieldError{Field: field + ".skill", Message: "required"})
	}
	if !r.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: field + ".category", Message: "unknown category"})
	}
	if r.Urgency != "" && !r.Urgency.IsValid() {
		errs = append(errs, domain.FieldError{Field: field + ".urgency", Message: "must be Low, Medium, High, or Urgent"})
	}
	errs = append(errs, validateHours(field+".estimated_hours", r.EstimatedHours)...)
	return errs
}

func validateOffered(field string, o domain.OfferedInReturn) []domain.FieldError {
	var errs []domain.FieldError

	if o.Skill == "" {
		errs = append(errs, domain.FieldError{Field: field + ".skill", Message: "required"})
	}
	if !o.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: field + ".category", Message: "unknown category"})
	}
	if o.Level != "" && !o.Level.IsValid() {
		errs = append(errs, domain.FieldError{Field: field + ".level", Message: "must be Beginner, Intermediate, Advanced, or Expert"})
	}
	errs = append(errs, validateHours(field+".estimated_hours", o.EstimatedHours)...)
	return errs
}

func validateHours(field string, hours float64) []domain.FieldError {
	if hours < domain.MinEstimatedHours || hours > domain.MaxEstimatedHours {
		return []domain.FieldError{{Field: field, Message: "must be between 0.5 and 100"}}
	}
	return nil
}

// TransitionInput holds the parameters for an ordinary status transition.
type TransitionInput struct {
	ExchangeID uuid.UUID
	To         domain.ExchangeStatus
	// Reason is required when To is disputed.
	Reason string
	// Notes are stored on completion.
	Notes string
}

// Validate checks all fields and collects all errors.
func (i *TransitionInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if !i.To.IsValid() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "unknown status"})
	}
	if i.To == domain.ExchangeStatusPending {
		errs = append(errs, domain.FieldError{Field: "to", Message: "pending is the initial status only"})
	}
	if i.To == domain.ExchangeStatusDisputed && i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required when disputing"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RaiseDisputeInput holds the parameters for raising a dispute.
type RaiseDisputeInput struct {
	ExchangeID uuid.UUID
	Reason     string
}

// Validate checks all fields and collects all errors.
func (i *RaiseDisputeInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ResolveDisputeInput holds the parameters for resolving a dispute.
type ResolveDisputeInput struct {
	ExchangeID uuid.UUID
	Outcome    domain.ExchangeStatus
	Resolution string
}

// Validate checks all fields and collects all errors.
func (i *ResolveDisputeInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if !domain.IsResolutionOutcome(i.Outcome) {
		errs = append(errs, domain.FieldError{Field: "outcome", Message: "must be completed or cancelled"})
	}
	if i.Resolution == "" {
		errs = append(errs, domain.FieldError{Field: "resolution", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AppendMessageInput holds the parameters for appending a message.
type AppendMessageInput struct {
	ExchangeID uuid.UUID
	Body       string
}

// Validate checks all fields and collects all errors.
func (i *AppendMessageInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if i.Body == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	}
	if len(i.Body) > domain.MaxMessageLength {
		errs = append(errs, domain.FieldError{Field: "body", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddTaskInput holds the parameters for adding a checklist task.
type AddTaskInput struct {
	ExchangeID uuid.UUID
	Title      string
}

// Validate checks all fields and collects all errors.
func (i *AddTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds the parameters for listing the caller's exchanges.
type ListInput struct {
	Status domain.ExchangeStatus
	Page   domain.Page
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
