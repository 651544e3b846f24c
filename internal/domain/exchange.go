package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Bounds on per-skill effort estimates, in hours.
const (
	MinEstimatedHours = 0.5
	MaxEstimatedHours = 100
)

// MaxMessageLength bounds a single exchange message body.
const MaxMessageLength = 1000

// RequestedSkill describes what the requester wants from the provider.
type RequestedSkill struct {
	Skill          string
	Category       SkillCategory
	Description    string
	Urgency        UrgencyLevel
	EstimatedHours float64
}

// OfferedInReturn describes what the requester offers the provider back.
type OfferedInReturn struct {
	Skill          string
	Category       SkillCategory
	Description    string
	Level          SkillLevel
	EstimatedHours float64
}

// Message is one entry in an exchange's append-only transcript.
type Message struct {
	ID         uuid.UUID
	ExchangeID uuid.UUID
	SenderID   uuid.UUID
	Body       string
	SentAt     time.Time
}

// Task is one item of a party's completion checklist.
type Task struct {
	ID          uuid.UUID
	ExchangeID  uuid.UUID
	Side        TaskSide
	Title       string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Progress is the combined checklist state of both parties.
type Progress struct {
	RequesterTasks []Task
	ProviderTasks  []Task
}

// Overall returns the rounded percentage of completed tasks across both
// checklists, and 0 when no tasks exist.
func (p Progress) Overall() int {
	total := len(p.RequesterTasks) + len(p.ProviderTasks)
	if total == 0 {
		return 0
	}
	done := 0
	for _, t := range p.RequesterTasks {
		if t.Completed {
			done++
		}
	}
	for _, t := range p.ProviderTasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// Completion records who finished the exchange and the parties' sign-off.
type Completion struct {
	CompletedBy        *uuid.UUID
	CompletedAt        *time.Time
	RequesterConfirmed bool
	ProviderConfirmed  bool
	Notes              string
}

// Dispute is the dispute block of an exchange. Disputed is true from the
// moment a dispute is raised; resolution fields are set when an authorized
// resolver closes it.
type Dispute struct {
	Disputed   bool
	RaisedBy   *uuid.UUID
	Reason     string
	RaisedAt   *time.Time
	Resolution string
	ResolvedBy *uuid.UUID
	ResolvedAt *time.Time
}

// Monetization is a dormant extension point. No operation reads or
// writes it beyond persistence round-trips.
type Monetization struct {
	Monetized bool
	Amount    *float64
	Currency  string
}

// Exchange is a skill-barter agreement between a requester and a provider.
type Exchange struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	ProviderID  uuid.UUID

	Title           string
	RequestedSkill  RequestedSkill
	OfferedInReturn OfferedInReturn

	Status            ExchangeStatus
	MeetingPreference MeetingPreference
	Deadline          *time.Time

	Completion   Completion
	Dispute      Dispute
	Monetization Monetization

	CreatedAt time.Time
	UpdatedAt time.Time
}

// transitions is the full edge set of the exchange state machine. Leaving
// disputed is reserved for dispute resolution and is not listed here.
var transitions = map[ExchangeStatus][]ExchangeStatus{
	ExchangeStatusPending:    {ExchangeStatusAccepted, ExchangeStatusRejected, ExchangeStatusCancelled},
	ExchangeStatusAccepted:   {ExchangeStatusInProgress, ExchangeStatusCancelled},
	ExchangeStatusInProgress: {ExchangeStatusCompleted, ExchangeStatusCancelled, ExchangeStatusDisputed},
}

// CanTransition reports whether the edge from -> to exists in the ordinary
// lifecycle graph.
func CanTransition(from, to ExchangeStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ResolutionOutcomes are the statuses a disputed exchange may resolve onto.
func ResolutionOutcomes() []ExchangeStatus {
	return []ExchangeStatus{ExchangeStatusCompleted, ExchangeStatusCancelled}
}

// IsResolutionOutcome reports whether s is a valid dispute resolution target.
func IsResolutionOutcome(s ExchangeStatus) bool {
	return s == ExchangeStatusCompleted || s == ExchangeStatusCancelled
}

// IsParty reports whether id is the requester or the provider.
func (e *Exchange) IsParty(id uuid.UUID) bool {
	return id == e.RequesterID || id == e.ProviderID
}

// OtherParty returns the counterpart of actor, or ErrForbidden when actor
// is not a party to the exchange.
func (e *Exchange) OtherParty(actor uuid.UUID) (uuid.UUID, error) {
	switch actor {
	case e.RequesterID:
		return e.ProviderID, nil
	case e.ProviderID:
		return e.RequesterID, nil
	}
	return uuid.Nil, ErrForbidden
}

// IsOverdue reports whether the advisory deadline has passed for an
// exchange that is still live. Deadlines never gate transitions.
func (e *Exchange) IsOverdue(now time.Time) bool {
	if e.Deadline == nil || e.Status.IsTerminal() {
		return false
	}
	return now.After(*e.Deadline)
}
