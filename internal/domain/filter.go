package domain

import "github.com/google/uuid"

// DefaultPageSize caps list queries when the caller asks for nothing.
const DefaultPageSize = 20

// MaxPageSize is the hard upper bound on a single page.
const MaxPageSize = 100

// Page is limit/offset pagination shared by all list filters.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ProfileFilter narrows a profile search. Zero values mean "any".
type ProfileFilter struct {
	Skill        string
	Category     SkillCategory
	County       string
	University   string
	MinRating    float64
	OnlyVerified bool
	ExcludeID    uuid.UUID
	Page         Page
}

// ExchangeFilter narrows an exchange listing. Zero values mean "any".
// UserID matches either side of the exchange.
type ExchangeFilter struct {
	UserID   uuid.UUID
	Status   ExchangeStatus
	Disputed *bool
	Page     Page
}

// ReviewFilter narrows a review listing. Zero values mean "any".
type ReviewFilter struct {
	RevieweeID  uuid.UUID
	Status      ModerationStatus
	FlaggedOnly bool
	Page        Page
}
