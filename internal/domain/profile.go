package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OfferedSkill is a skill a profile can teach or provide.
type OfferedSkill struct {
	Skill       string        `json:"skill"`
	Category    SkillCategory `json:"category"`
	Level       SkillLevel    `json:"level"`
	Description string        `json:"description,omitempty"`
}

// NeededSkill is a skill a profile wants to learn or receive.
type NeededSkill struct {
	Skill       string        `json:"skill"`
	Category    SkillCategory `json:"category"`
	Urgency     UrgencyLevel  `json:"urgency"`
	Description string        `json:"description,omitempty"`
}

// Rating is a profile's aggregate reputation: the mean of all currently
// approved review ratings and how many reviews contributed to it.
type Rating struct {
	Average float64
	Count   int
}

// SkillProfile is a participant of the exchange platform.
type SkillProfile struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	University  string
	Course      string
	YearOfStudy int
	County      string
	Town        string
	Bio         string
	AvatarURL   *string

	SkillsOffered []OfferedSkill
	SkillsNeeded  []NeededSkill

	Rating             Rating
	CompletedExchanges int
	ActiveExchanges    int

	Role       UserRole
	IsActive   bool
	IsVerified bool

	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastActiveAt time.Time
}

func (p *SkillProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Compatibility scoring weights.
const (
	compatSameUniversity = 20
	compatSameCounty     = 15
	compatPerSkillMatch  = 10
	compatHighRating     = 10
	compatMax            = 100

	// HighRatingThreshold is the exclusive lower bound on the viewer's
	// average rating for the rating bonus.
	HighRatingThreshold = 4.0
)

// CompatibilityWith scores how well the viewer p matches the candidate:
// +20 for the same university, +15 for the same county, +10 for each of
// the viewer's offered skills that the candidate needs (case-insensitive
// name equality), +10 if the viewer's average rating exceeds 4.0. The
// result is clamped to [0, 100]. The score is directional: it reflects
// what p can give the candidate, not the reverse. An empty university or
// county on the viewer never scores: two profiles that both left a field
// blank have said nothing in common, so the bonus would be noise.
func (p *SkillProfile) CompatibilityWith(candidate *SkillProfile) int {
	score := 0

	if p.University != "" && strings.EqualFold(p.University, candidate.University) {
		score += compatSameUniversity
	}
	if p.County != "" && strings.EqualFold(p.County, candidate.County) {
		score += compatSameCounty
	}

	needed := make(map[string]struct{}, len(candidate.SkillsNeeded))
	for _, n := range candidate.SkillsNeeded {
		needed[strings.ToLower(n.Skill)] = struct{}{}
	}
	for _, o := range p.SkillsOffered {
		if _, ok := needed[strings.ToLower(o.Skill)]; ok {
			score += compatPerSkillMatch
		}
	}

	if p.Rating.Average > HighRatingThreshold {
		score += compatHighRating
	}

	if score > compatMax {
		score = compatMax
	}
	return score
}

// MatchingSkills returns the viewer's offered skills that the candidate
// needs, matched case-insensitively by name.
func (p *SkillProfile) MatchingSkills(candidate *SkillProfile) []OfferedSkill {
	needed := make(map[string]struct{}, len(candidate.SkillsNeeded))
	for _, n := range candidate.SkillsNeeded {
		needed[strings.ToLower(n.Skill)] = struct{}{}
	}

	var matches []OfferedSkill
	for _, o := range p.SkillsOffered {
		if _, ok := needed[strings.ToLower(o.Skill)]; ok {
			matches = append(matches, o)
		}
	}
	return matches
}
