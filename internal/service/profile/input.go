package profile

import (
	"strings"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const (
	maxNameLength = 100
	maxBioLength  = 1000
	maxSkills     = 20
	minYear       = 1
	maxYear       = 8
)

// RegisterInput holds the parameters for creating a profile. The
// profile ID is the authenticated subject, not a caller-chosen value.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	University  string
	Course      string
	YearOfStudy int
	County      string
	Town        string
	Bio         string
}

// Validate checks all fields and collects all errors.
func (i *RegisterInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.FirstName) == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "required"})
	}
	if len(i.FirstName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "max 100 characters"})
	}
	if strings.TrimSpace(i.LastName) == "" {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "required"})
	}
	if len(i.LastName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "max 100 characters"})
	}
	if !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if i.YearOfStudy != 0 && (i.YearOfStudy < minYear || i.YearOfStudy > maxYear) {
		errs = append(errs, domain.FieldError{Field: "year_of_study", Message: "must be between 1 and 8"})
	}
	if len(i.Bio) > maxBioLength {
		errs = append(errs, domain.FieldError{Field: "bio", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the self-service profile update. Nil pointers leave
// the current value untouched; skill slices replace wholesale.
type UpdateInput struct {
	FirstName     *string
	LastName      *string
	University    *string
	Course        *string
	YearOfStudy   *int
	County        *string
	Town          *string
	Bio           *string
	AvatarURL     *string
	SkillsOffered []domain.OfferedSkill
	SkillsNeeded  []domain.NeededSkill
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.FirstName != nil && strings.TrimSpace(*i.FirstName) == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "must not be empty"})
	}
	if i.LastName != nil && strings.TrimSpace(*i.LastName) == "" {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "must not be empty"})
	}
	if i.YearOfStudy != nil && (*i.YearOfStudy < minYear || *i.YearOfStudy > maxYear) {
		errs = append(errs, domain.FieldError{Field: "year_of_study", Message: "must be between 1 and 8"})
	}
	if i.Bio != nil && len(*i.Bio) > maxBioLength {
		errs = append(errs, domain.FieldError{Field: "bio", Message: "max 1000 characters"})
	}
	if len(i.SkillsOffered) > maxSkills {
		errs = append(errs, domain.FieldError{Field: "skills_offered", Message: "max 20 skills"})
	}
	if len(i.SkillsNeeded) > maxSkills {
		errs = append(errs, domain.FieldError{Field: "skills_needed", Message: "max 20 skills"})
	}
	for _, sk := range i.SkillsOffered {
		if strings.TrimSpace(sk.Skill) == "" || !sk.Category.IsValid() || !sk.Level.IsValid() {
			errs = append(errs, domain.FieldError{Field: "skills_offered", Message: "each skill needs a name, a valid category, and a valid level"})
			break
		}
	}
	for _, sk := range i.SkillsNeeded {
		if strings.TrimSpace(sk.Skill) == "" || !sk.Category.IsValid() || !sk.Urgency.IsValid() {
			errs = append(errs, domain.FieldError{Field: "skills_needed", Message: "each skill needs a name, a valid category, and a valid urgency"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
