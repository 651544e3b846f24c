package domain

// SkillCategory classifies a skill into one of the platform's fixed categories.
type SkillCategory string

const (
	SkillCategoryAcademic  SkillCategory = "Academic"
	SkillCategoryTechnical SkillCategory = "Technical"
	SkillCategoryCreative  SkillCategory = "Creative"
	SkillCategoryLanguage  SkillCategory = "Language"
	SkillCategorySports    SkillCategory = "Sports"
	SkillCategoryMusic     SkillCategory = "Music"
	SkillCategoryOther     SkillCategory = "Other"
)

func (c SkillCategory) String() string { return string(c) }

func (c SkillCategory) IsValid() bool {
	switch c {
	case SkillCategoryAcademic, SkillCategoryTechnical, SkillCategoryCreative,
		SkillCategoryLanguage, SkillCategorySports, SkillCategoryMusic, SkillCategoryOther:
		return true
	}
	return false
}

// SkillLevel represents self-assessed proficiency in an offered skill.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

func (l SkillLevel) String() string { return string(l) }

func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

// UrgencyLevel represents how urgently a needed skill is required.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "Low"
	UrgencyMedium UrgencyLevel = "Medium"
	UrgencyHigh   UrgencyLevel = "High"
	UrgencyUrgent UrgencyLevel = "Urgent"
)

func (u UrgencyLevel) String() string { return string(u) }

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// ExchangeStatus is the lifecycle state of a barter exchange.
type ExchangeStatus string

const (
	ExchangeStatusPending    ExchangeStatus = "pending"
	ExchangeStatusAccepted   ExchangeStatus = "accepted"
	ExchangeStatusRejected   ExchangeStatus = "rejected"
	ExchangeStatusInProgress ExchangeStatus = "in_progress"
	ExchangeStatusCompleted  ExchangeStatus = "completed"
	ExchangeStatusCancelled  ExchangeStatus = "cancelled"
	ExchangeStatusDisputed   ExchangeStatus = "disputed"
)

func (s ExchangeStatus) String() string { return string(s) }

func (s ExchangeStatus) IsValid() bool {
	switch s {
	case ExchangeStatusPending, ExchangeStatusAccepted, ExchangeStatusRejected,
		ExchangeStatusInProgress, ExchangeStatusCompleted, ExchangeStatusCancelled,
		ExchangeStatusDisputed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
// Disputed is not terminal: it leaves only through dispute resolution.
func (s ExchangeStatus) IsTerminal() bool {
	switch s {
	case ExchangeStatusCompleted, ExchangeStatusCancelled, ExchangeStatusRejected:
		return true
	}
	return false
}

// MeetingPreference describes how the two parties prefer to meet.
type MeetingPreference string

const (
	MeetingOnline   MeetingPreference = "online"
	MeetingInPerson MeetingPreference = "in_person"
	MeetingBoth     MeetingPreference = "both"
)

func (m MeetingPreference) String() string { return string(m) }

func (m MeetingPreference) IsValid() bool {
	switch m {
	case MeetingOnline, MeetingInPerson, MeetingBoth:
		return true
	}
	return false
}

// TaskSide identifies which party of an exchange a checklist task belongs to.
type TaskSide string

const (
	TaskSideRequester TaskSide = "requester"
	TaskSideProvider  TaskSide = "provider"
)

func (s TaskSide) String() string { return string(s) }

func (s TaskSide) IsValid() bool {
	return s == TaskSideRequester || s == TaskSideProvider
}

// ModerationStatus is the moderation state of a review. Only approved
// reviews count toward a profile's aggregate rating.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
	ModerationHidden   ModerationStatus = "hidden"
)

func (m ModerationStatus) String() string { return string(m) }

func (m ModerationStatus) IsValid() bool {
	switch m {
	case ModerationPending, ModerationApproved, ModerationRejected, ModerationHidden:
		return true
	}
	return false
}

// UserRole represents the authorization level of a profile.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// CanModerate reports whether the role may moderate reviews and resolve
// disputes. Resolution additionally requires the resolver to be neither
// party of the exchange; the service layer checks that.
func (r UserRole) CanModerate() bool {
	return r == UserRoleAdmin || r == UserRoleModerator
}
