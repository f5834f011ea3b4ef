package model

import (
	"time"

	"github.com/google/uuid"
)

// ── Templates ──────────────────────────────────────────

// Template names a visual layout applied to the same resume data.
type Template string

const (
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateMinimal  Template = "minimal"
	TemplateCreative Template = "creative"
)

// NormalizeTemplate maps an unknown or empty template id to classic.
func NormalizeTemplate(s string) Template {
	switch Template(s) {
	case TemplateModern, TemplateMinimal, TemplateCreative:
		return Template(s)
	}
	return TemplateClassic
}

// ── Section entry types ────────────────────────────────

type EducationEntry struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsCurrent    bool   `json:"isCurrent"`
	GradeGPA     string `json:"gradeGpa,omitempty"`
	Description  string `json:"description,omitempty"`
}

type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description,omitempty"`
}

type CertificationEntry struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuingOrganization"`
	IssueDate           string `json:"issueDate"`
	ExpiryDate          string `json:"expiryDate,omitempty"`
	CredentialID        string `json:"credentialId,omitempty"`
	CredentialURL       string `json:"credentialUrl,omitempty"`
}

type SkillEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	ProficiencyLevel string `json:"proficiencyLevel"`
}

// Skill categories
const (
	SkillTechnical  = "technical"
	SkillSoft       = "soft"
	SkillLanguage   = "language"
	SkillTools      = "tools"
	SkillFrameworks = "frameworks"
)

func ValidSkillCategory(s string) bool {
	switch s {
	case SkillTechnical, SkillSoft, SkillLanguage, SkillTools, SkillFrameworks:
		return true
	}
	return false
}

// Proficiency levels, ordered weakest to strongest
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

func ValidProficiency(s string) bool {
	switch s {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// ── Resume profile ─────────────────────────────────────

// ResumeProfile is the root record for one user's resume. Each user owns
// exactly one, created lazily on first visit to the editor.
type ResumeProfile struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	FullName        string    `json:"fullName"`
	Designation     string    `json:"designation"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	ProfilePhotoURL string    `json:"profilePhotoUrl,omitempty"`
	Summary         string    `json:"summary"`
	LinkedinURL     string    `json:"linkedinUrl"`
	GithubURL       string    `json:"githubUrl"`
	PortfolioURL    string    `json:"portfolioUrl"`
	Template        Template  `json:"template"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SectionSet bundles the four repeatable subsection collections.
type SectionSet struct {
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Certifications []CertificationEntry `json:"certifications"`
	Skills         []SkillEntry         `json:"skills"`
}

// EmptySections returns a SectionSet with all lists non-nil and empty,
// the default state for a fresh profile and the fallback for partial loads.
func EmptySections() SectionSet {
	return SectionSet{
		Education:      []EducationEntry{},
		Experience:     []ExperienceEntry{},
		Certifications: []CertificationEntry{},
		Skills:         []SkillEntry{},
	}
}

// User links a Firebase identity to an internal account.
type User struct {
	ID          uuid.UUID `json:"id"`
	FirebaseUID string    `json:"-"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ── Stripe / Billing ────────────────────────────────────

// StripeCustomer links a QRFolio user to their Stripe customer record
type StripeCustomer struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	StripeCustomerID string    `json:"stripeCustomerId"`
	Email            string    `json:"email"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Subscription tracks a user's active Stripe subscription
type Subscription struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"userId"`
	StripeSubID       string     `json:"stripeSubId,omitempty"`
	StripePriceID     string     `json:"stripePriceId,omitempty"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	CurrentPeriodEnd  *time.Time `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Subscription plan constants. Premium unlocks SVG format and 1000px size
// on QR downloads.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Subscription status constants
const (
	SubStatusActive   = "active"
	SubStatusPastDue  = "past_due"
	SubStatusCanceled = "canceled"
	SubStatusTrialing = "trialing"
)

// PlanLevel returns a numeric level for plan comparison (higher = more features)
func PlanLevel(plan string) int {
	if plan == PlanPremium {
		return 1
	}
	return 0
}
