package therapists

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Therapist is the professional profile and application of a user, keyed by the user ID
type Therapist struct {
	UserID   string `validate:"required,uuid4"`
	Mobile   string `validate:"max=32"`
	Province string `validate:"max=100"`
	Timezone string `validate:"omitempty,timezone"`

	ProviderType            string `validate:"max=100"`
	ProfessionalLicenseType string `validate:"max=100"`
	IsPRCLicensed           string `validate:"omitempty,oneof=yes no"`
	PRCLicenseNumber        string `validate:"max=50"`
	ExpirationDateOfLicense *time.Time
	PracticeStartDate       *time.Time
	EducationBackground     string `validate:"max=2000"`

	AreasOfExpertise              []string
	AssessmentTools               []string
	TherapeuticApproachesUsedList []string
	LanguagesOffered              []string

	ProvidedOnlineTherapyBefore       bool
	ComfortableUsingVideoConferencing bool
	PreferredSessionLength            string `validate:"max=50"`
	PrivateConfidentialSpace          string `validate:"max=255"`

	CompliesWithDataPrivacyAct         bool
	ProfessionalLiabilityInsurance     string `validate:"max=255"`
	ComplaintsOrDisciplinaryActions    string `validate:"max=1000"`
	WillingToAbideByPlatformGuidelines bool

	Expertise              []string
	Approaches             []string
	Languages              []string
	IllnessSpecializations []string
	AcceptTypes            []string
	TreatmentSuccessRates  map[string]float64
	SessionLength          string  `validate:"max=50"`
	HourlyRate             float64 `validate:"gte=0"`

	Status         string `validate:"required,oneof=pending approved rejected suspended"`
	SubmissionDate time.Time
	ProcessingDate *time.Time
	ProcessedBy    string
	AdminNotes     string `validate:"max=2000"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate for validating Therapist struct
func (t *Therapist) Validate() error {
	return validators.ValidateStruct(t)
}

// IsApproved reports whether the therapist can take clients
func (t *Therapist) IsApproved() bool {
	return t.Status == StatusApproved
}

// Location returns the therapist's time zone, falling back to DefaultTimezone
func (t *Therapist) Location() *time.Location {
	name := t.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// YearsOfExperience returns the completed years since PracticeStartDate, or nil when unknown
func (t *Therapist) YearsOfExperience(now time.Time) *int {
	if t.PracticeStartDate == nil {
		return nil
	}
	years := CalculateYearsOfExperience(*t.PracticeStartDate, now)
	return &years
}

// IsLicenseActive reports whether the license expires after now
func (t *Therapist) IsLicenseActive(now time.Time) bool {
	return t.ExpirationDateOfLicense != nil && t.ExpirationDateOfLicense.After(now)
}

// CalculateYearsOfExperience counts full years between start and now. It never returns a negative value.
func CalculateYearsOfExperience(start, now time.Time) int {
	years := now.Year() - start.Year()
	if now.Month() < start.Month() || (now.Month() == start.Month() && now.Day() < start.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// YesNo renders a flag the way application reviews display it
func YesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// OrNotAvailable returns s or NotAvailable when s is empty
func OrNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
