package therapists

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// ProfileUpdate is a partial update of a therapist profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Mobile   *string `validate:"omitempty,max=32"`
	Province *string `validate:"omitempty,max=100"`
	Timezone *string `validate:"omitempty,timezone"`

	ProviderType            *string `validate:"omitempty,max=100"`
	ProfessionalLicenseType *string `validate:"omitempty,max=100"`
	IsPRCLicensed           *string `validate:"omitempty,oneof=yes no"`
	PRCLicenseNumber        *string `validate:"omitempty,max=50"`
	ExpirationDateOfLicense *time.Time
	PracticeStartDate       *time.Time
	EducationBackground     *string `validate:"omitempty,max=2000"`

	AreasOfExpertise              *[]string
	AssessmentTools               *[]string
	TherapeuticApproachesUsedList *[]string
	LanguagesOffered              *[]string

	ProvidedOnlineTherapyBefore       *bool
	ComfortableUsingVideoConferencing *bool
	PreferredSessionLength            *string `validate:"omitempty,max=50"`
	PrivateConfidentialSpace          *string `validate:"omitempty,max=255"`

	CompliesWithDataPrivacyAct         *bool
	ProfessionalLiabilityInsurance     *string `validate:"omitempty,max=255"`
	ComplaintsOrDisciplinaryActions    *string `validate:"omitempty,max=1000"`
	WillingToAbideByPlatformGuidelines *bool

	Expertise              *[]string
	Approaches             *[]string
	Languages              *[]string
	IllnessSpecializations *[]string
	AcceptTypes            *[]string
	TreatmentSuccessRates  *map[string]float64
	SessionLength          *string  `validate:"omitempty,max=50"`
	HourlyRate             *float64 `validate:"omitempty,gte=0"`
}

// Validate for validating ProfileUpdate struct
func (p *ProfileUpdate) Validate() error {
	return validators.ValidateStruct(p)
}

// Apply copies every set field onto t
func (p *ProfileUpdate) Apply(t *Therapist) {
	setString(&t.Mobile, p.Mobile)
	setString(&t.Province, p.Province)
	setString(&t.Timezone, p.Timezone)
	setString(&t.ProviderType, p.ProviderType)
	setString(&t.ProfessionalLicenseType, p.ProfessionalLicenseType)
	setString(&t.IsPRCLicensed, p.IsPRCLicensed)
	setString(&t.PRCLicenseNumber, p.PRCLicenseNumber)
	if p.ExpirationDateOfLicense != nil {
		v := *p.ExpirationDateOfLicense
		t.ExpirationDateOfLicense = &v
	}
	if p.PracticeStartDate != nil {
		v := *p.PracticeStartDate
		t.PracticeStartDate = &v
	}
	setString(&t.EducationBackground, p.EducationBackground)

	setStrings(&t.AreasOfExpertise, p.AreasOfExpertise)
	setStrings(&t.AssessmentTools, p.AssessmentTools)
	setStrings(&t.TherapeuticApproachesUsedList, p.TherapeuticApproachesUsedList)
	setStrings(&t.LanguagesOffered, p.LanguagesOffered)

	setBool(&t.ProvidedOnlineTherapyBefore, p.ProvidedOnlineTherapyBefore)
	setBool(&t.ComfortableUsingVideoConferencing, p.ComfortableUsingVideoConferencing)
	setString(&t.PreferredSessionLength, p.PreferredSessionLength)
	setString(&t.PrivateConfidentialSpace, p.PrivateConfidentialSpace)

	setBool(&t.CompliesWithDataPrivacyAct, p.CompliesWithDataPrivacyAct)
	setString(&t.ProfessionalLiabilityInsurance, p.ProfessionalLiabilityInsurance)
	setString(&t.ComplaintsOrDisciplinaryActions, p.ComplaintsOrDisciplinaryActions)
	setBool(&t.WillingToAbideByPlatformGuidelines, p.WillingToAbideByPlatformGuidelines)

	setStrings(&t.Expertise, p.Expertise)
	setStrings(&t.Approaches, p.Approaches)
	setStrings(&t.Languages, p.Languages)
	setStrings(&t.IllnessSpecializations, p.IllnessSpecializations)
	setStrings(&t.AcceptTypes, p.AcceptTypes)
	if p.TreatmentSuccessRates != nil {
		rates := make(map[string]float64, len(*p.TreatmentSuccessRates))
		for k, v := range *p.TreatmentSuccessRates {
			rates[k] = v
		}
		t.TreatmentSuccessRates = rates
	}
	setString(&t.SessionLength, p.SessionLength)
	if p.HourlyRate != nil {
		t.HourlyRate = *p.HourlyRate
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string(nil), (*src)...)
	}
}
