package therapists

import (
	"mime/multipart"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// ApplicationInput is the public therapist application form
type ApplicationInput struct {
	FirstName string `validate:"required,notblank,max=100"`
	LastName  string `validate:"required,notblank,max=100"`
	Email     string `validate:"required,email,max=255"`
	Mobile    string `validate:"required,max=32"`
	Province  string `validate:"required,max=100"`
	Timezone  string `validate:"omitempty,timezone"`

	ProviderType            string    `validate:"required,max=100"`
	ProfessionalLicenseType string    `validate:"required,max=100"`
	IsPRCLicensed           string    `validate:"required,oneof=yes no"`
	PRCLicenseNumber        string    `validate:"max=50"`
	ExpirationDateOfLicense time.Time `validate:"required"`
	PracticeStartDate       time.Time `validate:"required"`
	EducationBackground     string    `validate:"max=2000"`

	AreasOfExpertise              []string `validate:"required,min=1,dive,notblank"`
	AssessmentTools               []string `validate:"dive,notblank"`
	TherapeuticApproachesUsedList []string `validate:"required,min=1,dive,notblank"`
	LanguagesOffered              []string `validate:"required,min=1,dive,notblank"`

	ProvidedOnlineTherapyBefore       bool
	ComfortableUsingVideoConferencing bool
	PreferredSessionLength            string `validate:"max=50"`
	PrivateConfidentialSpace          string `validate:"max=255"`

	CompliesWithDataPrivacyAct         bool
	ProfessionalLiabilityInsurance     string `validate:"max=255"`
	ComplaintsOrDisciplinaryActions    string `validate:"max=1000"`
	WillingToAbideByPlatformGuidelines bool

	AcceptTypes   []string
	SessionLength string  `validate:"max=50"`
	HourlyRate    float64 `validate:"gte=0"`
}

// Validate for validating ApplicationInput struct
func (in *ApplicationInput) Validate() error {
	return validators.ValidateStruct(in)
}

// NewTherapist builds the pending therapist row of an application for userID
func (in *ApplicationInput) NewTherapist(userID string, now time.Time) *Therapist {
	expiration := in.ExpirationDateOfLicense
	practiceStart := in.PracticeStartDate
	timezone := in.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &Therapist{
		UserID:                             userID,
		Mobile:                             in.Mobile,
		Province:                           in.Province,
		Timezone:                           timezone,
		ProviderType:                       in.ProviderType,
		ProfessionalLicenseType:            in.ProfessionalLicenseType,
		IsPRCLicensed:                      in.IsPRCLicensed,
		PRCLicenseNumber:                   in.PRCLicenseNumber,
		ExpirationDateOfLicense:            &expiration,
		PracticeStartDate:                  &practiceStart,
		EducationBackground:                in.EducationBackground,
		AreasOfExpertise:                   in.AreasOfExpertise,
		AssessmentTools:                    in.AssessmentTools,
		TherapeuticApproachesUsedList:      in.TherapeuticApproachesUsedList,
		LanguagesOffered:                   in.LanguagesOffered,
		ProvidedOnlineTherapyBefore:        in.ProvidedOnlineTherapyBefore,
		ComfortableUsingVideoConferencing:  in.ComfortableUsingVideoConferencing,
		PreferredSessionLength:             in.PreferredSessionLength,
		PrivateConfidentialSpace:           in.PrivateConfidentialSpace,
		CompliesWithDataPrivacyAct:         in.CompliesWithDataPrivacyAct,
		ProfessionalLiabilityInsurance:     in.ProfessionalLiabilityInsurance,
		ComplaintsOrDisciplinaryActions:    in.ComplaintsOrDisciplinaryActions,
		WillingToAbideByPlatformGuidelines: in.WillingToAbideByPlatformGuidelines,
		Expertise:                          in.AreasOfExpertise,
		Languages:                          in.LanguagesOffered,
		Approaches:                         in.TherapeuticApproachesUsedList,
		AcceptTypes:                        in.AcceptTypes,
		TreatmentSuccessRates:              map[string]float64{},
		SessionLength:                      in.SessionLength,
		HourlyRate:                         in.HourlyRate,
		Status:                             StatusPending,
		SubmissionDate:                     now,
		CreatedAt:                          now,
		UpdatedAt:                          now,
	}
}

// ApplicationDocument is an uploaded file with the type the applicant declared for it
type ApplicationDocument struct {
	File         *multipart.FileHeader
	DeclaredType string
}

// ApplicationQuery filters applications for review
type ApplicationQuery struct {
	Status string `validate:"omitempty,oneof=pending approved rejected suspended"`
	Page   int
	Limit  int
}

// Validate for validating ApplicationQuery struct
func (q *ApplicationQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// StatusUpdate is an administrator's decision on an application
type StatusUpdate struct {
	Status     string `validate:"required,oneof=pending approved rejected suspended"`
	AdminNotes string `validate:"max=2000"`
}

// Validate for validating StatusUpdate struct
func (u *StatusUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Application is a therapist row joined with its account and documents
type Application struct {
	Therapist *Therapist
	User      *users.User
	Files     []*TherapistFile
}

// ApplicationList is a page of applications
type ApplicationList struct {
	Applications []*Application
	TotalCount   int64
	Page         int
	TotalPages   int
}

// Credentials are the sign in details generated for an approved therapist
type Credentials struct {
	Email    string
	Password string
}

// StatusUpdateResult is returned after a review
type StatusUpdateResult struct {
	Application *Application
	Credentials *Credentials
}

// SubmittedApplication is returned after a successful submission
type SubmittedApplication struct {
	Application   *Application
	UploadedFiles []*TherapistFile
}
