package models

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"

	"gorm.io/datatypes"
)

// TherapistModel is the GORM database model for therapist profiles and applications
type TherapistModel struct {
	UserID   string `gorm:"primaryKey;type:uuid"`
	Mobile   string `gorm:"type:varchar(32)"`
	Province string `gorm:"index;type:varchar(100)"`
	Timezone string `gorm:"type:varchar(64)"`

	ProviderType            string `gorm:"type:varchar(100)"`
	ProfessionalLicenseType string `gorm:"type:varchar(100)"`
	IsPRCLicensed           string `gorm:"type:varchar(8)"`
	PRCLicenseNumber        string `gorm:"type:varchar(50)"`
	ExpirationDateOfLicense *time.Time
	PracticeStartDate       *time.Time
	EducationBackground     string `gorm:"type:text"`

	AreasOfExpertise              datatypes.JSONSlice[string]
	AssessmentTools               datatypes.JSONSlice[string]
	TherapeuticApproachesUsedList datatypes.JSONSlice[string]
	LanguagesOffered              datatypes.JSONSlice[string]

	ProvidedOnlineTherapyBefore       bool
	ComfortableUsingVideoConferencing bool
	PreferredSessionLength            string `gorm:"type:varchar(50)"`
	PrivateConfidentialSpace          string `gorm:"type:varchar(255)"`

	CompliesWithDataPrivacyAct         bool
	ProfessionalLiabilityInsurance     string `gorm:"type:varchar(255)"`
	ComplaintsOrDisciplinaryActions    string `gorm:"type:text"`
	WillingToAbideByPlatformGuidelines bool

	Expertise              datatypes.JSONSlice[string]
	Approaches             datatypes.JSONSlice[string]
	Languages              datatypes.JSONSlice[string]
	IllnessSpecializations datatypes.JSONSlice[string]
	AcceptTypes            datatypes.JSONSlice[string]
	TreatmentSuccessRates  datatypes.JSONType[map[string]float64]
	SessionLength          string  `gorm:"type:varchar(50)"`
	HourlyRate             float64 `gorm:"not null;default:0"`

	Status         string    `gorm:"not null;index;type:varchar(20)"`
	SubmissionDate time.Time `gorm:"not null;index"`
	ProcessingDate *time.Time
	ProcessedBy    string `gorm:"type:varchar(36)"`
	AdminNotes     string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TherapistModel) TableName() string {
	return "therapists"
}

// ToDomain converts GORM model to domain entity
func (m *TherapistModel) ToDomain() *therapists.Therapist {
	rates := m.TreatmentSuccessRates.Data()
	if rates == nil {
		rates = map[string]float64{}
	}
	return &therapists.Therapist{
		UserID:                             m.UserID,
		Mobile:                             m.Mobile,
		Province:                           m.Province,
		Timezone:                           m.Timezone,
		ProviderType:                       m.ProviderType,
		ProfessionalLicenseType:            m.ProfessionalLicenseType,
		IsPRCLicensed:                      m.IsPRCLicensed,
		PRCLicenseNumber:                   m.PRCLicenseNumber,
		ExpirationDateOfLicense:            m.ExpirationDateOfLicense,
		PracticeStartDate:                  m.PracticeStartDate,
		EducationBackground:                m.EducationBackground,
		AreasOfExpertise:                   []string(m.AreasOfExpertise),
		AssessmentTools:                    []string(m.AssessmentTools),
		TherapeuticApproachesUsedList:      []string(m.TherapeuticApproachesUsedList),
		LanguagesOffered:                   []string(m.LanguagesOffered),
		ProvidedOnlineTherapyBefore:        m.ProvidedOnlineTherapyBefore,
		ComfortableUsingVideoConferencing:  m.ComfortableUsingVideoConferencing,
		PreferredSessionLength:             m.PreferredSessionLength,
		PrivateConfidentialSpace:           m.PrivateConfidentialSpace,
		CompliesWithDataPrivacyAct:         m.CompliesWithDataPrivacyAct,
		ProfessionalLiabilityInsurance:     m.ProfessionalLiabilityInsurance,
		ComplaintsOrDisciplinaryActions:    m.ComplaintsOrDisciplinaryActions,
		WillingToAbideByPlatformGuidelines: m.WillingToAbideByPlatformGuidelines,
		Expertise:                          []string(m.Expertise),
		Approaches:                         []string(m.Approaches),
		Languages:                          []string(m.Languages),
		IllnessSpecializations:             []string(m.IllnessSpecializations),
		AcceptTypes:                        []string(m.AcceptTypes),
		TreatmentSuccessRates:              rates,
		SessionLength:                      m.SessionLength,
		HourlyRate:                         m.HourlyRate,
		Status:                             m.Status,
		SubmissionDate:                     m.SubmissionDate,
		ProcessingDate:                     m.ProcessingDate,
		ProcessedBy:                        m.ProcessedBy,
		AdminNotes:                         m.AdminNotes,
		CreatedAt:                          m.CreatedAt,
		UpdatedAt:                          m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TherapistModel) FromDomain(t *therapists.Therapist) {
	m.UserID = t.UserID
	m.Mobile = t.Mobile
	m.Province = t.Province
	m.Timezone = t.Timezone
	m.ProviderType = t.ProviderType
	m.ProfessionalLicenseType = t.ProfessionalLicenseType
	m.IsPRCLicensed = t.IsPRCLicensed
	m.PRCLicenseNumber = t.PRCLicenseNumber
	m.ExpirationDateOfLicense = t.ExpirationDateOfLicense
	m.PracticeStartDate = t.PracticeStartDate
	m.EducationBackground = t.EducationBackground
	m.AreasOfExpertise = datatypes.JSONSlice[string](t.AreasOfExpertise)
	m.AssessmentTools = datatypes.JSONSlice[string](t.AssessmentTools)
	m.TherapeuticApproachesUsedList = datatypes.JSONSlice[string](t.TherapeuticApproachesUsedList)
	m.LanguagesOffered = datatypes.JSONSlice[string](t.LanguagesOffered)
	m.ProvidedOnlineTherapyBefore = t.ProvidedOnlineTherapyBefore
	m.ComfortableUsingVideoConferencing = t.ComfortableUsingVideoConferencing
	m.PreferredSessionLength = t.PreferredSessionLength
	m.PrivateConfidentialSpace = t.PrivateConfidentialSpace
	m.CompliesWithDataPrivacyAct = t.CompliesWithDataPrivacyAct
	m.ProfessionalLiabilityInsurance = t.ProfessionalLiabilityInsurance
	m.ComplaintsOrDisciplinaryActions = t.ComplaintsOrDisciplinaryActions
	m.WillingToAbideByPlatformGuidelines = t.WillingToAbideByPlatformGuidelines
	m.Expertise = datatypes.JSONSlice[string](t.Expertise)
	m.Approaches = datatypes.JSONSlice[string](t.Approaches)
	m.Languages = datatypes.JSONSlice[string](t.Languages)
	m.IllnessSpecializations = datatypes.JSONSlice[string](t.IllnessSpecializations)
	m.AcceptTypes = datatypes.JSONSlice[string](t.AcceptTypes)
	m.TreatmentSuccessRates = datatypes.NewJSONType(t.TreatmentSuccessRates)
	m.SessionLength = t.SessionLength
	m.HourlyRate = t.HourlyRate
	m.Status = t.Status
	m.SubmissionDate = t.SubmissionDate
	m.ProcessingDate = t.ProcessingDate
	m.ProcessedBy = t.ProcessedBy
	m.AdminNotes = t.AdminNotes
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// TherapistFileModel is the GORM database model for application documents
type TherapistFileModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	TherapistID string    `gorm:"not null;index;type:uuid"`
	FileName    string    `gorm:"not null;type:varchar(255)"`
	Purpose     string    `gorm:"not null;type:varchar(20)"`
	ContentType string    `gorm:"type:varchar(100)"`
	Size        int64     `gorm:"not null"`
	StoragePath string    `gorm:"not null;type:varchar(1024)"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TherapistFileModel) TableName() string {
	return "therapist_files"
}

// ToDomain converts GORM model to domain entity
func (m *TherapistFileModel) ToDomain() *therapists.TherapistFile {
	return &therapists.TherapistFile{
		ID:          m.ID,
		TherapistID: m.TherapistID,
		FileName:    m.FileName,
		Purpose:     m.Purpose,
		ContentType: m.ContentType,
		Size:        m.Size,
		StoragePath: m.StoragePath,
		UploadedAt:  m.UploadedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TherapistFileModel) FromDomain(f *therapists.TherapistFile) {
	m.ID = f.ID
	m.TherapistID = f.TherapistID
	m.FileName = f.FileName
	m.Purpose = f.Purpose
	m.ContentType = f.ContentType
	m.Size = f.Size
	m.StoragePath = f.StoragePath
	m.UploadedAt = f.UploadedAt
}
