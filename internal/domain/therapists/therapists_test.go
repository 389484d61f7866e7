//go:build unit
// +build unit

package therapists

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateYearsOfExperience(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"anniversary passed", time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC), 10},
		{"anniversary today", time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), 5},
		{"anniversary tomorrow", time.Date(2020, 6, 16, 0, 0, 0, 0, time.UTC), 4},
		{"later month", time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), 4},
		{"future start", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateYearsOfExperience(tt.start, now))
		})
	}
}

func TestTherapist_YearsOfExperience(t *testing.T) {
	th := &Therapist{}
	assert.Nil(t, th.YearsOfExperience(time.Now()))

	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	th.PracticeStartDate = &start
	years := th.YearsOfExperience(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, years)
	assert.Equal(t, 7, *years)
}

func TestTherapist_Location(t *testing.T) {
	assert.Equal(t, DefaultTimezone, (&Therapist{}).Location().String())
	assert.Equal(t, "UTC", (&Therapist{Timezone: "Not/AZone"}).Location().String())
	assert.Equal(t, "Europe/Berlin", (&Therapist{Timezone: "Europe/Berlin"}).Location().String())
}

func TestPurposeFromFile(t *testing.T) {
	tests := []struct {
		declared string
		fileName string
		want     string
	}{
		{"license", "scan.pdf", FilePurposeLicense},
		{"", "PRC_License.pdf", FilePurposeLicense},
		{"Diploma", "x.pdf", FilePurposeCertificate},
		{"", "board-certification.png", FilePurposeCertificate},
		{"", "resume.docx", FilePurposeDocument},
		{"transcript", "grades.pdf", FilePurposeDocument},
		{"", "photo.jpg", FilePurposeDocument},
	}

	for _, tt := range tests {
		t.Run(tt.declared+tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, PurposeFromFile(tt.declared, tt.fileName))
		})
	}
}

func TestCalculateApplicationProgress(t *testing.T) {
	values := map[string]interface{}{
		"firstName":        "Ana",
		"lastName":         "Cruz",
		"email":            "ana@example.com",
		"mobile":           "   ",
		"province":         "Cebu",
		"providerType":     "Psychologist",
		"areasOfExpertise": []interface{}{"anxiety"},
		"assessmentTools":  []interface{}{},
		"hourlyRate":       float64(0),
	}

	progress := CalculateApplicationProgress(values, map[string]bool{"license": true})

	assert.Equal(t, SectionCompletion{Completed: 5, Total: 6, Percentage: 83}, progress.Sections["basicInfo"])
	assert.Equal(t, SectionCompletion{Completed: 1, Total: 4, Percentage: 25}, progress.Sections["expertise"])
	assert.Equal(t, SectionCompletion{Completed: 0, Total: 2, Percentage: 0}, progress.Sections["rates"])
	assert.Equal(t, SectionCompletion{Completed: 1, Total: 1, Percentage: 100}, progress.Sections["documents"])

	// required: 7 of 24 fields, overall: 7 of 26 fields
	assert.Equal(t, 29, progress.RequiredProgress)
	assert.Equal(t, 27, progress.OverallProgress)
}

func TestCalculateApplicationProgress_Empty(t *testing.T) {
	progress := CalculateApplicationProgress(nil, nil)
	assert.Zero(t, progress.RequiredProgress)
	assert.Zero(t, progress.OverallProgress)
	assert.Len(t, progress.Sections, len(ApplicationSections))
}

func TestIsFieldFilled(t *testing.T) {
	assert.False(t, IsFieldFilled(nil))
	assert.False(t, IsFieldFilled(""))
	assert.True(t, IsFieldFilled("yes"))
	assert.True(t, IsFieldFilled(false))
	assert.False(t, IsFieldFilled(float64(0)))
	assert.True(t, IsFieldFilled(float64(1500)))
}

func TestProfileUpdate_Apply(t *testing.T) {
	th := &Therapist{Province: "Cebu", HourlyRate: 1000, Languages: []string{"en"}}
	province := "Davao"
	rate := 1500.0
	languages := []string{"en", "fil"}

	(&ProfileUpdate{Province: &province, HourlyRate: &rate, Languages: &languages}).Apply(th)

	assert.Equal(t, "Davao", th.Province)
	assert.Equal(t, 1500.0, th.HourlyRate)
	assert.Equal(t, []string{"en", "fil"}, th.Languages)

	languages[0] = "changed"
	assert.Equal(t, "en", th.Languages[0])
}

func TestNewMatchedClient(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	relationship := &clients.ClientTherapist{
		ID:         uuid.NewString(),
		Status:     clients.RelationshipActive,
		AssignedAt: now.Add(-45 * 24 * time.Hour),
	}
	client := &users.User{ID: uuid.NewString(), FirstName: "Ben"}

	match := NewMatchedClient(relationship, client, nil, now)
	assert.Equal(t, 45, match.MatchInfo.DaysSinceMatch)
	assert.False(t, match.AssessmentInfo.HasAssessment)
	assert.Nil(t, match.AssessmentInfo.AssessmentType)
	assert.False(t, match.IsRecent(now))

	assessment := &clients.PreAssessment{CreatedAt: now.Add(-3 * 24 * time.Hour)}
	relationship.AssignedAt = now.Add(-2 * 24 * time.Hour)
	match = NewMatchedClient(relationship, client, assessment, now)
	assert.True(t, match.IsRecent(now))
	require.NotNil(t, match.AssessmentInfo.DaysSinceAssessment)
	assert.Equal(t, 3, *match.AssessmentInfo.DaysSinceAssessment)
	assert.Equal(t, clients.PreAssessmentType, *match.AssessmentInfo.AssessmentType)
}

func TestApplicationInput_NewTherapist(t *testing.T) {
	now := time.Now().UTC()
	input := &ApplicationInput{
		FirstName:                     "Ana",
		LastName:                      "Cruz",
		Email:                         "ana@example.com",
		Mobile:                        "09171234567",
		Province:                      "Cebu",
		ProviderType:                  "Psychologist",
		ProfessionalLicenseType:       "RPsy",
		IsPRCLicensed:                 "yes",
		ExpirationDateOfLicense:       now.AddDate(1, 0, 0),
		PracticeStartDate:             now.AddDate(-5, 0, 0),
		AreasOfExpertise:              []string{"anxiety"},
		TherapeuticApproachesUsedList: []string{"CBT"},
		LanguagesOffered:              []string{"English"},
	}
	require.NoError(t, input.Validate())

	th := input.NewTherapist(uuid.NewString(), now)
	require.NoError(t, th.Validate())
	assert.Equal(t, StatusPending, th.Status)
	assert.Equal(t, DefaultTimezone, th.Timezone)
	assert.True(t, th.IsLicenseActive(now))
	assert.Equal(t, now, th.SubmissionDate)
}
