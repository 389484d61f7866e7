package therapists

import (
	"math"
	"strings"
)

// ProgressSection is a group of application form fields
type ProgressSection struct {
	ID       string
	Fields   []string
	Required bool
}

// documentsSectionID is counted from uploaded documents instead of form values
const documentsSectionID = "documents"

// ApplicationSections lists the application form sections in display order
var ApplicationSections = []ProgressSection{
	{ID: "basicInfo", Required: true, Fields: []string{"firstName", "lastName", "email", "mobile", "province", "providerType"}},
	{ID: "licenseInfo", Required: true, Fields: []string{"professionalLicenseType", "isPRCLicensed", "prcLicenseNumber", "expirationDateOfLicense", "practiceStartDate"}},
	{ID: "expertise", Required: true, Fields: []string{"areasOfExpertise", "assessmentTools", "therapeuticApproachesUsedList", "languagesOffered"}},
	{ID: "teleconsultation", Required: true, Fields: []string{"providedOnlineTherapyBefore", "comfortableUsingVideoConferencing", "preferredSessionLength", "privateConfidentialSpace"}},
	{ID: "compliance", Required: true, Fields: []string{"compliesWithDataPrivacyAct", "professionalLiabilityInsurance", "complaintsOrDisciplinaryActions", "willingToAbideByPlatformGuidelines"}},
	{ID: "rates", Required: false, Fields: []string{"hourlyRate", "sessionLength"}},
	{ID: documentsSectionID, Required: true, Fields: []string{"license"}},
}

// SectionCompletion is the fill state of one section
type SectionCompletion struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ApplicationProgress is the fill state of a whole application form
type ApplicationProgress struct {
	Sections         map[string]SectionCompletion `json:"sections"`
	RequiredProgress int                          `json:"requiredProgress"`
	OverallProgress  int                          `json:"overallProgress"`
}

// CalculateApplicationProgress counts the filled fields of values per section.
// documents maps uploaded document kinds (for example "license") to whether one is present.
func CalculateApplicationProgress(values map[string]interface{}, documents map[string]bool) ApplicationProgress {
	progress := ApplicationProgress{Sections: make(map[string]SectionCompletion, len(ApplicationSections))}

	var requiredDone, requiredTotal, allDone, allTotal int
	for _, section := range ApplicationSections {
		completed := 0
		for _, field := range section.Fields {
			if section.ID == documentsSectionID {
				if documents[field] {
					completed++
				}
				continue
			}
			if IsFieldFilled(values[field]) {
				completed++
			}
		}

		total := len(section.Fields)
		progress.Sections[section.ID] = SectionCompletion{
			Completed:  completed,
			Total:      total,
			Percentage: percentage(completed, total),
		}

		allDone += completed
		allTotal += total
		if section.Required {
			requiredDone += completed
			requiredTotal += total
		}
	}

	progress.RequiredProgress = percentage(requiredDone, requiredTotal)
	progress.OverallProgress = percentage(allDone, allTotal)
	return progress
}

// IsFieldFilled reports whether a decoded JSON form value counts as answered
func IsFieldFilled(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(value) != ""
	case []interface{}:
		return len(value) > 0
	case []string:
		return len(value) > 0
	case float64:
		return value > 0
	case int:
		return value > 0
	case bool:
		return true
	case map[string]interface{}:
		return len(value) > 0
	default:
		return true
	}
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
