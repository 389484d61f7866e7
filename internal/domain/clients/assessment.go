package clients

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// PreAssessmentType labels pre-assessments in therapist facing views
const PreAssessmentType = "Pre-Assessment"

// PreAssessment is the questionnaire a client fills before matching
type PreAssessment struct {
	ID             string                 `validate:"required,uuid4"`
	ClientID       string                 `validate:"required,uuid4"`
	Answers        map[string]interface{} `validate:"required,min=1"`
	Scores         map[string]float64
	SeverityLevels map[string]string
	CreatedAt      time.Time
}

// Validate for validating PreAssessment struct
func (p *PreAssessment) Validate() error {
	return validators.ValidateStruct(p)
}
