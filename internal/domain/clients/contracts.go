package clients

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// RelationshipRepository persists client therapist relationships
type RelationshipRepository interface {
	Create(ctx context.Context, relationship *ClientTherapist) error
	// Get returns the relationship of the pair or a not found error
	Get(ctx context.Context, clientID, therapistID string) (*ClientTherapist, error)
	List(ctx context.Context, query *RelationshipQuery) ([]*ClientTherapist, error)
	Update(ctx context.Context, relationship *ClientTherapist) error
	Delete(ctx context.Context, relationshipID string) error
}

// PreAssessmentRepository persists pre-assessments
type PreAssessmentRepository interface {
	Create(ctx context.Context, assessment *PreAssessment) error
	// GetLatest returns the newest pre-assessment of the client or a not found error
	GetLatest(ctx context.Context, clientID string) (*PreAssessment, error)
	// GetLatestForClients returns the newest pre-assessment per client, keyed by client ID
	GetLatestForClients(ctx context.Context, clientIDs []string) (map[string]*PreAssessment, error)
}

// PreAssessmentInput is submitted by a client
type PreAssessmentInput struct {
	Answers        map[string]interface{} `validate:"required,min=1"`
	Scores         map[string]float64
	SeverityLevels map[string]string
}

// Validate for validating PreAssessmentInput struct
func (in *PreAssessmentInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ClientService covers the operations of the client role
type ClientService interface {
	RequestTherapist(ctx context.Context, clientID, therapistID string) (*ClientTherapist, error)
	CancelRequest(ctx context.Context, clientID, therapistID string) error
	ListMyTherapists(ctx context.Context, clientID string) ([]*TherapistAssignment, error)
	SubmitPreAssessment(ctx context.Context, clientID string, input *PreAssessmentInput) (*PreAssessment, error)
	GetLatestPreAssessment(ctx context.Context, clientID string) (*PreAssessment, error)
	GetWelcomeStatus(ctx context.Context, clientID string) (*WelcomeStatus, error)
	// MarkRecommendationsSeen ends the welcome flow of the client
	MarkRecommendationsSeen(ctx context.Context, clientID string) (*users.User, error)
}

// WelcomeStatus tells whether a client still has to go through the welcome flow
type WelcomeStatus struct {
	NeedsWelcomeFlow bool
	MemberSince      time.Time
}

// TherapistAssignment pairs a relationship with the therapist's account
type TherapistAssignment struct {
	Relationship *ClientTherapist
	Therapist    *users.User
}
