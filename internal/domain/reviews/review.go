package reviews

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Review statuses. Only approved reviews are public and count towards statistics.
const (
	StatusApproved = "approved"
	StatusFlagged  = "flagged"
	StatusRejected = "rejected"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5

	// RecommendRating is the lowest rating read as a recommendation
	RecommendRating = 4
)

// Review is a client's rating of a therapist for one completed meeting
type Review struct {
	ID             string `validate:"required,uuid4"`
	ClientID       string `validate:"required,uuid4"`
	TherapistID    string `validate:"required,uuid4,nefield=ClientID"`
	MeetingID      string `validate:"required,uuid4"`
	Rating         int    `validate:"gte=1,lte=5"`
	Title          string `validate:"max=200"`
	Content        string `validate:"max=5000"`
	IsAnonymous    bool
	Status         string `validate:"required,oneof=approved flagged rejected"`
	HelpfulCount   int    `validate:"gte=0"`
	ModeratedBy    string
	ModerationNote string `validate:"max=2000"`
	ModeratedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate for validating Review struct
func (r *Review) Validate() error {
	return validators.ValidateStruct(r)
}

// IsPublic reports whether the review is shown to everyone
func (r *Review) IsPublic() bool {
	return r.Status == StatusApproved
}

// WouldRecommend reports whether the rating counts as a recommendation
func (r *Review) WouldRecommend() bool {
	return r.Rating >= RecommendRating
}

// Redacted returns a copy without the author when the review is anonymous
func (r *Review) Redacted() *Review {
	if !r.IsAnonymous {
		return r
	}
	c := *r
	c.ClientID = ""
	return &c
}

// HelpfulVote marks a review as helpful for one user
type HelpfulVote struct {
	ReviewID  string
	UserID    string
	CreatedAt time.Time
}

// CreateInput reviews a completed meeting
type CreateInput struct {
	TherapistID string `validate:"required,uuid4"`
	MeetingID   string `validate:"required,uuid4"`
	Rating      int    `validate:"required,gte=1,lte=5"`
	Title       string `validate:"max=200"`
	Content     string `validate:"max=5000"`
	IsAnonymous bool
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// UpdateInput changes a review. Nil fields are left untouched.
type UpdateInput struct {
	Rating      *int    `validate:"omitempty,gte=1,lte=5"`
	Title       *string `validate:"omitempty,max=200"`
	Content     *string `validate:"omitempty,max=5000"`
	IsAnonymous *bool
}

// Validate for validating UpdateInput struct
func (in *UpdateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// IsEmpty reports whether the update changes nothing
func (in *UpdateInput) IsEmpty() bool {
	return in.Rating == nil && in.Title == nil && in.Content == nil && in.IsAnonymous == nil
}

// ModerateInput records a moderator's decision
type ModerateInput struct {
	Status string `validate:"required,oneof=approved flagged rejected"`
	Note   string `validate:"max=2000"`
}

// Validate for validating ModerateInput struct
func (in *ModerateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Sort keys of Query
const (
	SortCreatedAt = "createdAt"
	SortRating    = "rating"
	SortHelpful   = "helpfulCount"
)

// Query filters and orders reviews
type Query struct {
	TherapistID string `validate:"omitempty,uuid4"`
	ClientID    string `validate:"omitempty,uuid4"`
	Rating      int    `validate:"omitempty,gte=1,lte=5"`
	Status      string `validate:"omitempty,oneof=approved flagged rejected"`
	SortBy      string `validate:"omitempty,oneof=createdAt rating helpfulCount"`
	SortOrder   string `validate:"omitempty,oneof=asc desc"`
	Page        int
	Limit       int
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// HelpfulResult is returned after a helpful vote
type HelpfulResult struct {
	ReviewID     string
	HelpfulCount int
	// Counted is false when the user had already voted
	Counted bool
}
