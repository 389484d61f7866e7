package clients

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// Relationship statuses. A pending request and a removed relationship are both inactive.
const (
	RelationshipInactive = "inactive"
	RelationshipActive   = "active"
)

// ClientTherapist links a client to a therapist. The pair is unique.
type ClientTherapist struct {
	ID          string    `validate:"required,uuid4"`
	ClientID    string    `validate:"required,uuid4"`
	TherapistID string    `validate:"required,uuid4,nefield=ClientID"`
	Status      string    `validate:"required,oneof=inactive active"`
	AssignedAt  time.Time `validate:"required"`
	RemovedAt   *time.Time
}

// Validate for validating ClientTherapist struct
func (r *ClientTherapist) Validate() error {
	return validators.ValidateStruct(r)
}

// IsActive reports whether the therapist has accepted the client
func (r *ClientTherapist) IsActive() bool {
	return r.Status == RelationshipActive
}

// IsPending reports whether the relationship is a request awaiting the therapist
func (r *ClientTherapist) IsPending() bool {
	return r.Status == RelationshipInactive && r.RemovedAt == nil
}

// IsRemoved reports whether an accepted relationship was ended
func (r *ClientTherapist) IsRemoved() bool {
	return r.Status == RelationshipInactive && r.RemovedAt != nil
}

// Accept turns a pending request into an active relationship
func (r *ClientTherapist) Accept() {
	r.Status = RelationshipActive
	r.RemovedAt = nil
}

// Remove ends an active relationship at now
func (r *ClientTherapist) Remove(now time.Time) {
	r.Status = RelationshipInactive
	r.RemovedAt = &now
}

// Reopen turns a removed relationship back into a pending request
func (r *ClientTherapist) Reopen(now time.Time) {
	r.Status = RelationshipInactive
	r.RemovedAt = nil
	r.AssignedAt = now
}

// RelationshipQuery filters relationships
type RelationshipQuery struct {
	ClientID       string
	TherapistID    string
	Status         string `validate:"omitempty,oneof=inactive active"`
	IncludeRemoved bool
}
