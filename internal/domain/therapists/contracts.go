package therapists

import (
	"context"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
)

// TherapistRepository persists therapist profiles and applications
type TherapistRepository interface {
	Create(ctx context.Context, therapist *Therapist) error
	// GetByUserID returns a therapist by user ID or a not found error
	GetByUserID(ctx context.Context, userID string) (*Therapist, error)
	Update(ctx context.Context, therapist *Therapist) error
	// ListApplications returns applications newest first and the total number of matches
	ListApplications(ctx context.Context, status string, page shared.Pagination) ([]*Therapist, int64, error)
	// ListApproved returns approved therapists matching query and the total number of matches
	ListApproved(ctx context.Context, query *DirectoryQuery, page shared.Pagination) ([]*Therapist, int64, error)
}

// TherapistFileRepository persists application documents
type TherapistFileRepository interface {
	Create(ctx context.Context, file *TherapistFile) error
	GetByID(ctx context.Context, fileID string) (*TherapistFile, error)
	ListByTherapist(ctx context.Context, therapistID string) ([]*TherapistFile, error)
}

// ManagementService is used by therapists to manage their profile and clients
type ManagementService interface {
	GetTherapistProfile(ctx context.Context, therapistID string) (*Profile, error)
	UpdateTherapistProfile(ctx context.Context, therapistID string, update *ProfileUpdate) (*Profile, error)
	GetAssignedPatients(ctx context.Context, therapistID string) ([]*AssignedPatient, error)
	GetPendingRequests(ctx context.Context, therapistID string) ([]*PendingRequest, error)
	AcceptPatientRequest(ctx context.Context, therapistID, clientID string) (*clients.ClientTherapist, error)
	DenyPatientRequest(ctx context.Context, therapistID, clientID string) error
	RemovePatient(ctx context.Context, therapistID, clientID string) error
	GetAllClients(ctx context.Context, page shared.Pagination) (*shared.Page[*users.User], error)
	GetClientByID(ctx context.Context, clientID string) (*ClientDetail, error)
	GetMatchedClients(ctx context.Context, therapistID string) (*MatchedClients, error)
}

// DirectoryService lists approved therapists to clients
type DirectoryService interface {
	ListApprovedTherapists(ctx context.Context, query *DirectoryQuery) (*shared.Page[*Profile], error)
	GetTherapistPublicProfile(ctx context.Context, therapistID string) (*Profile, error)
}

// ApplicationService handles therapist applications from submission to review
type ApplicationService interface {
	SubmitApplication(ctx context.Context, input *ApplicationInput, documents []ApplicationDocument) (*SubmittedApplication, error)
	GetAllApplications(ctx context.Context, query *ApplicationQuery) (*ApplicationList, error)
	GetApplicationByID(ctx context.Context, applicationID string) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID string, update *StatusUpdate, adminID string) (*StatusUpdateResult, error)
	DownloadApplicationFile(ctx context.Context, applicationID, fileID string) (*TherapistFile, []byte, error)
	CalculateProgress(values map[string]interface{}, documents map[string]bool) ApplicationProgress
}
