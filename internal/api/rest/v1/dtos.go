package v1

import (
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is the body of requests that have nothing else to return
type InfoResponse struct {
	Message string `json:"message"`
}

// RegisterRequest creates a client account
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToInput converts the request into the service input
func (r *RegisterRequest) ToInput() *users.RegisterInput {
	return &users.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// LoginRequest signs a user in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Validate for validating RefreshTokenRequest struct
func (r *RefreshTokenRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// TokenRequest carries a one-time email token
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Validate for validating TokenRequest struct
func (r *TokenRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ForgotPasswordRequest asks for a password reset email
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate for validating ForgotPasswordRequest struct
func (r *ForgotPasswordRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Validate for validating ResetPasswordRequest struct
func (r *ResetPasswordRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateProfileRequest changes the caller's profile. Omitted fields are left untouched.
type UpdateProfileRequest struct {
	FirstName      *string    `json:"firstName"`
	LastName       *string    `json:"lastName"`
	Bio            *string    `json:"bio"`
	ProfilePicture *string    `json:"profilePicture"`
	Birthday       *time.Time `json:"birthday"`
}

// ToUpdate converts the request into the service input
func (r *UpdateProfileRequest) ToUpdate() *users.ProfileUpdate {
	return &users.ProfileUpdate{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Bio:            r.Bio,
		ProfilePicture: r.ProfilePicture,
		Birthday:       r.Birthday,
	}
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Validate for validating ChangePasswordRequest struct
func (r *ChangePasswordRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// Validate for validating UpdateRoleRequest struct
func (r *UpdateRoleRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ApplicationRequest is the JSON document sent as applicationDataJson with a therapist application
type ApplicationRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Province  string `json:"province"`
	Timezone  string `json:"timezone"`

	ProviderType            string `json:"providerType"`
	ProfessionalLicenseType string `json:"professionalLicenseType"`
	IsPRCLicensed           string `json:"isPRCLicensed"`
	PRCLicenseNumber        string `json:"prcLicenseNumber"`
	ExpirationDateOfLicense string `json:"expirationDateOfLicense"`
	PracticeStartDate       string `json:"practiceStartDate"`
	EducationBackground     string `json:"educationBackground"`

	AreasOfExpertise              []string `json:"areasOfExpertise"`
	AssessmentTools               []string `json:"assessmentTools"`
	TherapeuticApproachesUsedList []string `json:"therapeuticApproachesUsedList"`
	LanguagesOffered              []string `json:"languagesOffered"`

	ProvidedOnlineTherapyBefore       bool   `json:"providedOnlineTherapyBefore"`
	ComfortableUsingVideoConferencing bool   `json:"comfortableUsingVideoConferencing"`
	PreferredSessionLength            string `json:"preferredSessionLength"`
	PrivateConfidentialSpace          string `json:"privateConfidentialSpace"`

	CompliesWithDataPrivacyAct         bool   `json:"compliesWithDataPrivacyAct"`
	ProfessionalLiabilityInsurance     string `json:"professionalLiabilityInsurance"`
	ComplaintsOrDisciplinaryActions    string `json:"complaintsOrDisciplinaryActions"`
	WillingToAbideByPlatformGuidelines bool   `json:"willingToAbideByPlatformGuidelines"`

	AcceptTypes   []string `json:"acceptTypes"`
	SessionLength string   `json:"sessionLength"`
	HourlyRate    float64  `json:"hourlyRate"`
}

// ToInput converts the request into the service input. Dates accept RFC 3339 or YYYY-MM-DD.
func (r *ApplicationRequest) ToInput() (*therapists.ApplicationInput, error) {
	expiration, err := parseDate(r.ExpirationDateOfLicense)
	if err != nil {
		return nil, fmt.Errorf("invalid expirationDateOfLicense: %w", err)
	}
	practiceStart, err := parseDate(r.PracticeStartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid practiceStartDate: %w", err)
	}
	return &therapists.ApplicationInput{
		FirstName:                          r.FirstName,
		LastName:                           r.LastName,
		Email:                              r.Email,
		Mobile:                             r.Mobile,
		Province:                           r.Province,
		Timezone:                           r.Timezone,
		ProviderType:                       r.ProviderType,
		ProfessionalLicenseType:            r.ProfessionalLicenseType,
		IsPRCLicensed:                      r.IsPRCLicensed,
		PRCLicenseNumber:                   r.PRCLicenseNumber,
		ExpirationDateOfLicense:            expiration,
		PracticeStartDate:                  practiceStart,
		EducationBackground:                r.EducationBackground,
		AreasOfExpertise:                   r.AreasOfExpertise,
		AssessmentTools:                    r.AssessmentTools,
		TherapeuticApproachesUsedList:      r.TherapeuticApproachesUsedList,
		LanguagesOffered:                   r.LanguagesOffered,
		ProvidedOnlineTherapyBefore:        r.ProvidedOnlineTherapyBefore,
		ComfortableUsingVideoConferencing:  r.ComfortableUsingVideoConferencing,
		PreferredSessionLength:             r.PreferredSessionLength,
		PrivateConfidentialSpace:           r.PrivateConfidentialSpace,
		CompliesWithDataPrivacyAct:         r.CompliesWithDataPrivacyAct,
		ProfessionalLiabilityInsurance:     r.ProfessionalLiabilityInsurance,
		ComplaintsOrDisciplinaryActions:    r.ComplaintsOrDisciplinaryActions,
		WillingToAbideByPlatformGuidelines: r.WillingToAbideByPlatformGuidelines,
		AcceptTypes:                        r.AcceptTypes,
		SessionLength:                      r.SessionLength,
		HourlyRate:                         r.HourlyRate,
	}, nil
}

// ProgressRequest holds a partially filled application form
type ProgressRequest struct {
	Values    map[string]interface{} `json:"values"`
	Documents map[string]bool        `json:"documents"`
}

// ApplicationStatusRequest is an administrator's decision on an application
type ApplicationStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

// TherapistProfileRequest is a partial update of a therapist profile
type TherapistProfileRequest struct {
	Mobile                             *string             `json:"mobile"`
	Province                           *string             `json:"province"`
	Timezone                           *string             `json:"timezone"`
	ProviderType                       *string             `json:"providerType"`
	ProfessionalLicenseType            *string             `json:"professionalLicenseType"`
	IsPRCLicensed                      *string             `json:"isPRCLicensed"`
	PRCLicenseNumber                   *string             `json:"prcLicenseNumber"`
	ExpirationDateOfLicense            *time.Time          `json:"expirationDateOfLicense"`
	PracticeStartDate                  *time.Time          `json:"practiceStartDate"`
	EducationBackground                *string             `json:"educationBackground"`
	AreasOfExpertise                   *[]string           `json:"areasOfExpertise"`
	AssessmentTools                    *[]string           `json:"assessmentTools"`
	TherapeuticApproachesUsedList      *[]string           `json:"therapeuticApproachesUsedList"`
	LanguagesOffered                   *[]string           `json:"languagesOffered"`
	ProvidedOnlineTherapyBefore        *bool               `json:"providedOnlineTherapyBefore"`
	ComfortableUsingVideoConferencing  *bool               `json:"comfortableUsingVideoConferencing"`
	PreferredSessionLength             *string             `json:"preferredSessionLength"`
	PrivateConfidentialSpace           *string             `json:"privateConfidentialSpace"`
	CompliesWithDataPrivacyAct         *bool               `json:"compliesWithDataPrivacyAct"`
	ProfessionalLiabilityInsurance     *string             `json:"professionalLiabilityInsurance"`
	ComplaintsOrDisciplinaryActions    *string             `json:"complaintsOrDisciplinaryActions"`
	WillingToAbideByPlatformGuidelines *bool               `json:"willingToAbideByPlatformGuidelines"`
	Expertise                          *[]string           `json:"expertise"`
	Approaches                         *[]string           `json:"approaches"`
	Languages                          *[]string           `json:"languages"`
	IllnessSpecializations             *[]string           `json:"illnessSpecializations"`
	AcceptTypes                        *[]string           `json:"acceptTypes"`
	TreatmentSuccessRates              *map[string]float64 `json:"treatmentSuccessRates"`
	SessionLength                      *string             `json:"sessionLength"`
	HourlyRate                         *float64            `json:"hourlyRate"`
}

// ToUpdate converts the request into the service input
func (r *TherapistProfileRequest) ToUpdate() *therapists.ProfileUpdate {
	return &therapists.ProfileUpdate{
		Mobile:                             r.Mobile,
		Province:                           r.Province,
		Timezone:                           r.Timezone,
		ProviderType:                       r.ProviderType,
		ProfessionalLicenseType:            r.ProfessionalLicenseType,
		IsPRCLicensed:                      r.IsPRCLicensed,
		PRCLicenseNumber:                   r.PRCLicenseNumber,
		ExpirationDateOfLicense:            r.ExpirationDateOfLicense,
		PracticeStartDate:                  r.PracticeStartDate,
		EducationBackground:                r.EducationBackground,
		AreasOfExpertise:                   r.AreasOfExpertise,
		AssessmentTools:                    r.AssessmentTools,
		TherapeuticApproachesUsedList:      r.TherapeuticApproachesUsedList,
		LanguagesOffered:                   r.LanguagesOffered,
		ProvidedOnlineTherapyBefore:        r.ProvidedOnlineTherapyBefore,
		ComfortableUsingVideoConferencing:  r.ComfortableUsingVideoConferencing,
		PreferredSessionLength:             r.PreferredSessionLength,
		PrivateConfidentialSpace:           r.PrivateConfidentialSpace,
		CompliesWithDataPrivacyAct:         r.CompliesWithDataPrivacyAct,
		ProfessionalLiabilityInsurance:     r.ProfessionalLiabilityInsurance,
		ComplaintsOrDisciplinaryActions:    r.ComplaintsOrDisciplinaryActions,
		WillingToAbideByPlatformGuidelines: r.WillingToAbideByPlatformGuidelines,
		Expertise:                          r.Expertise,
		Approaches:                         r.Approaches,
		Languages:                          r.Languages,
		IllnessSpecializations:             r.IllnessSpecializations,
		AcceptTypes:                        r.AcceptTypes,
		TreatmentSuccessRates:              r.TreatmentSuccessRates,
		SessionLength:                      r.SessionLength,
		HourlyRate:                         r.HourlyRate,
	}
}

// AvailabilityRequest creates or replaces an availability window
type AvailabilityRequest struct {
	DayOfWeek   string `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable *bool  `json:"isAvailable"`
	Notes       string `json:"notes"`
}

// ToInput converts the request into the service input
func (r *AvailabilityRequest) ToInput() *meetings.AvailabilityInput {
	return &meetings.AvailabilityInput{
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
		Notes:       r.Notes,
	}
}

// PreAssessmentRequest submits a pre-assessment questionnaire
type PreAssessmentRequest struct {
	Answers        map[string]interface{} `json:"answers"`
	Scores         map[string]float64     `json:"scores"`
	SeverityLevels map[string]string      `json:"severityLevels"`
}

// ToInput converts the request into the service input
func (r *PreAssessmentRequest) ToInput() *clients.PreAssessmentInput {
	return &clients.PreAssessmentInput{
		Answers:        r.Answers,
		Scores:         r.Scores,
		SeverityLevels: r.SeverityLevels,
	}
}

// CreateMeetingRequest books a meeting
type CreateMeetingRequest struct {
	TherapistID string    `json:"therapistId"`
	ClientID    string    `json:"clientId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	Duration    int       `json:"duration"`
	MeetingType string    `json:"meetingType"`
	MeetingURL  string    `json:"meetingUrl"`
}

// ToInput converts the request into the service input
func (r *CreateMeetingRequest) ToInput() *meetings.CreateInput {
	return &meetings.CreateInput{
		TherapistID: r.TherapistID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		MeetingType: r.MeetingType,
		MeetingURL:  r.MeetingURL,
	}
}

// UpdateMeetingRequest changes a meeting. Omitted fields are left untouched.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	Duration    *int       `json:"duration"`
	Status      *string    `json:"status"`
	MeetingType *string    `json:"meetingType"`
	MeetingURL  *string    `json:"meetingUrl"`
	Notes       *string    `json:"notes"`
}

// ToInput converts the request into the service input
func (r *UpdateMeetingRequest) ToInput() *meetings.UpdateInput {
	return &meetings.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		Status:      r.Status,
		MeetingType: r.MeetingType,
		MeetingURL:  r.MeetingURL,
		Notes:       r.Notes,
	}
}

// ReasonRequest carries an optional free text reason
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CreateConversationRequest starts a conversation
type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participantIds"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
}

// ToInput converts the request into the service input
func (r *CreateConversationRequest) ToInput() *messaging.CreateConversationInput {
	conversationType := r.Type
	if conversationType == "" {
		conversationType = messaging.ConversationDirect
	}
	return &messaging.CreateConversationInput{
		ParticipantIDs: r.ParticipantIDs,
		Type:           conversationType,
		Title:          r.Title,
	}
}

// SendMessageRequest posts a message
type SendMessageRequest struct {
	Content   string  `json:"content"`
	Type      string  `json:"messageType"`
	ReplyToID *string `json:"replyToId"`
}

// ToInput converts the request into the service input
func (r *SendMessageRequest) ToInput() *messaging.SendMessageInput {
	return &messaging.SendMessageInput{
		Content:   r.Content,
		Type:      r.Type,
		ReplyToID: r.ReplyToID,
	}
}

// UpdateMessageRequest edits a message
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// ReactionRequest adds an emoji reaction
type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=32"`
}

// Validate for validating ReactionRequest struct
func (r *ReactionRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// AssignWorksheetRequest assigns a worksheet to a client
type AssignWorksheetRequest struct {
	ClientID     string     `json:"clientId"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	DueDate      *time.Time `json:"dueDate"`
}

// ToInput converts the request into the service input
func (r *AssignWorksheetRequest) ToInput() *worksheets.AssignInput {
	return &worksheets.AssignInput{
		ClientID:     r.ClientID,
		Title:        r.Title,
		Instructions: r.Instructions,
		DueDate:      r.DueDate,
	}
}

// SubmitWorksheetRequest hands a worksheet in
type SubmitWorksheetRequest struct {
	Content string `json:"content"`
}

// ReviewWorksheetRequest gives feedback on a submission
type ReviewWorksheetRequest struct {
	Feedback string `json:"feedback"`
}

// CreateReviewRequest reviews a completed meeting
type CreateReviewRequest struct {
	TherapistID string `json:"therapistId"`
	MeetingID   string `json:"meetingId"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// ToInput converts the request into the service input
func (r *CreateReviewRequest) ToInput() *reviews.CreateInput {
	return &reviews.CreateInput{
		TherapistID: r.TherapistID,
		MeetingID:   r.MeetingID,
		Rating:      r.Rating,
		Title:       r.Title,
		Content:     r.Content,
		IsAnonymous: r.IsAnonymous,
	}
}

// UpdateReviewRequest changes the fields that are present
type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsAnonymous *bool   `json:"isAnonymous"`
}

// ToInput converts the request into the service input
func (r *UpdateReviewRequest) ToInput() *reviews.UpdateInput {
	return &reviews.UpdateInput{
		Rating:      r.Rating,
		Title:       r.Title,
		Content:     r.Content,
		IsAnonymous: r.IsAnonymous,
	}
}

// ModerateReviewRequest is a moderator's decision on a review
type ModerateReviewRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// CreateReportRequest files a content report
type CreateReportRequest struct {
	ContentType    string `json:"contentType"`
	ContentID      string `json:"contentId"`
	ReportedUserID string `json:"reportedUserId"`
	Reason         string `json:"reason"`
	Details        string `json:"details"`
}

// ToInput converts the request into the service input
func (r *CreateReportRequest) ToInput() *moderation.CreateReportInput {
	return &moderation.CreateReportInput{
		ContentType:    r.ContentType,
		ContentID:      r.ContentID,
		ReportedUserID: r.ReportedUserID,
		Reason:         r.Reason,
		Details:        r.Details,
	}
}

// ReviewReportRequest is a moderator's decision on a report
type ReviewReportRequest struct {
	Action       string `json:"action"`
	Notes        string `json:"notes"`
	DurationDays int    `json:"durationDays"`
}

// SuspendUserRequest suspends a user for a number of days
type SuspendUserRequest struct {
	Reason       string `json:"reason"`
	DurationDays int    `json:"durationDays"`
}

// ResolveSystemEventRequest closes a system event
type ResolveSystemEventRequest struct {
	Resolution string `json:"resolution" validate:"max=2000"`
}

// Validate for validating ResolveSystemEventRequest struct
func (r *ResolveSystemEventRequest) Validate() error {
	return validators.ValidateStruct(r)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
