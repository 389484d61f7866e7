package v1

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
)

// UserResponse is an account without its credentials
type UserResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Role                string     `json:"role"`
	IsActive            bool       `json:"isActive"`
	EmailVerified       bool       `json:"emailVerified"`
	ProfilePicture      string     `json:"profilePicture,omitempty"`
	Bio                 string     `json:"bio,omitempty"`
	Birthday            *time.Time `json:"birthday,omitempty"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	SuspendedUntil      *time.Time `json:"suspendedUntil,omitempty"`
	SuspensionReason    string     `json:"suspensionReason,omitempty"`
	SeenRecommendations bool       `json:"hasSeenTherapistRecommendations"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func newUserResponse(u *users.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Role:                u.Role,
		IsActive:            u.IsActive,
		EmailVerified:       u.EmailVerified,
		ProfilePicture:      u.ProfilePicture,
		Bio:                 u.Bio,
		Birthday:            u.Birthday,
		LastLoginAt:         u.LastLoginAt,
		SuspendedUntil:      u.SuspendedUntil,
		SuspensionReason:    u.SuspensionReason,
		SeenRecommendations: u.SeenRecommendations,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// TokenResponse is an issued token pair
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AuthResponse is returned after registration, login and refresh
type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}

func newAuthResponse(result *users.AuthResult) *AuthResponse {
	response := &AuthResponse{User: newUserResponse(result.User)}
	if result.Tokens != nil {
		response.Tokens = &TokenResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			TokenType:    result.Tokens.TokenType,
			ExpiresAt:    result.Tokens.ExpiresAt,
		}
	}
	return response
}

// MeResponse is the current user with the landing page of their role
type MeResponse struct {
	User          *UserResponse `json:"user"`
	DashboardPath string        `json:"dashboardPath"`
}

// WelcomeStatusResponse tells the frontend whether to show the welcome flow
type WelcomeStatusResponse struct {
	IsFirstTime      bool      `json:"isFirstTime"`
	NeedsWelcomeFlow bool      `json:"needsWelcomeFlow"`
	MemberSince      time.Time `json:"memberSince"`
}

type RecommendationsSeenResponse struct {
	HasSeenRecommendations bool      `json:"hasSeenRecommendations"`
	MarkedAt               time.Time `json:"markedAt"`
	Message                string    `json:"message"`
}

// RouteCheckResponse is the outcome of a route guard check
type RouteCheckResponse struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// SessionResponse is an active refresh token as shown to its owner
type SessionResponse struct {
	ID         string     `json:"id"`
	DeviceName string     `json:"deviceName"`
	Location   string     `json:"location"`
	IPAddress  string     `json:"ipAddress"`
	UserAgent  string     `json:"userAgent"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func newSessionResponse(t *users.RefreshToken) *SessionResponse {
	return &SessionResponse{
		ID:         t.ID,
		DeviceName: t.DeviceName,
		Location:   t.Location,
		IPAddress:  t.IPAddress,
		UserAgent:  t.UserAgent,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// CountResponse reports how many records an operation touched
type CountResponse struct {
	Count int64 `json:"count"`
}

// TherapistResponse is a therapist profile with its derived fields
type TherapistResponse struct {
	UserID                             string             `json:"userId"`
	User                               *UserResponse      `json:"user,omitempty"`
	Mobile                             string             `json:"mobile"`
	Province                           string             `json:"province"`
	Timezone                           string             `json:"timezone"`
	ProviderType                       string             `json:"providerType"`
	ProfessionalLicenseType            string             `json:"professionalLicenseType"`
	IsPRCLicensed                      string             `json:"isPRCLicensed"`
	PRCLicenseNumber                   string             `json:"prcLicenseNumber"`
	ExpirationDateOfLicense            *time.Time         `json:"expirationDateOfLicense,omitempty"`
	IsLicenseActive                    string             `json:"isLicenseActive"`
	PracticeStartDate                  *time.Time         `json:"practiceStartDate,omitempty"`
	YearsOfExperience                  *int               `json:"yearsOfExperience"`
	EducationBackground                string             `json:"educationBackground"`
	AreasOfExpertise                   []string           `json:"areasOfExpertise"`
	Specialties                        []string           `json:"specialties"`
	AssessmentTools                    []string           `json:"assessmentTools"`
	TherapeuticApproachesUsedList      []string           `json:"therapeuticApproachesUsedList"`
	LanguagesOffered                   []string           `json:"languagesOffered"`
	ProvidedOnlineTherapyBefore        string             `json:"providedOnlineTherapyBefore"`
	ComfortableUsingVideoConferencing  string             `json:"comfortableUsingVideoConferencing"`
	PreferredSessionLength             string             `json:"preferredSessionLength"`
	PrivateConfidentialSpace           string             `json:"privateConfidentialSpace"`
	CompliesWithDataPrivacyAct         string             `json:"compliesWithDataPrivacyAct"`
	ProfessionalLiabilityInsurance     string             `json:"professionalLiabilityInsurance"`
	ComplaintsOrDisciplinaryActions    string             `json:"complaintsOrDisciplinaryActions"`
	WillingToAbideByPlatformGuidelines string             `json:"willingToAbideByPlatformGuidelines"`
	Expertise                          []string           `json:"expertise"`
	Approaches                         []string           `json:"approaches"`
	Languages                          []string           `json:"languages"`
	IllnessSpecializations             []string           `json:"illnessSpecializations"`
	AcceptTypes                        []string           `json:"acceptTypes"`
	TreatmentSuccessRates              map[string]float64 `json:"treatmentSuccessRates"`
	SessionLength                      string             `json:"sessionLength"`
	HourlyRate                         float64            `json:"hourlyRate"`
	Status                             string             `json:"status"`
	SubmissionDate                     time.Time          `json:"submissionDate"`
	ProcessingDate                     *time.Time         `json:"processingDate,omitempty"`
	ProcessedBy                        string             `json:"processedBy,omitempty"`
	AdminNotes                         string             `json:"adminNotes,omitempty"`
}

func newTherapistResponse(t *therapists.Therapist, u *users.User, years *int, now time.Time) *TherapistResponse {
	rates := t.TreatmentSuccessRates
	if rates == nil {
		rates = map[string]float64{}
	}
	return &TherapistResponse{
		UserID:                             t.UserID,
		User:                               newUserResponse(u),
		Mobile:                             t.Mobile,
		Province:                           t.Province,
		Timezone:                           t.Timezone,
		ProviderType:                       t.ProviderType,
		ProfessionalLicenseType:            t.ProfessionalLicenseType,
		IsPRCLicensed:                      t.IsPRCLicensed,
		PRCLicenseNumber:                   therapists.OrNotAvailable(t.PRCLicenseNumber),
		ExpirationDateOfLicense:            t.ExpirationDateOfLicense,
		IsLicenseActive:                    therapists.YesNo(t.IsLicenseActive(now)),
		PracticeStartDate:                  t.PracticeStartDate,
		YearsOfExperience:                  years,
		EducationBackground:                t.EducationBackground,
		AreasOfExpertise:                   orEmpty(t.AreasOfExpertise),
		Specialties:                        orEmpty(t.AreasOfExpertise),
		AssessmentTools:                    orEmpty(t.AssessmentTools),
		TherapeuticApproachesUsedList:      orEmpty(t.TherapeuticApproachesUsedList),
		LanguagesOffered:                   orEmpty(t.LanguagesOffered),
		ProvidedOnlineTherapyBefore:        therapists.YesNo(t.ProvidedOnlineTherapyBefore),
		ComfortableUsingVideoConferencing:  therapists.YesNo(t.ComfortableUsingVideoConferencing),
		PreferredSessionLength:             therapists.OrNotAvailable(t.PreferredSessionLength),
		PrivateConfidentialSpace:           therapists.OrNotAvailable(t.PrivateConfidentialSpace),
		CompliesWithDataPrivacyAct:         therapists.YesNo(t.CompliesWithDataPrivacyAct),
		ProfessionalLiabilityInsurance:     therapists.OrNotAvailable(t.ProfessionalLiabilityInsurance),
		ComplaintsOrDisciplinaryActions:    therapists.OrNotAvailable(t.ComplaintsOrDisciplinaryActions),
		WillingToAbideByPlatformGuidelines: therapists.YesNo(t.WillingToAbideByPlatformGuidelines),
		Expertise:                          orEmpty(t.Expertise),
		Approaches:                         orEmpty(t.Approaches),
		Languages:                          orEmpty(t.Languages),
		IllnessSpecializations:             orEmpty(t.IllnessSpecializations),
		AcceptTypes:                        orEmpty(t.AcceptTypes),
		TreatmentSuccessRates:              rates,
		SessionLength:                      t.SessionLength,
		HourlyRate:                         t.HourlyRate,
		Status:                             t.Status,
		SubmissionDate:                     t.SubmissionDate,
		ProcessingDate:                     t.ProcessingDate,
		ProcessedBy:                        t.ProcessedBy,
		AdminNotes:                         t.AdminNotes,
	}
}

func newProfileResponse(p *therapists.Profile, now time.Time) *TherapistResponse {
	return newTherapistResponse(p.Therapist, p.User, p.YearsOfExperience, now)
}

// FileResponse describes an uploaded application document
type FileResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	Purpose     string    `json:"purpose"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func newFileResponses(files []*therapists.TherapistFile) []*FileResponse {
	responses := make([]*FileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, &FileResponse{
			ID:          f.ID,
			FileName:    f.FileName,
			Purpose:     f.Purpose,
			ContentType: f.ContentType,
			Size:        f.Size,
			UploadedAt:  f.UploadedAt,
		})
	}
	return responses
}

// ApplicationResponse is a therapist application with its documents
type ApplicationResponse struct {
	*TherapistResponse
	Files []*FileResponse `json:"files"`
}

func newApplicationResponse(a *therapists.Application, now time.Time) *ApplicationResponse {
	var years *int
	if a.Therapist != nil {
		years = a.Therapist.YearsOfExperience(now)
	}
	return &ApplicationResponse{
		TherapistResponse: newTherapistResponse(a.Therapist, a.User, years, now),
		Files:             newFileResponses(a.Files),
	}
}

// ApplicationListResponse is a page of applications
type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	TotalCount   int64                  `json:"totalCount"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"totalPages"`
}

// SubmittedApplicationResponse is returned after a therapist application is filed
type SubmittedApplicationResponse struct {
	Message       string          `json:"message"`
	ApplicationID string          `json:"applicationId"`
	UploadedFiles []*FileResponse `json:"uploadedFiles"`
}

// CredentialsResponse carries the generated sign in details of an approved therapist
type CredentialsResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusUpdateResponse is returned after an application review
type StatusUpdateResponse struct {
	Message     string               `json:"message"`
	Application *ApplicationResponse `json:"application"`
	Credentials *CredentialsResponse `json:"credentials,omitempty"`
}

// PatientResponse is a client seen from the therapist side
type PatientResponse struct {
	RelationshipID string        `json:"relationshipId"`
	Client         *UserResponse `json:"client"`
	AssignedAt     *time.Time    `json:"assignedAt,omitempty"`
	RequestedAt    *time.Time    `json:"requestedAt,omitempty"`
}

// RelationshipResponse is a client therapist relationship
type RelationshipResponse struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"clientId"`
	TherapistID string        `json:"therapistId"`
	Status      string        `json:"status"`
	AssignedAt  time.Time     `json:"assignedAt"`
	RemovedAt   *time.Time    `json:"removedAt,omitempty"`
	Therapist   *UserResponse `json:"therapist,omitempty"`
}

func newRelationshipResponse(r *clients.ClientTherapist) *RelationshipResponse {
	return &RelationshipResponse{
		ID:          r.ID,
		ClientID:    r.ClientID,
		TherapistID: r.TherapistID,
		Status:      r.Status,
		AssignedAt:  r.AssignedAt,
		RemovedAt:   r.RemovedAt,
	}
}

// PreAssessmentResponse is a submitted questionnaire
type PreAssessmentResponse struct {
	ID             string                 `json:"id"`
	ClientID       string                 `json:"clientId"`
	Answers        map[string]interface{} `json:"answers"`
	Scores         map[string]float64     `json:"scores"`
	SeverityLevels map[string]string      `json:"severityLevels"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func newPreAssessmentResponse(p *clients.PreAssessment) *PreAssessmentResponse {
	if p == nil {
		return nil
	}
	return &PreAssessmentResponse{
		ID:             p.ID,
		ClientID:       p.ClientID,
		Answers:        p.Answers,
		Scores:         p.Scores,
		SeverityLevels: p.SeverityLevels,
		CreatedAt:      p.CreatedAt,
	}
}

// ClientDetailResponse is a client with their latest pre-assessment
type ClientDetailResponse struct {
	Client        *UserResponse          `json:"client"`
	PreAssessment *PreAssessmentResponse `json:"preAssessment"`
}

// MatchedClientUser is the client part of a matched client entry
type MatchedClientUser struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// MatchedClientResponse is one entry of the matched clients view
type MatchedClientResponse struct {
	RelationshipID string            `json:"relationshipId"`
	Client         MatchedClientUser `json:"client"`
	MatchInfo      struct {
		AssignedAt     time.Time `json:"assignedAt"`
		DaysSinceMatch int       `json:"daysSinceMatch"`
		Status         string    `json:"status"`
	} `json:"matchInfo"`
	AssessmentInfo struct {
		HasAssessment       bool       `json:"hasAssessment"`
		CompletedAt         *time.Time `json:"completedAt"`
		AssessmentType      *string    `json:"assessmentType"`
		DaysSinceAssessment *int       `json:"daysSinceAssessment"`
	} `json:"assessmentInfo"`
}

// MatchedClientsResponse lists every matched client with the recent ones repeated in RecentMatches
type MatchedClientsResponse struct {
	RecentMatches []*MatchedClientResponse `json:"recentMatches"`
	AllMatches    []*MatchedClientResponse `json:"allMatches"`
	Summary       struct {
		TotalRecentMatches int `json:"totalRecentMatches"`
		TotalAllMatches    int `json:"totalAllMatches"`
		TotalMatches       int `json:"totalMatches"`
	} `json:"summary"`
}

func newMatchedClientsResponse(m *therapists.MatchedClients) *MatchedClientsResponse {
	convert := func(items []*therapists.MatchedClient) []*MatchedClientResponse {
		out := make([]*MatchedClientResponse, 0, len(items))
		for _, item := range items {
			entry := &MatchedClientResponse{RelationshipID: item.RelationshipID}
			if item.Client != nil {
				entry.Client = MatchedClientUser{
					ID:             item.Client.ID,
					FirstName:      item.Client.FirstName,
					LastName:       item.Client.LastName,
					Email:          item.Client.Email,
					ProfilePicture: item.Client.ProfilePicture,
					JoinedAt:       item.Client.CreatedAt,
				}
			}
			entry.MatchInfo.AssignedAt = item.MatchInfo.AssignedAt
			entry.MatchInfo.DaysSinceMatch = item.MatchInfo.DaysSinceMatch
			entry.MatchInfo.Status = item.MatchInfo.Status
			entry.AssessmentInfo.HasAssessment = item.AssessmentInfo.HasAssessment
			entry.AssessmentInfo.CompletedAt = item.AssessmentInfo.CompletedAt
			entry.AssessmentInfo.AssessmentType = item.AssessmentInfo.AssessmentType
			entry.AssessmentInfo.DaysSinceAssessment = item.AssessmentInfo.DaysSinceAssessment
			out = append(out, entry)
		}
		return out
	}
	response := &MatchedClientsResponse{
		RecentMatches: convert(m.RecentMatches),
		AllMatches:    convert(m.AllMatches),
	}
	response.Summary.TotalRecentMatches = m.Summary.TotalRecentMatches
	response.Summary.TotalAllMatches = m.Summary.TotalAllMatches
	response.Summary.TotalMatches = m.Summary.TotalMatches
	return response
}

// AvailabilityResponse is a weekly availability window
type AvailabilityResponse struct {
	ID          string    `json:"id"`
	TherapistID string    `json:"therapistId"`
	DayOfWeek   string    `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newAvailabilityResponse(a *meetings.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:          a.ID,
		TherapistID: a.TherapistID,
		DayOfWeek:   a.DayOfWeek,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsAvailable: a.IsAvailable,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// SlotResponse is a bookable start time
type SlotResponse struct {
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	AvailableDurations []struct {
		Duration int       `json:"duration"`
		EndTime  time.Time `json:"endTime"`
	} `json:"availableDurations"`
}

func newSlotResponses(slots []meetings.TimeSlot) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, slot := range slots {
		response := &SlotResponse{StartTime: slot.StartTime, EndTime: slot.EndTime}
		for _, d := range slot.AvailableDurations {
			response.AvailableDurations = append(response.AvailableDurations, struct {
				Duration int       `json:"duration"`
				EndTime  time.Time `json:"endTime"`
			}{d.Duration, d.EndTime})
		}
		out = append(out, response)
	}
	return out
}

// MeetingResponse is a meeting with its display fields
type MeetingResponse struct {
	ID                 string     `json:"id"`
	TherapistID        string     `json:"therapistId"`
	ClientID           string     `json:"clientId"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	DateTime           time.Time  `json:"dateTime"`
	Duration           int        `json:"duration"`
	Status             string     `json:"status"`
	MeetingType        string     `json:"meetingType"`
	MeetingURL         string     `json:"meetingUrl,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	TherapistName      string     `json:"therapistName,omitempty"`
	ClientName         string     `json:"clientName,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func newMeetingResponse(m *meetings.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:                 m.ID,
		TherapistID:        m.TherapistID,
		ClientID:           m.ClientID,
		Title:              m.Title,
		Description:        m.Description,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		DateTime:           m.StartTime,
		Duration:           m.Duration,
		Status:             m.Status,
		MeetingType:        m.MeetingType,
		MeetingURL:         m.MeetingURL,
		Notes:              m.Notes,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func newMeetingDetailsResponse(d *meetings.Details) *MeetingResponse {
	response := newMeetingResponse(d.Meeting)
	response.DateTime = d.DateTime
	response.TherapistName = d.TherapistName
	response.ClientName = d.ClientName
	return response
}

// CancellationResponse is returned after a meeting is cancelled
type CancellationResponse struct {
	Meeting                 *MeetingResponse `json:"meeting"`
	CancellationNoticeHours int              `json:"cancellationNotice"`
	RefundEligible          bool             `json:"refundEligible"`
}

// ParticipantResponse is a member of a conversation
type ParticipantResponse struct {
	UserID     string     `json:"userId"`
	Role       string     `json:"role"`
	JoinedAt   time.Time  `json:"joinedAt"`
	LastReadAt *time.Time `json:"lastReadAt,omitempty"`
	IsActive   bool       `json:"isActive"`
}

// ReactionResponse is an emoji reaction
type ReactionResponse struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	UserID    string    `json:"userId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

func newReactionResponse(r *messaging.Reaction) *ReactionResponse {
	return &ReactionResponse{
		ID:        r.ID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

// MessageResponse is a message with plaintext content
type MessageResponse struct {
	ID             string              `json:"id"`
	ConversationID string              `json:"conversationId"`
	SenderID       string              `json:"senderId"`
	Content        string              `json:"content"`
	MessageType    string              `json:"messageType"`
	ReplyToID      *string             `json:"replyToId,omitempty"`
	IsEdited       bool                `json:"isEdited"`
	EditedAt       *time.Time          `json:"editedAt,omitempty"`
	IsDeleted      bool                `json:"isDeleted"`
	CreatedAt      time.Time           `json:"createdAt"`
	Reactions      []*ReactionResponse `json:"reactions"`
}

func newMessageResponse(m *messaging.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	content := m.Content
	if m.IsDeleted {
		content = ""
	}
	reactions := make([]*ReactionResponse, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		reactions = append(reactions, newReactionResponse(r))
	}
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        content,
		MessageType:    m.Type,
		ReplyToID:      m.ReplyToID,
		IsEdited:       m.IsEdited,
		EditedAt:       m.EditedAt,
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		Reactions:      reactions,
	}
}

// ConversationResponse is a conversation as listed for one user
type ConversationResponse struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	Title         string                 `json:"title,omitempty"`
	CreatedBy     string                 `json:"createdBy"`
	LastMessageAt *time.Time             `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	Participants  []*ParticipantResponse `json:"participants"`
	LastMessage   *MessageResponse       `json:"lastMessage,omitempty"`
	UnreadCount   int64                  `json:"unreadCount"`
}

func newConversationResponse(s *messaging.ConversationSummary) *ConversationResponse {
	participants := make([]*ParticipantResponse, 0, len(s.Participants))
	for _, p := range s.Participants {
		participants = append(participants, &ParticipantResponse{
			UserID:     p.UserID,
			Role:       p.Role,
			JoinedAt:   p.JoinedAt,
			LastReadAt: p.LastReadAt,
			IsActive:   p.IsActive,
		})
	}
	return &ConversationResponse{
		ID:            s.Conversation.ID,
		Type:          s.Conversation.Type,
		Title:         s.Conversation.Title,
		CreatedBy:     s.Conversation.CreatedBy,
		LastMessageAt: s.Conversation.LastMessageAt,
		CreatedAt:     s.Conversation.CreatedAt,
		Participants:  participants,
		LastMessage:   newMessageResponse(s.LastMessage),
		UnreadCount:   s.UnreadCount,
	}
}

// WorksheetResponse is a worksheet as seen by its participants
type WorksheetResponse struct {
	ID                string     `json:"id"`
	TherapistID       string     `json:"therapistId"`
	ClientID          string     `json:"clientId"`
	Title             string     `json:"title"`
	Instructions      string     `json:"instructions"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	Status            string     `json:"status"`
	SubmissionContent string     `json:"submissionContent,omitempty"`
	SubmittedAt       *time.Time `json:"submittedAt,omitempty"`
	Feedback          string     `json:"feedback,omitempty"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func newWorksheetResponse(w *worksheets.Worksheet) *WorksheetResponse {
	return &WorksheetResponse{
		ID:                w.ID,
		TherapistID:       w.TherapistID,
		ClientID:          w.ClientID,
		Title:             w.Title,
		Instructions:      w.Instructions,
		DueDate:           w.DueDate,
		Status:            w.Status,
		SubmissionContent: w.SubmissionContent,
		SubmittedAt:       w.SubmittedAt,
		Feedback:          w.Feedback,
		ReviewedAt:        w.ReviewedAt,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

// NotificationResponse is an in-app notification
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	IsRead    bool                   `json:"isRead"`
	ReadAt    *time.Time             `json:"readAt,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

func newNotificationResponse(n *notifications.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// ReportResponse is a content report
type ReportResponse struct {
	ID             string     `json:"id"`
	ReporterID     string     `json:"reporterId"`
	ContentType    string     `json:"contentType"`
	ContentID      string     `json:"contentId"`
	ReportedUserID string     `json:"reportedUserId,omitempty"`
	Reason         string     `json:"reason"`
	Details        string     `json:"details,omitempty"`
	Status         string     `json:"status"`
	ReviewedBy     string     `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	ActionTaken    string     `json:"actionTaken,omitempty"`
	ModeratorNotes string     `json:"moderatorNotes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func newReportResponse(r *moderation.ContentReport) *ReportResponse {
	return &ReportResponse{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ContentType:    r.ContentType,
		ContentID:      r.ContentID,
		ReportedUserID: r.ReportedUserID,
		Reason:         r.Reason,
		Details:        r.Details,
		Status:         r.Status,
		ReviewedBy:     r.ReviewedBy,
		ReviewedAt:     r.ReviewedAt,
		ActionTaken:    r.ActionTaken,
		ModeratorNotes: r.ModeratorNotes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ModerationActionResponse is a recorded moderator decision
type ModerationActionResponse struct {
	ID           string    `json:"id"`
	ModeratorID  string    `json:"moderatorId"`
	TargetUserID string    `json:"targetUserId,omitempty"`
	ReportID     string    `json:"reportId,omitempty"`
	Action       string    `json:"action"`
	Reason       string    `json:"reason,omitempty"`
	DurationDays int       `json:"durationDays,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newModerationActionResponse(a *moderation.ModerationAction) *ModerationActionResponse {
	return &ModerationActionResponse{
		ID:           a.ID,
		ModeratorID:  a.ModeratorID,
		TargetUserID: a.TargetUserID,
		ReportID:     a.ReportID,
		Action:       a.Action,
		Reason:       a.Reason,
		DurationDays: a.DurationDays,
		CreatedAt:    a.CreatedAt,
	}
}

// ModerationStatsResponse counts reports and actions
type ModerationStatsResponse struct {
	TotalReports int64            `json:"totalReports"`
	ByStatus     map[string]int64 `json:"byStatus"`
	ByReason     map[string]int64 `json:"byReason"`
	TotalActions int64            `json:"totalActions"`
}

// AuditLogResponse is an audit trail entry
type AuditLogResponse struct {
	ID          string                 `json:"id"`
	Action      string                 `json:"action"`
	Entity      string                 `json:"entity"`
	EntityID    string                 `json:"entityId,omitempty"`
	UserID      string                 `json:"userId,omitempty"`
	UserRole    string                 `json:"userRole,omitempty"`
	OldValues   map[string]interface{} `json:"oldValues,omitempty"`
	NewValues   map[string]interface{} `json:"newValues,omitempty"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	IPAddress   string                 `json:"ipAddress,omitempty"`
	UserAgent   string                 `json:"userAgent,omitempty"`
	RequestID   string                 `json:"requestId,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func newAuditLogResponse(l *auditlogs.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:          l.ID,
		Action:      l.Action,
		Entity:      l.Entity,
		EntityID:    l.EntityID,
		UserID:      l.UserID,
		UserRole:    l.UserRole,
		OldValues:   l.OldValues,
		NewValues:   l.NewValues,
		Description: l.Description,
		Metadata:    l.Metadata,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		RequestID:   l.RequestID,
		CreatedAt:   l.CreatedAt,
	}
}

// AuditStatsResponse totals the audit trail
type AuditStatsResponse struct {
	Total    int64            `json:"total"`
	ByAction map[string]int64 `json:"byAction"`
	ByEntity map[string]int64 `json:"byEntity"`
	DateFrom *time.Time       `json:"dateFrom,omitempty"`
	DateTo   *time.Time       `json:"dateTo,omitempty"`
}

// SystemEventResponse is an operational event
type SystemEventResponse struct {
	ID          string                 `json:"id"`
	EventType   string                 `json:"eventType"`
	Severity    string                 `json:"severity"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Component   string                 `json:"component,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	IsResolved  bool                   `json:"isResolved"`
	ResolvedAt  *time.Time             `json:"resolvedAt,omitempty"`
	ResolvedBy  string                 `json:"resolvedBy,omitempty"`
	Resolution  string                 `json:"resolution,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func newSystemEventResponse(e *auditlogs.SystemEvent) *SystemEventResponse {
	return &SystemEventResponse{
		ID:          e.ID,
		EventType:   e.EventType,
		Severity:    e.Severity,
		Title:       e.Title,
		Description: e.Description,
		Component:   e.Component,
		Metadata:    e.Metadata,
		IsResolved:  e.IsResolved,
		ResolvedAt:  e.ResolvedAt,
		ResolvedBy:  e.ResolvedBy,
		Resolution:  e.Resolution,
		CreatedAt:   e.CreatedAt,
	}
}

// ReviewResponse is a review. ClientID is empty for anonymous reviews seen by others.
type ReviewResponse struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId,omitempty"`
	TherapistID    string     `json:"therapistId"`
	MeetingID      string     `json:"meetingId"`
	Rating         int        `json:"rating"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	IsAnonymous    bool       `json:"isAnonymous"`
	Status         string     `json:"status"`
	HelpfulCount   int        `json:"helpfulCount"`
	ModerationNote string     `json:"moderationNote,omitempty"`
	ModeratedAt    *time.Time `json:"moderatedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func newReviewResponse(r *reviews.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:             r.ID,
		ClientID:       r.ClientID,
		TherapistID:    r.TherapistID,
		MeetingID:      r.MeetingID,
		Rating:         r.Rating,
		Title:          r.Title,
		Content:        r.Content,
		IsAnonymous:    r.IsAnonymous,
		Status:         r.Status,
		HelpfulCount:   r.HelpfulCount,
		ModerationNote: r.ModerationNote,
		ModeratedAt:    r.ModeratedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ReviewListResponse is a page of reviews with the rating summary of the page
type ReviewListResponse struct {
	*shared.Page[*ReviewResponse]
	AverageRating      float64       `json:"averageRating"`
	RatingDistribution map[int]int64 `json:"ratingDistribution"`
}

func newReviewListResponse(l *reviews.List) *ReviewListResponse {
	return &ReviewListResponse{
		Page:               mapPage(l.Page, newReviewResponse),
		AverageRating:      l.AverageRating,
		RatingDistribution: l.RatingDistribution,
	}
}

// MonthlyReviewStatsResponse covers the reviews of one month
type MonthlyReviewStatsResponse struct {
	Month         string  `json:"month"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

// ReviewStatsResponse summarises the approved reviews of a therapist
type ReviewStatsResponse struct {
	TotalReviews       int64                         `json:"totalReviews"`
	AverageRating      float64                       `json:"averageRating"`
	RatingDistribution map[int]int64                 `json:"ratingDistribution"`
	RecommendationRate float64                       `json:"recommendationRate"`
	TotalHelpfulVotes  int64                         `json:"totalHelpfulVotes"`
	MonthlyStats       []*MonthlyReviewStatsResponse `json:"monthlyStats"`
	RecentReviews      []*ReviewResponse             `json:"recentReviews"`
}

func newReviewStatsResponse(s *reviews.Stats) *ReviewStatsResponse {
	return &ReviewStatsResponse{
		TotalReviews:       s.TotalReviews,
		AverageRating:      s.AverageRating,
		RatingDistribution: s.RatingDistribution,
		RecommendationRate: s.RecommendationRate,
		TotalHelpfulVotes:  s.TotalHelpfulVotes,
		MonthlyStats: mapSlice(s.Monthly, func(m reviews.MonthlyStats) *MonthlyReviewStatsResponse {
			return &MonthlyReviewStatsResponse{Month: m.Month, Count: m.Count, AverageRating: m.AverageRating}
		}),
		RecentReviews: mapSlice(s.RecentReviews, newReviewResponse),
	}
}

// HelpfulResponse is returned after a helpful vote
type HelpfulResponse struct {
	ReviewID     string `json:"reviewId"`
	HelpfulCount int    `json:"helpfulCount"`
	Counted      bool   `json:"counted"`
}

// ClientDashboardResponse is the landing page of a client
type ClientDashboardResponse struct {
	Client             *UserResponse          `json:"client"`
	Stats              dashboards.ClientStats `json:"stats"`
	UpcomingMeetings   []*MeetingResponse     `json:"upcomingMeetings"`
	PendingWorksheets  []*WorksheetResponse   `json:"pendingWorksheets"`
	AssignedTherapists []*UserResponse        `json:"assignedTherapists"`
	HasPreAssessment   bool                   `json:"hasPreAssessment"`
}

func newClientDashboardResponse(d *dashboards.ClientDashboard) *ClientDashboardResponse {
	return &ClientDashboardResponse{
		Client:             newUserResponse(d.Client),
		Stats:              d.Stats,
		UpcomingMeetings:   mapSlice(d.UpcomingMeetings, newMeetingDetailsResponse),
		PendingWorksheets:  mapSlice(d.PendingWorksheets, newWorksheetResponse),
		AssignedTherapists: mapSlice(d.AssignedTherapists, newUserResponse),
		HasPreAssessment:   d.HasPreAssessment,
	}
}

// TherapistDashboardResponse is the landing page of a therapist
type TherapistDashboardResponse struct {
	Therapist            *TherapistResponse        `json:"therapist"`
	Stats                dashboards.TherapistStats `json:"stats"`
	UpcomingAppointments []*MeetingResponse        `json:"upcomingAppointments"`
	PendingWorksheets    []*WorksheetResponse      `json:"pendingWorksheets"`
	AssignedClients      []*UserResponse           `json:"assignedClients"`
	RecentSessions       []*MeetingResponse        `json:"recentSessions"`
}

func newTherapistDashboardResponse(d *dashboards.TherapistDashboard, now time.Time) *TherapistDashboardResponse {
	return &TherapistDashboardResponse{
		Therapist:            newTherapistResponse(d.Profile, d.Therapist, d.Profile.YearsOfExperience(now), now),
		Stats:                d.Stats,
		UpcomingAppointments: mapSlice(d.UpcomingAppointments, newMeetingDetailsResponse),
		PendingWorksheets:    mapSlice(d.PendingWorksheets, newWorksheetResponse),
		AssignedClients:      mapSlice(d.AssignedClients, newUserResponse),
		RecentSessions:       mapSlice(d.RecentSessions, newMeetingDetailsResponse),
	}
}

// AdminDashboardResponse is the landing page of an administrator
type AdminDashboardResponse struct {
	Stats               dashboards.PlatformStats `json:"stats"`
	RecentUsers         []*UserResponse          `json:"recentUsers"`
	PendingApplications []*TherapistResponse     `json:"pendingApplications"`
}

func newAdminDashboardResponse(d *dashboards.AdminDashboard, now time.Time) *AdminDashboardResponse {
	return &AdminDashboardResponse{
		Stats:       d.Stats,
		RecentUsers: mapSlice(d.RecentUsers, newUserResponse),
		PendingApplications: mapSlice(d.PendingApplications, func(t *therapists.Therapist) *TherapistResponse {
			return newTherapistResponse(t, nil, nil, now)
		}),
	}
}

// mapPage converts the items of a page, keeping its paging fields
func mapPage[T, R any](page *shared.Page[T], convert func(T) R) *shared.Page[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return &shared.Page[R]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func mapSlice[T, R any](items []T, convert func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
