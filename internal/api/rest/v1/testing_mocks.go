//go:build unit
// +build unit

package v1

import (
	"context"
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

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of users.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input *users.RegisterInput, device users.DeviceInfo) (*users.AuthResult, error) {
	args := m.Called(ctx, input, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, device users.DeviceInfo) (*users.AuthResult, error) {
	args := m.Called(ctx, email, password, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthResult), args.Error(1)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string, device users.DeviceInfo) (*users.AuthResult, error) {
	args := m.Called(ctx, refreshToken, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	args := m.Called(ctx, userID, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*users.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) GetActiveSessions(ctx context.Context, userID string) ([]*users.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.RefreshToken), args.Error(1)
}

func (m *MockAuthService) TerminateSession(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) TerminateOtherSessions(ctx context.Context, userID, currentRefreshToken string) (int64, error) {
	args := m.Called(ctx, userID, currentRefreshToken)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileService is a mock implementation of users.ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, update *users.ProfileUpdate) (*users.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockProfileService) DeactivateAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileService) ListUsers(ctx context.Context, query *users.UserQuery) ([]*users.User, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*users.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileService) GetUser(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockProfileService) UpdateUserRole(ctx context.Context, userID, role string) (*users.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockProfileService) SetUserActive(ctx context.Context, userID string, active bool) (*users.User, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockApplicationService is a mock implementation of therapists.ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) SubmitApplication(ctx context.Context, input *therapists.ApplicationInput, documents []therapists.ApplicationDocument) (*therapists.SubmittedApplication, error) {
	args := m.Called(ctx, input, documents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.SubmittedApplication), args.Error(1)
}

func (m *MockApplicationService) GetAllApplications(ctx context.Context, query *therapists.ApplicationQuery) (*therapists.ApplicationList, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.ApplicationList), args.Error(1)
}

func (m *MockApplicationService) GetApplicationByID(ctx context.Context, applicationID string) (*therapists.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateApplicationStatus(ctx context.Context, applicationID string, update *therapists.StatusUpdate, adminID string) (*therapists.StatusUpdateResult, error) {
	args := m.Called(ctx, applicationID, update, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.StatusUpdateResult), args.Error(1)
}

func (m *MockApplicationService) DownloadApplicationFile(ctx context.Context, applicationID, fileID string) (*therapists.TherapistFile, []byte, error) {
	args := m.Called(ctx, applicationID, fileID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*therapists.TherapistFile), args.Get(1).([]byte), args.Error(2)
}

func (m *MockApplicationService) CalculateProgress(values map[string]interface{}, documents map[string]bool) therapists.ApplicationProgress {
	args := m.Called(values, documents)
	return args.Get(0).(therapists.ApplicationProgress)
}

// MockManagementService is a mock implementation of therapists.ManagementService
type MockManagementService struct {
	mock.Mock
}

func (m *MockManagementService) GetTherapistProfile(ctx context.Context, therapistID string) (*therapists.Profile, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.Profile), args.Error(1)
}

func (m *MockManagementService) UpdateTherapistProfile(ctx context.Context, therapistID string, update *therapists.ProfileUpdate) (*therapists.Profile, error) {
	args := m.Called(ctx, therapistID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.Profile), args.Error(1)
}

func (m *MockManagementService) GetAssignedPatients(ctx context.Context, therapistID string) ([]*therapists.AssignedPatient, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*therapists.AssignedPatient), args.Error(1)
}

func (m *MockManagementService) GetPendingRequests(ctx context.Context, therapistID string) ([]*therapists.PendingRequest, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*therapists.PendingRequest), args.Error(1)
}

func (m *MockManagementService) AcceptPatientRequest(ctx context.Context, therapistID, clientID string) (*clients.ClientTherapist, error) {
	args := m.Called(ctx, therapistID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.ClientTherapist), args.Error(1)
}

func (m *MockManagementService) DenyPatientRequest(ctx context.Context, therapistID, clientID string) error {
	args := m.Called(ctx, therapistID, clientID)
	return args.Error(0)
}

func (m *MockManagementService) RemovePatient(ctx context.Context, therapistID, clientID string) error {
	args := m.Called(ctx, therapistID, clientID)
	return args.Error(0)
}

func (m *MockManagementService) GetAllClients(ctx context.Context, page shared.Pagination) (*shared.Page[*users.User], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*users.User]), args.Error(1)
}

func (m *MockManagementService) GetClientByID(ctx context.Context, clientID string) (*therapists.ClientDetail, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.ClientDetail), args.Error(1)
}

func (m *MockManagementService) GetMatchedClients(ctx context.Context, therapistID string) (*therapists.MatchedClients, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.MatchedClients), args.Error(1)
}

// MockDirectoryService is a mock implementation of therapists.DirectoryService
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListApprovedTherapists(ctx context.Context, query *therapists.DirectoryQuery) (*shared.Page[*therapists.Profile], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*therapists.Profile]), args.Error(1)
}

func (m *MockDirectoryService) GetTherapistPublicProfile(ctx context.Context, therapistID string) (*therapists.Profile, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*therapists.Profile), args.Error(1)
}

// MockClientService is a mock implementation of clients.ClientService
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) RequestTherapist(ctx context.Context, clientID, therapistID string) (*clients.ClientTherapist, error) {
	args := m.Called(ctx, clientID, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.ClientTherapist), args.Error(1)
}

func (m *MockClientService) CancelRequest(ctx context.Context, clientID, therapistID string) error {
	args := m.Called(ctx, clientID, therapistID)
	return args.Error(0)
}

func (m *MockClientService) ListMyTherapists(ctx context.Context, clientID string) ([]*clients.TherapistAssignment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clients.TherapistAssignment), args.Error(1)
}

func (m *MockClientService) SubmitPreAssessment(ctx context.Context, clientID string, input *clients.PreAssessmentInput) (*clients.PreAssessment, error) {
	args := m.Called(ctx, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PreAssessment), args.Error(1)
}

func (m *MockClientService) GetLatestPreAssessment(ctx context.Context, clientID string) (*clients.PreAssessment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PreAssessment), args.Error(1)
}

func (m *MockClientService) GetWelcomeStatus(ctx context.Context, clientID string) (*clients.WelcomeStatus, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.WelcomeStatus), args.Error(1)
}

func (m *MockClientService) MarkRecommendationsSeen(ctx context.Context, clientID string) (*users.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockBookingService is a mock implementation of meetings.BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateMeeting(ctx context.Context, userID, role string, input *meetings.CreateInput) (*meetings.Details, error) {
	args := m.Called(ctx, userID, role, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Details), args.Error(1)
}

func (m *MockBookingService) GetMeetings(ctx context.Context, userID, role string, query *meetings.Query) ([]*meetings.Details, error) {
	args := m.Called(ctx, userID, role, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*meetings.Details), args.Error(1)
}

func (m *MockBookingService) GetMeeting(ctx context.Context, userID, meetingID string) (*meetings.Details, error) {
	args := m.Called(ctx, userID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Details), args.Error(1)
}

func (m *MockBookingService) UpdateMeeting(ctx context.Context, userID, meetingID string, input *meetings.UpdateInput) (*meetings.Details, error) {
	args := m.Called(ctx, userID, meetingID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Details), args.Error(1)
}

func (m *MockBookingService) CancelMeeting(ctx context.Context, userID, meetingID, reason string) (*meetings.Cancellation, error) {
	args := m.Called(ctx, userID, meetingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Cancellation), args.Error(1)
}

func (m *MockBookingService) ExportMeetingICS(ctx context.Context, userID, meetingID string) ([]byte, error) {
	args := m.Called(ctx, userID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBookingService) GenerateAvailableSlots(ctx context.Context, therapistID string, date time.Time) ([]meetings.TimeSlot, error) {
	args := m.Called(ctx, therapistID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]meetings.TimeSlot), args.Error(1)
}

func (m *MockBookingService) SendReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockAvailabilityService is a mock implementation of meetings.AvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Create(ctx context.Context, therapistID string, input *meetings.AvailabilityInput) (*meetings.Availability, error) {
	args := m.Called(ctx, therapistID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Availability), args.Error(1)
}

func (m *MockAvailabilityService) List(ctx context.Context, therapistID string) ([]*meetings.Availability, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*meetings.Availability), args.Error(1)
}

func (m *MockAvailabilityService) Update(ctx context.Context, therapistID, availabilityID string, input *meetings.AvailabilityInput) (*meetings.Availability, error) {
	args := m.Called(ctx, therapistID, availabilityID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meetings.Availability), args.Error(1)
}

func (m *MockAvailabilityService) Delete(ctx context.Context, therapistID, availabilityID string) error {
	args := m.Called(ctx, therapistID, availabilityID)
	return args.Error(0)
}

// MockMessagingService is a mock implementation of messaging.MessagingService
type MockMessagingService struct {
	mock.Mock
}

func (m *MockMessagingService) CreateConversation(ctx context.Context, userID string, input *messaging.CreateConversationInput) (*messaging.ConversationSummary, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.ConversationSummary), args.Error(1)
}

func (m *MockMessagingService) GetUserConversations(ctx context.Context, userID string, page shared.Pagination) (*shared.Page[*messaging.ConversationSummary], error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*messaging.ConversationSummary]), args.Error(1)
}

func (m *MockMessagingService) GetConversationByID(ctx context.Context, userID, conversationID string) (*messaging.ConversationSummary, error) {
	args := m.Called(ctx, userID, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.ConversationSummary), args.Error(1)
}

func (m *MockMessagingService) SendMessage(ctx context.Context, userID, conversationID string, input *messaging.SendMessageInput) (*messaging.Message, error) {
	args := m.Called(ctx, userID, conversationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessagingService) GetConversationMessages(ctx context.Context, userID, conversationID string, page shared.Pagination) (*shared.Page[*messaging.Message], error) {
	args := m.Called(ctx, userID, conversationID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*messaging.Message]), args.Error(1)
}

func (m *MockMessagingService) UpdateMessage(ctx context.Context, userID, messageID, content string) (*messaging.Message, error) {
	args := m.Called(ctx, userID, messageID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessagingService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockMessagingService) MarkMessageAsRead(ctx context.Context, userID, messageID string) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockMessagingService) AddReaction(ctx context.Context, userID, messageID, emoji string) (*messaging.Reaction, error) {
	args := m.Called(ctx, userID, messageID, emoji)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Reaction), args.Error(1)
}

func (m *MockMessagingService) RemoveReaction(ctx context.Context, userID, messageID, emoji string) error {
	args := m.Called(ctx, userID, messageID, emoji)
	return args.Error(0)
}

func (m *MockMessagingService) BlockUser(ctx context.Context, userID, blockedID, reason string) error {
	args := m.Called(ctx, userID, blockedID, reason)
	return args.Error(0)
}

func (m *MockMessagingService) UnblockUser(ctx context.Context, userID, blockedID string) error {
	args := m.Called(ctx, userID, blockedID)
	return args.Error(0)
}

func (m *MockMessagingService) SearchMessages(ctx context.Context, userID string, query *messaging.SearchQuery) ([]*messaging.Message, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messaging.Message), args.Error(1)
}

func (m *MockMessagingService) RemoveMessageContent(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// MockModerationService is a mock implementation of moderation.ModerationService
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) CreateReport(ctx context.Context, reporterID string, input *moderation.CreateReportInput) (*moderation.ContentReport, error) {
	args := m.Called(ctx, reporterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.ContentReport), args.Error(1)
}

func (m *MockModerationService) ListReports(ctx context.Context, query *moderation.ReportQuery) (*shared.Page[*moderation.ContentReport], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*moderation.ContentReport]), args.Error(1)
}

func (m *MockModerationService) GetReport(ctx context.Context, reportID string) (*moderation.ContentReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.ContentReport), args.Error(1)
}

func (m *MockModerationService) ReviewReport(ctx context.Context, moderatorID, reportID string, input *moderation.ReviewInput) (*moderation.ContentReport, error) {
	args := m.Called(ctx, moderatorID, reportID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.ContentReport), args.Error(1)
}

func (m *MockModerationService) SuspendUser(ctx context.Context, moderatorID, userID string, input *moderation.SuspendInput) (*moderation.ModerationAction, error) {
	args := m.Called(ctx, moderatorID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.ModerationAction), args.Error(1)
}

func (m *MockModerationService) UnsuspendUser(ctx context.Context, moderatorID, userID, reason string) (*moderation.ModerationAction, error) {
	args := m.Called(ctx, moderatorID, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.ModerationAction), args.Error(1)
}

func (m *MockModerationService) ListActions(ctx context.Context, query *moderation.ActionQuery) (*shared.Page[*moderation.ModerationAction], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*moderation.ModerationAction]), args.Error(1)
}

func (m *MockModerationService) GetModerationStats(ctx context.Context) (*moderation.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.Stats), args.Error(1)
}

// MockAuditService is a mock implementation of auditlogs.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) CreateAuditLog(ctx context.Context, input *auditlogs.AuditInput) (*auditlogs.AuditLog, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditlogs.AuditLog), args.Error(1)
}

func (m *MockAuditService) FindAuditLogs(ctx context.Context, query *auditlogs.Query) (*shared.Page[*auditlogs.AuditLog], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*auditlogs.AuditLog]), args.Error(1)
}

func (m *MockAuditService) GetAuditStats(ctx context.Context, from, to *time.Time) (*auditlogs.Stats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditlogs.Stats), args.Error(1)
}

func (m *MockAuditService) CreateSystemEvent(ctx context.Context, input *auditlogs.SystemEventInput) (*auditlogs.SystemEvent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditlogs.SystemEvent), args.Error(1)
}

func (m *MockAuditService) FindSystemEvents(ctx context.Context, query *auditlogs.SystemEventQuery) (*shared.Page[*auditlogs.SystemEvent], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*auditlogs.SystemEvent]), args.Error(1)
}

func (m *MockAuditService) ResolveSystemEvent(ctx context.Context, eventID, userID, resolution string) (*auditlogs.SystemEvent, error) {
	args := m.Called(ctx, eventID, userID, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditlogs.SystemEvent), args.Error(1)
}

// MockNotificationService is a mock implementation of notifications.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, input *notifications.NotificationInput) (*notifications.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, userID string, query *notifications.Query) (*shared.Page[*notifications.Notification], error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*notifications.Notification]), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockWorksheetService is a mock implementation of worksheets.WorksheetService
type MockWorksheetService struct {
	mock.Mock
}

func (m *MockWorksheetService) Assign(ctx context.Context, therapistID string, input *worksheets.AssignInput) (*worksheets.Worksheet, error) {
	args := m.Called(ctx, therapistID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worksheets.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) ListForClient(ctx context.Context, clientID string, query *worksheets.Query) (*shared.Page[*worksheets.Worksheet], error) {
	args := m.Called(ctx, clientID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*worksheets.Worksheet]), args.Error(1)
}

func (m *MockWorksheetService) ListForTherapist(ctx context.Context, therapistID string, query *worksheets.Query) (*shared.Page[*worksheets.Worksheet], error) {
	args := m.Called(ctx, therapistID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Page[*worksheets.Worksheet]), args.Error(1)
}

func (m *MockWorksheetService) Get(ctx context.Context, userID, worksheetID string) (*worksheets.Worksheet, error) {
	args := m.Called(ctx, userID, worksheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worksheets.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) Submit(ctx context.Context, clientID, worksheetID string, input *worksheets.SubmitInput) (*worksheets.Worksheet, error) {
	args := m.Called(ctx, clientID, worksheetID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worksheets.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) Review(ctx context.Context, therapistID, worksheetID string, input *worksheets.ReviewInput) (*worksheets.Worksheet, error) {
	args := m.Called(ctx, therapistID, worksheetID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worksheets.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) MarkOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockReviewService is a mock implementation of reviews.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, clientID string, input *reviews.CreateInput) (*reviews.Review, error) {
	args := m.Called(ctx, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, clientID, reviewID string, input *reviews.UpdateInput) (*reviews.Review, error) {
	args := m.Called(ctx, clientID, reviewID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, clientID, reviewID string) error {
	args := m.Called(ctx, clientID, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) List(ctx context.Context, viewerID, viewerRole string, query *reviews.Query) (*reviews.List, error) {
	args := m.Called(ctx, viewerID, viewerRole, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.List), args.Error(1)
}

func (m *MockReviewService) GetStats(ctx context.Context, therapistID string) (*reviews.Stats, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Stats), args.Error(1)
}

func (m *MockReviewService) MarkHelpful(ctx context.Context, userID, reviewID string) (*reviews.HelpfulResult, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.HelpfulResult), args.Error(1)
}

func (m *MockReviewService) Moderate(ctx context.Context, moderatorID, reviewID string, input *reviews.ModerateInput) (*reviews.Review, error) {
	args := m.Called(ctx, moderatorID, reviewID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviews.Review), args.Error(1)
}

// MockDashboardService is a mock implementation of dashboards.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetClientDashboard(ctx context.Context, clientID string) (*dashboards.ClientDashboard, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboards.ClientDashboard), args.Error(1)
}

func (m *MockDashboardService) GetTherapistDashboard(ctx context.Context, therapistID string) (*dashboards.TherapistDashboard, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboards.TherapistDashboard), args.Error(1)
}

func (m *MockDashboardService) GetAdminDashboard(ctx context.Context) (*dashboards.AdminDashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboards.AdminDashboard), args.Error(1)
}
