//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
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
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOa1Jm2d4L9K8zV0Yx3s5u6w7y8z9A0bC"
	TestMeetingTitle = "Weekly session"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	Transactor       shared.Transactor
	UserRepo         users.UserRepository
	SessionRepo      users.SessionRepository
	TherapistRepo    therapists.TherapistRepository
	FileRepo         therapists.TherapistFileRepository
	RelationshipRepo clients.RelationshipRepository
	AssessmentRepo   clients.PreAssessmentRepository
	MeetingRepo      meetings.MeetingRepository
	AvailabilityRepo meetings.AvailabilityRepository
	ConversationRepo messaging.ConversationRepository
	MessageRepo      messaging.MessageRepository
	BlockRepo        messaging.BlockRepository
	ReportRepo       moderation.ReportRepository
	ActionRepo       moderation.ActionRepository
	AuditLogRepo     auditlogs.AuditLogRepository
	SystemEventRepo  auditlogs.SystemEventRepository
	WorksheetRepo    worksheets.WorksheetRepository
	NotificationRepo notifications.NotificationRepository
	ReviewRepo       reviews.ReviewRepository
	DashboardRepo    dashboards.Repository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)
	tc := &TestContext{DB: db, Transactor: NewGormTransactor(db)}

	tc.UserRepo, err = NewGormUserRepository(db, log)
	require.NoError(t, err)
	tc.SessionRepo, err = NewGormSessionRepository(db, log)
	require.NoError(t, err)
	tc.TherapistRepo, err = NewGormTherapistRepository(db, log)
	require.NoError(t, err)
	tc.FileRepo, err = NewGormTherapistFileRepository(db, log)
	require.NoError(t, err)
	tc.RelationshipRepo, err = NewGormRelationshipRepository(db, log)
	require.NoError(t, err)
	tc.AssessmentRepo, err = NewGormPreAssessmentRepository(db, log)
	require.NoError(t, err)
	tc.MeetingRepo, err = NewGormMeetingRepository(db, log)
	require.NoError(t, err)
	tc.AvailabilityRepo, err = NewGormAvailabilityRepository(db, log)
	require.NoError(t, err)
	tc.ConversationRepo, err = NewGormConversationRepository(db, log)
	require.NoError(t, err)
	tc.MessageRepo, err = NewGormMessageRepository(db, log)
	require.NoError(t, err)
	tc.BlockRepo, err = NewGormBlockRepository(db, log)
	require.NoError(t, err)
	tc.ReportRepo, err = NewGormReportRepository(db, log)
	require.NoError(t, err)
	tc.ActionRepo, err = NewGormActionRepository(db, log)
	require.NoError(t, err)
	tc.AuditLogRepo, err = NewGormAuditLogRepository(db, log)
	require.NoError(t, err)
	tc.SystemEventRepo, err = NewGormSystemEventRepository(db, log)
	require.NoError(t, err)
	tc.WorksheetRepo, err = NewGormWorksheetRepository(db, log)
	require.NoError(t, err)
	tc.NotificationRepo, err = NewGormNotificationRepository(db, log)
	require.NoError(t, err)
	tc.ReviewRepo, err = NewGormReviewRepository(db, log)
	require.NoError(t, err)
	tc.DashboardRepo, err = NewGormDashboardRepository(db, log)
	require.NoError(t, err)

	return tc
}

// CreateTestUser creates an active user with the given role
func CreateTestUser(t *testing.T, role string) *users.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	return &users.User{
		ID:           id,
		Email:        "user-" + id[:8] + "@example.com",
		PasswordHash: TestPasswordHash,
		FirstName:    "Test",
		LastName:     strings.ToUpper(role[:1]) + role[1:],
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestTherapist creates a therapist profile for userID with the given status
func CreateTestTherapist(t *testing.T, userID, status string) *therapists.Therapist {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	return &therapists.Therapist{
		UserID:                userID,
		Province:              "Cebu",
		Timezone:              therapists.DefaultTimezone,
		IsPRCLicensed:         "yes",
		PRCLicenseNumber:      "PRC-0001",
		Expertise:             []string{"Anxiety", "Depression"},
		Languages:             []string{"English", "Cebuano"},
		TreatmentSuccessRates: map[string]float64{"anxiety": 0.8},
		HourlyRate:            1500,
		Status:                status,
		SubmissionDate:        now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// CreateTestMeeting creates a scheduled hour-long meeting starting at start
func CreateTestMeeting(t *testing.T, therapistID, clientID string, start time.Time) *meetings.Meeting {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	return &meetings.Meeting{
		ID:          uuid.NewString(),
		TherapistID: therapistID,
		ClientID:    clientID,
		Title:       TestMeetingTitle,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Duration:    60,
		Status:      meetings.StatusScheduled,
		MeetingType: meetings.TypeVideo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestRelationship creates a pending client therapist relationship
func CreateTestRelationship(t *testing.T, clientID, therapistID string) *clients.ClientTherapist {
	t.Helper()

	return &clients.ClientTherapist{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TherapistID: therapistID,
		Status:      clients.RelationshipInactive,
		AssignedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

// CreateTestReview creates an approved review of meetingID
func CreateTestReview(t *testing.T, clientID, therapistID, meetingID string, rating int) *reviews.Review {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	return &reviews.Review{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TherapistID: therapistID,
		MeetingID:   meetingID,
		Rating:      rating,
		Title:       "Helpful session",
		Status:      reviews.StatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestMessage creates a text message in conversationID
func CreateTestMessage(t *testing.T, conversationID, senderID, content string, createdAt time.Time) *messaging.Message {
	t.Helper()

	return &messaging.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Type:           messaging.MessageText,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// CreateTestConversation persists a direct conversation between two users
func CreateTestConversation(t *testing.T, tc *TestContext, userA, userB string) *messaging.Conversation {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	conversation := &messaging.Conversation{
		ID:        uuid.NewString(),
		Type:      messaging.ConversationDirect,
		CreatedBy: userA,
		CreatedAt: now,
		UpdatedAt: now,
	}
	participants := []*messaging.Participant{
		{ConversationID: conversation.ID, UserID: userA, Role: messaging.ParticipantAdmin, JoinedAt: now, IsActive: true},
		{ConversationID: conversation.ID, UserID: userB, Role: messaging.ParticipantMember, JoinedAt: now, IsActive: true},
	}

	err := tc.ConversationRepo.Create(context.Background(), conversation, participants)
	require.NoError(t, err)
	return conversation
}
