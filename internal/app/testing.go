//go:build integration
// +build integration

package app

import (
	"context"
	"regexp"
	"sync"
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
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/calendar"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/crypto"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	eventsinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/events"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/storage"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	TestPassword    = "Str0ngPassw0rd!"
	TestJWTSecret   = "test-secret-that-is-at-least-32-bytes-long"
	TestFrontendURL = "http://localhost:3000"
)

// RecordingMailer keeps sent emails in memory
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []*notifications.Email
}

// Send records email
func (m *RecordingMailer) Send(_ context.Context, email *notifications.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return nil
}

// SentTo returns the subjects of emails sent to address
func (m *RecordingMailer) SentTo(address string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var subjects []string
	for _, e := range m.Sent {
		for _, to := range e.To {
			if to == address {
				subjects = append(subjects, e.Subject)
			}
		}
	}
	return subjects
}

var tokenPattern = regexp.MustCompile(`token=([0-9a-f]+)`)

// LastToken returns the token carried by the latest link emailed to address
func (m *RecordingMailer) LastToken(address string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Sent) - 1; i >= 0; i-- {
		for _, to := range m.Sent[i].To {
			if to != address {
				continue
			}
			if match := tokenPattern.FindStringSubmatch(m.Sent[i].Text); match != nil {
				return match[1]
			}
		}
	}
	return ""
}

// RecordingPusher keeps pushed envelopes per user in memory
type RecordingPusher struct {
	mu     sync.Mutex
	Pushed map[string][]notifications.Envelope
}

// SendToUser records envelope for userID
func (p *RecordingPusher) SendToUser(userID string, envelope notifications.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Pushed == nil {
		p.Pushed = make(map[string][]notifications.Envelope)
	}
	p.Pushed[userID] = append(p.Pushed[userID], envelope)
	return nil
}

// Broadcast records envelope for each of userIDs
func (p *RecordingPusher) Broadcast(userIDs []string, envelope notifications.Envelope) {
	for _, id := range userIDs {
		_ = p.SendToUser(id, envelope)
	}
}

// Count returns the number of envelopes of envelopeType pushed to userID
func (p *RecordingPusher) Count(userID, envelopeType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.Pushed[userID] {
		if e.Type == envelopeType {
			n++
		}
	}
	return n
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService         users.AuthService
	ProfileService      users.ProfileService
	ApplicationService  therapists.ApplicationService
	ManagementService   therapists.ManagementService
	DirectoryService    therapists.DirectoryService
	ClientService       clients.ClientService
	BookingService      meetings.BookingService
	AvailabilityService meetings.AvailabilityService
	MessagingService    messaging.MessagingService
	ModerationService   moderation.ModerationService
	AuditService        auditlogs.AuditService
	WorksheetService    worksheets.WorksheetService
	NotificationService notifications.NotificationService
	ReviewService       reviews.ReviewService
	DashboardService    dashboards.DashboardService

	Mailer *RecordingMailer
	Pusher *RecordingPusher
	Hasher users.PasswordHasher

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	tc := dbContext

	authSettings := config.DefaultAuthSettings()
	authSettings.JWTSecret = TestJWTSecret
	authSettings.BcryptCost = 4
	authSettings.MaxLoginAttempts = 3
	authSettings.FrontendURL = TestFrontendURL

	hasher, err := authinfra.NewBcryptHasher(authSettings.BcryptCost)
	require.NoError(t, err, "Failed to create hasher")
	issuer, err := authinfra.NewJWTIssuer(&authSettings)
	require.NoError(t, err, "Failed to create token issuer")

	renderer, err := email.NewRenderer("https://mentara.app/support")
	require.NoError(t, err, "Failed to create renderer")
	mailer := &RecordingMailer{}
	pusher := &RecordingPusher{}

	store, err := storage.NewLocalStore(&config.StorageSettings{
		BasePath:          t.TempDir(),
		MaxFileSizeBytes:  10 << 20,
		AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"},
	}, logger)
	require.NoError(t, err, "Failed to create document store")

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cipher, err := crypto.NewAESGCMCipher(key)
	require.NoError(t, err, "Failed to create cipher")

	bus, err := eventsinfra.NewMemoryBus(logger)
	require.NoError(t, err, "Failed to create event bus")

	s := &TestServices{Mailer: mailer, Pusher: pusher, Hasher: hasher, DBContext: dbContext}

	s.AuthService, err = NewAuthService(tc.UserRepo, tc.SessionRepo, hasher, issuer, tc.Transactor, bus, mailer, renderer, &authSettings, logger)
	require.NoError(t, err)
	s.ProfileService, err = NewProfileService(tc.UserRepo, tc.SessionRepo, hasher, bus, logger)
	require.NoError(t, err)
	s.ApplicationService, err = NewTherapistApplicationService(tc.TherapistRepo, tc.FileRepo, tc.UserRepo, hasher, store, tc.Transactor, bus, mailer, renderer, TestFrontendURL, logger)
	require.NoError(t, err)
	s.ManagementService, err = NewTherapistManagementService(tc.TherapistRepo, tc.UserRepo, tc.RelationshipRepo, tc.AssessmentRepo, bus, logger)
	require.NoError(t, err)
	s.DirectoryService, err = NewTherapistDirectoryService(tc.TherapistRepo, tc.UserRepo, logger)
	require.NoError(t, err)
	s.ClientService, err = NewClientService(tc.RelationshipRepo, tc.AssessmentRepo, tc.TherapistRepo, tc.UserRepo, bus, logger)
	require.NoError(t, err)
	s.BookingService, err = NewBookingService(tc.MeetingRepo, tc.AvailabilityRepo, tc.RelationshipRepo, tc.TherapistRepo, tc.UserRepo, calendar.NewICSExporter(), bus, mailer, renderer, logger)
	require.NoError(t, err)
	s.AvailabilityService, err = NewAvailabilityService(tc.AvailabilityRepo, logger)
	require.NoError(t, err)
	s.AuditService, err = NewAuditService(tc.AuditLogRepo, tc.SystemEventRepo, logger)
	require.NoError(t, err)

	screener, err := NewContentScreener(nil, tc.ReportRepo, s.AuditService, bus, logger)
	require.NoError(t, err)
	s.MessagingService, err = NewMessagingService(tc.ConversationRepo, tc.MessageRepo, tc.BlockRepo, tc.UserRepo, cipher, screener, pusher, tc.Transactor, bus, logger)
	require.NoError(t, err)
	s.ModerationService, err = NewModerationService(tc.ReportRepo, tc.ActionRepo, tc.UserRepo, tc.SessionRepo, s.MessagingService, tc.ReviewRepo, tc.Transactor, bus, logger)
	require.NoError(t, err)
	s.WorksheetService, err = NewWorksheetService(tc.WorksheetRepo, tc.RelationshipRepo, bus, logger)
	require.NoError(t, err)
	s.NotificationService, err = NewNotificationService(tc.NotificationRepo, pusher, logger)
	require.NoError(t, err)
	s.ReviewService, err = NewReviewService(tc.ReviewRepo, tc.MeetingRepo, bus, logger)
	require.NoError(t, err)
	s.DashboardService, err = NewDashboardService(tc.DashboardRepo, tc.UserRepo, tc.TherapistRepo, tc.RelationshipRepo, tc.AssessmentRepo, tc.ReviewRepo, logger)
	require.NoError(t, err)

	require.NoError(t, NewAuditSubscriber(s.AuditService, logger).Register(bus))
	require.NoError(t, NewNotificationSubscriber(s.NotificationService, logger).Register(bus))

	return s
}

// SeedUser persists an active user with role whose password is TestPassword
func (s *TestServices) SeedUser(t *testing.T, role string) *users.User {
	t.Helper()

	user := persistence.CreateTestUser(t, role)
	hash, err := s.Hasher.Hash(TestPassword)
	require.NoError(t, err)
	user.PasswordHash = hash
	require.NoError(t, s.DBContext.UserRepo.Create(context.Background(), user))
	return user
}

// SeedApprovedTherapist persists an approved therapist available every day from 00:00 to 23:59
func (s *TestServices) SeedApprovedTherapist(t *testing.T) *users.User {
	t.Helper()

	user := s.SeedUser(t, users.RoleTherapist)
	therapist := persistence.CreateTestTherapist(t, user.ID, therapists.StatusApproved)
	require.NoError(t, s.DBContext.TherapistRepo.Create(context.Background(), therapist))

	for d := time.Sunday; d <= time.Saturday; d++ {
		_, err := s.AvailabilityService.Create(context.Background(), user.ID, &meetings.AvailabilityInput{
			DayOfWeek: meetings.WeekdayName(d),
			StartTime: "00:00",
			EndTime:   "23:59",
		})
		require.NoError(t, err)
	}
	return user
}

// SeedActiveRelationship persists an accepted relationship between clientID and therapistID
func (s *TestServices) SeedActiveRelationship(t *testing.T, clientID, therapistID string) *clients.ClientTherapist {
	t.Helper()

	rel := persistence.CreateTestRelationship(t, clientID, therapistID)
	rel.Accept()
	require.NoError(t, s.DBContext.RelationshipRepo.Create(context.Background(), rel))
	return rel
}

// FutureStart returns a start time days ahead at 02:00 UTC, which is 10:00 in the default therapist time zone
func FutureStart(days int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+days, 2, 0, 0, 0, time.UTC)
}

// newID returns a random identifier for lookups that must miss
func newID() string {
	return uuid.NewString()
}
