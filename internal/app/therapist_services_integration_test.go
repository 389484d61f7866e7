//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationInput(email string) *therapists.ApplicationInput {
	return &therapists.ApplicationInput{
		FirstName:                     "Maria",
		LastName:                      "Reyes",
		Email:                         email,
		Mobile:                        "+639171234567",
		Province:                      "Cebu",
		ProviderType:                  "Psychologist",
		ProfessionalLicenseType:       "RPsy",
		IsPRCLicensed:                 "yes",
		PRCLicenseNumber:              "PRC-12345",
		ExpirationDateOfLicense:       time.Now().UTC().AddDate(2, 0, 0),
		PracticeStartDate:             time.Now().UTC().AddDate(-5, 0, 0),
		AreasOfExpertise:              []string{"Anxiety"},
		TherapeuticApproachesUsedList: []string{"CBT"},
		LanguagesOffered:              []string{"English"},
		HourlyRate:                    1200,
	}
}

func submitApplication(t *testing.T, services *TestServices, email string) *therapists.SubmittedApplication {
	t.Helper()

	documents := testutil.ApplicationDocuments(t, "license", map[string][]byte{"scan.pdf": []byte("%PDF-1.4 license")})
	submitted, err := services.ApplicationService.SubmitApplication(context.Background(), applicationInput(email), documents)
	require.NoError(t, err)
	return submitted
}

func TestTherapistApplicationService_SubmitApplication_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	submitted := submitApplication(t, services, "maria@example.com")

	application := submitted.Application
	assert.Equal(t, therapists.StatusPending, application.Therapist.Status)
	assert.Equal(t, therapists.DefaultTimezone, application.Therapist.Timezone)
	assert.Equal(t, users.RoleClient, application.User.Role)
	assert.False(t, application.User.IsActive)
	require.Len(t, submitted.UploadedFiles, 1)
	assert.Equal(t, therapists.FilePurposeLicense, submitted.UploadedFiles[0].Purpose)

	file, content, err := services.ApplicationService.DownloadApplicationFile(context.Background(), application.User.ID, submitted.UploadedFiles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.UploadedFiles[0].ID, file.ID)
	assert.Equal(t, []byte("%PDF-1.4 license"), content)
}

func TestTherapistApplicationService_SubmitApplication_DuplicateEmail_Fails(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	existing := services.SeedUser(t, users.RoleClient)

	_, err := services.ApplicationService.SubmitApplication(context.Background(), applicationInput(existing.Email), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestTherapistApplicationService_SubmitApplication_RejectedExtension_RollsBack(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	documents := testutil.ApplicationDocuments(t, "", map[string][]byte{"license.exe": []byte("MZ")})
	_, err := services.ApplicationService.SubmitApplication(context.Background(), applicationInput("maria@example.com"), documents)
	require.Error(t, err)

	exists, err := services.DBContext.UserRepo.ExistsByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTherapistApplicationService_GetAllApplications(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	submitApplication(t, services, "maria@example.com")
	submitApplication(t, services, "jose@example.com")

	list, err := services.ApplicationService.GetAllApplications(context.Background(), &therapists.ApplicationQuery{Status: therapists.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 1, list.TotalPages)
	for _, application := range list.Applications {
		assert.NotNil(t, application.User)
		assert.Len(t, application.Files, 1)
	}

	list, err = services.ApplicationService.GetAllApplications(context.Background(), &therapists.ApplicationQuery{Status: therapists.StatusApproved})
	require.NoError(t, err)
	assert.Empty(t, list.Applications)
}

func TestTherapistApplicationService_UpdateApplicationStatus_Approve(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	admin := services.SeedUser(t, users.RoleAdmin)
	submitted := submitApplication(t, services, "maria@example.com")
	applicationID := submitted.Application.User.ID
	ctx := context.Background()

	result, err := services.ApplicationService.UpdateApplicationStatus(ctx, applicationID, &therapists.StatusUpdate{
		Status:     therapists.StatusApproved,
		AdminNotes: "Welcome aboard",
	}, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Credentials)
	assert.Equal(t, "maria@example.com", result.Credentials.Email)
	assert.Len(t, result.Credentials.Password, therapists.TemporaryPasswordLength)

	application, err := services.ApplicationService.GetApplicationByID(ctx, applicationID)
	require.NoError(t, err)
	assert.Equal(t, therapists.StatusApproved, application.Therapist.Status)
	assert.Equal(t, admin.ID, application.Therapist.ProcessedBy)
	assert.NotNil(t, application.Therapist.ProcessingDate)
	assert.Equal(t, users.RoleTherapist, application.User.Role)
	assert.True(t, application.User.IsActive)

	login, err := services.AuthService.Login(ctx, "maria@example.com", result.Credentials.Password, testDevice)
	require.NoError(t, err)
	assert.Equal(t, users.RoleTherapist, login.User.Role)

	assert.Equal(t, []string{"Mentara Therapist Application Approved"}, services.Mailer.SentTo("maria@example.com"))

	unread, err := services.NotificationService.UnreadCount(ctx, applicationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestTherapistApplicationService_UpdateApplicationStatus_Reject(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	admin := services.SeedUser(t, users.RoleAdmin)
	submitted := submitApplication(t, services, "maria@example.com")

	result, err := services.ApplicationService.UpdateApplicationStatus(context.Background(), submitted.Application.User.ID, &therapists.StatusUpdate{
		Status:     therapists.StatusRejected,
		AdminNotes: "License could not be verified",
	}, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Credentials)
	assert.Equal(t, users.RoleClient, result.Application.User.Role)
	assert.False(t, result.Application.User.IsActive)
	assert.Equal(t, []string{"Mentara Therapist Application Update"}, services.Mailer.SentTo("maria@example.com"))
}

func TestTherapistApplicationService_NotFound(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	submitted := submitApplication(t, services, "maria@example.com")
	ctx := context.Background()

	_, err := services.ApplicationService.GetApplicationByID(ctx, newID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = services.ApplicationService.UpdateApplicationStatus(ctx, newID(), &therapists.StatusUpdate{Status: therapists.StatusApproved}, newID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, _, err = services.ApplicationService.DownloadApplicationFile(ctx, newID(), submitted.UploadedFiles[0].ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClientTherapistFlow(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	client := services.SeedUser(t, users.RoleClient)
	therapist := services.SeedApprovedTherapist(t)
	ctx := context.Background()

	_, err := services.ClientService.SubmitPreAssessment(ctx, client.ID, &clients.PreAssessmentInput{
		Answers: map[string]interface{}{"phq9_1": 2},
		Scores:  map[string]float64{"depression": 12},
	})
	require.NoError(t, err)

	t.Run("RequestTherapist creates a pending request", func(t *testing.T) {
		rel, err := services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
		require.NoError(t, err)
		assert.True(t, rel.IsPending())

		_, err = services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

		pending, err := services.ManagementService.GetPendingRequests(ctx, therapist.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, client.ID, pending[0].Client.ID)

		page, err := services.NotificationService.List(ctx, therapist.ID, &notifications.Query{})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, notifications.TypeRelationshipRequested, page.Items[0].Type)
	})

	t.Run("AcceptPatientRequest activates the relationship", func(t *testing.T) {
		rel, err := services.ManagementService.AcceptPatientRequest(ctx, therapist.ID, client.ID)
		require.NoError(t, err)
		assert.True(t, rel.IsActive())

		patients, err := services.ManagementService.GetAssignedPatients(ctx, therapist.ID)
		require.NoError(t, err)
		require.Len(t, patients, 1)
		assert.Equal(t, client.ID, patients[0].Client.ID)

		mine, err := services.ClientService.ListMyTherapists(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, therapist.ID, mine[0].Therapist.ID)

		_, err = services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("GetMatchedClients counts the new match as recent", func(t *testing.T) {
		matched, err := services.ManagementService.GetMatchedClients(ctx, therapist.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, matched.Summary.TotalRecentMatches)
		assert.Equal(t, 1, matched.Summary.TotalMatches)
		require.Len(t, matched.RecentMatches, 1)
		assert.True(t, matched.RecentMatches[0].AssessmentInfo.HasAssessment)
	})

	t.Run("GetClientByID includes the pre-assessment", func(t *testing.T) {
		detail, err := services.ManagementService.GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, client.ID, detail.Client.ID)
		assert.NotNil(t, detail.PreAssessment)
	})

	t.Run("RemovePatient ends the relationship", func(t *testing.T) {
		require.NoError(t, services.ManagementService.RemovePatient(ctx, therapist.ID, client.ID))

		patients, err := services.ManagementService.GetAssignedPatients(ctx, therapist.ID)
		require.NoError(t, err)
		assert.Empty(t, patients)

		err = services.ManagementService.RemovePatient(ctx, therapist.ID, client.ID)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("RequestTherapist reopens a removed relationship", func(t *testing.T) {
		rel, err := services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
		require.NoError(t, err)
		assert.True(t, rel.IsPending())
		assert.Nil(t, rel.RemovedAt)
	})
}

func TestClientService_CancelAndDenyRequest(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	client := services.SeedUser(t, users.RoleClient)
	therapist := services.SeedApprovedTherapist(t)
	ctx := context.Background()

	_, err := services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
	require.NoError(t, err)
	require.NoError(t, services.ClientService.CancelRequest(ctx, client.ID, therapist.ID))

	err = services.ClientService.CancelRequest(ctx, client.ID, therapist.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = services.ClientService.RequestTherapist(ctx, client.ID, therapist.ID)
	require.NoError(t, err)
	require.NoError(t, services.ManagementService.DenyPatientRequest(ctx, therapist.ID, client.ID))

	pending, err := services.ManagementService.GetPendingRequests(ctx, therapist.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = services.ManagementService.DenyPatientRequest(ctx, therapist.ID, client.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClientService_RequestTherapist_NotApproved_Fails(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	client := services.SeedUser(t, users.RoleClient)
	pendingUser := services.SeedUser(t, users.RoleClient)
	require.NoError(t, services.DBContext.TherapistRepo.Create(context.Background(),
		persistence.CreateTestTherapist(t, pendingUser.ID, therapists.StatusPending)))

	_, err := services.ClientService.RequestTherapist(context.Background(), client.ID, pendingUser.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = services.ClientService.GetLatestPreAssessment(context.Background(), client.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClientService_WelcomeFlow(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	client := services.SeedUser(t, users.RoleClient)

	status, err := services.ClientService.GetWelcomeStatus(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, status.NeedsWelcomeFlow)
	assert.Equal(t, users.RouteDecision{RedirectTo: users.WelcomePath}, users.CheckRouteAccess(client, "/client/sessions"))

	updated, err := services.ClientService.MarkRecommendationsSeen(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, updated.SeenRecommendations)

	stored, err := services.DBContext.UserRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, stored.SeenRecommendations)
	assert.True(t, users.CheckRouteAccess(stored, "/client/sessions").Allowed)

	status, err = services.ClientService.GetWelcomeStatus(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, status.NeedsWelcomeFlow)

	_, err = services.ClientService.MarkRecommendationsSeen(ctx, client.ID)
	require.NoError(t, err)

	therapist := services.SeedApprovedTherapist(t)
	_, err = services.ClientService.GetWelcomeStatus(ctx, therapist.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTherapistDirectoryService(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	therapist := services.SeedApprovedTherapist(t)
	ctx := context.Background()

	page, err := services.DirectoryService.ListApprovedTherapists(ctx, &therapists.DirectoryQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, therapist.ID, page.Items[0].User.ID)

	profile, err := services.DirectoryService.GetTherapistPublicProfile(ctx, therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, therapists.StatusApproved, profile.Therapist.Status)

	_, err = services.DirectoryService.GetTherapistPublicProfile(ctx, newID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTherapistManagementService_UpdateTherapistProfile(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	therapist := services.SeedApprovedTherapist(t)
	ctx := context.Background()

	rate := 2000.0
	profile, err := services.ManagementService.UpdateTherapistProfile(ctx, therapist.ID, &therapists.ProfileUpdate{HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, profile.Therapist.HourlyRate)

	_, err = services.ManagementService.GetTherapistProfile(ctx, newID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTherapistManagementService_GetMatchedClients_AllMatchesIncludeRecent(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	therapist := services.SeedApprovedTherapist(t)
	newClient := services.SeedUser(t, users.RoleClient)
	oldClient := services.SeedUser(t, users.RoleClient)
	ctx := context.Background()

	recent := services.SeedActiveRelationship(t, newClient.ID, therapist.ID)

	older := persistence.CreateTestRelationship(t, oldClient.ID, therapist.ID)
	older.AssignedAt = time.Now().UTC().Add(-60 * 24 * time.Hour).Truncate(time.Second)
	older.Accept()
	require.NoError(t, services.DBContext.RelationshipRepo.Create(ctx, older))

	matched, err := services.ManagementService.GetMatchedClients(ctx, therapist.ID)
	require.NoError(t, err)

	require.Len(t, matched.RecentMatches, 1)
	assert.Equal(t, recent.ID, matched.RecentMatches[0].RelationshipID)

	require.Len(t, matched.AllMatches, 2)
	ids := []string{matched.AllMatches[0].RelationshipID, matched.AllMatches[1].RelationshipID}
	assert.ElementsMatch(t, []string{recent.ID, older.ID}, ids)

	assert.Equal(t, therapists.MatchedClientsSummary{
		TotalRecentMatches: 1,
		TotalAllMatches:    2,
		TotalMatches:       2,
	}, matched.Summary)
}
