//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewHandler_Create(t *testing.T) {
	reviewService := new(MockReviewService)
	handler := NewReviewHandler(reviewService)
	client := &users.User{ID: "client-1", Role: users.RoleClient}

	reviewService.On("Create", mock.Anything, "client-1",
		mock.MatchedBy(func(input *reviews.CreateInput) bool {
			return input.MeetingID == "meeting-1" && input.Rating == 5 && input.IsAnonymous
		}),
	).Return(&reviews.Review{ID: "review-1", ClientID: "client-1", TherapistID: "therapist-1", MeetingID: "meeting-1", Rating: 5, IsAnonymous: true, Status: reviews.StatusApproved}, nil)

	ctx, w := newTestContext(http.MethodPost, "/api/v1/reviews",
		`{"therapistId":"therapist-1","meetingId":"meeting-1","rating":5,"title":"Kind","isAnonymous":true}`, client)
	handler.Create(ctx)

	require.Equal(t, http.StatusCreated, w.Code)
	var response ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "review-1", response.ID)
	assert.Equal(t, reviews.StatusApproved, response.Status)
	reviewService.AssertExpectations(t)
}

func TestReviewHandler_ListForTherapist_Anonymous(t *testing.T) {
	reviewService := new(MockReviewService)
	handler := NewReviewHandler(reviewService)

	list := &reviews.List{
		Page: shared.NewPage([]*reviews.Review{
			{ID: "review-1", TherapistID: "therapist-1", Rating: 4, IsAnonymous: true, Status: reviews.StatusApproved},
		}, 1, shared.NewPagination(1, 0, shared.DefaultLimit)),
		AverageRating:      4,
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 1, 5: 0},
	}
	reviewService.On("List", mock.Anything, "", "",
		mock.MatchedBy(func(query *reviews.Query) bool {
			return query.TherapistID == "therapist-1" && query.SortBy == reviews.SortRating
		}),
	).Return(list, nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/therapists/therapist-1/reviews?sortBy=rating", "", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "therapist-1"}}
	handler.ListForTherapist(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 4.0, response["averageRating"])
	assert.EqualValues(t, 1, response["total"])
	items := response["items"].([]interface{})
	require.Len(t, items, 1)
	_, hasClient := items[0].(map[string]interface{})["clientId"]
	assert.False(t, hasClient)
	reviewService.AssertExpectations(t)
}

func TestReviewHandler_MarkHelpful(t *testing.T) {
	reviewService := new(MockReviewService)
	handler := NewReviewHandler(reviewService)
	therapist := &users.User{ID: "therapist-2", Role: users.RoleTherapist}

	reviewService.On("MarkHelpful", mock.Anything, "therapist-2", "review-1").
		Return(&reviews.HelpfulResult{ReviewID: "review-1", HelpfulCount: 3, Counted: true}, nil)

	ctx, w := newTestContext(http.MethodPost, "/api/v1/reviews/review-1/helpful", "", therapist)
	ctx.Params = gin.Params{{Key: "id", Value: "review-1"}}
	handler.MarkHelpful(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response HelpfulResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.HelpfulCount)
	assert.True(t, response.Counted)
}

func TestReviewHandler_Update_NotOwner(t *testing.T) {
	reviewService := new(MockReviewService)
	handler := NewReviewHandler(reviewService)
	client := &users.User{ID: "client-2", Role: users.RoleClient}

	reviewService.On("Update", mock.Anything, "client-2", "review-1", mock.Anything).
		Return(nil, apperr.Forbidden("You can only update your own reviews"))

	ctx, w := newTestContext(http.MethodPut, "/api/v1/reviews/review-1", `{"rating":1}`, client)
	ctx.Params = gin.Params{{Key: "id", Value: "review-1"}}
	handler.Update(ctx)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewHandler_Moderate(t *testing.T) {
	reviewService := new(MockReviewService)
	handler := NewReviewHandler(reviewService)
	moderator := &users.User{ID: "moderator-1", Role: users.RoleModerator}

	reviewService.On("Moderate", mock.Anything, "moderator-1", "review-1", &reviews.ModerateInput{Status: reviews.StatusRejected, Note: "spam"}).
		Return(&reviews.Review{ID: "review-1", Status: reviews.StatusRejected, ModerationNote: "spam"}, nil)

	ctx, w := newTestContext(http.MethodPut, "/api/v1/moderator/reviews/review-1", `{"status":"rejected","note":"spam"}`, moderator)
	ctx.Params = gin.Params{{Key: "id", Value: "review-1"}}
	handler.Moderate(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, reviews.StatusRejected, response.Status)
	reviewService.AssertExpectations(t)
}

func TestDashboardHandler_Client(t *testing.T) {
	dashboardService := new(MockDashboardService)
	handler := NewDashboardHandler(dashboardService)
	client := &users.User{ID: "client-1", Role: users.RoleClient, FirstName: "Ana"}

	start := time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)
	dashboardService.On("GetClientDashboard", mock.Anything, "client-1").Return(&dashboards.ClientDashboard{
		Client: client,
		Stats:  dashboards.ClientStats{UpcomingMeetings: 1, CompletedMeetings: 2},
		UpcomingMeetings: []*meetings.Details{{
			Meeting:       &meetings.Meeting{ID: "meeting-1", StartTime: start, Status: meetings.StatusScheduled},
			DateTime:      start,
			TherapistName: "Dr. Cruz",
		}},
		HasPreAssessment: true,
	}, nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/client/dashboard", "", client)
	handler.Client(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response ClientDashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(2), response.Stats.CompletedMeetings)
	require.Len(t, response.UpcomingMeetings, 1)
	assert.Equal(t, "Dr. Cruz", response.UpcomingMeetings[0].TherapistName)
	assert.Empty(t, response.PendingWorksheets)
	assert.True(t, response.HasPreAssessment)
}

func TestDashboardHandler_Therapist_MissingProfile(t *testing.T) {
	dashboardService := new(MockDashboardService)
	handler := NewDashboardHandler(dashboardService)
	therapist := &users.User{ID: "therapist-1", Role: users.RoleTherapist}

	dashboardService.On("GetTherapistDashboard", mock.Anything, "therapist-1").
		Return(nil, apperr.NotFound("Therapist profile not found"))

	ctx, w := newTestContext(http.MethodGet, "/api/v1/therapist/dashboard", "", therapist)
	handler.Therapist(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardHandler_Admin(t *testing.T) {
	dashboardService := new(MockDashboardService)
	handler := NewDashboardHandler(dashboardService)
	admin := &users.User{ID: "admin-1", Role: users.RoleAdmin}

	dashboardService.On("GetAdminDashboard", mock.Anything).Return(&dashboards.AdminDashboard{
		Stats: dashboards.PlatformStats{
			TotalUsers:        3,
			UsersByRole:       map[string]int64{users.RoleClient: 2, users.RoleTherapist: 1},
			PendingTherapists: 1,
		},
		PendingApplications: []*therapists.Therapist{{UserID: "therapist-9", Status: therapists.StatusPending}},
	}, nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/admin/dashboard", "", admin)
	handler.Admin(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response AdminDashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(3), response.Stats.TotalUsers)
	assert.Equal(t, int64(2), response.Stats.UsersByRole[users.RoleClient])
	require.Len(t, response.PendingApplications, 1)
	assert.Equal(t, "therapist-9", response.PendingApplications[0].UserID)
}
