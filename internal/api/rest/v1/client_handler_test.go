//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientHandler_WelcomeStatus(t *testing.T) {
	clientService := new(MockClientService)
	handler := NewClientHandler(clientService)
	client := &users.User{ID: "client-1", Role: users.RoleClient}
	joined := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	clientService.On("GetWelcomeStatus", mock.Anything, "client-1").
		Return(&clients.WelcomeStatus{NeedsWelcomeFlow: true, MemberSince: joined}, nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/client/welcome-status", "", client)
	handler.WelcomeStatus(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response WelcomeStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.IsFirstTime)
	assert.True(t, response.NeedsWelcomeFlow)
	assert.True(t, joined.Equal(response.MemberSince))
}

func TestClientHandler_MarkRecommendationsSeen(t *testing.T) {
	clientService := new(MockClientService)
	handler := NewClientHandler(clientService)
	client := &users.User{ID: "client-1", Role: users.RoleClient}

	clientService.On("MarkRecommendationsSeen", mock.Anything, "client-1").
		Return(&users.User{ID: "client-1", Role: users.RoleClient, SeenRecommendations: true}, nil)

	ctx, w := newTestContext(http.MethodPost, "/api/v1/client/recommendations/seen", "", client)
	handler.MarkRecommendationsSeen(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response RecommendationsSeenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.HasSeenRecommendations)
	clientService.AssertExpectations(t)
}

func TestClientHandler_MarkRecommendationsSeen_NotClient(t *testing.T) {
	clientService := new(MockClientService)
	handler := NewClientHandler(clientService)

	clientService.On("MarkRecommendationsSeen", mock.Anything, "client-9").
		Return(nil, apperr.NotFound("Client not found"))

	ctx, w := newTestContext(http.MethodPost, "/api/v1/client/recommendations/seen", "", &users.User{ID: "client-9", Role: users.RoleClient})
	handler.MarkRecommendationsSeen(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
