//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWorksheetHandler_List_ByRole(t *testing.T) {
	page := shared.NewPage([]*worksheets.Worksheet{
		{ID: "ws-1", TherapistID: "therapist-1", ClientID: "client-1", Title: "Thought record", Status: worksheets.StatusAssigned},
	}, 1, shared.NewPagination(1, 0, shared.DefaultLimit))

	tests := []struct {
		name   string
		user   *users.User
		method string
	}{
		{"therapist sees assigned worksheets", &users.User{ID: "therapist-1", Role: users.RoleTherapist}, "ListForTherapist"},
		{"client sees received worksheets", &users.User{ID: "client-1", Role: users.RoleClient}, "ListForClient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worksheetService := new(MockWorksheetService)
			handler := NewWorksheetHandler(worksheetService)
			worksheetService.On(tt.method, mock.Anything, tt.user.ID,
				mock.MatchedBy(func(query *worksheets.Query) bool { return query.Status == worksheets.StatusAssigned }),
			).Return(page, nil)

			ctx, w := newTestContext(http.MethodGet, "/api/v1/worksheets?status=assigned", "", tt.user)
			handler.List(ctx)

			require.Equal(t, http.StatusOK, w.Code)
			var response shared.Page[*WorksheetResponse]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.Len(t, response.Items, 1)
			assert.Equal(t, "Thought record", response.Items[0].Title)
			assert.Equal(t, int64(1), response.Total)
			assert.Equal(t, 1, response.TotalPages)
			worksheetService.AssertExpectations(t)
		})
	}
}

func TestWorksheetHandler_Assign(t *testing.T) {
	worksheetService := new(MockWorksheetService)
	handler := NewWorksheetHandler(worksheetService)
	therapist := &users.User{ID: "therapist-1", Role: users.RoleTherapist}

	worksheetService.On("Assign", mock.Anything, "therapist-1",
		mock.MatchedBy(func(input *worksheets.AssignInput) bool {
			return input.ClientID == "client-1" && input.DueDate != nil && input.DueDate.Day() == 14
		}),
	).Return(&worksheets.Worksheet{ID: "ws-2", TherapistID: "therapist-1", ClientID: "client-1", Title: "Sleep diary", Status: worksheets.StatusAssigned}, nil)

	ctx, w := newTestContext(http.MethodPost, "/api/v1/worksheets",
		`{"clientId":"client-1","title":"Sleep diary","dueDate":"2025-05-14T17:00:00Z"}`, therapist)
	handler.Assign(ctx)

	require.Equal(t, http.StatusCreated, w.Code)
	var response WorksheetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ws-2", response.ID)
	worksheetService.AssertExpectations(t)
}
