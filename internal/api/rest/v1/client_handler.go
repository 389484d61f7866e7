package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"

	"github.com/gin-gonic/gin"
)

// ClientHandler defines the interface for client role endpoints
type ClientHandler interface {
	RequestTherapist(ctx *gin.Context)
	CancelRequest(ctx *gin.Context)
	ListTherapists(ctx *gin.Context)
	SubmitPreAssessment(ctx *gin.Context)
	GetPreAssessment(ctx *gin.Context)
	WelcomeStatus(ctx *gin.Context)
	MarkRecommendationsSeen(ctx *gin.Context)
}

type clientHandler struct {
	clientService clients.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService clients.ClientService) ClientHandler {
	return &clientHandler{
		clientService: clientService,
	}
}

// RequestTherapist asks an approved therapist to take the caller on
func (handler *clientHandler) RequestTherapist(ctx *gin.Context) {
	relationship, err := handler.clientService.RequestTherapist(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("therapistId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newRelationshipResponse(relationship))
}

// CancelRequest withdraws a pending request
func (handler *clientHandler) CancelRequest(ctx *gin.Context) {
	if err := handler.clientService.CancelRequest(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("therapistId")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Request cancelled"})
}

// ListTherapists lists the caller's therapists with the state of each relationship
func (handler *clientHandler) ListTherapists(ctx *gin.Context) {
	assignments, err := handler.clientService.ListMyTherapists(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]*RelationshipResponse, 0, len(assignments))
	for _, assignment := range assignments {
		entry := newRelationshipResponse(assignment.Relationship)
		entry.Therapist = newUserResponse(assignment.Therapist)
		response = append(response, entry)
	}
	ctx.JSON(http.StatusOK, response)
}

// SubmitPreAssessment stores the caller's questionnaire answers
func (handler *clientHandler) SubmitPreAssessment(ctx *gin.Context) {
	var request PreAssessmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	assessment, err := handler.clientService.SubmitPreAssessment(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newPreAssessmentResponse(assessment))
}

// GetPreAssessment returns the caller's latest questionnaire
func (handler *clientHandler) GetPreAssessment(ctx *gin.Context) {
	assessment, err := handler.clientService.GetLatestPreAssessment(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newPreAssessmentResponse(assessment))
}

func (handler *clientHandler) WelcomeStatus(ctx *gin.Context) {
	status, err := handler.clientService.GetWelcomeStatus(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, WelcomeStatusResponse{
		IsFirstTime:      status.NeedsWelcomeFlow,
		NeedsWelcomeFlow: status.NeedsWelcomeFlow,
		MemberSince:      status.MemberSince,
	})
}

// MarkRecommendationsSeen ends the caller's welcome flow
func (handler *clientHandler) MarkRecommendationsSeen(ctx *gin.Context) {
	client, err := handler.clientService.MarkRecommendationsSeen(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, RecommendationsSeenResponse{
		HasSeenRecommendations: client.SeenRecommendations,
		MarkedAt:               client.UpdatedAt,
		Message:                "Recommendations marked as seen successfully",
	})
}
