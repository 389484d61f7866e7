package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"

	"github.com/gin-gonic/gin"
)

// ReviewHandler defines the interface for review endpoints
type ReviewHandler interface {
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	List(ctx *gin.Context)
	ListForTherapist(ctx *gin.Context)
	Stats(ctx *gin.Context)
	MarkHelpful(ctx *gin.Context)
	Moderate(ctx *gin.Context)
}

type reviewHandler struct {
	reviewService reviews.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService reviews.ReviewService) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
	}
}

// Create reviews one of the caller's completed meetings
func (handler *reviewHandler) Create(ctx *gin.Context) {
	var request CreateReviewRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	review, err := handler.reviewService.Create(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newReviewResponse(review))
}

// Update changes the caller's review
func (handler *reviewHandler) Update(ctx *gin.Context) {
	var request UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	review, err := handler.reviewService.Update(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReviewResponse(review))
}

// Delete removes the caller's review
func (handler *reviewHandler) Delete(ctx *gin.Context) {
	if err := handler.reviewService.Delete(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Review deleted successfully"})
}

// List returns reviews matching the query parameters
func (handler *reviewHandler) List(ctx *gin.Context) {
	handler.list(ctx, ctx.Query("therapistId"))
}

// ListForTherapist returns the public reviews of one therapist
func (handler *reviewHandler) ListForTherapist(ctx *gin.Context) {
	handler.list(ctx, ctx.Param("id"))
}

func (handler *reviewHandler) list(ctx *gin.Context, therapistID string) {
	query := &reviews.Query{
		TherapistID: therapistID,
		ClientID:    ctx.Query("clientId"),
		Rating:      queryInt(ctx, "rating", 0),
		Status:      ctx.Query("status"),
		SortBy:      ctx.Query("sortBy"),
		SortOrder:   ctx.Query("sortOrder"),
		Page:        queryInt(ctx, "page", 0),
		Limit:       queryInt(ctx, "limit", 0),
	}

	var viewerID, viewerRole string
	if user := currentUser(ctx); user != nil {
		viewerID, viewerRole = user.ID, user.Role
	}
	list, err := handler.reviewService.List(ctx.Request.Context(), viewerID, viewerRole, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReviewListResponse(list))
}

// Stats summarises the approved reviews of a therapist
func (handler *reviewHandler) Stats(ctx *gin.Context) {
	stats, err := handler.reviewService.GetStats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReviewStatsResponse(stats))
}

// MarkHelpful counts the caller's helpful vote
func (handler *reviewHandler) MarkHelpful(ctx *gin.Context) {
	result, err := handler.reviewService.MarkHelpful(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, HelpfulResponse{
		ReviewID:     result.ReviewID,
		HelpfulCount: result.HelpfulCount,
		Counted:      result.Counted,
	})
}

// Moderate approves, flags or rejects a review
func (handler *reviewHandler) Moderate(ctx *gin.Context) {
	var request ModerateReviewRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	review, err := handler.reviewService.Moderate(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), &reviews.ModerateInput{
		Status: request.Status,
		Note:   request.Note,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReviewResponse(review))
}
