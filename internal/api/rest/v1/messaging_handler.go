package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"

	"github.com/gin-gonic/gin"
)

// MessagingHandler defines the interface for conversation and message endpoints
type MessagingHandler interface {
	CreateConversation(ctx *gin.Context)
	ListConversations(ctx *gin.Context)
	GetConversation(ctx *gin.Context)
	ListMessages(ctx *gin.Context)
	SendMessage(ctx *gin.Context)
	UpdateMessage(ctx *gin.Context)
	DeleteMessage(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	AddReaction(ctx *gin.Context)
	RemoveReaction(ctx *gin.Context)
	Search(ctx *gin.Context)
	BlockUser(ctx *gin.Context)
	UnblockUser(ctx *gin.Context)
}

type messagingHandler struct {
	messagingService messaging.MessagingService
}

// NewMessagingHandler creates a new MessagingHandler
func NewMessagingHandler(messagingService messaging.MessagingService) MessagingHandler {
	return &messagingHandler{
		messagingService: messagingService,
	}
}

// CreateConversation starts a conversation. A direct conversation that already exists is returned as is.
func (handler *messagingHandler) CreateConversation(ctx *gin.Context) {
	var request CreateConversationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	summary, err := handler.messagingService.CreateConversation(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newConversationResponse(summary))
}

// ListConversations pages through the caller's conversations, most recent activity first
func (handler *messagingHandler) ListConversations(ctx *gin.Context) {
	page, err := handler.messagingService.GetUserConversations(ctx.Request.Context(), currentUser(ctx).ID, pagination(ctx, messaging.DefaultConversationLimit))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newConversationResponse))
}

// GetConversation returns a conversation the caller takes part in
func (handler *messagingHandler) GetConversation(ctx *gin.Context) {
	summary, err := handler.messagingService.GetConversationByID(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newConversationResponse(summary))
}

// ListMessages pages through a conversation, newest first
func (handler *messagingHandler) ListMessages(ctx *gin.Context) {
	page, err := handler.messagingService.GetConversationMessages(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), pagination(ctx, messaging.DefaultMessageLimit))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newMessageResponse))
}

// SendMessage posts a message to a conversation
// @Summary Send a message
// @Tags Messaging
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Router /conversations/{id}/messages [post]
func (handler *messagingHandler) SendMessage(ctx *gin.Context) {
	var request SendMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	message, err := handler.messagingService.SendMessage(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMessageResponse(message))
}

// UpdateMessage edits one of the caller's messages
func (handler *messagingHandler) UpdateMessage(ctx *gin.Context) {
	var request UpdateMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	message, err := handler.messagingService.UpdateMessage(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMessageResponse(message))
}

// DeleteMessage soft deletes one of the caller's messages
func (handler *messagingHandler) DeleteMessage(ctx *gin.Context) {
	if err := handler.messagingService.DeleteMessage(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// MarkRead records that the caller has read a message
func (handler *messagingHandler) MarkRead(ctx *gin.Context) {
	if err := handler.messagingService.MarkMessageAsRead(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Message marked as read"})
}

// AddReaction reacts to a message with an emoji
func (handler *messagingHandler) AddReaction(ctx *gin.Context) {
	var request ReactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	reaction, err := handler.messagingService.AddReaction(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.Emoji)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newReactionResponse(reaction))
}

// RemoveReaction withdraws the caller's emoji reaction
func (handler *messagingHandler) RemoveReaction(ctx *gin.Context) {
	if err := handler.messagingService.RemoveReaction(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), ctx.Param("emoji")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Search finds messages containing a phrase in the caller's conversations
func (handler *messagingHandler) Search(ctx *gin.Context) {
	query := &messaging.SearchQuery{
		Query:          ctx.Query("q"),
		ConversationID: ctx.Query("conversationId"),
		Limit:          queryInt(ctx, "limit", 0),
	}

	found, err := handler.messagingService.SearchMessages(ctx.Request.Context(), currentUser(ctx).ID, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapSlice(found, newMessageResponse))
}

// BlockUser stops another user from messaging the caller
func (handler *messagingHandler) BlockUser(ctx *gin.Context) {
	var request ReasonRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			respondBadRequest(ctx, "invalid request body")
			return
		}
	}

	if err := handler.messagingService.BlockUser(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.Reason); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "User blocked"})
}

// UnblockUser lifts a block
func (handler *messagingHandler) UnblockUser(ctx *gin.Context) {
	if err := handler.messagingService.UnblockUser(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "User unblocked"})
}
