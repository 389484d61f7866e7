package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"

	"github.com/gin-gonic/gin"
)

// NotificationHandler defines the interface for in-app notification endpoints
type NotificationHandler interface {
	List(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type notificationHandler struct {
	notificationService notifications.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService notifications.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

// List pages through the caller's notifications, newest first
func (handler *notificationHandler) List(ctx *gin.Context) {
	query := &notifications.Query{
		Page:  queryInt(ctx, "page", 0),
		Limit: queryInt(ctx, "limit", 0),
	}
	if unread := queryBool(ctx, "unreadOnly"); unread != nil {
		query.UnreadOnly = *unread
	}

	page, err := handler.notificationService.List(ctx.Request.Context(), currentUser(ctx).ID, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newNotificationResponse))
}

// UnreadCount counts the caller's unread notifications
func (handler *notificationHandler) UnreadCount(ctx *gin.Context) {
	count, err := handler.notificationService.UnreadCount(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

// MarkRead marks one notification read
func (handler *notificationHandler) MarkRead(ctx *gin.Context) {
	if err := handler.notificationService.MarkRead(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Notification marked as read"})
}

// MarkAllRead marks every notification of the caller read
func (handler *notificationHandler) MarkAllRead(ctx *gin.Context) {
	count, err := handler.notificationService.MarkAllRead(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

// Delete removes one of the caller's notifications
func (handler *notificationHandler) Delete(ctx *gin.Context) {
	if err := handler.notificationService.Delete(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
