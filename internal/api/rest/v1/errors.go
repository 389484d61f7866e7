package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindUnauthorized:    http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindLocked:          http.StatusLocked,
	apperr.KindTooManyRequests: http.StatusTooManyRequests,
	apperr.KindInternal:        http.StatusInternalServerError,
}

// StatusForError maps a service error to its HTTP status code
func StatusForError(err error) int {
	if status, ok := statusByKind[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. The error is attached to the context so the
// access log can report server side failures with their cause.
func respondError(ctx *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		err = apperr.PassThrough("internal server error", err)
	}
	_ = ctx.Error(err)
	var errorResponse ErrorResponse
	errorResponse.Message = apperr.MessageOf(err)
	ctx.AbortWithStatusJSON(StatusForError(err), errorResponse)
}

// respondBadRequest reports a malformed request body or query
func respondBadRequest(ctx *gin.Context, message string) {
	var errorResponse ErrorResponse
	errorResponse.Message = message
	ctx.AbortWithStatusJSON(http.StatusBadRequest, errorResponse)
}
