package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"

	"github.com/gin-gonic/gin"
)

// WorksheetHandler defines the interface for worksheet endpoints
type WorksheetHandler interface {
	Assign(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Submit(ctx *gin.Context)
	Review(ctx *gin.Context)
}

type worksheetHandler struct {
	worksheetService worksheets.WorksheetService
}

// NewWorksheetHandler creates a new WorksheetHandler
func NewWorksheetHandler(worksheetService worksheets.WorksheetService) WorksheetHandler {
	return &worksheetHandler{
		worksheetService: worksheetService,
	}
}

// Assign gives one of the caller's clients a worksheet
func (handler *worksheetHandler) Assign(ctx *gin.Context) {
	var request AssignWorksheetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	worksheet, err := handler.worksheetService.Assign(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newWorksheetResponse(worksheet))
}

// List returns the worksheets a therapist assigned or a client received
func (handler *worksheetHandler) List(ctx *gin.Context) {
	query := &worksheets.Query{
		Status: ctx.Query("status"),
		Page:   queryInt(ctx, "page", 0),
		Limit:  queryInt(ctx, "limit", 0),
	}

	user := currentUser(ctx)
	list := handler.worksheetService.ListForClient
	if user.Role == users.RoleTherapist {
		list = handler.worksheetService.ListForTherapist
	}
	page, err := list(ctx.Request.Context(), user.ID, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newWorksheetResponse))
}

// GetByID returns a worksheet the caller takes part in
func (handler *worksheetHandler) GetByID(ctx *gin.Context) {
	worksheet, err := handler.worksheetService.Get(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newWorksheetResponse(worksheet))
}

// Submit hands in the caller's answers
func (handler *worksheetHandler) Submit(ctx *gin.Context) {
	var request SubmitWorksheetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	worksheet, err := handler.worksheetService.Submit(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), &worksheets.SubmitInput{Content: request.Content})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newWorksheetResponse(worksheet))
}

// Review gives feedback on a submission
func (handler *worksheetHandler) Review(ctx *gin.Context) {
	var request ReviewWorksheetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	worksheet, err := handler.worksheetService.Review(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), &worksheets.ReviewInput{Feedback: request.Feedback})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newWorksheetResponse(worksheet))
}
