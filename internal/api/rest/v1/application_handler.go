package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"

	"github.com/gin-gonic/gin"
)

// MaxApplicationFiles caps the documents accepted with one application
const MaxApplicationFiles = 10

// ApplicationHandler defines the interface for therapist application endpoints
type ApplicationHandler interface {
	Submit(ctx *gin.Context)
	Progress(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateStatus(ctx *gin.Context)
	DownloadFile(ctx *gin.Context)
}

type applicationHandler struct {
	applicationService therapists.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService therapists.ApplicationService) ApplicationHandler {
	return &applicationHandler{
		applicationService: applicationService,
	}
}

// Submit files a therapist application with its supporting documents
// @Summary Submit a therapist application
// @Tags Therapist applications
// @Accept multipart/form-data
// @Produce json
// @Param applicationDataJson formData string true "Application form as JSON"
// @Param fileTypes formData string false "JSON map of file name to declared document type"
// @Param files formData file false "Supporting documents"
// @Success 201 {object} SubmittedApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /therapist-applications [post]
func (handler *applicationHandler) Submit(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondBadRequest(ctx, "invalid form data")
		return
	}

	rawApplication := form.Value["applicationDataJson"]
	if len(rawApplication) == 0 || rawApplication[0] == "" {
		respondBadRequest(ctx, "applicationDataJson is required")
		return
	}
	var request ApplicationRequest
	if err := json.Unmarshal([]byte(rawApplication[0]), &request); err != nil {
		respondBadRequest(ctx, "applicationDataJson is not valid JSON")
		return
	}
	input, err := request.ToInput()
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	fileTypes := map[string]string{}
	if rawTypes := form.Value["fileTypes"]; len(rawTypes) > 0 && rawTypes[0] != "" {
		if err := json.Unmarshal([]byte(rawTypes[0]), &fileTypes); err != nil {
			respondBadRequest(ctx, "fileTypes is not valid JSON")
			return
		}
	}

	files := form.File["files"]
	if len(files) > MaxApplicationFiles {
		respondBadRequest(ctx, fmt.Sprintf("at most %d files may be uploaded", MaxApplicationFiles))
		return
	}
	documents := make([]therapists.ApplicationDocument, 0, len(files))
	for _, file := range files {
		documents = append(documents, therapists.ApplicationDocument{
			File:         file,
			DeclaredType: fileTypes[file.Filename],
		})
	}

	submitted, err := handler.applicationService.SubmitApplication(ctx.Request.Context(), input, documents)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, SubmittedApplicationResponse{
		Message:       "Application submitted successfully",
		ApplicationID: submitted.Application.Therapist.UserID,
		UploadedFiles: newFileResponses(submitted.UploadedFiles),
	})
}

// Progress reports how complete a draft application is
func (handler *applicationHandler) Progress(ctx *gin.Context) {
	var request ProgressRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	ctx.JSON(http.StatusOK, handler.applicationService.CalculateProgress(request.Values, request.Documents))
}

// List pages through applications for review
// @Summary List therapist applications
// @Tags Admin
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} ApplicationListResponse
// @Router /admin/therapist-applications [get]
func (handler *applicationHandler) List(ctx *gin.Context) {
	query := &therapists.ApplicationQuery{
		Status: ctx.Query("status"),
		Page:   queryInt(ctx, "page", 0),
		Limit:  queryInt(ctx, "limit", 0),
	}

	list, err := handler.applicationService.GetAllApplications(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := time.Now()
	response := ApplicationListResponse{
		Applications: make([]*ApplicationResponse, 0, len(list.Applications)),
		TotalCount:   list.TotalCount,
		Page:         list.Page,
		TotalPages:   list.TotalPages,
	}
	for _, application := range list.Applications {
		response.Applications = append(response.Applications, newApplicationResponse(application, now))
	}
	ctx.JSON(http.StatusOK, response)
}

// GetByID returns one application with its documents
func (handler *applicationHandler) GetByID(ctx *gin.Context) {
	application, err := handler.applicationService.GetApplicationByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newApplicationResponse(application, time.Now()))
}

// UpdateStatus records an administrator's decision. Approving returns the generated credentials once.
func (handler *applicationHandler) UpdateStatus(ctx *gin.Context) {
	var request ApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	update := &therapists.StatusUpdate{Status: request.Status, AdminNotes: request.AdminNotes}
	result, err := handler.applicationService.UpdateApplicationStatus(ctx.Request.Context(), ctx.Param("id"), update, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := StatusUpdateResponse{
		Message:     fmt.Sprintf("Application %s successfully", result.Application.Therapist.Status),
		Application: newApplicationResponse(result.Application, time.Now()),
	}
	if result.Credentials != nil {
		response.Credentials = &CredentialsResponse{
			Email:    result.Credentials.Email,
			Password: result.Credentials.Password,
		}
	}
	ctx.JSON(http.StatusOK, response)
}

// DownloadFile streams an application document
func (handler *applicationHandler) DownloadFile(ctx *gin.Context) {
	file, content, err := handler.applicationService.DownloadApplicationFile(ctx.Request.Context(), ctx.Param("id"), ctx.Param("fileId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	ctx.Data(http.StatusOK, contentType, content)
}
