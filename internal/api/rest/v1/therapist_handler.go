package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"

	"github.com/gin-gonic/gin"
)

// TherapistHandler defines the interface for the therapist role and the public directory
type TherapistHandler interface {
	GetProfile(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
	ListPatients(ctx *gin.Context)
	ListRequests(ctx *gin.Context)
	AcceptRequest(ctx *gin.Context)
	DenyRequest(ctx *gin.Context)
	RemovePatient(ctx *gin.Context)
	ListClients(ctx *gin.Context)
	GetClient(ctx *gin.Context)
	MatchedClients(ctx *gin.Context)

	CreateAvailability(ctx *gin.Context)
	ListAvailability(ctx *gin.Context)
	UpdateAvailability(ctx *gin.Context)
	DeleteAvailability(ctx *gin.Context)

	ListDirectory(ctx *gin.Context)
	GetPublicProfile(ctx *gin.Context)
	AvailableSlots(ctx *gin.Context)
}

type therapistHandler struct {
	managementService   therapists.ManagementService
	directoryService    therapists.DirectoryService
	availabilityService meetings.AvailabilityService
	bookingService      meetings.BookingService
}

// NewTherapistHandler creates a new TherapistHandler
func NewTherapistHandler(managementService therapists.ManagementService, directoryService therapists.DirectoryService, availabilityService meetings.AvailabilityService, bookingService meetings.BookingService) TherapistHandler {
	return &therapistHandler{
		managementService:   managementService,
		directoryService:    directoryService,
		availabilityService: availabilityService,
		bookingService:      bookingService,
	}
}

// GetProfile returns the caller's therapist profile
func (handler *therapistHandler) GetProfile(ctx *gin.Context) {
	profile, err := handler.managementService.GetTherapistProfile(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile, time.Now()))
}

// UpdateProfile changes the caller's therapist profile
func (handler *therapistHandler) UpdateProfile(ctx *gin.Context) {
	var request TherapistProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	profile, err := handler.managementService.UpdateTherapistProfile(ctx.Request.Context(), currentUser(ctx).ID, request.ToUpdate())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile, time.Now()))
}

// ListPatients lists the caller's active clients
func (handler *therapistHandler) ListPatients(ctx *gin.Context) {
	patients, err := handler.managementService.GetAssignedPatients(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]*PatientResponse, 0, len(patients))
	for _, patient := range patients {
		assignedAt := patient.AssignedAt
		response = append(response, &PatientResponse{
			RelationshipID: patient.RelationshipID,
			Client:         newUserResponse(patient.Client),
			AssignedAt:     &assignedAt,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// ListRequests lists clients waiting for the caller to accept them
func (handler *therapistHandler) ListRequests(ctx *gin.Context) {
	requests, err := handler.managementService.GetPendingRequests(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]*PatientResponse, 0, len(requests))
	for _, request := range requests {
		requestedAt := request.RequestedAt
		response = append(response, &PatientResponse{
			RelationshipID: request.RelationshipID,
			Client:         newUserResponse(request.Client),
			RequestedAt:    &requestedAt,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// AcceptRequest activates a pending client request
func (handler *therapistHandler) AcceptRequest(ctx *gin.Context) {
	relationship, err := handler.managementService.AcceptPatientRequest(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("clientId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRelationshipResponse(relationship))
}

// DenyRequest declines a pending client request
func (handler *therapistHandler) DenyRequest(ctx *gin.Context) {
	if err := handler.managementService.DenyPatientRequest(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("clientId")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Request denied"})
}

// RemovePatient ends an active relationship
func (handler *therapistHandler) RemovePatient(ctx *gin.Context) {
	if err := handler.managementService.RemovePatient(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("clientId")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Patient removed"})
}

// ListClients pages through every client account
func (handler *therapistHandler) ListClients(ctx *gin.Context) {
	page, err := handler.managementService.GetAllClients(ctx.Request.Context(), pagination(ctx, shared.DefaultLimit))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newUserResponse))
}

// GetClient returns a client with their latest pre-assessment
func (handler *therapistHandler) GetClient(ctx *gin.Context) {
	detail, err := handler.managementService.GetClientByID(ctx.Request.Context(), ctx.Param("clientId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ClientDetailResponse{
		Client:        newUserResponse(detail.Client),
		PreAssessment: newPreAssessmentResponse(detail.PreAssessment),
	})
}

// MatchedClients returns the caller's clients split into recent and older matches
func (handler *therapistHandler) MatchedClients(ctx *gin.Context) {
	matched, err := handler.managementService.GetMatchedClients(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMatchedClientsResponse(matched))
}

// CreateAvailability adds a weekly availability window
func (handler *therapistHandler) CreateAvailability(ctx *gin.Context) {
	var request AvailabilityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	availability, err := handler.availabilityService.Create(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newAvailabilityResponse(availability))
}

// ListAvailability lists the caller's availability windows
func (handler *therapistHandler) ListAvailability(ctx *gin.Context) {
	windows, err := handler.availabilityService.List(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapSlice(windows, newAvailabilityResponse))
}

// UpdateAvailability replaces an availability window
func (handler *therapistHandler) UpdateAvailability(ctx *gin.Context) {
	var request AvailabilityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	availability, err := handler.availabilityService.Update(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newAvailabilityResponse(availability))
}

// DeleteAvailability removes an availability window
func (handler *therapistHandler) DeleteAvailability(ctx *gin.Context) {
	if err := handler.availabilityService.Delete(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListDirectory pages through approved therapists
// @Summary Therapist directory
// @Tags Therapists
// @Produce json
// @Param province query string false "Province"
// @Param expertise query string false "Area of expertise"
// @Param language query string false "Language offered"
// @Param maxHourlyRate query number false "Maximum hourly rate"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Page[TherapistResponse]
// @Router /therapists [get]
func (handler *therapistHandler) ListDirectory(ctx *gin.Context) {
	query := &therapists.DirectoryQuery{
		Province:  ctx.Query("province"),
		Expertise: ctx.Query("expertise"),
		Language:  ctx.Query("language"),
		Page:      queryInt(ctx, "page", shared.DefaultPage),
		Limit:     queryInt(ctx, "limit", shared.DefaultLimit),
	}
	if rate := ctx.Query("maxHourlyRate"); rate != "" {
		parsed, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			respondBadRequest(ctx, "maxHourlyRate must be a number")
			return
		}
		query.MaxHourlyRate = parsed
	}

	page, err := handler.directoryService.ListApprovedTherapists(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := time.Now()
	ctx.JSON(http.StatusOK, mapPage(page, func(p *therapists.Profile) *TherapistResponse {
		return newProfileResponse(p, now)
	}))
}

// GetPublicProfile returns an approved therapist's profile
func (handler *therapistHandler) GetPublicProfile(ctx *gin.Context) {
	profile, err := handler.directoryService.GetTherapistPublicProfile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile, time.Now()))
}

// AvailableSlots lists bookable start times of a therapist on a date
// @Summary Available slots
// @Tags Therapists
// @Produce json
// @Param id path string true "Therapist ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Router /therapists/{id}/slots [get]
func (handler *therapistHandler) AvailableSlots(ctx *gin.Context) {
	value := ctx.Query("date")
	if value == "" {
		respondBadRequest(ctx, "date query parameter is required")
		return
	}
	date, err := parseDate(value)
	if err != nil {
		respondBadRequest(ctx, "date must be formatted as YYYY-MM-DD")
		return
	}

	slots, err := handler.bookingService.GenerateAvailableSlots(ctx.Request.Context(), ctx.Param("id"), date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSlotResponses(slots))
}
