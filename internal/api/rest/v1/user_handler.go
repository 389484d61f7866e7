package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for profile and user administration endpoints
type UserHandler interface {
	GetProfile(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
	DeactivateAccount(ctx *gin.Context)

	ListUsers(ctx *gin.Context)
	GetUser(ctx *gin.Context)
	UpdateUserRole(ctx *gin.Context)
	DeactivateUser(ctx *gin.Context)
	ReactivateUser(ctx *gin.Context)
}

type userHandler struct {
	profileService users.ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileService users.ProfileService) UserHandler {
	return &userHandler{
		profileService: profileService,
	}
}

// GetProfile returns the caller's profile
func (handler *userHandler) GetProfile(ctx *gin.Context) {
	user, err := handler.profileService.GetProfile(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile changes the caller's profile
func (handler *userHandler) UpdateProfile(ctx *gin.Context) {
	var request UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	user, err := handler.profileService.UpdateProfile(ctx.Request.Context(), currentUser(ctx).ID, request.ToUpdate())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// ChangePassword replaces the caller's password and signs out every session
func (handler *userHandler) ChangePassword(ctx *gin.Context) {
	var request ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.profileService.ChangePassword(ctx.Request.Context(), currentUser(ctx).ID, request.CurrentPassword, request.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Password changed successfully"})
}

// DeactivateAccount closes the caller's account
func (handler *userHandler) DeactivateAccount(ctx *gin.Context) {
	if err := handler.profileService.DeactivateAccount(ctx.Request.Context(), currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Account deactivated"})
}

// ListUsers lists accounts with optional role, search and active filters
// @Summary List users
// @Tags Admin
// @Produce json
// @Param role query string false "Role filter"
// @Param search query string false "Name or email search"
// @Param isActive query bool false "Active filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Page[UserResponse]
// @Router /admin/users [get]
func (handler *userHandler) ListUsers(ctx *gin.Context) {
	page := pagination(ctx, shared.DefaultLimit)
	query := &users.UserQuery{
		Role:     ctx.Query("role"),
		Search:   ctx.Query("search"),
		IsActive: queryBool(ctx, "isActive"),
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}

	found, total, err := handler.profileService.ListUsers(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shared.NewPage(mapSlice(found, newUserResponse), total, page))
}

// GetUser returns any account
func (handler *userHandler) GetUser(ctx *gin.Context) {
	user, err := handler.profileService.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateUserRole changes the role of an account
func (handler *userHandler) UpdateUserRole(ctx *gin.Context) {
	var request UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	user, err := handler.profileService.UpdateUserRole(ctx.Request.Context(), ctx.Param("id"), request.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// DeactivateUser disables an account
func (handler *userHandler) DeactivateUser(ctx *gin.Context) {
	handler.setActive(ctx, false)
}

// ReactivateUser enables an account
func (handler *userHandler) ReactivateUser(ctx *gin.Context) {
	handler.setActive(ctx, true)
}

func (handler *userHandler) setActive(ctx *gin.Context, active bool) {
	user, err := handler.profileService.SetUserActive(ctx.Request.Context(), ctx.Param("id"), active)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}
