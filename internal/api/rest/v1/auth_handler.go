package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines the interface for account and session endpoints
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Refresh(ctx *gin.Context)
	Logout(ctx *gin.Context)
	LogoutAll(ctx *gin.Context)
	Me(ctx *gin.Context)
	RouteCheck(ctx *gin.Context)
	ListSessions(ctx *gin.Context)
	TerminateSession(ctx *gin.Context)
	TerminateOtherSessions(ctx *gin.Context)
	VerifyEmail(ctx *gin.Context)
	ResendVerification(ctx *gin.Context)
	ForgotPassword(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
	settings    *config.AuthSettings
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService, settings *config.AuthSettings) AuthHandler {
	return &authHandler{
		authService: authService,
		settings:    settings,
	}
}

// Register creates a client account
// @Summary Register a client account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (handler *authHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	result, err := handler.authService.Register(ctx.Request.Context(), request.ToInput(), deviceInfo(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	handler.setAccessCookie(ctx, result)
	ctx.JSON(http.StatusCreated, newAuthResponse(result))
}

// Login exchanges credentials for a token pair
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 423 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	result, err := handler.authService.Login(ctx.Request.Context(), request.Email, request.Password, deviceInfo(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	handler.setAccessCookie(ctx, result)
	ctx.JSON(http.StatusOK, newAuthResponse(result))
}

// Refresh rotates a refresh token
func (handler *authHandler) Refresh(ctx *gin.Context) {
	var request RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	result, err := handler.authService.RefreshAccessToken(ctx.Request.Context(), request.RefreshToken, deviceInfo(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	handler.setAccessCookie(ctx, result)
	ctx.JSON(http.StatusOK, newAuthResponse(result))
}

// Logout revokes the given refresh token of the caller
func (handler *authHandler) Logout(ctx *gin.Context) {
	var request RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.authService.Logout(ctx.Request.Context(), currentUser(ctx).ID, request.RefreshToken); err != nil {
		respondError(ctx, err)
		return
	}

	handler.clearAccessCookie(ctx)
	ctx.JSON(http.StatusOK, InfoResponse{Message: "Logged out successfully"})
}

// LogoutAll revokes every session of the caller
func (handler *authHandler) LogoutAll(ctx *gin.Context) {
	if err := handler.authService.LogoutAll(ctx.Request.Context(), currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	handler.clearAccessCookie(ctx)
	ctx.JSON(http.StatusOK, InfoResponse{Message: "Logged out from all devices"})
}

// Me returns the caller's account
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	user, err := handler.authService.Me(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MeResponse{
		User:          newUserResponse(user),
		DashboardPath: users.DashboardPath(user.Role),
	})
}

// RouteCheck tells the frontend whether the caller may open a page
func (handler *authHandler) RouteCheck(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		respondBadRequest(ctx, "path query parameter is required")
		return
	}

	decision := users.CheckRouteAccess(currentUser(ctx), path)
	ctx.JSON(http.StatusOK, RouteCheckResponse{Allowed: decision.Allowed, RedirectTo: decision.RedirectTo})
}

// ListSessions lists the caller's active sessions
func (handler *authHandler) ListSessions(ctx *gin.Context) {
	sessions, err := handler.authService.GetActiveSessions(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapSlice(sessions, newSessionResponse))
}

// TerminateSession revokes one of the caller's sessions
func (handler *authHandler) TerminateSession(ctx *gin.Context) {
	if err := handler.authService.TerminateSession(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Session terminated"})
}

// TerminateOtherSessions revokes every session except the one holding the given refresh token
func (handler *authHandler) TerminateOtherSessions(ctx *gin.Context) {
	var request RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	count, err := handler.authService.TerminateOtherSessions(ctx.Request.Context(), currentUser(ctx).ID, request.RefreshToken)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

// VerifyEmail confirms an email address with a one-time token
func (handler *authHandler) VerifyEmail(ctx *gin.Context) {
	var request TokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.authService.VerifyEmail(ctx.Request.Context(), request.Token); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Email verified successfully"})
}

// ResendVerification sends a fresh verification email to the caller
func (handler *authHandler) ResendVerification(ctx *gin.Context) {
	if err := handler.authService.ResendVerification(ctx.Request.Context(), currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Verification email sent"})
}

// ForgotPassword starts a password reset. The response does not reveal whether the email exists.
func (handler *authHandler) ForgotPassword(ctx *gin.Context) {
	var request ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.authService.ForgotPassword(ctx.Request.Context(), request.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "If the email exists, a password reset link has been sent"})
}

// ResetPassword sets a new password with a reset token
func (handler *authHandler) ResetPassword(ctx *gin.Context) {
	var request ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.authService.ResetPassword(ctx.Request.Context(), request.Token, request.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "Password reset successfully"})
}

func (handler *authHandler) setAccessCookie(ctx *gin.Context, result *users.AuthResult) {
	if result.Tokens == nil || handler.settings == nil {
		return
	}
	maxAge := int(handler.settings.AccessTokenTTL.Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(AccessTokenCookie, result.Tokens.AccessToken, maxAge, "/", handler.settings.AccessCookieDomain, handler.settings.SecureCookies, true)
}

func (handler *authHandler) clearAccessCookie(ctx *gin.Context) {
	if handler.settings == nil {
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(AccessTokenCookie, "", -1, "/", handler.settings.AccessCookieDomain, handler.settings.SecureCookies, true)
}
