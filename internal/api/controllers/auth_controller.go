package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sojourn/internal/models/request_models"
	"sojourn/internal/services"
	"sojourn/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Sign up payload"
// @Success 201 {object} response_models.TokenPairResponse
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := a.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, tokens, "Account created")
}

// Login godoc
// @Summary Log in with email or username
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} response_models.TokenPairResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tokens, "Logged in")
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} response_models.TokenPairResponse
// @Router /auth/refresh-token [post]
func (a *AuthController) RefreshToken(c *gin.Context) {
	var req request_models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := a.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tokens, "Token refreshed")
}

// Logout is stateless: the client discards its tokens.
func (a *AuthController) Logout(c *gin.Context) {
	utils.RespondSuccess(c, nil, "Logged out")
}

// RequestPasswordReset godoc
// @Summary Request a password reset email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.PasswordResetRequest true "Reset request"
// @Success 200 {object} utils.APIResponse
// @Router /auth/password-reset-request [post]
func (a *AuthController) RequestPasswordReset(c *gin.Context) {
	var req request_models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	// Same reply whether or not the email exists.
	utils.RespondSuccess(c, nil, "If the email is registered, a reset link has been sent")
}

// ConfirmPasswordReset godoc
// @Summary Reset the password using an emailed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.PasswordResetConfirm true "Reset confirmation"
// @Success 200 {object} utils.APIResponse
// @Router /auth/password-reset [post]
func (a *AuthController) ConfirmPasswordReset(c *gin.Context) {
	var req request_models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password updated")
}

// Me godoc
// @Summary Get the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.UserResponse
// @Security BearerAuth
// @Router /users/me [get]
func (a *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := a.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User fetched")
}
