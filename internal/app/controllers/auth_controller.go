package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/services"
	"github.com/yigit/welearn/internal/middleware"
)

// AuthController handles teacher login and session checks
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a teacher
// @Summary Teacher login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.LoginTeacher(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Verify reports the account behind the session token
// @Summary Verify session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or stale token"
// @Router /auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	resp, err := c.authService.Verify(ctx.Request.Context(), middleware.GetActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Logout ends the session. Tokens are stateless, so clients just drop theirs.
// @Summary Logout
// @Tags auth
// @Success 204 "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
