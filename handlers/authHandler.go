package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and the password flows.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register. Self-service registration is
// limited to the Patient role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req, utils.RolePatient)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, user)
}

// Login handles POST /api/auth/login and sets the session cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	middlewares.RespondData(c, http.StatusOK, user)
}

// Refresh handles POST /api/auth/refresh, minting a new access token from
// the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(utils.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		middlewares.RespondError(c, http.StatusUnauthorized, "Missing refresh token")
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		middlewares.RespondError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	middlewares.RespondMessage(c, http.StatusOK, "Token refreshed")
}

// Logout handles POST /api/auth/logout by clearing the session cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c)
	middlewares.RespondMessage(c, http.StatusOK, "Logged out")
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/me for the account contact fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		DateOfBirth string `json:"date_of_birth"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if req.Phone != "" {
		patch["phone"] = req.Phone
	}
	if req.Address != "" {
		patch["address"] = req.Address
	}
	if req.DateOfBirth != "" {
		patch["date_of_birth"] = req.DateOfBirth
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, user)
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		middlewares.RespondError(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Reset code sent")
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Password reset successfully")
}

// ChangePassword handles POST /api/auth/change-password for an
// authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Password changed successfully")
}
