package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no authentication required
	router.POST("/api/auth/register", ac.Handler.Register)
	router.POST("/api/auth/login", ac.Handler.Login)
	router.POST("/api/auth/refresh", ac.Handler.Refresh)
	router.POST("/api/auth/logout", ac.Handler.Logout)
	router.POST("/api/auth/forgot-password", ac.Handler.ForgotPassword)
	router.POST("/api/auth/reset-password", ac.Handler.ResetPassword)

	// Protected routes: requires a valid token
	authGroup := router.Group("/api/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.GET("/me", ac.Handler.Me)
		authGroup.PUT("/me", ac.Handler.UpdateProfile)
		authGroup.POST("/change-password", ac.Handler.ChangePassword)
	}
}
