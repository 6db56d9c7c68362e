package controllers

import (
	"CarePoint/middlewares"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	middlewares.RespondMessage(c, http.StatusOK, "CarePoint API")
}

// healthHandler reports liveness for load balancers and probes.
func healthHandler(c *gin.Context) {
	middlewares.RespondData(c, http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoutes sets up the root and health routes.
func SetupRootRoutes(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/api/health", healthHandler)
}
