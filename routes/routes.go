package routes

import (
	"CarePoint/cache"
	"CarePoint/config"
	"CarePoint/controllers"
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/repositories"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{config.GetClientURL()},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	userRepo := repositories.NewUserRepository(db, cache)
	profileRepo := repositories.NewProfileRepository()
	bedRepo := repositories.NewBedRepository(cache)
	admissionRepo := repositories.NewAdmissionRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	prescriptionRepo := repositories.NewPrescriptionRepository(cache)
	medicalRecordRepo := repositories.NewMedicalRecordRepository(cache)
	billingRepo := repositories.NewBillingRepository(cache)
	inventoryRepo := repositories.NewInventoryRepository(cache)

	// Services
	authService := services.NewAuthService(userRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo)
	bedService := services.NewBedService(bedRepo)
	admissionService := services.NewAdmissionService(profileRepo, bedRepo, admissionRepo)
	appointmentService := services.NewAppointmentService(profileRepo, appointmentRepo)
	prescriptionService := services.NewPrescriptionService(profileRepo, prescriptionRepo)
	medicalRecordService := services.NewMedicalRecordService(profileRepo, medicalRecordRepo)
	billingService := services.NewBillingService(profileRepo, billingRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	dashboardService := services.NewDashboardService(
		profileRepo,
		bedRepo,
		admissionRepo,
		appointmentRepo,
		prescriptionRepo,
		billingRepo,
		bedService,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	directoryHandler := handlers.NewDirectoryHandler(profileService)
	patientHandler := handlers.NewPatientHandler(
		dashboardService,
		appointmentService,
		prescriptionService,
		medicalRecordService,
		billingService,
		admissionService,
		bedService,
		profileService,
	)
	doctorHandler := handlers.NewDoctorHandler(
		dashboardService,
		appointmentService,
		admissionService,
		prescriptionService,
		medicalRecordService,
	)
	adminHandler := handlers.NewAdminHandler(
		dashboardService,
		profileService,
		appointmentService,
		admissionService,
		bedService,
		billingService,
		inventoryService,
		authService,
	)

	// Register routes
	controllers.NewAuthController(authHandler).RegisterRoutes(router)
	controllers.NewPatientController(patientHandler).RegisterRoutes(router)
	controllers.NewDoctorController(doctorHandler).RegisterRoutes(router)
	controllers.NewAdminController(adminHandler).RegisterRoutes(router)

	// Public doctor directory for the booking flow
	router.GET("/api/doctors", directoryHandler.PublicDoctors)

	controllers.SetupRootRoutes(router)

	return router
}
