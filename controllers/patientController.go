package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/utils"

	"github.com/gin-gonic/gin"
)

type PatientController struct {
	Handler *handlers.PatientHandler
}

func NewPatientController(patientHandler *handlers.PatientHandler) *PatientController {
	return &PatientController{
		Handler: patientHandler,
	}
}

// RegisterRoutes initializes the patient route group, restricted to the
// Patient role.
func (pc *PatientController) RegisterRoutes(router *gin.Engine) {
	patientGroup := router.Group("/api/patient").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(utils.RolePatient),
	)
	{
		patientGroup.GET("/dashboard", pc.Handler.Dashboard)
		patientGroup.PUT("/profile", pc.Handler.UpdateProfile)

		patientGroup.GET("/appointments", pc.Handler.ListAppointments)
		patientGroup.POST("/appointments", pc.Handler.BookAppointment)
		patientGroup.PUT("/appointments/:id/cancel", pc.Handler.CancelAppointment)

		patientGroup.GET("/prescriptions", pc.Handler.ListPrescriptions)
		patientGroup.GET("/medical-records", pc.Handler.ListMedicalRecords)
		patientGroup.GET("/billing", pc.Handler.ListBilling)

		patientGroup.GET("/admission", pc.Handler.AdmissionSummary)
		patientGroup.POST("/admission/request", pc.Handler.RequestAdmission)
		patientGroup.GET("/available-beds", pc.Handler.AvailableBeds)
	}
}
