package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/utils"

	"github.com/gin-gonic/gin"
)

type DoctorController struct {
	Handler *handlers.DoctorHandler
}

func NewDoctorController(doctorHandler *handlers.DoctorHandler) *DoctorController {
	return &DoctorController{
		Handler: doctorHandler,
	}
}

// RegisterRoutes initializes the doctor route group, restricted to the
// Doctor role.
func (dc *DoctorController) RegisterRoutes(router *gin.Engine) {
	doctorGroup := router.Group("/api/doctor").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(utils.RoleDoctor),
	)
	{
		doctorGroup.GET("/dashboard", dc.Handler.Dashboard)

		doctorGroup.GET("/appointments", dc.Handler.ListAppointments)
		doctorGroup.PUT("/appointments/:id/status", dc.Handler.UpdateAppointmentStatus)

		doctorGroup.GET("/admissions", dc.Handler.ListAdmissions)
		doctorGroup.GET("/patients", dc.Handler.ListPatients)

		doctorGroup.GET("/prescriptions", dc.Handler.ListPrescriptions)
		doctorGroup.POST("/prescriptions", dc.Handler.WritePrescription)

		doctorGroup.GET("/medical-records", dc.Handler.ListMedicalRecords)
		doctorGroup.POST("/medical-records", dc.Handler.WriteMedicalRecord)
	}
}
