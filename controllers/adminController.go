package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Handler *handlers.AdminHandler
}

func NewAdminController(adminHandler *handlers.AdminHandler) *AdminController {
	return &AdminController{
		Handler: adminHandler,
	}
}

// RegisterRoutes initializes the admin route group, restricted to the
// Admin role.
func (ac *AdminController) RegisterRoutes(router *gin.Engine) {
	adminGroup := router.Group("/api/admin").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(utils.RoleAdmin),
	)
	{
		adminGroup.GET("/dashboard", ac.Handler.Dashboard)

		adminGroup.GET("/patients", ac.Handler.ListPatients)
		adminGroup.GET("/doctors", ac.Handler.ListDoctors)
		adminGroup.POST("/staff", ac.Handler.CreateStaff)

		adminGroup.GET("/appointments", ac.Handler.ListAppointments)

		adminGroup.GET("/admissions", ac.Handler.ListAdmissions)
		adminGroup.PUT("/admissions/:id/discharge", ac.Handler.DischargeAdmission)

		adminGroup.GET("/beds", ac.Handler.ListBeds)
		adminGroup.POST("/beds", ac.Handler.CreateBed)
		adminGroup.PUT("/beds/:bed_number", ac.Handler.UpdateBed)
		adminGroup.DELETE("/beds/:bed_number", ac.Handler.DeleteBed)

		adminGroup.GET("/billing", ac.Handler.ListBilling)
		adminGroup.POST("/billing", ac.Handler.CreateInvoice)
		adminGroup.PUT("/billing/:id/payment", ac.Handler.RecordPayment)
		adminGroup.DELETE("/billing/:id", ac.Handler.DeleteInvoice)

		adminGroup.GET("/inventory", ac.Handler.ListInventory)
		adminGroup.POST("/inventory", ac.Handler.AddInventoryItem)
		adminGroup.PUT("/inventory/:id", ac.Handler.UpdateInventoryItem)
		adminGroup.DELETE("/inventory/:id", ac.Handler.DeleteInventoryItem)
	}
}
