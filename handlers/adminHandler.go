package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administrative surface: dashboard, directories,
// the bed registry, discharges, billing and inventory.
type AdminHandler struct {
	dashboards   *services.DashboardService
	profiles     *services.ProfileService
	appointments *services.AppointmentService
	admissions   *services.AdmissionService
	beds         *services.BedService
	billing      *services.BillingService
	inventory    *services.InventoryService
	auth         *services.AuthService
}

func NewAdminHandler(
	dashboards *services.DashboardService,
	profiles *services.ProfileService,
	appointments *services.AppointmentService,
	admissions *services.AdmissionService,
	beds *services.BedService,
	billing *services.BillingService,
	inventory *services.InventoryService,
	auth *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		dashboards:   dashboards,
		profiles:     profiles,
		appointments: appointments,
		admissions:   admissions,
		beds:         beds,
		billing:      billing,
		inventory:    inventory,
		auth:         auth,
	}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboards.ForAdmin(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, dashboard)
}

// ListPatients handles GET /api/admin/patients.
func (h *AdminHandler) ListPatients(c *gin.Context) {
	patients, err := h.profiles.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, patients)
}

// ListDoctors handles GET /api/admin/doctors.
func (h *AdminHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.profiles.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, doctors)
}

// CreateStaff handles POST /api/admin/staff: provisioning doctor and admin
// accounts, which self-service registration does not allow.
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req, utils.RoleDoctor, utils.RoleAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, user)
}

// ListAppointments handles GET /api/admin/appointments.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.appointments.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, appointments)
}

// ListAdmissions handles GET /api/admin/admissions.
func (h *AdminHandler) ListAdmissions(c *gin.Context) {
	admissions, err := h.admissions.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, admissions)
}

// DischargeAdmission handles PUT /api/admin/admissions/:id/discharge.
func (h *AdminHandler) DischargeAdmission(c *gin.Context) {
	admission, err := h.admissions.Discharge(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, admission)
}

// ListBeds handles GET /api/admin/beds?status=&type=.
func (h *AdminHandler) ListBeds(c *gin.Context) {
	beds, err := h.beds.ListBeds(c.Request.Context(), c.Query("status"), c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, beds)
}

// CreateBed handles POST /api/admin/beds.
func (h *AdminHandler) CreateBed(c *gin.Context) {
	var bed models.Bed
	if err := c.ShouldBindJSON(&bed); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.beds.CreateBed(c.Request.Context(), &bed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, created)
}

// UpdateBed handles PUT /api/admin/beds/:bed_number.
func (h *AdminHandler) UpdateBed(c *gin.Context) {
	var req struct {
		Type   string   `json:"type"`
		Ward   string   `json:"ward"`
		Status string   `json:"status"`
		Price  *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.Type != "" {
		patch["type"] = req.Type
	}
	if req.Ward != "" {
		patch["ward"] = req.Ward
	}
	if req.Status != "" {
		patch["status"] = req.Status
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}

	bed, err := h.beds.UpdateBed(c.Request.Context(), c.Param("bed_number"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, bed)
}

// DeleteBed handles DELETE /api/admin/beds/:bed_number.
func (h *AdminHandler) DeleteBed(c *gin.Context) {
	if err := h.beds.DeleteBed(c.Request.Context(), c.Param("bed_number")); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Bed deleted")
}

// ListBilling handles GET /api/admin/billing.
func (h *AdminHandler) ListBilling(c *gin.Context) {
	invoices, err := h.billing.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, invoices)
}

// CreateInvoice handles POST /api/admin/billing.
func (h *AdminHandler) CreateInvoice(c *gin.Context) {
	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.billing.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, invoice)
}

// RecordPayment handles PUT /api/admin/billing/:id/payment.
func (h *AdminHandler) RecordPayment(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.billing.RecordPayment(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /api/admin/billing/:id.
func (h *AdminHandler) DeleteInvoice(c *gin.Context) {
	if err := h.billing.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Invoice deleted")
}

// ListInventory handles GET /api/admin/inventory.
func (h *AdminHandler) ListInventory(c *gin.Context) {
	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, items)
}

// AddInventoryItem handles POST /api/admin/inventory.
func (h *AdminHandler) AddInventoryItem(c *gin.Context) {
	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.inventory.AddItem(c.Request.Context(), &item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, created)
}

// UpdateInventoryItem handles PUT /api/admin/inventory/:id.
func (h *AdminHandler) UpdateInventoryItem(c *gin.Context) {
	var req struct {
		Name         string   `json:"name"`
		Quantity     *int     `json:"quantity"`
		Unit         string   `json:"unit"`
		UnitPrice    *float64 `json:"unit_price"`
		ReorderLevel *int     `json:"reorder_level"`
		Location     string   `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if req.Quantity != nil {
		patch["quantity"] = *req.Quantity
	}
	if req.Unit != "" {
		patch["unit"] = req.Unit
	}
	if req.UnitPrice != nil {
		patch["unit_price"] = *req.UnitPrice
	}
	if req.ReorderLevel != nil {
		patch["reorder_level"] = *req.ReorderLevel
	}
	if req.Location != "" {
		patch["location"] = req.Location
	}

	item, err := h.inventory.UpdateItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, item)
}

// DeleteInventoryItem handles DELETE /api/admin/inventory/:id.
func (h *AdminHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.inventory.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Inventory item deleted")
}
