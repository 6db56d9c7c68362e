package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PatientHandler exposes the patient-facing surface: dashboard,
// appointments, prescriptions, records, billing and the admission flow.
type PatientHandler struct {
	dashboards    *services.DashboardService
	appointments  *services.AppointmentService
	prescriptions *services.PrescriptionService
	records       *services.MedicalRecordService
	billing       *services.BillingService
	admissions    *services.AdmissionService
	beds          *services.BedService
	profiles      *services.ProfileService
}

func NewPatientHandler(
	dashboards *services.DashboardService,
	appointments *services.AppointmentService,
	prescriptions *services.PrescriptionService,
	records *services.MedicalRecordService,
	billing *services.BillingService,
	admissions *services.AdmissionService,
	beds *services.BedService,
	profiles *services.ProfileService,
) *PatientHandler {
	return &PatientHandler{
		dashboards:    dashboards,
		appointments:  appointments,
		prescriptions: prescriptions,
		records:       records,
		billing:       billing,
		admissions:    admissions,
		beds:          beds,
		profiles:      profiles,
	}
}

// Dashboard handles GET /api/patient/dashboard.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboards.ForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, dashboard)
}

// ListAppointments handles GET /api/patient/appointments.
func (h *PatientHandler) ListAppointments(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	appointments, err := h.appointments.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, appointments)
}

// BookAppointment handles POST /api/patient/appointments.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req services.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	appointment, err := h.appointments.Book(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, appointment)
}

// CancelAppointment handles PUT /api/patient/appointments/:id/cancel.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	if err := h.appointments.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Appointment cancelled")
}

// ListPrescriptions handles GET /api/patient/prescriptions.
func (h *PatientHandler) ListPrescriptions(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	prescriptions, err := h.prescriptions.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, prescriptions)
}

// ListMedicalRecords handles GET /api/patient/medical-records.
func (h *PatientHandler) ListMedicalRecords(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	records, err := h.records.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, records)
}

// ListBilling handles GET /api/patient/billing.
func (h *PatientHandler) ListBilling(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	invoices, err := h.billing.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, invoices)
}

// AdmissionSummary handles GET /api/patient/admission: the current
// admission plus the closed history.
func (h *PatientHandler) AdmissionSummary(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	summary, err := h.admissions.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, summary)
}

// RequestAdmission handles POST /api/patient/admission/request.
func (h *PatientHandler) RequestAdmission(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req utils.AdmissionRequestData
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admission, err := h.admissions.RequestAdmission(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, admission)
}

// AvailableBeds handles GET /api/patient/available-beds?type=.
func (h *PatientHandler) AvailableBeds(c *gin.Context) {
	beds, err := h.beds.ListAvailableBeds(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, beds)
}

// UpdateProfile handles PUT /api/patient/profile for the patient-specific
// fields (emergency contact, insurance, medical details).
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req struct {
		BloodGroup            string   `json:"blood_group"`
		Allergies             []string `json:"allergies"`
		MedicalHistory        []string `json:"medical_history"`
		EmergencyName         string   `json:"emergency_name"`
		EmergencyRelationship string   `json:"emergency_relationship"`
		EmergencyPhone        string   `json:"emergency_phone"`
		InsuranceProvider     string   `json:"insurance_provider"`
		PolicyNumber          string   `json:"policy_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.BloodGroup != "" {
		patch["blood_group"] = req.BloodGroup
	}
	if req.Allergies != nil {
		patch["allergies"] = req.Allergies
	}
	if req.MedicalHistory != nil {
		patch["medical_history"] = req.MedicalHistory
	}
	if req.EmergencyName != "" {
		patch["emergency_name"] = req.EmergencyName
	}
	if req.EmergencyRelationship != "" {
		patch["emergency_relationship"] = req.EmergencyRelationship
	}
	if req.EmergencyPhone != "" {
		patch["emergency_phone"] = req.EmergencyPhone
	}
	if req.InsuranceProvider != "" {
		patch["insurance_provider"] = req.InsuranceProvider
	}
	if req.PolicyNumber != "" {
		patch["policy_number"] = req.PolicyNumber
	}

	patient, err := h.profiles.UpdatePatientProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, patient)
}
