package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DoctorHandler exposes the doctor-facing surface: dashboard, appointment
// management, admitted patients and clinical writes.
type DoctorHandler struct {
	dashboards    *services.DashboardService
	appointments  *services.AppointmentService
	admissions    *services.AdmissionService
	prescriptions *services.PrescriptionService
	records       *services.MedicalRecordService
}

func NewDoctorHandler(
	dashboards *services.DashboardService,
	appointments *services.AppointmentService,
	admissions *services.AdmissionService,
	prescriptions *services.PrescriptionService,
	records *services.MedicalRecordService,
) *DoctorHandler {
	return &DoctorHandler{
		dashboards:    dashboards,
		appointments:  appointments,
		admissions:    admissions,
		prescriptions: prescriptions,
		records:       records,
	}
}

// Dashboard handles GET /api/doctor/dashboard.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboards.ForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, dashboard)
}

// ListAppointments handles GET /api/doctor/appointments.
func (h *DoctorHandler) ListAppointments(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	appointments, err := h.appointments.ListForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, appointments)
}

// UpdateAppointmentStatus handles PUT /api/doctor/appointments/:id/status.
func (h *DoctorHandler) UpdateAppointmentStatus(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.appointments.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondMessage(c, http.StatusOK, "Appointment status updated")
}

// ListAdmissions handles GET /api/doctor/admissions: the admissions this
// doctor admitted.
func (h *DoctorHandler) ListAdmissions(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	admissions, err := h.admissions.ListForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, admissions)
}

// ListPatients handles GET /api/doctor/patients: the distinct patients
// this doctor has seen.
func (h *DoctorHandler) ListPatients(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	patients, err := h.appointments.PatientsForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, patients)
}

// WritePrescription handles POST /api/doctor/prescriptions.
func (h *DoctorHandler) WritePrescription(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req services.WritePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	prescription, err := h.prescriptions.Write(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, prescription)
}

// ListPrescriptions handles GET /api/doctor/prescriptions.
func (h *DoctorHandler) ListPrescriptions(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	prescriptions, err := h.prescriptions.ListForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, prescriptions)
}

// WriteMedicalRecord handles POST /api/doctor/medical-records.
func (h *DoctorHandler) WriteMedicalRecord(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req services.WriteMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.records.Write(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, record)
}

// ListMedicalRecords handles GET /api/doctor/medical-records.
func (h *DoctorHandler) ListMedicalRecords(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}
	records, err := h.records.ListForDoctor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, records)
}
