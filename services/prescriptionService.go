package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WritePrescriptionRequest is the doctor-facing payload for issuing a
// prescription.
type WritePrescriptionRequest struct {
	PatientID     string              `json:"patient_id"`
	AppointmentID string              `json:"appointment_id"`
	Diagnosis     string              `json:"diagnosis"`
	Medications   []models.Medication `json:"medications"`
	Notes         string              `json:"notes"`
}

// PrescriptionService issues prescriptions and serves role-scoped lists.
type PrescriptionService struct {
	profiles      repositories.ProfileRepository
	prescriptions repositories.PrescriptionRepository
}

func NewPrescriptionService(profiles repositories.ProfileRepository, prescriptions repositories.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{profiles: profiles, prescriptions: prescriptions}
}

// Write issues a prescription from the calling doctor to a patient.
func (s *PrescriptionService) Write(ctx context.Context, userID int64, req WritePrescriptionRequest) (*models.Prescription, error) {
	err := validation.Errors{
		"patient_id":  validation.Validate(req.PatientID, validation.Required),
		"diagnosis":   validation.Validate(req.Diagnosis, validation.Required, validation.Length(2, 0)),
		"medications": validation.Validate(req.Medications, validation.Required, validation.Length(1, 0)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := s.profiles.GetPatientByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := &models.Prescription{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Medications:   req.Medications,
		Notes:         req.Notes,
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// ListForPatient returns the calling patient's prescriptions.
func (s *PrescriptionService) ListForPatient(ctx context.Context, userID int64) ([]models.Prescription, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.prescriptions.ListByPatient(ctx, patient.ID)
}

// ListForDoctor returns the prescriptions the calling doctor has issued.
func (s *PrescriptionService) ListForDoctor(ctx context.Context, userID int64) ([]models.Prescription, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return s.prescriptions.ListByDoctor(ctx, doctor.ID)
}
