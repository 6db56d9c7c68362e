package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WriteMedicalRecordRequest is the doctor-facing payload for adding a
// record to a patient's history.
type WriteMedicalRecordRequest struct {
	PatientID     string `json:"patient_id"`
	AppointmentID string `json:"appointment_id"`
	RecordType    string `json:"record_type"`
	Diagnosis     string `json:"diagnosis"`
	Treatment     string `json:"treatment"`
	Notes         string `json:"notes"`
}

// MedicalRecordService maintains patient medical histories.
type MedicalRecordService struct {
	profiles repositories.ProfileRepository
	records  *repositories.MedicalRecordRepository
}

func NewMedicalRecordService(profiles repositories.ProfileRepository, records *repositories.MedicalRecordRepository) *MedicalRecordService {
	return &MedicalRecordService{profiles: profiles, records: records}
}

// Write adds a record authored by the calling doctor.
func (s *MedicalRecordService) Write(ctx context.Context, userID int64, req WriteMedicalRecordRequest) (*models.MedicalRecord, error) {
	err := validation.Errors{
		"patient_id": validation.Validate(req.PatientID, validation.Required),
		"record_type": validation.Validate(req.RecordType, validation.Required, validation.In(
			models.RecordConsultation,
			models.RecordLabTest,
			models.RecordSurgery,
			models.RecordVaccination,
			models.RecordOther,
		)),
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

	record := &models.MedicalRecord{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		AppointmentID: req.AppointmentID,
		RecordType:    req.RecordType,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListForPatient returns the calling patient's medical history.
func (s *MedicalRecordService) ListForPatient(ctx context.Context, userID int64) ([]models.MedicalRecord, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.records.ListByPatient(ctx, patient.ID)
}

// ListForDoctor returns the records authored by the calling doctor.
func (s *MedicalRecordService) ListForDoctor(ctx context.Context, userID int64) ([]models.MedicalRecord, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return s.records.ListByDoctor(ctx, doctor.ID)
}
