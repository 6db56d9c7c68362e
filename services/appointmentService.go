package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookAppointmentRequest is the patient-facing booking payload.
type BookAppointmentRequest struct {
	DoctorID string    `json:"doctor_id"`
	Date     time.Time `json:"date"`
	Reason   string    `json:"reason"`
	Notes    string    `json:"notes"`
}

// AppointmentService handles booking, cancellation and status updates,
// scoped to the calling role.
type AppointmentService struct {
	profiles     repositories.ProfileRepository
	appointments repositories.AppointmentRepository
}

func NewAppointmentService(profiles repositories.ProfileRepository, appointments repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{profiles: profiles, appointments: appointments}
}

// Book creates a Scheduled appointment for the calling patient.
func (s *AppointmentService) Book(ctx context.Context, userID int64, req BookAppointmentRequest) (*models.Appointment, error) {
	err := validation.Errors{
		"doctor_id": validation.Validate(req.DoctorID, validation.Required),
		"date":      validation.Validate(req.Date, validation.Required),
		"reason":    validation.Validate(req.Reason, validation.Required, validation.Length(2, 0)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := s.profiles.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Status:    models.AppointmentScheduled,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel moves the calling patient's appointment from Scheduled to
// Cancelled. Appointments belonging to other patients are rejected.
func (s *AppointmentService) Cancel(ctx context.Context, userID int64, appointmentID string) error {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return repositories.ErrAppointmentNotFound
	}
	if appointment.PatientID != patient.ID {
		return ErrNotOwner
	}

	return s.appointments.UpdateStatus(ctx, appointmentID, models.AppointmentScheduled, models.AppointmentCancelled)
}

// UpdateStatus lets the attending doctor move an appointment out of
// Scheduled (Completed or No-Show).
func (s *AppointmentService) UpdateStatus(ctx context.Context, userID int64, appointmentID, toStatus string) error {
	if err := validation.Validate(toStatus, validation.Required, validation.In(
		models.AppointmentCompleted,
		models.AppointmentCancelled,
		models.AppointmentNoShow,
	)); err != nil {
		return err
	}

	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return repositories.ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return ErrNotOwner
	}

	return s.appointments.UpdateStatus(ctx, appointmentID, models.AppointmentScheduled, toStatus)
}

// ListForPatient returns the calling patient's appointments.
func (s *AppointmentService) ListForPatient(ctx context.Context, userID int64) ([]models.Appointment, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.appointments.ListByPatient(ctx, patient.ID)
}

// ListForDoctor returns the calling doctor's appointments.
func (s *AppointmentService) ListForDoctor(ctx context.Context, userID int64) ([]models.Appointment, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return s.appointments.ListByDoctor(ctx, doctor.ID)
}

// ListAll returns every appointment; admin-only.
func (s *AppointmentService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.ListAll(ctx)
}

// PatientsForDoctor returns the distinct patients the calling doctor has
// seen, derived from their appointment history.
func (s *AppointmentService) PatientsForDoctor(ctx context.Context, userID int64) ([]models.Patient, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := s.appointments.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(appointments))
	patients := make([]models.Patient, 0, len(appointments))
	for _, appt := range appointments {
		if _, ok := seen[appt.PatientID]; ok {
			continue
		}
		seen[appt.PatientID] = struct{}{}
		patients = append(patients, appt.Patient)
	}
	return patients, nil
}
