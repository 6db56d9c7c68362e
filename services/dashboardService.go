package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"time"
)

// PatientDashboard is the patient landing-page summary.
type PatientDashboard struct {
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	PrescriptionCount    int64                `json:"prescription_count"`
	PendingBillCount     int64                `json:"pending_bill_count"`
	CurrentAdmission     *AdmissionView       `json:"current_admission"`
	RecentAdmissions     []AdmissionView      `json:"recent_admissions"`
}

// DoctorDashboard is the doctor landing-page summary.
type DoctorDashboard struct {
	AppointmentCount     int64                `json:"appointment_count"`
	OpenAdmissionCount   int64                `json:"open_admission_count"`
	PatientCount         int64                `json:"patient_count"`
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
}

// AdminDashboard is the admin landing-page summary.
type AdminDashboard struct {
	TotalPatients       int64            `json:"total_patients"`
	TotalDoctors        int64            `json:"total_doctors"`
	BedOccupancy        *BedOccupancy    `json:"bed_occupancy"`
	RecentRegistrations []models.Patient `json:"recent_registrations"`
}

const (
	upcomingAppointmentLimit = 5
	recentAdmissionLimit     = 5
	recentRegistrationLimit  = 5
)

// DashboardService assembles the per-role landing summaries. Counts are
// computed fresh on every call rather than maintained incrementally.
type DashboardService struct {
	profiles      repositories.ProfileRepository
	beds          repositories.BedRepository
	admissions    repositories.AdmissionRepository
	appointments  repositories.AppointmentRepository
	prescriptions repositories.PrescriptionRepository
	billing       repositories.BillingRepository
	bedService    *BedService
}

func NewDashboardService(
	profiles repositories.ProfileRepository,
	beds repositories.BedRepository,
	admissions repositories.AdmissionRepository,
	appointments repositories.AppointmentRepository,
	prescriptions repositories.PrescriptionRepository,
	billing repositories.BillingRepository,
	bedService *BedService,
) *DashboardService {
	return &DashboardService{
		profiles:      profiles,
		beds:          beds,
		admissions:    admissions,
		appointments:  appointments,
		prescriptions: prescriptions,
		billing:       billing,
		bedService:    bedService,
	}
}

// ForPatient builds the patient dashboard.
func (s *DashboardService) ForPatient(ctx context.Context, userID int64) (*PatientDashboard, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	prescriptionCount, err := s.prescriptions.CountByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	pendingBills, err := s.billing.CountPendingByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	admissions, err := s.admissions.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	summary := partitionAdmissions(patient.ID, admissions)
	recent := summary.AdmissionHistory
	if len(recent) > recentAdmissionLimit {
		recent = recent[:recentAdmissionLimit]
	}

	return &PatientDashboard{
		UpcomingAppointments: upcomingAppointments(appointments),
		PrescriptionCount:    prescriptionCount,
		PendingBillCount:     pendingBills,
		CurrentAdmission:     summary.CurrentAdmission,
		RecentAdmissions:     recent,
	}, nil
}

// ForDoctor builds the doctor dashboard.
func (s *DashboardService) ForDoctor(ctx context.Context, userID int64) (*DoctorDashboard, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointmentCount, err := s.appointments.CountByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	openAdmissions, err := s.admissions.CountOpenByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	upcoming := upcomingAppointments(appointments)

	// Distinct patients seen by this doctor, derived from the full
	// appointment list.
	seen := make(map[string]struct{})
	for _, appt := range appointments {
		seen[appt.PatientID] = struct{}{}
	}

	return &DoctorDashboard{
		AppointmentCount:     appointmentCount,
		OpenAdmissionCount:   openAdmissions,
		PatientCount:         int64(len(seen)),
		UpcomingAppointments: upcoming,
	}, nil
}

// ForAdmin builds the admin dashboard.
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	totalPatients, err := s.profiles.CountPatients(ctx)
	if err != nil {
		return nil, err
	}
	totalDoctors, err := s.profiles.CountDoctors(ctx)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.bedService.Occupancy(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.profiles.ListPatients(ctx, recentRegistrationLimit)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalPatients:       totalPatients,
		TotalDoctors:        totalDoctors,
		BedOccupancy:        occupancy,
		RecentRegistrations: recent,
	}, nil
}

// upcomingAppointments filters to Scheduled appointments in the future,
// capped at the display limit. Input lists are ordered most recent first,
// so the slice is reversed into soonest-first order.
func upcomingAppointments(appointments []models.Appointment) []models.Appointment {
	now := time.Now()
	upcoming := make([]models.Appointment, 0, upcomingAppointmentLimit)
	for i := len(appointments) - 1; i >= 0; i-- {
		appt := appointments[i]
		if appt.Status != models.AppointmentScheduled || appt.Date.Before(now) {
			continue
		}
		upcoming = append(upcoming, appt)
		if len(upcoming) == upcomingAppointmentLimit {
			break
		}
	}
	return upcoming
}
