package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"log"
	"time"
)

// AdmissionView is the read model returned to the presentation layer. The
// denormalized display fields (names, bed number, ward) live here, never on
// the persisted Admission entity.
type AdmissionView struct {
	ID            string     `json:"id"`
	AdmissionDate time.Time  `json:"admission_date"`
	DischargeDate *time.Time `json:"discharge_date,omitempty"`
	PatientID     string     `json:"patient_id"`
	PatientName   string     `json:"patient_name"`
	DoctorName    string     `json:"doctor_name"`
	Diagnosis     string     `json:"diagnosis"`
	Status        string     `json:"status"`
	BedNumber     string     `json:"bed_number"`
	BedType       string     `json:"bed_type"`
	Ward          string     `json:"ward"`
	Notes         string     `json:"notes"`
}

// AdmissionSummary partitions a patient's admissions into the single
// current one (open, most recent) and the closed history.
type AdmissionSummary struct {
	CurrentAdmission *AdmissionView  `json:"current_admission"`
	AdmissionHistory []AdmissionView `json:"admission_history"`
}

// AdmissionService is the admission lifecycle manager: it coordinates bed
// allocation with admission creation and closure, and serves the
// role-scoped projections.
type AdmissionService struct {
	profiles   repositories.ProfileRepository
	beds       repositories.BedRepository
	admissions repositories.AdmissionRepository
}

func NewAdmissionService(
	profiles repositories.ProfileRepository,
	beds repositories.BedRepository,
	admissions repositories.AdmissionRepository,
) *AdmissionService {
	return &AdmissionService{profiles: profiles, beds: beds, admissions: admissions}
}

// RequestAdmission admits the calling patient to the selected bed. The
// admission record and the bed reservation are written atomically by the
// repository; under contention exactly one request per bed succeeds.
func (s *AdmissionService) RequestAdmission(ctx context.Context, userID int64, req utils.AdmissionRequestData) (*AdmissionView, error) {
	if err := utils.ValidateAdmissionRequest(req); err != nil {
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

	open, err := s.admissions.HasOpenForPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrAdmissionOpen
	}

	bed, err := s.beds.GetByNumberAndType(ctx, req.BedNumber, req.BedType)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, repositories.ErrBedNotFound
	}
	if bed.Status != models.BedAvailable {
		return nil, repositories.ErrBedNotAvailable
	}

	admission := &models.Admission{
		PatientID:  patient.ID,
		BedID:      bed.ID,
		AdmittedBy: doctor.ID,
		Diagnosis:  req.Diagnosis,
		Notes:      req.Notes,
		Status:     models.AdmissionAdmitted,
	}
	if err := s.admissions.Admit(ctx, admission); err != nil {
		return nil, err
	}

	view := &AdmissionView{
		ID:            admission.ID,
		AdmissionDate: admission.AdmissionDate,
		PatientID:     patient.ID,
		PatientName:   patient.User.Name,
		DoctorName:    doctor.User.Name,
		Diagnosis:     admission.Diagnosis,
		Status:        admission.Status,
		BedNumber:     bed.BedNumber,
		BedType:       bed.Type,
		Ward:          bed.Ward,
		Notes:         admission.Notes,
	}
	return view, nil
}

// Discharge closes an open admission and releases its bed.
func (s *AdmissionService) Discharge(ctx context.Context, admissionID string) (*AdmissionView, error) {
	admission, err := s.admissions.Discharge(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	view := admissionToView(admission)
	return &view, nil
}

// ListForPatient returns the calling patient's admissions partitioned into
// current and history.
func (s *AdmissionService) ListForPatient(ctx context.Context, userID int64) (*AdmissionSummary, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	admissions, err := s.admissions.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	return partitionAdmissions(patient.ID, admissions), nil
}

// ListForDoctor returns the admissions admitted by the calling doctor.
func (s *AdmissionService) ListForDoctor(ctx context.Context, userID int64) ([]AdmissionView, error) {
	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	admissions, err := s.admissions.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	return admissionsToViews(admissions), nil
}

// ListAll returns every admission; admin-only.
func (s *AdmissionService) ListAll(ctx context.Context) ([]AdmissionView, error) {
	admissions, err := s.admissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return admissionsToViews(admissions), nil
}

// partitionAdmissions splits admissions into the current one and the
// history. The input is ordered most recent first, so the first open
// admission is the current one; any further open admission is a data
// anomaly that gets logged rather than hidden.
func partitionAdmissions(patientID string, admissions []models.Admission) *AdmissionSummary {
	summary := &AdmissionSummary{AdmissionHistory: []AdmissionView{}}
	for i := range admissions {
		adm := &admissions[i]
		view := admissionToView(adm)
		if adm.Open() && summary.CurrentAdmission == nil {
			summary.CurrentAdmission = &view
			continue
		}
		if adm.Open() {
			log.Printf("Warning: patient %s has more than one open admission (extra: %s)", patientID, adm.ID)
		}
		summary.AdmissionHistory = append(summary.AdmissionHistory, view)
	}
	return summary
}

func admissionsToViews(admissions []models.Admission) []AdmissionView {
	views := make([]AdmissionView, 0, len(admissions))
	for i := range admissions {
		views = append(views, admissionToView(&admissions[i]))
	}
	return views
}

func admissionToView(adm *models.Admission) AdmissionView {
	return AdmissionView{
		ID:            adm.ID,
		AdmissionDate: adm.AdmissionDate,
		DischargeDate: adm.DischargeDate,
		PatientID:     adm.PatientID,
		PatientName:   adm.Patient.User.Name,
		DoctorName:    adm.Doctor.User.Name,
		Diagnosis:     adm.Diagnosis,
		Status:        adm.Status,
		BedNumber:     adm.Bed.BedNumber,
		BedType:       adm.Bed.Type,
		Ward:          adm.Bed.Ward,
		Notes:         adm.Notes,
	}
}
