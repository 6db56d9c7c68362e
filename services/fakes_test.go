package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory repository fakes. A shared mutex stands in for the per-bed
// lock and transaction of the real store, so the conditional-update
// contracts (single winner per bed, discharge-once) hold under concurrent
// callers.

type fakeProfileRepo struct {
	mu       sync.Mutex
	patients []*models.Patient
	doctors  []*models.Doctor
	admins   []*models.Admin

	createErr error // returned by the Create methods when set
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{}
}

func (f *fakeProfileRepo) CreatePatient(ctx context.Context, patient *models.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.patients = append(f.patients, patient)
	return nil
}

func (f *fakeProfileRepo) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.doctors = append(f.doctors, doctor)
	return nil
}

func (f *fakeProfileRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.admins = append(f.admins, admin)
	return nil
}

func (f *fakeProfileRepo) GetPatientByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetDoctorByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetAdminByUserID(ctx context.Context, userID int64) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.UserID == userID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.ID == patientID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.doctors {
		if d.ID == doctorID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) ListPatients(ctx context.Context, limit int) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		out = append(out, *p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListDoctors(ctx context.Context, limit int) ([]models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Doctor, 0, len(f.doctors))
	for _, d := range f.doctors {
		out = append(out, *d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) UpdatePatient(ctx context.Context, patientID string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.ID == patientID {
			if v, ok := patch["blood_group"].(string); ok {
				p.BloodGroup = v
			}
			if v, ok := patch["emergency_name"].(string); ok {
				p.EmergencyName = v
			}
			return nil
		}
	}
	return nil
}

func (f *fakeProfileRepo) CountPatients(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.patients)), nil
}

func (f *fakeProfileRepo) CountDoctors(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.doctors)), nil
}

type fakeBedRepo struct {
	mu   *sync.Mutex
	beds map[string]*models.Bed

	admissions *fakeAdmissionRepo
}

func newFakeBedRepo() *fakeBedRepo {
	return &fakeBedRepo{mu: &sync.Mutex{}, beds: make(map[string]*models.Bed)}
}

func (f *fakeBedRepo) Create(ctx context.Context, bed *models.Bed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.beds {
		if existing.BedNumber == bed.BedNumber {
			return repositories.ErrDuplicateBed
		}
	}
	if bed.ID == "" {
		bed.ID = uuid.New().String()
	}
	if bed.Status == "" {
		bed.Status = models.BedAvailable
	}
	f.beds[bed.ID] = bed
	return nil
}

func (f *fakeBedRepo) GetByNumber(ctx context.Context, bedNumber string) (*models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed := f.findByNumber(bedNumber)
	if bed == nil {
		return nil, nil
	}
	copied := *bed
	return &copied, nil
}

func (f *fakeBedRepo) GetByNumberAndType(ctx context.Context, bedNumber, bedType string) (*models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed := f.findByNumber(bedNumber)
	if bed == nil || bed.Type != bedType {
		return nil, nil
	}
	copied := *bed
	return &copied, nil
}

func (f *fakeBedRepo) Find(ctx context.Context, status, bedType string) ([]models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Bed
	for _, bed := range f.beds {
		if status != "" && bed.Status != status {
			continue
		}
		if bedType != "" && bed.Type != bedType {
			continue
		}
		out = append(out, *bed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BedNumber < out[j].BedNumber })
	return out, nil
}

func (f *fakeBedRepo) UpdateByNumber(ctx context.Context, bedNumber string, patch map[string]interface{}) (*models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed := f.findByNumber(bedNumber)
	if bed == nil {
		return nil, repositories.ErrBedNotFound
	}
	if v, ok := patch["status"].(string); ok {
		bed.Status = v
	}
	if v, ok := patch["ward"].(string); ok {
		bed.Ward = v
	}
	if v, ok := patch["type"].(string); ok {
		bed.Type = v
	}
	if v, ok := patch["price"].(float64); ok {
		bed.Price = v
	}
	copied := *bed
	return &copied, nil
}

func (f *fakeBedRepo) DeleteByNumber(ctx context.Context, bedNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed := f.findByNumber(bedNumber)
	if bed == nil {
		return repositories.ErrBedNotFound
	}
	if f.admissions != nil {
		for _, adm := range f.admissions.admissions {
			if adm.BedID == bed.ID && adm.DischargeDate == nil {
				return repositories.ErrBedHasOpenAdmission
			}
		}
	}
	delete(f.beds, bed.ID)
	return nil
}

func (f *fakeBedRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, bed := range f.beds {
		if bed.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeBedRepo) findByNumber(bedNumber string) *models.Bed {
	for _, bed := range f.beds {
		if bed.BedNumber == bedNumber {
			return bed
		}
	}
	return nil
}

type fakeAdmissionRepo struct {
	mu         *sync.Mutex
	admissions []*models.Admission

	beds     *fakeBedRepo
	profiles *fakeProfileRepo
}

// newFakeAdmissionRepo shares the bed repo's mutex so admit/discharge are
// atomic with respect to bed-status reads, like the real transaction.
func newFakeAdmissionRepo(beds *fakeBedRepo, profiles *fakeProfileRepo) *fakeAdmissionRepo {
	repo := &fakeAdmissionRepo{mu: beds.mu, beds: beds, profiles: profiles}
	beds.admissions = repo
	return repo
}

func (f *fakeAdmissionRepo) Admit(ctx context.Context, admission *models.Admission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bed, ok := f.beds.beds[admission.BedID]
	if !ok || bed.Status != models.BedAvailable {
		return repositories.ErrBedNotAvailable
	}
	bed.Status = models.BedReserved

	if admission.ID == "" {
		admission.ID = uuid.New().String()
	}
	if admission.AdmissionDate.IsZero() {
		admission.AdmissionDate = time.Now()
	}
	if admission.Status == "" {
		admission.Status = models.AdmissionAdmitted
	}
	stored := *admission
	f.admissions = append(f.admissions, &stored)
	return nil
}

func (f *fakeAdmissionRepo) Discharge(ctx context.Context, admissionID string) (*models.Admission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var admission *models.Admission
	for _, adm := range f.admissions {
		if adm.ID == admissionID {
			admission = adm
			break
		}
	}
	if admission == nil {
		return nil, repositories.ErrAdmissionNotFound
	}
	if admission.DischargeDate != nil {
		return nil, repositories.ErrAlreadyDischarged
	}

	now := time.Now()
	admission.DischargeDate = &now
	admission.Status = models.AdmissionDischarged
	if bed, ok := f.beds.beds[admission.BedID]; ok {
		bed.Status = models.BedAvailable
	}

	hydrated := f.hydrate(admission)
	return &hydrated, nil
}

func (f *fakeAdmissionRepo) GetByID(ctx context.Context, admissionID string) (*models.Admission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, adm := range f.admissions {
		if adm.ID == admissionID {
			hydrated := f.hydrate(adm)
			return &hydrated, nil
		}
	}
	return nil, nil
}

func (f *fakeAdmissionRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Admission, error) {
	return f.list(func(adm *models.Admission) bool { return adm.PatientID == patientID })
}

func (f *fakeAdmissionRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Admission, error) {
	return f.list(func(adm *models.Admission) bool { return adm.AdmittedBy == doctorID })
}

func (f *fakeAdmissionRepo) ListAll(ctx context.Context) ([]models.Admission, error) {
	return f.list(func(*models.Admission) bool { return true })
}

func (f *fakeAdmissionRepo) HasOpenForPatient(ctx context.Context, patientID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, adm := range f.admissions {
		if adm.PatientID == patientID && adm.DischargeDate == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdmissionRepo) CountOpenByDoctor(ctx context.Context, doctorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, adm := range f.admissions {
		if adm.AdmittedBy == doctorID && adm.DischargeDate == nil {
			count++
		}
	}
	return count, nil
}

// list filters and returns admissions ordered most recent first, matching
// the real repository's ordering contract.
func (f *fakeAdmissionRepo) list(match func(*models.Admission) bool) ([]models.Admission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Admission
	for _, adm := range f.admissions {
		if match(adm) {
			out = append(out, f.hydrate(adm))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdmissionDate.After(out[j].AdmissionDate) })
	return out, nil
}

func (f *fakeAdmissionRepo) hydrate(adm *models.Admission) models.Admission {
	out := *adm
	if f.profiles != nil {
		for _, p := range f.profiles.patients {
			if p.ID == adm.PatientID {
				out.Patient = *p
			}
		}
		for _, d := range f.profiles.doctors {
			if d.ID == adm.AdmittedBy {
				out.Doctor = *d
			}
		}
	}
	if bed, ok := f.beds.beds[adm.BedID]; ok {
		out.Bed = *bed
	}
	return out
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*models.Appointment
	patientsByID map[string]*models.Patient
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{patientsByID: make(map[string]*models.Patient)}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}
	stored := *appointment
	f.appointments = append(f.appointments, &stored)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, appt := range f.appointments {
		if appt.ID == appointmentID {
			copied := *appt
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return f.list(func(a *models.Appointment) bool { return a.PatientID == patientID })
}

func (f *fakeAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return f.list(func(a *models.Appointment) bool { return a.DoctorID == doctorID })
}

func (f *fakeAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return f.list(func(*models.Appointment) bool { return true })
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, appt := range f.appointments {
		if appt.ID != appointmentID {
			continue
		}
		if appt.Status != fromStatus {
			return repositories.ErrStatusConflict
		}
		appt.Status = toStatus
		return nil
	}
	return repositories.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentRepo) list(match func(*models.Appointment) bool) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appointments {
		if match(appt) {
			copied := *appt
			if p, ok := f.patientsByID[appt.PatientID]; ok {
				copied.Patient = *p
			}
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type fakePrescriptionRepo struct {
	mu            sync.Mutex
	prescriptions []*models.Prescription
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{}
}

func (f *fakePrescriptionRepo) Create(ctx context.Context, prescription *models.Prescription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	stored := *prescription
	f.prescriptions = append(f.prescriptions, &stored)
	return nil
}

func (f *fakePrescriptionRepo) GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.prescriptions {
		if p.ID == prescriptionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePrescriptionRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return f.list(func(p *models.Prescription) bool { return p.PatientID == patientID })
}

func (f *fakePrescriptionRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	return f.list(func(p *models.Prescription) bool { return p.DoctorID == doctorID })
}

func (f *fakePrescriptionRepo) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.prescriptions {
		if p.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (f *fakePrescriptionRepo) Delete(ctx context.Context, prescriptionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.prescriptions {
		if p.ID == prescriptionID {
			f.prescriptions = append(f.prescriptions[:i], f.prescriptions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePrescriptionRepo) list(match func(*models.Prescription) bool) ([]models.Prescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Prescription
	for _, p := range f.prescriptions {
		if match(p) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeBillingRepo struct {
	mu       sync.Mutex
	billings []*models.Billing
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{}
}

func (f *fakeBillingRepo) Create(ctx context.Context, billing *models.Billing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if billing.ID == "" {
		billing.ID = uuid.New().String()
	}
	if billing.PaymentStatus == "" {
		billing.PaymentStatus = models.BillingPending
	}
	stored := *billing
	f.billings = append(f.billings, &stored)
	return nil
}

func (f *fakeBillingRepo) GetByID(ctx context.Context, billingID string) (*models.Billing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.billings {
		if b.ID == billingID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBillingRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Billing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Billing
	for _, b := range f.billings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) ListAll(ctx context.Context) ([]models.Billing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Billing, 0, len(f.billings))
	for _, b := range f.billings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBillingRepo) Update(ctx context.Context, billingID string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.billings {
		if b.ID != billingID {
			continue
		}
		if v, ok := patch["payment_status"].(string); ok {
			b.PaymentStatus = v
		}
		if v, ok := patch["payment_method"].(string); ok {
			b.PaymentMethod = v
		}
		return nil
	}
	return errors.New("billing not found")
}

func (f *fakeBillingRepo) Delete(ctx context.Context, billingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.billings {
		if b.ID == billingID {
			f.billings = append(f.billings[:i], f.billings[i+1:]...)
			return nil
		}
	}
	return errors.New("billing not found")
}

func (f *fakeBillingRepo) CountPendingByPatient(ctx context.Context, patientID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.billings {
		if b.PatientID == patientID && b.PaymentStatus == models.BillingPending {
			count++
		}
	}
	return count, nil
}
