package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admissionFixture struct {
	profiles   *fakeProfileRepo
	beds       *fakeBedRepo
	admissions *fakeAdmissionRepo
	service    *AdmissionService
}

func newAdmissionFixture() *admissionFixture {
	profiles := newFakeProfileRepo()
	beds := newFakeBedRepo()
	admissions := newFakeAdmissionRepo(beds, profiles)
	return &admissionFixture{
		profiles:   profiles,
		beds:       beds,
		admissions: admissions,
		service:    NewAdmissionService(profiles, beds, admissions),
	}
}

func (fx *admissionFixture) addPatient(t *testing.T, userID int64, name string) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		ID:     uuid.New().String(),
		UserID: userID,
		User:   models.User{ID: userID, Name: name},
	}
	require.NoError(t, fx.profiles.CreatePatient(context.Background(), patient))
	return patient
}

func (fx *admissionFixture) addDoctor(t *testing.T, userID int64, name string) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{
		ID:             uuid.New().String(),
		UserID:         userID,
		User:           models.User{ID: userID, Name: name},
		Specialization: "General Medicine",
		Department:     "Internal Medicine",
	}
	require.NoError(t, fx.profiles.CreateDoctor(context.Background(), doctor))
	return doctor
}

func (fx *admissionFixture) addBed(t *testing.T, number, bedType, status string) *models.Bed {
	t.Helper()
	bed := &models.Bed{
		ID:        uuid.New().String(),
		BedNumber: number,
		Type:      bedType,
		Ward:      "East Wing",
		Status:    status,
		Price:     500,
	}
	require.NoError(t, fx.beds.Create(context.Background(), bed))
	return bed
}

func admissionRequest(doctorID, bedNumber, bedType string) utils.AdmissionRequestData {
	return utils.AdmissionRequestData{
		DoctorID:  doctorID,
		Diagnosis: "Acute appendicitis",
		BedNumber: bedNumber,
		BedType:   bedType,
	}
}

func TestRequestAdmission(t *testing.T) {
	fx := newAdmissionFixture()
	patient := fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	view, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)

	assert.Equal(t, "B-101", view.BedNumber)
	assert.Equal(t, models.BedTypeICU, view.BedType)
	assert.Equal(t, models.AdmissionAdmitted, view.Status)
	assert.Equal(t, "Jordan Blake", view.PatientName)
	assert.Equal(t, "Dr. Amara Osei", view.DoctorName)
	assert.Nil(t, view.DischargeDate)

	bed, err := fx.beds.GetByNumber(context.Background(), "B-101")
	require.NoError(t, err)
	assert.Equal(t, models.BedReserved, bed.Status)

	open, err := fx.admissions.HasOpenForPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.True(t, open)
}

func TestRequestAdmissionBedNotAvailable(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedOccupied)

	_, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	assert.ErrorIs(t, err, repositories.ErrBedNotAvailable)

	// Failure leaves no partial state behind.
	all, listErr := fx.admissions.ListAll(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestRequestAdmissionUnknownBed(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")

	_, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-404", models.BedTypeICU))
	assert.ErrorIs(t, err, repositories.ErrBedNotFound)
}

func TestRequestAdmissionBedTypeMismatch(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeGeneral, models.BedAvailable)

	// Same bed number requested as the wrong type resolves to no bed.
	_, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	assert.ErrorIs(t, err, repositories.ErrBedNotFound)
}

func TestRequestAdmissionUnknownDoctor(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	_, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(uuid.New().String(), "B-101", models.BedTypeICU))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRequestAdmissionNoPatientProfile(t *testing.T) {
	fx := newAdmissionFixture()
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	_, err := fx.service.RequestAdmission(context.Background(), 99, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestRequestAdmissionRejectsSecondOpenAdmission(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)
	fx.addBed(t, "B-102", models.BedTypeICU, models.BedAvailable)

	_, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)

	_, err = fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-102", models.BedTypeICU))
	assert.ErrorIs(t, err, ErrAdmissionOpen)

	// The second bed stays untouched.
	bed, err := fx.beds.GetByNumber(context.Background(), "B-102")
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)
}

func TestRequestAdmissionValidation(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")

	req := admissionRequest(doctor.ID, "B-101", "Penthouse")
	_, err := fx.service.RequestAdmission(context.Background(), 1, req)
	assert.Error(t, err)

	req = admissionRequest(doctor.ID, "B-101", models.BedTypeICU)
	req.Diagnosis = ""
	_, err = fx.service.RequestAdmission(context.Background(), 1, req)
	assert.Error(t, err)
}

func TestDischargeLifecycle(t *testing.T) {
	fx := newAdmissionFixture()
	fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	admitted, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)

	discharged, err := fx.service.Discharge(context.Background(), admitted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdmissionDischarged, discharged.Status)
	require.NotNil(t, discharged.DischargeDate)
	assert.False(t, discharged.DischargeDate.Before(discharged.AdmissionDate))

	bed, err := fx.beds.GetByNumber(context.Background(), "B-101")
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)

	// Discharging a closed admission is a conflict.
	_, err = fx.service.Discharge(context.Background(), admitted.ID)
	assert.ErrorIs(t, err, repositories.ErrAlreadyDischarged)
}

func TestDischargeUnknownAdmission(t *testing.T) {
	fx := newAdmissionFixture()
	_, err := fx.service.Discharge(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, repositories.ErrAdmissionNotFound)
}

func TestReadmissionAfterDischarge(t *testing.T) {
	fx := newAdmissionFixture()
	patient := fx.addPatient(t, 1, "Jordan Blake")
	doctor := fx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	first, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)
	_, err = fx.service.Discharge(context.Background(), first.ID)
	require.NoError(t, err)

	// The released bed can be requested again by the same patient.
	second, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	summary, err := fx.service.ListForPatient(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, summary.CurrentAdmission)
	assert.Equal(t, second.ID, summary.CurrentAdmission.ID)
	require.Len(t, summary.AdmissionHistory, 1)
	assert.Equal(t, first.ID, summary.AdmissionHistory[0].ID)
	assert.Equal(t, patient.ID, summary.CurrentAdmission.PatientID)
}

func TestConcurrentRequestsSingleWinner(t *testing.T) {
	const workers = 8

	fx := newAdmissionFixture()
	doctor := fx.addDoctor(t, 100, "Dr. Amara Osei")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

	for i := int64(1); i <= workers; i++ {
		fx.addPatient(t, i, "Patient")
	}

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := int64(1); i <= workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := fx.service.RequestAdmission(context.Background(), userID, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, repositories.ErrBedNotAvailable):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	bed, err := fx.beds.GetByNumber(context.Background(), "B-101")
	require.NoError(t, err)
	assert.Equal(t, models.BedReserved, bed.Status)

	all, err := fx.admissions.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConcurrentDeleteAndAdmit(t *testing.T) {
	const rounds = 20

	for i := 0; i < rounds; i++ {
		fx := newAdmissionFixture()
		bedSvc := NewBedService(fx.beds)
		doctor := fx.addDoctor(t, 100, "Dr. Amara Osei")
		fx.addPatient(t, 1, "Jordan Blake")
		fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)

		var wg sync.WaitGroup
		var admitErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, admitErr = fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctor.ID, "B-101", models.BedTypeICU))
		}()
		go func() {
			defer wg.Done()
			deleteErr = bedSvc.DeleteBed(context.Background(), "B-101")
		}()
		wg.Wait()

		// The two commands serialize on the bed: whichever wins, an open
		// admission must never end up referencing a deleted bed.
		if deleteErr == nil {
			require.Error(t, admitErr)
			all, err := fx.admissions.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		} else {
			require.NoError(t, admitErr)
			assert.ErrorIs(t, deleteErr, repositories.ErrBedHasOpenAdmission)
			bed, err := fx.beds.GetByNumber(context.Background(), "B-101")
			require.NoError(t, err)
			require.NotNil(t, bed)
			assert.Equal(t, models.BedReserved, bed.Status)
		}
	}
}

func TestAdmissionListsAreRoleScoped(t *testing.T) {
	fx := newAdmissionFixture()
	patientA := fx.addPatient(t, 1, "Jordan Blake")
	patientB := fx.addPatient(t, 2, "Sam Reyes")
	doctorA := fx.addDoctor(t, 10, "Dr. Amara Osei")
	doctorB := fx.addDoctor(t, 11, "Dr. Felix Hahn")
	fx.addBed(t, "B-101", models.BedTypeICU, models.BedAvailable)
	fx.addBed(t, "B-102", models.BedTypeGeneral, models.BedAvailable)

	admA, err := fx.service.RequestAdmission(context.Background(), 1, admissionRequest(doctorA.ID, "B-101", models.BedTypeICU))
	require.NoError(t, err)
	admB, err := fx.service.RequestAdmission(context.Background(), 2, admissionRequest(doctorB.ID, "B-102", models.BedTypeGeneral))
	require.NoError(t, err)

	summary, err := fx.service.ListForPatient(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, summary.CurrentAdmission)
	assert.Equal(t, admA.ID, summary.CurrentAdmission.ID)
	assert.Equal(t, patientA.ID, summary.CurrentAdmission.PatientID)
	assert.Empty(t, summary.AdmissionHistory)

	doctorAdmissions, err := fx.service.ListForDoctor(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, doctorAdmissions, 1)
	assert.Equal(t, admB.ID, doctorAdmissions[0].ID)
	assert.Equal(t, patientB.ID, doctorAdmissions[0].PatientID)

	all, err := fx.service.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListForPatientWithoutProfile(t *testing.T) {
	fx := newAdmissionFixture()
	_, err := fx.service.ListForPatient(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
