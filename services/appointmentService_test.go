package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	profiles     *fakeProfileRepo
	appointments *fakeAppointmentRepo
	service      *AppointmentService
}

func newAppointmentFixture() *appointmentFixture {
	profiles := newFakeProfileRepo()
	appointments := newFakeAppointmentRepo()
	return &appointmentFixture{
		profiles:     profiles,
		appointments: appointments,
		service:      NewAppointmentService(profiles, appointments),
	}
}

func (fx *appointmentFixture) seed(t *testing.T) (*models.Patient, *models.Doctor) {
	t.Helper()
	admFx := &admissionFixture{profiles: fx.profiles}
	patient := admFx.addPatient(t, 1, "Jordan Blake")
	doctor := admFx.addDoctor(t, 2, "Dr. Amara Osei")
	fx.appointments.patientsByID[patient.ID] = patient
	return patient, doctor
}

func TestBookAppointment(t *testing.T) {
	fx := newAppointmentFixture()
	patient, doctor := fx.seed(t)

	appointment, err := fx.service.Book(context.Background(), 1, BookAppointmentRequest{
		DoctorID: doctor.ID,
		Date:     time.Now().Add(48 * time.Hour),
		Reason:   "Persistent migraine",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)
	assert.Equal(t, patient.ID, appointment.PatientID)
	assert.NotEmpty(t, appointment.ID)
}

func TestBookAppointmentValidation(t *testing.T) {
	fx := newAppointmentFixture()
	_, doctor := fx.seed(t)

	_, err := fx.service.Book(context.Background(), 1, BookAppointmentRequest{
		DoctorID: doctor.ID,
		Date:     time.Now().Add(48 * time.Hour),
	})
	assert.Error(t, err)
}

func TestCancelAppointmentOwnership(t *testing.T) {
	fx := newAppointmentFixture()
	_, doctor := fx.seed(t)
	admFx := &admissionFixture{profiles: fx.profiles}
	admFx.addPatient(t, 5, "Sam Reyes")

	appointment, err := fx.service.Book(context.Background(), 1, BookAppointmentRequest{
		DoctorID: doctor.ID,
		Date:     time.Now().Add(48 * time.Hour),
		Reason:   "Persistent migraine",
	})
	require.NoError(t, err)

	// Another patient cannot cancel it.
	err = fx.service.Cancel(context.Background(), 5, appointment.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The owner can.
	require.NoError(t, fx.service.Cancel(context.Background(), 1, appointment.ID))

	stored, err := fx.appointments.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, stored.Status)

	// A second cancel loses the conditional update and conflicts.
	err = fx.service.Cancel(context.Background(), 1, appointment.ID)
	assert.ErrorIs(t, err, repositories.ErrStatusConflict)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	fx := newAppointmentFixture()
	_, doctor := fx.seed(t)
	admFx := &admissionFixture{profiles: fx.profiles}
	otherDoctor := admFx.addDoctor(t, 20, "Dr. Felix Hahn")

	appointment, err := fx.service.Book(context.Background(), 1, BookAppointmentRequest{
		DoctorID: doctor.ID,
		Date:     time.Now().Add(48 * time.Hour),
		Reason:   "Persistent migraine",
	})
	require.NoError(t, err)

	// A doctor who does not own the appointment is rejected.
	err = fx.service.UpdateStatus(context.Background(), otherDoctor.UserID, appointment.ID, models.AppointmentCompleted)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Invalid target status is rejected before any lookup.
	err = fx.service.UpdateStatus(context.Background(), doctor.UserID, appointment.ID, "Rescheduled")
	assert.Error(t, err)

	require.NoError(t, fx.service.UpdateStatus(context.Background(), doctor.UserID, appointment.ID, models.AppointmentCompleted))

	stored, err := fx.appointments.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, stored.Status)
}

func TestPatientsForDoctor(t *testing.T) {
	fx := newAppointmentFixture()
	patient, doctor := fx.seed(t)

	for i := 0; i < 3; i++ {
		_, err := fx.service.Book(context.Background(), 1, BookAppointmentRequest{
			DoctorID: doctor.ID,
			Date:     time.Now().Add(time.Duration(i+1) * 24 * time.Hour),
			Reason:   "Follow-up",
		})
		require.NoError(t, err)
	}

	patients, err := fx.service.PatientsForDoctor(context.Background(), doctor.UserID)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, patient.ID, patients[0].ID)
}
