package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/core/domain"
)

type appointmentServiceFixture struct {
	svc           *AppointmentService
	appointments  *fakeAppointmentRepo
	patients      *fakePatientRepo
	doctors       *fakeDoctorRepo
	departments   *fakeDepartmentRepo
	notifications *fakeNotificationRepo

	patientID    uint
	doctorID     uint
	departmentID uint
}

func newAppointmentServiceFixture(t *testing.T) *appointmentServiceFixture {
	t.Helper()
	patients := newFakePatientRepo()
	doctors := newFakeDoctorRepo()
	departments := newFakeDepartmentRepo()
	appointments := newFakeAppointmentRepo(patients, doctors)
	notifications := newFakeNotificationRepo()

	department := &models.Department{Name: "Cardiology", IsOpen: true, MaxQueueSize: 50}
	require.NoError(t, departments.Create(context.Background(), department))
	doctor := &models.Doctor{Name: "Asha Mehta", DepartmentID: department.ID}
	require.NoError(t, doctors.Create(context.Background(), doctor))
	patient := &models.Patient{Name: "Ravi", Phone: "555-0002"}
	require.NoError(t, patients.Create(context.Background(), patient))

	return &appointmentServiceFixture{
		svc:           NewAppointmentService(appointments, patients, doctors, departments, NewNotifierService(notifications)),
		appointments:  appointments,
		patients:      patients,
		doctors:       doctors,
		departments:   departments,
		notifications: notifications,
		patientID:     patient.ID,
		doctorID:      doctor.ID,
		departmentID:  department.ID,
	}
}

func (f *appointmentServiceFixture) bookingInput() *CreateAppointmentInput {
	return &CreateAppointmentInput{
		PatientID:       f.patientID,
		DoctorID:        f.doctorID,
		DepartmentID:    f.departmentID,
		AppointmentDate: "2026-09-15",
		TimeSlot:        "10:30",
		Reason:          "follow-up",
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	appointment, err := f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusScheduled, appointment.Status)
	assert.Equal(t, "10:30", appointment.TimeSlot)
	assert.Equal(t, "2026-09-15", appointment.AppointmentDate.Format("2006-01-02"))

	// Booking confirmation goes to the patient.
	all := f.notifications.all()
	require.Len(t, all, 1)
	assert.Equal(t, f.patientID, all[0].PatientID)
	assert.Contains(t, all[0].Message, "Dr. Asha Mehta")
	assert.Contains(t, all[0].Message, "2026-09-15")
}

func TestCreateAppointment_Validation(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	badDate := f.bookingInput()
	badDate.AppointmentDate = "15/09/2026"
	blankSlot := f.bookingInput()
	blankSlot.TimeSlot = "  "
	noPatient := f.bookingInput()
	noPatient.PatientID = 999
	noDoctor := f.bookingInput()
	noDoctor.DoctorID = 999
	noDepartment := f.bookingInput()
	noDepartment.DepartmentID = 999

	cases := []struct {
		name  string
		input *CreateAppointmentInput
		want  error
	}{
		{"nil input", nil, domain.ErrInvalidInput},
		{"bad date format", badDate, domain.ErrInvalidInput},
		{"blank time slot", blankSlot, domain.ErrInvalidInput},
		{"unknown patient", noPatient, domain.ErrPatientNotFound},
		{"unknown doctor", noDoctor, domain.ErrDoctorNotFound},
		{"unknown department", noDepartment, domain.ErrDepartmentNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateAppointment(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateAppointment(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	appointment, err := f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)

	confirmed := models.AppointmentStatusConfirmed
	newSlot := "11:00"
	updated, err := f.svc.UpdateAppointment(context.Background(), appointment.ID, &UpdateAppointmentInput{
		Status:   &confirmed,
		TimeSlot: &newSlot,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, updated.Status)
	assert.Equal(t, "11:00", updated.TimeSlot)

	bogus := "no-show"
	_, err = f.svc.UpdateAppointment(context.Background(), appointment.ID, &UpdateAppointmentInput{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badDate := "tomorrow"
	_, err = f.svc.UpdateAppointment(context.Background(), appointment.ID, &UpdateAppointmentInput{AppointmentDate: &badDate})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.UpdateAppointment(context.Background(), 999, &UpdateAppointmentInput{Status: &confirmed})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	// No fields set leaves the record untouched.
	same, err := f.svc.UpdateAppointment(context.Background(), appointment.ID, &UpdateAppointmentInput{})
	require.NoError(t, err)
	assert.Equal(t, "11:00", same.TimeSlot)
}

func TestDeleteAppointment(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	appointment, err := f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAppointment(context.Background(), appointment.ID))
	assert.ErrorIs(t, f.svc.DeleteAppointment(context.Background(), appointment.ID), domain.ErrAppointmentNotFound)

	_, err = f.svc.GetAppointment(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestListAppointments_Filter(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)
	other := f.bookingInput()
	other.AppointmentDate = "2026-09-16"
	_, err = f.svc.CreateAppointment(context.Background(), other)
	require.NoError(t, err)

	day, err := time.ParseInLocation("2006-01-02", "2026-09-15", time.Local)
	require.NoError(t, err)

	rows, total, err := f.svc.ListAppointments(context.Background(), repositories.AppointmentFilter{Date: day}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-09-15", rows[0].AppointmentDate.Format("2006-01-02"))

	rows, total, err = f.svc.ListAppointments(context.Background(), repositories.AppointmentFilter{DoctorID: f.doctorID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)
}

func TestSendReminders(t *testing.T) {
	f := newAppointmentServiceFixture(t)

	first, err := f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)
	_, err = f.svc.CreateAppointment(context.Background(), f.bookingInput())
	require.NoError(t, err)

	otherDay := f.bookingInput()
	otherDay.AppointmentDate = "2026-09-20"
	_, err = f.svc.CreateAppointment(context.Background(), otherDay)
	require.NoError(t, err)

	// Cancelled visits get no reminder.
	cancelled := models.AppointmentStatusCancelled
	_, err = f.svc.UpdateAppointment(context.Background(), first.ID, &UpdateAppointmentInput{Status: &cancelled})
	require.NoError(t, err)

	before := len(f.notifications.all())

	// The scheduler passes a mid-morning instant, not midnight; any instant
	// within the day must select that whole local day.
	day := time.Date(2026, time.September, 15, 8, 30, 0, 0, time.Local)
	sent, err := f.svc.SendReminders(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	all := f.notifications.all()
	require.Len(t, all, before+1)
	assert.Contains(t, all[len(all)-1].Message, "Reminder")
}
