package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/healthease-api/internal/models"
)

type patientDashboard struct {
	UpcomingAppointments []models.AppointmentView `json:"upcomingAppointments"`
	RecommendedDoctors   []models.Doctor          `json:"recommendedDoctors"`
	Waitlist             []models.WaitlistEntry   `json:"waitlist"`
}

func TestPatientDashboard(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodGet, "/api/patient/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	dash := decode[patientDashboard](t, w)
	require.Len(t, dash.UpcomingAppointments, 3)
	assert.Equal(t, "7", dash.UpcomingAppointments[0].ID)
	assert.Equal(t, "Dr. Mohammad Al-Khalil", dash.UpcomingAppointments[0].Counterpart)

	require.Len(t, dash.RecommendedDoctors, 3)
	assert.Equal(t, "103", dash.RecommendedDoctors[0].ID)
	assert.Len(t, dash.Waitlist, 1)
}

func TestFindDoctorsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodGet, "/api/patient/doctors?sort=availability", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	doctors := decode[[]models.Doctor](t, w)
	require.Len(t, doctors, 6)
	assert.Equal(t, "104", doctors[0].ID)

	w = ts.do(t, http.MethodGet, "/api/patient/doctors?q=omar&specialty=All%20Specialties", nil, token)
	doctors = decode[[]models.Doctor](t, w)
	require.Len(t, doctors, 1)
	assert.Equal(t, "106", doctors[0].ID)

	w = ts.do(t, http.MethodGet, "/api/patient/doctors?q=zzz", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/patient/doctors?sort=price", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAppointment(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "sarah.johnson@example.com")
	ctx := context.Background()

	body := gin.H{"doctorId": "103", "date": "2025-04-20", "time": "10:00 AM"}
	w := ts.do(t, http.MethodPost, "/api/patient/appointments", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	view := decode[models.AppointmentView](t, w)
	assert.Equal(t, "Dr. Mohammad Al-Khalil", view.Counterpart)
	assert.Equal(t, "April 20, 2025", view.Date)
	assert.Equal(t, models.AppointmentUpcoming, view.Status)

	apt, err := ts.repos.Appointments.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", apt.PatientName)

	doctor, err := ts.repos.Doctors.Get(ctx, "103")
	require.NoError(t, err)
	assert.Equal(t, 0, doctor.AvailableSlots)

	ts.notifier.Wait()
	sms := ts.sms.all()
	require.Len(t, sms, 1)
	assert.Equal(t, "(555) 123-4567", sms[0].Recipient)

	// The only slot is gone now.
	w = ts.do(t, http.MethodPost, "/api/patient/appointments", body, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["doctorId"] = "107"
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/patient/appointments", body, token).Code)

	body["doctorId"] = "999"
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/patient/appointments", body, token).Code)

	body["doctorId"] = "104"
	body["time"] = "25:00"
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/patient/appointments", body, token).Code)

	body["time"] = "9:00 AM"
	body["date"] = "20/04/2025"
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/patient/appointments", body, token).Code)
}

func TestBookingKeepsSlotWhenInsertFails(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "sarah.johnson@example.com")
	ctx := context.Background()

	appointments := ts.repos.Appointments
	ts.repos.Appointments = failingInserts[models.Appointment]{appointments}

	body := gin.H{"doctorId": "103", "date": "2025-04-20", "time": "10:00 AM"}
	w := ts.do(t, http.MethodPost, "/api/patient/appointments", body, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	doctor, err := ts.repos.Doctors.Get(ctx, "103")
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.AvailableSlots)

	ts.repos.Appointments = appointments
	w = ts.do(t, http.MethodPost, "/api/patient/appointments", body, token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCancelReleasesSlot(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")
	ctx := context.Background()

	body := gin.H{"doctorId": "104", "date": "2025-04-22", "time": "9:30 AM"}
	w := ts.do(t, http.MethodPost, "/api/patient/appointments", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[models.AppointmentView](t, w).ID

	doctor, err := ts.repos.Doctors.Get(ctx, "104")
	require.NoError(t, err)
	assert.Equal(t, 4, doctor.AvailableSlots)

	w = ts.do(t, http.MethodPost, "/api/patient/appointments/"+id+"/cancel", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	doctor, err = ts.repos.Doctors.Get(ctx, "104")
	require.NoError(t, err)
	assert.Equal(t, 5, doctor.AvailableSlots)
}

func TestPatientAppointmentTabs(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodGet, "/api/patient/appointments?tab=past", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	past := decode[[]models.AppointmentView](t, w)
	require.Len(t, past, 3)
	assert.Equal(t, "Doctor Appointment", past[0].Title)
	assert.Equal(t, "Cardiologist", past[0].Detail)

	w = ts.do(t, http.MethodGet, "/api/patient/appointments?tab=upcoming", nil, token)
	assert.Len(t, decode[[]models.AppointmentView](t, w), 6)

	w = ts.do(t, http.MethodGet, "/api/patient/appointments?tab=later", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelAndRescheduleAppointment(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodPost, "/api/patient/appointments/1/cancel", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AppointmentCancelled, decode[models.AppointmentView](t, w).Status)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/patient/appointments/1/cancel", nil, token).Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/patient/appointments/4/cancel", nil, token).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/patient/appointments/nope/cancel", nil, token).Code)

	// Emergency bookings can be cancelled but not moved.
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/patient/appointments/9/cancel", nil, token).Code)

	move := gin.H{"date": "2025-05-02", "time": "11:00 AM"}
	w = ts.do(t, http.MethodPost, "/api/patient/appointments/2/reschedule", move, token)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.AppointmentView](t, w)
	assert.Equal(t, "May 2, 2025", view.Date)
	assert.Equal(t, "11:00 AM", view.Time)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/patient/appointments/3/reschedule", move, token).Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/patient/appointments/1/reschedule", move, token).Code)
}

func TestAppointmentNotes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodGet, "/api/patient/appointments/4/notes", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blood pressure")

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/patient/appointments/x/notes", nil, token).Code)
}

func TestWaitlistPositions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	join := func() models.WaitlistEntry {
		w := ts.do(t, http.MethodPost, "/api/patient/waitlist", gin.H{"doctorId": "101", "urgency": "low"}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[models.WaitlistEntry](t, w)
	}
	first, second, third := join(), join(), join()
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 3, third.Position)
	assert.Equal(t, "~1 day", first.EstimatedWait)

	w := ts.do(t, http.MethodDelete, "/api/patient/waitlist/"+first.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	got, err := ts.repos.Waitlist.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Position)
	got, err = ts.repos.Waitlist.Get(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Position)

	// Other doctors' queues are untouched.
	seeded, err := ts.repos.Waitlist.Get(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, 3, seeded.Position)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/api/patient/waitlist/"+first.ID, nil, token).Code)

	w = ts.do(t, http.MethodPost, "/api/patient/waitlist", gin.H{"doctorId": "101", "urgency": "urgent"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/patient/waitlist", nil, token)
	assert.Len(t, decode[[]models.WaitlistEntry](t, w), 3)
}

func TestWaitlistEmergencyRequest(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "michael.chen@example.com")
	ctx := context.Background()

	w := ts.do(t, http.MethodPost, "/api/patient/waitlist/201/emergency", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	entry, err := ts.repos.Waitlist.Get(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, models.UrgencyHigh, entry.Urgency)

	requests, err := ts.repos.Emergencies.List(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "Michael Chen", requests[1].PatientName)
	assert.Equal(t, models.EmergencyPending, requests[1].Status)

	activities, err := ts.repos.Activities.List(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 4)
	assert.Equal(t, models.ActivityWaitlistUpdate, activities[3].Type)

	w = ts.do(t, http.MethodPost, "/api/patient/waitlist/201/emergency", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWaitlistEmergencyRequestCanBeRetried(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "michael.chen@example.com")
	ctx := context.Background()

	emergencies := ts.repos.Emergencies
	ts.repos.Emergencies = failingInserts[models.EmergencyRequest]{emergencies}

	w := ts.do(t, http.MethodPost, "/api/patient/waitlist/201/emergency", nil, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entry, err := ts.repos.Waitlist.Get(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, models.UrgencyMedium, entry.Urgency)

	ts.repos.Emergencies = emergencies
	w = ts.do(t, http.MethodPost, "/api/patient/waitlist/201/emergency", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	requests, err := ts.repos.Emergencies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestMedicalHistory(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "patient", "p@x.com")

	w := ts.do(t, http.MethodGet, "/api/patient/medical-history?sort=oldest", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[[]models.MedicalNote](t, w)
	require.Len(t, notes, 3)
	assert.Equal(t, "3", notes[0].ID)
	assert.NotContains(t, w.Body.String(), "fullNote")

	w = ts.do(t, http.MethodGet, "/api/patient/medical-history?specialty=cardio", nil, token)
	notes = decode[[]models.MedicalNote](t, w)
	require.Len(t, notes, 1)
	assert.Equal(t, "Routine Checkup", notes[0].Title)

	w = ts.do(t, http.MethodGet, "/api/patient/medical-history?sort=random", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/patient/medical-history/2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[models.MedicalNote](t, w).FullNote, "eczema")

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/patient/medical-history/99", nil, token).Code)
}
