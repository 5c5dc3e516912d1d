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

type doctorDashboard struct {
	TodayAppointments []models.AppointmentView  `json:"todayAppointments"`
	EmergencyRequests []models.EmergencyRequest `json:"emergencyRequests"`
	Stats             map[string]int            `json:"stats"`
}

func TestDoctorDashboard(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "mohammad.khalil@example.com")

	w := ts.do(t, http.MethodGet, "/api/doctor/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	dash := decode[doctorDashboard](t, w)
	require.Len(t, dash.TodayAppointments, 3)
	assert.Equal(t, "Fatima Al-Ahmad", dash.TodayAppointments[0].Counterpart)
	assert.Equal(t, "Follow-up", dash.TodayAppointments[0].Detail)
	assert.Equal(t, "2:00 PM", dash.TodayAppointments[2].Time)

	require.Len(t, dash.EmergencyRequests, 1)
	assert.Equal(t, "Karim Najjar", dash.EmergencyRequests[0].PatientName)
	assert.Equal(t, 3, dash.Stats["todayAppointments"])
	assert.Equal(t, 5, dash.Stats["totalPatients"])
}

func TestDoctorAppointmentFilters(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")

	w := ts.do(t, http.MethodGet, "/api/doctor/appointments?tab=upcoming&type=followup", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]models.AppointmentView](t, w)
	require.Len(t, views, 2)
	assert.Equal(t, "Patient Appointment", views[0].Title)
	assert.Equal(t, "Fatima Al-Ahmad", views[0].Counterpart)
	assert.Equal(t, "Sarah Johnson", views[1].Counterpart)

	w = ts.do(t, http.MethodGet, "/api/doctor/appointments?type=emergency", nil, token)
	assert.Len(t, decode[[]models.AppointmentView](t, w), 3)

	w = ts.do(t, http.MethodGet, "/api/doctor/appointments?type=surgery", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAppointmentNotes(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")

	w := ts.do(t, http.MethodPost, "/api/doctor/appointments/5/notes", gin.H{"notes": "Knee healing well."}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Knee healing well.", decode[models.AppointmentView](t, w).Notes)

	w = ts.do(t, http.MethodPost, "/api/doctor/appointments/1/notes", gin.H{"notes": "Too early"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/api/doctor/appointments/5/notes", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorCancelAppointment(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")

	w := ts.do(t, http.MethodPost, "/api/doctor/appointments/8/cancel", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.AppointmentView](t, w)
	assert.Equal(t, "Yousef Mansour", view.Counterpart)
	assert.Equal(t, models.AppointmentCancelled, view.Status)
}

func TestListPatients(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")

	w := ts.do(t, http.MethodGet, "/api/doctor/patients?tab=recent", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Patient](t, w), 4)

	w = ts.do(t, http.MethodGet, "/api/doctor/patients?q=migraine", nil, token)
	patients := decode[[]models.Patient](t, w)
	require.Len(t, patients, 1)
	assert.Equal(t, "Leila Karam", patients[0].Name)

	w = ts.do(t, http.MethodGet, "/api/doctor/patients?tab=old", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/doctor/patients/1/notes", gin.H{"note": "Follow up on inhaler use"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	noted := decode[models.Patient](t, w)
	assert.Equal(t, 3, noted.Notes)
	require.Len(t, noted.NoteLog, 1)
	assert.Equal(t, "Follow up on inhaler use", noted.NoteLog[0].Text)
	assert.True(t, testNow.Equal(noted.NoteLog[0].At))

	stored, err := ts.repos.Patients.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, stored.NoteLog, 1)

	w = ts.do(t, http.MethodPost, "/api/doctor/patients/42/notes", gin.H{"note": "x"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedule(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")

	w := ts.do(t, http.MethodGet, "/api/doctor/schedule", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	day := decode[ScheduleResponse](t, w)
	assert.Equal(t, []string{"2025-04-12", "2025-04-13"}, day.Dates)
	assert.Equal(t, "2025-04-12", day.Date)
	require.Len(t, day.Slots, 4)
	assert.Equal(t, "09:00 AM", day.Slots[0].Time)
	assert.Equal(t, "03:00 PM", day.Slots[3].Time)

	w = ts.do(t, http.MethodGet, "/api/doctor/schedule?date=2025-04-13", nil, token)
	assert.Len(t, decode[ScheduleResponse](t, w).Slots, 2)

	w = ts.do(t, http.MethodGet, "/api/doctor/schedule?date=2025-06-01", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[ScheduleResponse](t, w).Slots)

	w = ts.do(t, http.MethodGet, "/api/doctor/schedule?date=tomorrow", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleTransitions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "d@x.com")
	post := func(path string, body any) int {
		return ts.do(t, http.MethodPost, path, body, token).Code
	}

	assert.Equal(t, http.StatusOK, post("/api/doctor/schedule/6/approve", nil))
	assert.Equal(t, http.StatusConflict, post("/api/doctor/schedule/6/approve", nil))

	assert.Equal(t, http.StatusOK, post("/api/doctor/schedule/1/cancel", nil))
	assert.Equal(t, http.StatusConflict, post("/api/doctor/schedule/1/cancel", nil))
	assert.Equal(t, http.StatusNotFound, post("/api/doctor/schedule/77/cancel", nil))

	// Slot 1 was cancelled, so its time is free again.
	assert.Equal(t, http.StatusCreated, post("/api/doctor/schedule/blocks", gin.H{"date": "2025-04-12", "time": "9:00 AM", "reason": "Staff meeting"}))
	assert.Equal(t, http.StatusConflict, post("/api/doctor/schedule/blocks", gin.H{"date": "2025-04-12", "time": "10:30 AM"}))
	assert.Equal(t, http.StatusBadRequest, post("/api/doctor/schedule/blocks", gin.H{"date": "2025-04-12"}))

	assert.Equal(t, http.StatusConflict, post("/api/doctor/schedule/5/reschedule", gin.H{"date": "2025-04-12", "time": "01:15 PM"}))
	assert.Equal(t, http.StatusOK, post("/api/doctor/schedule/5/reschedule", gin.H{"date": "2025-04-12", "time": "04:00 PM"}))
	assert.Equal(t, http.StatusConflict, post("/api/doctor/schedule/1/reschedule", gin.H{"date": "2025-04-14", "time": "04:00 PM"}))

	w := ts.do(t, http.MethodGet, "/api/doctor/schedule?date=2025-04-12", nil, token)
	slots := decode[ScheduleResponse](t, w).Slots
	require.Len(t, slots, 6)
	assert.Equal(t, models.SlotCancelled, slots[0].Status)
	assert.Equal(t, models.SlotBlocked, slots[1].Status)
	assert.Equal(t, "04:00 PM", slots[5].Time)
}

func TestEmergencyDecisions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "doctor", "mohammad.khalil@example.com")
	ctx := context.Background()

	w := ts.do(t, http.MethodPost, "/api/doctor/emergencies/101/approve", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.EmergencyApproved, decode[models.EmergencyRequest](t, w).Status)

	activities, err := ts.repos.Activities.List(ctx)
	require.NoError(t, err)
	last := activities[len(activities)-1]
	assert.Equal(t, models.ActivityEmergencyApproved, last.Type)
	assert.Equal(t, "Karim Najjar", last.PatientName)
	assert.Equal(t, "Dr. Mohammad Al-Khalil", last.DoctorName)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/doctor/emergencies/101/reject", nil, token).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/doctor/emergencies/5/reject", nil, token).Code)

	require.NoError(t, ts.repos.Emergencies.Insert(ctx, models.EmergencyRequest{
		ID: "102", PatientName: "Rana Saab", Priority: models.UrgencyMedium, Status: models.EmergencyPending,
	}))
	w = ts.do(t, http.MethodPost, "/api/doctor/emergencies/102/reject", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.EmergencyRejected, decode[models.EmergencyRequest](t, w).Status)

	after, err := ts.repos.Activities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(activities), after, "rejections are not posted to the feed")
}
