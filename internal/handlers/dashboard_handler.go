// internal/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/analytics"
	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/search"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
)

const (
	dashboardPreview   = 3
	recentActivityFeed = 5
)

func firstN[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// recordActivity appends to the admin feed. Failures are logged, not
// surfaced, since the action that triggered them already succeeded.
func (h *Handler) recordActivity(c *gin.Context, a models.Activity) {
	a.ID = store.NewID()
	a.At = h.now()
	if err := h.Repos.Activities.Insert(c.Request.Context(), a); err != nil {
		h.Log.Warn().Err(err).Str("type", string(a.Type)).Msg("failed to record activity")
	}
}

func (h *Handler) PatientDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	appointments, err := h.Repos.Appointments.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	doctors, err := h.Repos.Doctors.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	waitlist, err := h.Repos.Waitlist.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}

	upcoming := search.FilterAppointments(appointments, search.TabUpcoming, search.KindAll)
	c.JSON(http.StatusOK, gin.H{
		"upcomingAppointments": models.AppointmentViews(firstN(upcoming, dashboardPreview), session.RolePatient),
		"recommendedDoctors":   firstN(search.FindDoctors(doctors, "", "", search.SortByRating), dashboardPreview),
		"waitlist":             waitlist,
	})
}

func (h *Handler) DoctorDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	appointments, err := h.Repos.Appointments.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	requests, err := h.Repos.Emergencies.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Emergency request")
		return
	}
	patients, err := h.Repos.Patients.Count(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Patient")
		return
	}

	pending := make([]models.EmergencyRequest, 0)
	for _, r := range requests {
		if r.Status == models.EmergencyPending {
			pending = append(pending, r)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].RequestedAt.After(pending[j].RequestedAt)
	})

	today := search.OnDay(appointments, h.now())
	c.JSON(http.StatusOK, gin.H{
		"todayAppointments": models.AppointmentViews(today, session.RoleDoctor),
		"emergencyRequests": pending,
		"stats": gin.H{
			"todayAppointments":  len(today),
			"pendingEmergencies": len(pending),
			"totalPatients":      patients,
		},
	})
}

// SystemStats are the admin dashboard counters.
type SystemStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalDoctors      int `json:"totalDoctors"`
	TotalAppointments int `json:"totalAppointments"`
	ActiveWaitlists   int `json:"activeWaitlists"`
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var stats SystemStats
	counters := []struct {
		name  string
		count func() (int, error)
		dst   *int
	}{
		{"User", func() (int, error) { return h.Repos.Users.Count(ctx) }, &stats.TotalUsers},
		{"Doctor", func() (int, error) { return h.Repos.Doctors.Count(ctx) }, &stats.TotalDoctors},
		{"Appointment", func() (int, error) { return h.Repos.Appointments.Count(ctx) }, &stats.TotalAppointments},
		{"Waitlist entry", func() (int, error) { return h.Repos.Waitlist.Count(ctx) }, &stats.ActiveWaitlists},
	}
	for _, counter := range counters {
		n, err := counter.count()
		if err != nil {
			h.respondStoreError(c, err, counter.name)
			return
		}
		*counter.dst = n
	}

	activities, err := h.Repos.Activities.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Activity")
		return
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].At.After(activities[j].At)
	})

	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recentActivities": firstN(activities, recentActivityFeed),
	})
}

func parsePeriod(c *gin.Context) (analytics.Period, bool) {
	switch p := c.DefaultQuery("period", string(analytics.PeriodYear)); p {
	case string(analytics.PeriodMonth), string(analytics.PeriodQuarter), string(analytics.PeriodYear):
		return analytics.ParsePeriod(p), true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "period must be month, quarter or year"})
	return "", false
}

func (h *Handler) Analytics(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Window(period))
}

// ExportAnalytics downloads the monthly series as CSV.
func (h *Handler) ExportAnalytics(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="analytics-`+string(period)+`.csv"`)
	c.Status(http.StatusOK)
	if err := analytics.WriteCSV(c.Writer, analytics.Window(period)); err != nil {
		h.Log.Error().Err(err).Msg("failed to write analytics export")
		_ = c.Error(err)
	}
}
