// internal/handlers/appointment_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/search"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
)

type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,clock"`
	VisitType string `json:"visitType"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Time string `json:"time" binding:"required,clock"`
}

type AppointmentNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

func parseAppointmentTab(s string) (search.AppointmentTab, bool) {
	switch t := search.AppointmentTab(s); t {
	case "", search.TabUpcoming, search.TabPast:
		return t, true
	}
	return "", false
}

func parseAppointmentKind(s string) (search.AppointmentKind, bool) {
	switch k := search.AppointmentKind(s); k {
	case "", search.KindAll, search.KindRegular, search.KindEmergency, search.KindFollowUp:
		return k, true
	}
	return "", false
}

// BookAppointment takes one of the doctor's open slots.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	email := currentEmail(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	doctor, err := h.Repos.Doctors.Get(ctx, req.DoctorID)
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	if doctor.Status != models.UserActive {
		conflict(c, "Doctor is not accepting appointments")
		return
	}
	if doctor.AvailableSlots <= 0 {
		conflict(c, "No available slots for this doctor")
		return
	}

	patientName, phone := email, ""
	user, err := store.Find(ctx, h.Repos.Users, func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	switch {
	case err == nil:
		patientName, phone = user.Name, user.Phone
	case !errors.Is(err, store.ErrNotFound):
		h.respondStoreError(c, err, "User")
		return
	}

	visitType := req.VisitType
	if visitType == "" {
		visitType = "Consultation"
	}
	apt := models.Appointment{
		ID:          store.NewID(),
		PatientName: patientName,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Specialty:   doctor.Title,
		VisitType:   visitType,
		Date:        date,
		Time:        req.Time,
		Status:      models.AppointmentUpcoming,
	}

	if err := h.Repos.Appointments.Insert(ctx, apt); err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	doctor.AvailableSlots--
	if err := h.Repos.Doctors.Update(ctx, doctor); err != nil {
		if rbErr := h.Repos.Appointments.Delete(ctx, apt.ID); rbErr != nil {
			h.Log.Error().Err(rbErr).Str("appointment_id", apt.ID).Msg("failed to remove appointment after slot update failed")
		}
		h.respondStoreError(c, err, "Doctor")
		return
	}

	h.NotificationSvc.SendAppointmentConfirmationSMS(phone, apt)

	c.JSON(http.StatusCreated, apt.ViewFor(session.RolePatient))
}

func (h *Handler) listAppointments(c *gin.Context, role session.Role, kind search.AppointmentKind) {
	tab, ok := parseAppointmentTab(c.Query("tab"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be upcoming or past"})
		return
	}

	appointments, err := h.Repos.Appointments.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}

	filtered := search.FilterAppointments(appointments, tab, kind)
	c.JSON(http.StatusOK, models.AppointmentViews(filtered, role))
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	h.listAppointments(c, session.RolePatient, search.KindAll)
}

func (h *Handler) DoctorAppointments(c *gin.Context) {
	kind, ok := parseAppointmentKind(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be all, regular, emergency or followup"})
		return
	}
	h.listAppointments(c, session.RoleDoctor, kind)
}

// CancelAppointment is shared by patients and doctors; the response is
// shaped for whoever asked. The doctor gets the slot back.
func (h *Handler) CancelAppointment(c *gin.Context) {
	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	apt, err := h.Repos.Appointments.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	if !apt.IsUpcoming() {
		conflict(c, "Only upcoming appointments can be cancelled")
		return
	}

	apt.Status = models.AppointmentCancelled
	if err := h.Repos.Appointments.Update(ctx, apt); err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	h.releaseSlot(c, apt.DoctorID)
	c.JSON(http.StatusOK, apt.ViewFor(middleware.CurrentFlags(c).Role))
}

// releaseSlot returns one slot to the doctor. The cancellation already
// succeeded, so failures are only logged.
func (h *Handler) releaseSlot(c *gin.Context, doctorID string) {
	ctx := c.Request.Context()
	doctor, err := h.Repos.Doctors.Get(ctx, doctorID)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err == nil {
		doctor.AvailableSlots++
		err = h.Repos.Doctors.Update(ctx, doctor)
	}
	if err != nil {
		h.Log.Warn().Err(err).Str("doctor_id", doctorID).Msg("failed to release appointment slot")
	}
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	apt, err := h.Repos.Appointments.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	if apt.Status != models.AppointmentUpcoming {
		conflict(c, "Only upcoming appointments can be rescheduled")
		return
	}

	apt.Date = date
	apt.Time = req.Time
	if err := h.Repos.Appointments.Update(ctx, apt); err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, apt.ViewFor(session.RolePatient))
}

func (h *Handler) AppointmentNotes(c *gin.Context) {
	apt, err := h.Repos.Appointments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": apt.ID, "notes": apt.Notes})
}

// AddAppointmentNotes records the doctor's notes on a finished visit.
func (h *Handler) AddAppointmentNotes(c *gin.Context) {
	var req AppointmentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	apt, err := h.Repos.Appointments.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	if apt.Status != models.AppointmentCompleted {
		conflict(c, "Notes can only be added to completed appointments")
		return
	}

	apt.Notes = req.Notes
	if err := h.Repos.Appointments.Update(ctx, apt); err != nil {
		h.respondStoreError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, apt.ViewFor(session.RoleDoctor))
}
