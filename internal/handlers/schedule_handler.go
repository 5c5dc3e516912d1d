// internal/handlers/schedule_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/search"
	"github.com/harentsoaR/healthease-api/internal/store"
)

type BlockTimeRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string `json:"time" binding:"required,clock"`
	Reason string `json:"reason"`
}

// ScheduleResponse is one day of the doctor's calendar.
type ScheduleResponse struct {
	Dates []string              `json:"dates"`
	Date  string                `json:"date"`
	Slots []models.ScheduleSlot `json:"slots"`
}

// GetSchedule shows the requested day, or the first day with slots.
func (h *Handler) GetSchedule(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := parseDay(date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	slots, err := h.Repos.Schedule.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}

	dates := search.ScheduleDates(slots)
	if dates == nil {
		dates = []string{}
	}
	if date == "" && len(dates) > 0 {
		date = dates[0]
	}
	c.JSON(http.StatusOK, ScheduleResponse{
		Dates: dates,
		Date:  date,
		Slots: search.ScheduleFor(slots, date),
	})
}

// slotTaken reports whether a live slot already occupies date and time.
func (h *Handler) slotTaken(c *gin.Context, date, clock, exceptID string) (bool, error) {
	want, _ := search.ClockMinutes(clock)
	_, err := store.Find(c.Request.Context(), h.Repos.Schedule, func(s models.ScheduleSlot) bool {
		if s.ID == exceptID || s.Status == models.SlotCancelled {
			return false
		}
		got, _ := search.ClockMinutes(s.Time)
		return s.Date.Format(models.DateLayout) == date && got == want
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// BlockTime reserves a slot nobody can book.
func (h *Handler) BlockTime(c *gin.Context) {
	var req BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	taken, err := h.slotTaken(c, req.Date, req.Time, "")
	if err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}
	if taken {
		conflict(c, "That time is already on the schedule")
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Blocked"
	}
	slot := models.ScheduleSlot{
		ID:     store.NewID(),
		Date:   date,
		Time:   req.Time,
		Status: models.SlotBlocked,
		Reason: reason,
	}
	if err := h.Repos.Schedule.Insert(c.Request.Context(), slot); err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// transitionSlot loads a slot, checks it with allow, and saves the result
// of apply. allow returns the conflict message, or "" to proceed.
func (h *Handler) transitionSlot(c *gin.Context, allow func(models.ScheduleSlot) string, apply func(*models.ScheduleSlot)) {
	ctx := c.Request.Context()
	slot, err := h.Repos.Schedule.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}
	if msg := allow(slot); msg != "" {
		conflict(c, msg)
		return
	}
	apply(&slot)
	if err := h.Repos.Schedule.Update(ctx, slot); err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *Handler) ApproveSlot(c *gin.Context) {
	h.transitionSlot(c,
		func(s models.ScheduleSlot) string {
			if s.Status != models.SlotPending {
				return "Only pending appointments can be approved"
			}
			return ""
		},
		func(s *models.ScheduleSlot) { s.Status = models.SlotConfirmed },
	)
}

func (h *Handler) CancelSlot(c *gin.Context) {
	h.transitionSlot(c,
		func(s models.ScheduleSlot) string {
			if s.Status == models.SlotCancelled {
				return "Appointment is already cancelled"
			}
			return ""
		},
		func(s *models.ScheduleSlot) { s.Status = models.SlotCancelled },
	)
}

func (h *Handler) RescheduleSlot(c *gin.Context) {
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

	h.mu.Lock()
	defer h.mu.Unlock()

	taken, err := h.slotTaken(c, req.Date, req.Time, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Schedule slot")
		return
	}
	if taken {
		conflict(c, "That time is already on the schedule")
		return
	}

	h.transitionSlot(c,
		func(s models.ScheduleSlot) string {
			if s.Status == models.SlotCancelled {
				return "Cancelled appointments cannot be rescheduled"
			}
			return ""
		},
		func(s *models.ScheduleSlot) {
			s.Date = date
			s.Time = req.Time
		},
	)
}

// decideEmergency moves a pending emergency request to status.
func (h *Handler) decideEmergency(c *gin.Context, status models.EmergencyStatus) (models.EmergencyRequest, bool) {
	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	req, err := h.Repos.Emergencies.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Emergency request")
		return req, false
	}
	if req.Status != models.EmergencyPending {
		conflict(c, "Emergency request was already "+string(req.Status))
		return req, false
	}

	req.Status = status
	if err := h.Repos.Emergencies.Update(ctx, req); err != nil {
		h.respondStoreError(c, err, "Emergency request")
		return req, false
	}
	return req, true
}

func (h *Handler) ApproveEmergency(c *gin.Context) {
	req, ok := h.decideEmergency(c, models.EmergencyApproved)
	if !ok {
		return
	}

	email := currentEmail(c)
	doctorName := email
	if doctor, err := store.Find(c.Request.Context(), h.Repos.Doctors, func(d models.Doctor) bool {
		return strings.EqualFold(d.Email, email)
	}); err == nil {
		doctorName = doctor.Name
	}
	h.recordActivity(c, models.Activity{
		Type:        models.ActivityEmergencyApproved,
		PatientName: req.PatientName,
		DoctorName:  doctorName,
	})

	c.JSON(http.StatusOK, req)
}

func (h *Handler) RejectEmergency(c *gin.Context) {
	req, ok := h.decideEmergency(c, models.EmergencyRejected)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, req)
}
