// internal/handlers/waitlist_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/store"
)

type JoinWaitlistRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Urgency  string `json:"urgency" binding:"required,oneof=low medium high"`
}

func estimatedWait(position int) string {
	days := 2*position - 1
	if days <= 1 {
		return "~1 day"
	}
	return fmt.Sprintf("~%d days", days)
}

func (h *Handler) ListWaitlist(c *gin.Context) {
	entries, err := h.Repos.Waitlist.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// JoinWaitlist queues the patient behind everyone already waiting for the
// same doctor.
func (h *Handler) JoinWaitlist(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	doctor, err := h.Repos.Doctors.Get(ctx, req.DoctorID)
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}

	entries, err := h.Repos.Waitlist.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	position := 1
	for _, e := range entries {
		if e.DoctorID == doctor.ID {
			position++
		}
	}

	entry := models.WaitlistEntry{
		ID:            store.NewID(),
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		Specialty:     doctor.Title,
		RequestDate:   h.now(),
		Urgency:       models.Urgency(req.Urgency),
		Position:      position,
		EstimatedWait: estimatedWait(position),
	}
	if err := h.Repos.Waitlist.Insert(ctx, entry); err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LeaveWaitlist removes the entry and moves everyone behind it up one place.
func (h *Handler) LeaveWaitlist(c *gin.Context) {
	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	removed, err := h.Repos.Waitlist.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	if err := h.Repos.Waitlist.Delete(ctx, removed.ID); err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}

	entries, err := h.Repos.Waitlist.List(ctx)
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	for _, e := range entries {
		if e.DoctorID != removed.DoctorID || e.Position <= removed.Position {
			continue
		}
		e.Position--
		e.EstimatedWait = estimatedWait(e.Position)
		if err := h.Repos.Waitlist.Update(ctx, e); err != nil {
			h.respondStoreError(c, err, "Waitlist entry")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from waitlist"})
}

// RequestEmergency raises a waitlist entry to high urgency and files an
// emergency request for the doctor to review.
func (h *Handler) RequestEmergency(c *gin.Context) {
	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, err := h.Repos.Waitlist.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}
	if entry.Urgency == models.UrgencyHigh {
		conflict(c, "An emergency request was already made for this entry")
		return
	}

	email := currentEmail(c)
	patientName := email
	user, err := store.Find(ctx, h.Repos.Users, func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	switch {
	case err == nil:
		patientName = user.Name
	case !errors.Is(err, store.ErrNotFound):
		h.respondStoreError(c, err, "User")
		return
	}

	request := models.EmergencyRequest{
		ID:          store.NewID(),
		PatientName: patientName,
		Reason:      "Emergency appointment requested from the waitlist for " + entry.DoctorName,
		RequestedAt: h.now(),
		Priority:    models.UrgencyHigh,
		Status:      models.EmergencyPending,
	}
	if err := h.Repos.Emergencies.Insert(ctx, request); err != nil {
		h.respondStoreError(c, err, "Emergency request")
		return
	}

	entry.Urgency = models.UrgencyHigh
	if err := h.Repos.Waitlist.Update(ctx, entry); err != nil {
		if rbErr := h.Repos.Emergencies.Delete(ctx, request.ID); rbErr != nil {
			h.Log.Error().Err(rbErr).Str("request_id", request.ID).Msg("failed to withdraw emergency request")
		}
		h.respondStoreError(c, err, "Waitlist entry")
		return
	}

	waiting := 0
	if entries, err := h.Repos.Waitlist.List(ctx); err == nil {
		for _, e := range entries {
			if e.DoctorID == entry.DoctorID {
				waiting++
			}
		}
	}
	h.recordActivity(c, models.Activity{
		Type:      models.ActivityWaitlistUpdate,
		Count:     waiting,
		Specialty: entry.Specialty,
	})

	c.JSON(http.StatusOK, gin.H{"entry": entry, "emergencyRequest": request})
}
