// internal/handlers/patient_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/search"
)

type PatientNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ListPatients is the doctor's patient directory.
func (h *Handler) ListPatients(c *gin.Context) {
	tab := search.PatientTab(c.DefaultQuery("tab", string(search.PatientsAll)))
	switch tab {
	case search.PatientsAll, search.PatientsUpcoming, search.PatientsRecent:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be all, upcoming or recent"})
		return
	}

	patients, err := h.Repos.Patients.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Patient")
		return
	}
	c.JSON(http.StatusOK, search.FilterPatients(patients, c.Query("q"), tab, h.now()))
}

// AddPatientNote appends a note to the patient's record.
func (h *Handler) AddPatientNote(c *gin.Context) {
	var req PatientNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	h.mu.Lock()
	defer h.mu.Unlock()

	patient, err := h.Repos.Patients.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Patient")
		return
	}
	patient.Notes++
	patient.NoteLog = append(patient.NoteLog, models.NoteEntry{
		Author: currentEmail(c),
		Text:   strings.TrimSpace(req.Note),
		At:     h.now(),
	})
	if err := h.Repos.Patients.Update(ctx, patient); err != nil {
		h.respondStoreError(c, err, "Patient")
		return
	}

	h.Log.Info().Str("patient_id", patient.ID).Str("doctor", currentEmail(c)).Msg("patient note added")
	c.JSON(http.StatusOK, patient)
}
