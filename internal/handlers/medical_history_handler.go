// internal/handlers/medical_history_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/search"
)

func (h *Handler) MedicalHistory(c *gin.Context) {
	order := search.NoteOrder(c.DefaultQuery("sort", string(search.NewestFirst)))
	if order != search.NewestFirst && order != search.OldestFirst {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be newest or oldest"})
		return
	}

	notes, err := h.Repos.MedicalNotes.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Medical note")
		return
	}
	list := search.FilterNotes(notes, c.Query("specialty"), order)
	// The full note is only served by the detail route.
	for i := range list {
		list[i].FullNote = ""
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) MedicalNote(c *gin.Context) {
	note, err := h.Repos.MedicalNotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Medical note")
		return
	}
	c.JSON(http.StatusOK, note)
}
