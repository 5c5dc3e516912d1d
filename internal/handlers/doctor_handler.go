// internal/handlers/doctor_handler.go
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

type CreateDoctorRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Specialty       string `json:"specialty" binding:"required"`
	Title           string `json:"title"`
	Clinic          string `json:"clinic" binding:"required"`
	Availability    string `json:"availability"`
	AvailableSlots  int    `json:"availableSlots" binding:"min=0"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0"`
}

type UpdateDoctorRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Specialty      string `json:"specialty"`
	Title          string `json:"title"`
	Clinic         string `json:"clinic"`
	Availability   string `json:"availability"`
	AvailableSlots *int   `json:"availableSlots" binding:"omitempty,min=0"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,userstatus"`
}

// FindDoctors is the patient's doctor search.
func (h *Handler) FindDoctors(c *gin.Context) {
	by := search.DoctorSort(c.DefaultQuery("sort", string(search.SortByRating)))
	switch by {
	case search.SortByRating, search.SortByAvailability, search.SortByExperience:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be rating, availability or experience"})
		return
	}

	doctors, err := h.Repos.Doctors.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	c.JSON(http.StatusOK, search.FindDoctors(doctors, c.Query("q"), c.Query("specialty"), by))
}

// ListDoctors is the admin directory, inactive and pending doctors included.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Repos.Doctors.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	c.JSON(http.StatusOK, search.FilterDoctors(doctors, c.Query("q"), c.Query("specialty")))
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	doctors, err := h.Repos.Doctors.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	specialties := search.Specialties(doctors)
	if specialties == nil {
		specialties = []string{}
	}
	c.JSON(http.StatusOK, specialties)
}

func (h *Handler) emailTaken(c *gin.Context, email, exceptID string) (bool, error) {
	_, err := store.Find(c.Request.Context(), h.Repos.Doctors, func(d models.Doctor) bool {
		return d.ID != exceptID && strings.EqualFold(d.Email, email)
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CreateDoctor adds an active doctor and posts it to the activity feed.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	taken, err := h.emailTaken(c, req.Email, "")
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	if taken {
		conflict(c, "A doctor with this email already exists")
		return
	}

	now := h.now()
	title := req.Title
	if title == "" {
		title = req.Specialty
	}
	doctor := models.Doctor{
		ID:              store.NewID(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialty:       req.Specialty,
		Title:           title,
		Clinic:          req.Clinic,
		Availability:    req.Availability,
		Status:          models.UserActive,
		JoinDate:        now,
		AvailableSlots:  req.AvailableSlots,
		ExperienceYears: req.ExperienceYears,
	}

	ctx := c.Request.Context()
	if err := h.Repos.Doctors.Insert(ctx, doctor); err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	h.recordActivity(c, models.Activity{
		Type:      models.ActivityNewDoctor,
		Name:      doctor.Name,
		Specialty: doctor.Title,
	})

	c.JSON(http.StatusCreated, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Repos.Doctors.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}

	if req.Email != "" && !strings.EqualFold(req.Email, doctor.Email) {
		taken, err := h.emailTaken(c, req.Email, doctor.ID)
		if err != nil {
			h.respondStoreError(c, err, "Doctor")
			return
		}
		if taken {
			conflict(c, "A doctor with this email already exists")
			return
		}
	}

	// Only overwrite fields that were provided
	setIfPresent(&doctor.Name, req.Name)
	setIfPresent(&doctor.Email, req.Email)
	setIfPresent(&doctor.Phone, req.Phone)
	setIfPresent(&doctor.Specialty, req.Specialty)
	setIfPresent(&doctor.Title, req.Title)
	setIfPresent(&doctor.Clinic, req.Clinic)
	setIfPresent(&doctor.Availability, req.Availability)
	if req.AvailableSlots != nil {
		doctor.AvailableSlots = *req.AvailableSlots
	}

	if err := h.Repos.Doctors.Update(ctx, doctor); err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *Handler) SetDoctorStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Repos.Doctors.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}

	doctor.Status = models.UserStatus(req.Status)
	if err := h.Repos.Doctors.Update(ctx, doctor); err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.Repos.Doctors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondStoreError(c, err, "Doctor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
