// internal/handlers/settings_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/navigation"
	"github.com/harentsoaR/healthease-api/internal/store"
)

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type NotificationSettingsRequest struct {
	EmailReminders    *bool `json:"emailReminders"`
	SMSReminders      *bool `json:"smsReminders"`
	EmergencyAlerts   *bool `json:"emergencyAlerts"`
	NewsletterUpdates *bool `json:"newsletterUpdates"`
}

// loadProfile returns the stored profile for the session, or the default
// one. stored reports which.
func (h *Handler) loadProfile(c *gin.Context) (profile models.Profile, stored bool, err error) {
	email := currentEmail(c)
	profile, err = h.Repos.Profiles.Get(c.Request.Context(), email)
	switch {
	case err == nil:
		return profile, true, nil
	case errors.Is(err, store.ErrNotFound):
		return models.DefaultProfile(email), false, nil
	default:
		return profile, false, err
	}
}

func (h *Handler) saveProfile(c *gin.Context, profile models.Profile, stored bool) error {
	if stored {
		return h.Repos.Profiles.Update(c.Request.Context(), profile)
	}
	return h.Repos.Profiles.Insert(c.Request.Context(), profile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, _, err := h.loadProfile(c)
	if err != nil {
		h.respondStoreError(c, err, "Profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, stored, err := h.loadProfile(c)
	if err != nil {
		h.respondStoreError(c, err, "Profile")
		return
	}
	setIfPresent(&profile.Name, req.Name)
	setIfPresent(&profile.Phone, req.Phone)
	setIfPresent(&profile.Address, req.Address)

	if err := h.saveProfile(c, profile, stored); err != nil {
		h.respondStoreError(c, err, "Profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateNotificationSettings(c *gin.Context) {
	var req NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, stored, err := h.loadProfile(c)
	if err != nil {
		h.respondStoreError(c, err, "Profile")
		return
	}
	n := &profile.Notifications
	for _, toggle := range []struct {
		dst *bool
		src *bool
	}{
		{&n.EmailReminders, req.EmailReminders},
		{&n.SMSReminders, req.SMSReminders},
		{&n.EmergencyAlerts, req.EmergencyAlerts},
		{&n.NewsletterUpdates, req.NewsletterUpdates},
	} {
		if toggle.src != nil {
			*toggle.dst = *toggle.src
		}
	}

	if err := h.saveProfile(c, profile, stored); err != nil {
		h.respondStoreError(c, err, "Profile")
		return
	}
	c.JSON(http.StatusOK, profile.Notifications)
}

// DeleteAccount drops the saved profile and logs the session out.
func (h *Handler) DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.Repos.Profiles.Delete(ctx, currentEmail(c))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.respondStoreError(c, err, "Profile")
		return
	}

	if s, ok := middleware.GetSession(c); ok {
		if err := s.Logout(ctx); err != nil {
			h.internalError(c, err, "Could not end session")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Account deleted",
		"redirect": navigation.AuthPath,
	})
}
