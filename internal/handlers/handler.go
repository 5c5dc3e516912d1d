package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/services"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

// Handler carries everything the route handlers need. Every handler is a
// method on it.
type Handler struct {
	Repos           *store.Repositories
	Sessions        *session.Manager
	Tokens          *utils.TokenManager
	NotificationSvc *services.NotificationService
	Log             zerolog.Logger

	// AdminKeyHash is the bcrypt hash admin signups must match. Empty
	// disables admin signup.
	AdminKeyHash string

	now func() time.Time

	// mu serializes read-modify-write sequences that span records, such as
	// booking a slot or renumbering a waitlist.
	mu sync.Mutex
}

func NewHandler(
	repos *store.Repositories,
	sessions *session.Manager,
	tokens *utils.TokenManager,
	notificationSvc *services.NotificationService,
	log zerolog.Logger,
	adminKeyHash string,
) *Handler {
	return &Handler{
		Repos:           repos,
		Sessions:        sessions,
		Tokens:          tokens,
		NotificationSvc: notificationSvc,
		Log:             log,
		AdminKeyHash:    adminKeyHash,
		now:             time.Now,
	}
}

// respondStoreError maps collection errors onto status codes. what names
// the record in the client message, e.g. "Appointment".
func (h *Handler) respondStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	default:
		h.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(what + " store operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) internalError(c *gin.Context, err error, message string) {
	h.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{"error": message})
}

// currentEmail is the email of the logged in session.
func currentEmail(c *gin.Context) string {
	return middleware.CurrentFlags(c).Email
}

// parseDay reads a YYYY-MM-DD date.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
