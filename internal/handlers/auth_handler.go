// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harentsoaR/healthease-api/internal/middleware"
	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/navigation"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

type roleURI struct {
	Role string `uri:"role" binding:"required,portalrole"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignupRequest struct {
	FullName  string `json:"fullName" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Clinic    string `json:"clinic"`
	AdminKey  string `json:"adminKey"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token    string        `json:"token"`
	Session  session.Flags `json:"session"`
	Redirect string        `json:"redirect"`
}

func bindRole(c *gin.Context) (session.Role, bool) {
	var uri roleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role, expected patient, doctor or admin"})
		return session.RolePatient, false
	}
	role, _ := session.ParseRole(uri.Role)
	return role, true
}

// startSession logs the request's session in and issues its token. A
// request that already carries a valid token keeps its session ID.
func (h *Handler) startSession(c *gin.Context, role session.Role, email string) (AuthResponse, error) {
	sessionID := uuid.NewString()
	if claims, ok := middleware.GetClaims(c); ok {
		sessionID = claims.SessionID()
	}

	if err := h.Sessions.Open(sessionID).Login(c.Request.Context(), role, email); err != nil {
		return AuthResponse{}, err
	}
	token, err := h.Tokens.GenerateJWT(sessionID, role.String(), email)
	if err != nil {
		return AuthResponse{}, err
	}

	flags := session.Flags{IsAuthenticated: true, Role: role, Email: email}
	return AuthResponse{Token: token, Session: flags, Redirect: navigation.HomeRedirect(flags)}, nil
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": h.now().UTC(),
		"service":   "healthease-api",
	})
}

// Home tells the client where the root path leads.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"redirect": navigation.HomeRedirect(middleware.CurrentFlags(c))})
}

// Login accepts any well-formed email and password for the chosen role.
func (h *Handler) Login(c *gin.Context) {
	role, ok := bindRole(c)
	if !ok {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.startSession(c, role, req.Email)
	if err != nil {
		h.internalError(c, err, "Could not start session")
		return
	}

	h.Log.Info().Str("role", role.String()).Str("email", req.Email).Msg("session logged in")
	c.JSON(http.StatusOK, resp)
}

// Signup creates an account for the role and logs the session into it.
func (h *Handler) Signup(c *gin.Context) {
	role, ok := bindRole(c)
	if !ok {
		return
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status := models.UserActive
	switch role {
	case session.RolePatient:
		if strings.TrimSpace(req.Phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
			return
		}
	case session.RoleDoctor:
		if strings.TrimSpace(req.Phone) == "" || req.Specialty == "" || req.Clinic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone, specialty and clinic are required"})
			return
		}
		status = models.UserPending
	case session.RoleAdmin:
		if h.AdminKeyHash == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin signup is disabled"})
			return
		}
		if len(req.AdminKey) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Admin key must be at least 8 characters"})
			return
		}
		if !utils.CheckPasswordHash(req.AdminKey, h.AdminKeyHash) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin key"})
			return
		}
	}

	ctx := c.Request.Context()
	_, err := store.Find(ctx, h.Repos.Users, func(u models.User) bool {
		return strings.EqualFold(u.Email, req.Email)
	})
	switch {
	case err == nil:
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	case !errors.Is(err, store.ErrNotFound):
		h.respondStoreError(c, err, "User")
		return
	}
	if role == session.RoleDoctor {
		taken, err := h.emailTaken(c, req.Email, "")
		if err != nil {
			h.respondStoreError(c, err, "Doctor")
			return
		}
		if taken {
			conflict(c, "An account with this email already exists")
			return
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		h.internalError(c, err, "Failed to hash password")
		return
	}

	now := h.now()
	user := models.User{
		ID:           store.NewID(),
		Name:         req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		Status:       status,
		JoinDate:     now,
		PasswordHash: hashedPassword,
	}
	if err := h.Repos.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		h.respondStoreError(c, err, "User")
		return
	}

	if role == session.RoleDoctor {
		doctor := models.Doctor{
			ID:        user.ID,
			Name:      req.FullName,
			Email:     req.Email,
			Phone:     req.Phone,
			Specialty: req.Specialty,
			Clinic:    req.Clinic,
			Status:    models.UserPending,
			JoinDate:  now,
		}
		if err := h.Repos.Doctors.Insert(ctx, doctor); err != nil {
			// The user record is useless without its doctor profile.
			if rbErr := h.Repos.Users.Delete(ctx, user.ID); rbErr != nil {
				h.Log.Error().Err(rbErr).Str("user_id", user.ID).Msg("failed to remove user after doctor insert failed")
			}
			if errors.Is(err, store.ErrDuplicate) {
				conflict(c, "An account with this email already exists")
				return
			}
			h.respondStoreError(c, err, "Doctor")
			return
		}
	}

	resp, err := h.startSession(c, role, req.Email)
	if err != nil {
		h.internalError(c, err, "Could not start session")
		return
	}

	h.Log.Info().Str("role", role.String()).Str("user_id", user.ID).Msg("account created")
	c.JSON(http.StatusCreated, gin.H{
		"token":    resp.Token,
		"session":  resp.Session,
		"redirect": resp.Redirect,
		"user":     user,
	})
}

// ForgotPassword never reveals whether the address has an account.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.NotificationSvc.SendPasswordReset(req.Email)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "If an account exists for this email, a reset link is on its way.",
	})
}

// Logout clears the session flags. It succeeds for sessions that are
// already logged out and for requests without a token.
func (h *Handler) Logout(c *gin.Context) {
	if s, ok := middleware.GetSession(c); ok {
		if err := s.Logout(c.Request.Context()); err != nil {
			h.internalError(c, err, "Could not end session")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out",
		"redirect": navigation.AuthPath,
	})
}

// CurrentSession reports the session flags, logged-out defaults included.
func (h *Handler) CurrentSession(c *gin.Context) {
	flags := middleware.CurrentFlags(c)
	resp := gin.H{"session": flags}
	if claims, ok := middleware.GetClaims(c); ok && claims.ExpiresAt != nil {
		resp["expiresAt"] = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, navigation.MenuFor(middleware.CurrentFlags(c).Role))
}
