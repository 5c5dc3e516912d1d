// internal/handlers/user_handler.go
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

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != "all" {
		if _, ok := models.ParseUserStatus(status); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be all, active, inactive or pending"})
			return
		}
	}

	users, err := h.Repos.Users.List(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, search.FilterUsers(users, c.Query("q"), status))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repos.Users.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "User")
		return
	}

	if req.Email != "" && !strings.EqualFold(req.Email, user.Email) {
		_, err := store.Find(ctx, h.Repos.Users, func(u models.User) bool {
			return u.ID != user.ID && strings.EqualFold(u.Email, req.Email)
		})
		switch {
		case err == nil:
			conflict(c, "An account with this email already exists")
			return
		case !errors.Is(err, store.ErrNotFound):
			h.respondStoreError(c, err, "User")
			return
		}
	}

	setIfPresent(&user.Name, req.Name)
	setIfPresent(&user.Email, req.Email)
	setIfPresent(&user.Phone, req.Phone)

	if err := h.Repos.Users.Update(ctx, user); err != nil {
		h.respondStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) SetUserStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repos.Users.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "User")
		return
	}

	user.Status = models.UserStatus(req.Status)
	if err := h.Repos.Users.Update(ctx, user); err != nil {
		h.respondStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Repos.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
