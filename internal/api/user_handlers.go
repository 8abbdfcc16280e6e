package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// UserHandler serves the admin user-management endpoints
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users (admin only)
func (h *UserHandler) List(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionUserList, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	users, err := h.users.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", users)
}

// Get returns a single user. Users can view themselves; admins anyone.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := policy.Decide(actorFrom(c), policy.ActionUserView, policy.Resource{OwnerID: id}); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", user)
}

// Delete removes a user account. Users can delete themselves; admins anyone.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := policy.Decide(actorFrom(c), policy.ActionUserView, policy.Resource{OwnerID: id}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "account deleted", nil)
}
