package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/services"
)

// AuthHandler serves registration, login and profile endpoints
type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthHandler(auth *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Register creates an account and returns a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.users.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	respondCreated(c, "account created", gin.H{"user": user, "token": token})
}

// Login authenticates credentials and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.users.Authenticate(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	respondOK(c, "login successful", gin.H{"user": user, "token": token})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", user)
}

// UpdateMe updates the authenticated user's profile
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req models.UserProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "profile updated", user)
}
