package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// NotificationHandler serves inbox endpoints
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Send creates a notification for one user (admin only)
func (h *NotificationHandler) Send(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionNotificationSend, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.NotificationCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	notification, err := h.notifications.Send(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "notification sent", notification)
}

// Broadcast notifies every user (admin only)
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionNotificationSend, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.NotificationBroadcast
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	count, err := h.notifications.Broadcast(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "broadcast sent", gin.H{"recipients": count})
}

// List returns the caller's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.ListForUser(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", notifications)
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "notification marked read", nil)
}

// Delete removes one of the caller's notifications
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.notifications.Delete(c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "notification deleted", nil)
}
