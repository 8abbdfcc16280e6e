package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// SensorHandler serves field sensor endpoints
type SensorHandler struct {
	sensors *services.SensorService
}

func NewSensorHandler(sensors *services.SensorService) *SensorHandler {
	return &SensorHandler{sensors: sensors}
}

// Record stores a reading (farmers only)
func (h *SensorHandler) Record(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionSensorCreate, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.SensorReadingCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	reading, err := h.sensors.Record(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "reading recorded", reading)
}

// List returns the caller's readings
func (h *SensorHandler) List(c *gin.Context) {
	readings, err := h.sensors.ListByOwner(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", readings)
}

// Advice derives irrigation advice from the caller's latest reading
func (h *SensorHandler) Advice(c *gin.Context) {
	advice, err := h.sensors.Advice(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", advice)
}

// Delete removes a reading (owner or admin)
func (h *SensorHandler) Delete(c *gin.Context) {
	reading, err := h.sensors.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: reading.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.sensors.Delete(reading.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "reading deleted", nil)
}
