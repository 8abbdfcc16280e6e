package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
)

// Response is the envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// respondError maps service errors to status codes. Internal errors are
// logged and replaced with a generic message so details never leak.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if apperr.IsInternal(err) {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "an unexpected error occurred"
	}
	c.JSON(status, Response{Success: false, Error: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}

// actorFrom builds the policy actor from the auth middleware's context keys.
// A request that skipped authentication yields a zero actor.
func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetString("userID"),
		Role: models.UserRole(c.GetString("userRole")),
	}
}
