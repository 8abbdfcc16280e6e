package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/services"
)

// WeatherHandler proxies current weather conditions for a farm location
type WeatherHandler struct {
	weather *services.WeatherService
}

func NewWeatherHandler(weather *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// Current returns conditions for the requested city
func (h *WeatherHandler) Current(c *gin.Context) {
	report, err := h.weather.Current(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", report)
}
