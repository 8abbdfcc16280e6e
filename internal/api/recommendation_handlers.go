package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/services"
)

// RecommendationHandler serves the farming advice endpoint
type RecommendationHandler struct {
	recommendations *services.RecommendationService
}

func NewRecommendationHandler(recommendations *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// ForFarmer returns crop suggestions and activity tips for the caller
func (h *RecommendationHandler) ForFarmer(c *gin.Context) {
	recs, err := h.recommendations.ForFarmer(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", recs)
}
