package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// AnalyticsHandler serves the dashboard and reporting endpoints
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard returns platform-wide totals (admin only)
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionUserList, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.analytics.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", stats)
}

// Sales returns revenue per farmer. Admins see every farmer; farmers see
// only their own figures.
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	actor := actorFrom(c)

	farmerID := actor.ID
	if actor.IsAdmin() {
		farmerID = c.Query("farmerId")
	}

	sales, err := h.analytics.SalesByFarmer(farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", sales)
}

// TopProducts ranks products by units ordered
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.analytics.TopProducts(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", products)
}

// IrrigationTrends returns per-day averages of the caller's sensor readings
func (h *AnalyticsHandler) IrrigationTrends(c *gin.Context) {
	trends, err := h.analytics.IrrigationTrends(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", trends)
}

// Forum returns community engagement counts
func (h *AnalyticsHandler) Forum(c *gin.Context) {
	engagement, err := h.analytics.Forum()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", engagement)
}
