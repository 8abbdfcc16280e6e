package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// SupplyChainHandler serves the per-order delivery tracking endpoints
type SupplyChainHandler struct {
	supplyChain *services.SupplyChainService
}

func NewSupplyChainHandler(supplyChain *services.SupplyChainService) *SupplyChainHandler {
	return &SupplyChainHandler{supplyChain: supplyChain}
}

// Get returns the delivery record (buyer, farmer or admin)
func (h *SupplyChainHandler) Get(c *gin.Context) {
	view, err := h.supplyChain.Get(c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionSupplyChainView, policy.Resource{
		BuyerID: view.BuyerID,
		OwnerID: view.FarmerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", view)
}

// Update applies a partial delivery update (farmer or admin)
func (h *SupplyChainHandler) Update(c *gin.Context) {
	view, err := h.supplyChain.Get(c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionSupplyChainUpdate, policy.Resource{
		BuyerID: view.BuyerID,
		OwnerID: view.FarmerID,
	}); err != nil {
		respondError(c, err)
		return
	}

	var req models.SupplyChainUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.supplyChain.Update(view.OrderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "delivery record updated", updated)
}
