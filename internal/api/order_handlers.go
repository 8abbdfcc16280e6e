package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// OrderHandler serves order placement and lifecycle endpoints
type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places an order for the authenticated buyer
func (h *OrderHandler) Create(c *gin.Context) {
	var req models.OrderCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.orders.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "order placed", order)
}

// List returns orders scoped to the caller: admins see everything, others
// only the orders they placed.
func (h *OrderHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	if actor.IsAdmin() {
		orders, err := h.orders.ListAll()
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "", orders)
		return
	}

	orders, err := h.orders.ListForBuyer(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", orders)
}

// Get returns a single order visible to its buyer or an admin
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionOrderView, policy.Resource{
		BuyerID: order.BuyerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", order)
}

// Cancel voids a pending order and restores stock (buyer or admin)
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.orders.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionOrderCancel, policy.Resource{
		BuyerID: order.BuyerID,
	}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.orders.Cancel(order.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "order cancelled", nil)
}

// UpdateStatus sets the order status (admin only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionOrderSetStatus, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.OrderStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "order status updated", order)
}
