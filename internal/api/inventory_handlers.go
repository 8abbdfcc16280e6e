package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// InventoryHandler serves a farmer's private inventory endpoints
type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Create adds an inventory item for the caller
func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.InventoryItemCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	item, err := h.inventory.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "inventory item added", item)
}

// List returns the caller's inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventory.ListByOwner(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", items)
}

// Get returns a single item (owner or admin)
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: item.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", item)
}

// Update modifies an item (owner or admin)
func (h *InventoryHandler) Update(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: item.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}

	var req models.InventoryItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.inventory.Update(item.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "inventory item updated", updated)
}

// Delete removes an item (owner or admin)
func (h *InventoryHandler) Delete(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: item.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.inventory.Delete(item.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "inventory item deleted", nil)
}
