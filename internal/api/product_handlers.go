package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// ProductHandler serves marketplace product endpoints
type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create lists a product (farmers only)
func (h *ProductHandler) Create(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionProductCreate, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.ProductCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	product, err := h.products.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "product listed", product)
}

// List returns all products; browsing is public
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", products)
}

// ListMine returns the caller's own listings
func (h *ProductHandler) ListMine(c *gin.Context) {
	products, err := h.products.ListByOwner(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", products)
}

// Get returns a single product; public
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", product)
}

// Update modifies a product (owner or admin)
func (h *ProductHandler) Update(c *gin.Context) {
	product, err := h.products.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: product.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}

	var req models.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.products.Update(product.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product updated", updated)
}

// Delete removes a product (owner or admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	product, err := h.products.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: product.CreatedBy}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.products.Delete(product.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product deleted", nil)
}
