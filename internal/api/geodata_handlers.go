package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// GeoDataHandler serves farm record endpoints
type GeoDataHandler struct {
	geoData *services.GeoDataService
}

func NewGeoDataHandler(geoData *services.GeoDataService) *GeoDataHandler {
	return &GeoDataHandler{geoData: geoData}
}

// Create registers a farm record for the caller
func (h *GeoDataHandler) Create(c *gin.Context) {
	var req models.GeoDataCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	record, err := h.geoData.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "farm record created", record)
}

// ListAll returns every farm record (admin only)
func (h *GeoDataHandler) ListAll(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionGeoDataListAll, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	records, err := h.geoData.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", records)
}

// ListMine returns the caller's farm records
func (h *GeoDataHandler) ListMine(c *gin.Context) {
	records, err := h.geoData.ListByFarmer(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", records)
}

// Get returns a farm record (owner or admin)
func (h *GeoDataHandler) Get(c *gin.Context) {
	record, err := h.geoData.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: record.FarmerID}); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", record)
}

// Update modifies a farm record (owner or admin)
func (h *GeoDataHandler) Update(c *gin.Context) {
	record, err := h.geoData.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: record.FarmerID}); err != nil {
		respondError(c, err)
		return
	}

	var req models.GeoDataUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.geoData.Update(record.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "farm record updated", updated)
}

// Delete removes a farm record (owner or admin)
func (h *GeoDataHandler) Delete(c *gin.Context) {
	record, err := h.geoData.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: record.FarmerID}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.geoData.Delete(record.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "farm record deleted", nil)
}
