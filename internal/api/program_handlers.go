package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// ProgramHandler serves support program endpoints
type ProgramHandler struct {
	programs *services.ProgramService
}

func NewProgramHandler(programs *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// Create registers a program (admin only)
func (h *ProgramHandler) Create(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionProgramManage, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.ProgramCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	program, err := h.programs.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "program created", program)
}

// List returns all programs with applicants
func (h *ProgramHandler) List(c *gin.Context) {
	programs, err := h.programs.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", programs)
}

// Get returns a single program
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.programs.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", program)
}

// Apply records the authenticated farmer's application
func (h *ProgramHandler) Apply(c *gin.Context) {
	actor := actorFrom(c)
	if err := policy.Decide(actor, policy.ActionProgramApply, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	applicant, err := h.programs.Apply(c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "application submitted", applicant)
}

// UpdateApplicant sets an admin decision on an application
func (h *ProgramHandler) UpdateApplicant(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionProgramManage, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	var req models.ApplicantStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	applicant, err := h.programs.UpdateApplicant(c.Param("id"), c.Param("farmerId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "application updated", applicant)
}

// Delete removes a program (admin only)
func (h *ProgramHandler) Delete(c *gin.Context) {
	if err := policy.Decide(actorFrom(c), policy.ActionProgramManage, policy.Resource{}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.programs.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "program deleted", nil)
}
