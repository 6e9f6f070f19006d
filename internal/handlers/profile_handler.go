package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// GetEmployer is GET /employers/:id; only approved employers are visible.
func (h *ProfileHandler) GetEmployer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	employer, err := h.Profiles.GetApprovedEmployer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewEmployerResponse(employer))
}

// GetCandidate is GET /candidates/:id
func (h *ProfileHandler) GetCandidate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	candidate, err := h.Profiles.GetCandidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCandidateResponse(candidate))
}

// CreateEmployer is POST /employers
func (h *ProfileHandler) CreateEmployer(c *gin.Context) {
	var req dtos.EmployerRequest
	if !bindJSON(c, &req) {
		return
	}
	employer, err := h.Profiles.CreateEmployer(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewEmployerResponse(employer))
}

// UpdateEmployer is PATCH /employers/me
func (h *ProfileHandler) UpdateEmployer(c *gin.Context) {
	var req dtos.EmployerUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	employer, err := h.Profiles.UpdateEmployer(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewEmployerResponse(employer))
}

// CreateCandidate is POST /candidates
func (h *ProfileHandler) CreateCandidate(c *gin.Context) {
	var req dtos.CandidateRequest
	if !bindJSON(c, &req) {
		return
	}
	candidate, err := h.Profiles.CreateCandidate(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewCandidateResponse(candidate))
}

// UpdateCandidate is PATCH /candidates/me
func (h *ProfileHandler) UpdateCandidate(c *gin.Context) {
	var req dtos.CandidateUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	candidate, err := h.Profiles.UpdateCandidate(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCandidateResponse(candidate))
}

// ApproveEmployer is POST /admin/employers/:id/approve
func (h *ProfileHandler) ApproveEmployer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	employer, err := h.Profiles.ApproveEmployer(c.Request.Context(), id, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewEmployerResponse(employer))
}
