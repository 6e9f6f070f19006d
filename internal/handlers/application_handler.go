package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps}
}

// List is GET /job-applications
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Applications.ListFor(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewApplicationResponses(apps))
}

// Apply is POST /job-applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.Applications.Apply(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewApplicationResponse(app))
}

// SetStatus is PATCH /job-applications/:id/status
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.Applications.SetStatus(c.Request.Context(), currentUser(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewApplicationResponse(app))
}
