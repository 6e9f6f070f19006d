package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// ListCategories is GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCategoryResponses(categories))
}

// ListTags is GET /tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.Catalog.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewTagResponses(tags))
}

// CreateCategory is POST /admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dtos.NameRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.Catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewCategoryResponse(category))
}

// CreateTag is POST /admin/tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req dtos.NameRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.Catalog.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.TagResponse{ID: tag.ID, Name: tag.Name})
}
