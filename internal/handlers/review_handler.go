package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// Create is POST /application-reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dtos.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.Reviews.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewReviewResponse(review))
}
