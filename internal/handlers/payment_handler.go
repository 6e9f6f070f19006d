package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// List is GET /payments
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.Payments.ListFor(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewPaymentResponses(payments))
}

// Create is POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dtos.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Payments.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewPaymentResponse(p))
}

// SetStatus is PATCH /admin/payments/:id/status
func (h *PaymentHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dtos.PaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Payments.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewPaymentResponse(p))
}
