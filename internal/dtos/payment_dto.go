package dtos

import (
	"time"

	"github.com/justsurfingit/ejobs/internal/models"
)

type PaymentRequest struct {
	ServiceType   string  `json:"service_type" binding:"required,oneof=FEATURED_JOB PRIORITY_CV"`
	Amount        float64 `json:"amount" binding:"required,gt=0,lte=9999999999.99"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=CASH PAYPAL STRIPE MOMO ZALOPAY"`
	JobID         *uint   `json:"job_id"`
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING SUCCESS FAILED"`
}

type PaymentResponse struct {
	ID              uint      `json:"id"`
	ServiceType     string    `json:"service_type"`
	Amount          float64   `json:"amount"`
	PaymentMethod   string    `json:"payment_method"`
	TransactionCode string    `json:"transaction_code"`
	JobID           *uint     `json:"job_id"`
	Status          string    `json:"status"`
	CreatedDate     time.Time `json:"created_date"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		ServiceType:     p.ServiceType,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		TransactionCode: p.TransactionCode,
		JobID:           p.JobPostID,
		Status:          p.Status,
		CreatedDate:     p.CreatedAt,
	}
}

func NewPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}
