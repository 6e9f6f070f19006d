package dtos

import (
	"time"

	"github.com/justsurfingit/ejobs/internal/models"
)

// ReviewRequest omits the employer, which comes from the caller. Score range
// is checked by the service so the error names the field.
type ReviewRequest struct {
	Application uint   `json:"application" binding:"required"`
	Score       int    `json:"score"`
	Comment     string `json:"comment"`
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	Application uint      `json:"application"`
	Employer    uint      `json:"employer"`
	Score       int       `json:"score"`
	Comment     string    `json:"comment"`
	CreatedDate time.Time `json:"created_date"`
}

func NewReviewResponse(r *models.ApplicationReview) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		Application: r.ApplicationID,
		Employer:    r.EmployerID,
		Score:       r.Score,
		Comment:     r.Comment,
		CreatedDate: r.CreatedAt,
	}
}
