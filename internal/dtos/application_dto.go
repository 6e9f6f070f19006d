package dtos

import (
	"time"

	"github.com/justsurfingit/ejobs/internal/models"
)

// ApplicationRequest names the job; the candidate is always the caller.
type ApplicationRequest struct {
	Job    uint   `json:"job" binding:"required"`
	CVFile string `json:"cv_file" binding:"omitempty,url"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

type ApplicationResponse struct {
	ID            uint      `json:"id"`
	CVFile        string    `json:"cv_file"`
	Status        string    `json:"status"`
	CreatedDate   time.Time `json:"created_date"`
	JobTitle      string    `json:"job_title"`
	CandidateName string    `json:"candidate_name"`
}

// NewApplicationResponse expects Job and Candidate to be preloaded.
func NewApplicationResponse(a *models.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID,
		CVFile:        a.CVFile,
		Status:        a.Status,
		CreatedDate:   a.CreatedAt,
		JobTitle:      a.Job.Title,
		CandidateName: a.Candidate.FullName,
	}
}

func NewApplicationResponses(apps []models.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}
