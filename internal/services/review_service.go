package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

const (
	MinReviewScore = 1
	MaxReviewScore = 5
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Create stores the caller's review of an application to one of their posts.
// Each application gets at most one review.
func (s *ReviewService) Create(ctx context.Context, user *models.User, req *dtos.ReviewRequest) (*models.ApplicationReview, error) {
	if req.Score < MinReviewScore || req.Score > MaxReviewScore {
		return nil, apperr.BadRequest("invalid score").WithField("score", "score must be between 1 and 5")
	}

	db := s.DB.WithContext(ctx)
	employer, err := employerFor(db, user.ID)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, apperr.Forbidden("an employer profile is required")
		}
		return nil, err
	}

	var app models.JobApplication
	if err := db.Preload("Job").First(&app, req.Application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("invalid application").WithField("application", "application does not exist")
		}
		return nil, translate(err, "application")
	}
	if app.Job.EmployerID != employer.ID {
		return nil, apperr.Forbidden("you can only review applications to your own job posts")
	}

	var n int64
	if err := db.Model(&models.ApplicationReview{}).Where("application_id = ?", app.ID).Count(&n).Error; err != nil {
		return nil, translate(err, "review")
	}
	if n > 0 {
		return nil, apperr.Conflict("this application has already been reviewed")
	}

	review := &models.ApplicationReview{
		Base:          models.Base{Active: true},
		ApplicationID: app.ID,
		EmployerID:    employer.ID,
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if err := db.Omit("Application", "Employer").Create(review).Error; err != nil {
		return nil, translate(err, "review")
	}
	return review, nil
}
