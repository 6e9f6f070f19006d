package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/metrics"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// ListFor returns the caller's own payments, newest first.
func (s *PaymentService) ListFor(ctx context.Context, user *models.User) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).Order("created_at DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, translate(err, "payments")
	}
	return payments, nil
}

// Create records a PENDING payment for the caller with a fresh transaction code.
func (s *PaymentService) Create(ctx context.Context, user *models.User, req *dtos.PaymentRequest) (*models.Payment, error) {
	db := s.DB.WithContext(ctx)

	if req.JobID != nil {
		if req.ServiceType != models.ServiceFeaturedJob {
			return nil, apperr.BadRequest("job_id only applies to FEATURED_JOB payments")
		}
		var job models.JobPost
		if err := db.First(&job, *req.JobID).Error; err != nil {
			return nil, translate(err, "job post")
		}
		employer, err := employerFor(db, user.ID)
		if err != nil || employer.ID != job.EmployerID {
			return nil, apperr.Forbidden("you can only feature your own job posts")
		}
	}

	p := &models.Payment{
		Base:            models.Base{Active: true},
		UserID:          user.ID,
		JobPostID:       req.JobID,
		ServiceType:     req.ServiceType,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		TransactionCode: uuid.NewString(),
		Status:          models.PaymentPending,
	}
	if err := db.Omit("User").Create(p).Error; err != nil {
		return nil, translate(err, "payment")
	}
	metrics.PaymentsCreated.WithLabelValues(p.ServiceType).Inc()
	return p, nil
}

// SetStatus settles a payment. A successful FEATURED_JOB payment features its post.
func (s *PaymentService) SetStatus(ctx context.Context, id uint, status string) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err, "payment")
		}
		if err := tx.Model(&models.Payment{}).Where("id = ?", p.ID).Update("status", status).Error; err != nil {
			return translate(err, "payment")
		}
		p.Status = status

		if status == models.PaymentSuccess && p.ServiceType == models.ServiceFeaturedJob && p.JobPostID != nil {
			res := tx.Model(&models.JobPost{}).Where("id = ?", *p.JobPostID).Update("is_featured", true)
			if res.Error != nil {
				return translate(res.Error, "job post")
			}
			if res.RowsAffected == 0 {
				return &apperr.Error{Status: http.StatusConflict, Message: "featured job post no longer exists"}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
