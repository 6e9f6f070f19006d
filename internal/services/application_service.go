package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/metrics"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// ListFor returns what the caller may see: candidates their own applications,
// employers the applications to their posts, everyone else nothing.
func (s *ApplicationService) ListFor(ctx context.Context, user *models.User) ([]models.JobApplication, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("Job").Preload("Candidate").Order("job_applications.created_at DESC, job_applications.id DESC")

	switch user.Role {
	case models.RoleCandidate:
		candidates := db.Model(&models.CandidateProfile{}).Select("id").Where("user_id = ?", user.ID)
		q = q.Where("job_applications.candidate_id IN (?)", candidates)
	case models.RoleEmployer:
		employers := db.Model(&models.EmployerProfile{}).Select("id").Where("user_id = ?", user.ID)
		jobs := db.Model(&models.JobPost{}).Select("id").Where("employer_id IN (?)", employers)
		q = q.Where("job_applications.job_id IN (?)", jobs)
	default:
		return []models.JobApplication{}, nil
	}

	var apps []models.JobApplication
	if err := q.Find(&apps).Error; err != nil {
		return nil, translate(err, "applications")
	}
	return apps, nil
}

// Apply records the caller's application to an OPEN post. A candidate may
// apply to each post once.
func (s *ApplicationService) Apply(ctx context.Context, user *models.User, req *dtos.ApplicationRequest) (*models.JobApplication, error) {
	db := s.DB.WithContext(ctx)

	candidate, err := candidateFor(db, user.ID)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, apperr.BadRequest("a candidate profile is required to apply")
		}
		return nil, err
	}

	var job models.JobPost
	if err := db.First(&job, req.Job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("invalid job").WithField("job", "job does not exist")
		}
		return nil, translate(err, "job post")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperr.BadRequest("job is not accepting applications")
	}

	var n int64
	if err := db.Model(&models.JobApplication{}).
		Where("job_id = ? AND candidate_id = ?", job.ID, candidate.ID).
		Count(&n).Error; err != nil {
		return nil, translate(err, "application")
	}
	if n > 0 {
		return nil, apperr.BadRequest("you have already applied to this job")
	}

	cv := req.CVFile
	if cv == "" {
		cv = candidate.CVFile
	}
	app := &models.JobApplication{
		Base:        models.Base{Active: true},
		JobID:       job.ID,
		CandidateID: candidate.ID,
		CVFile:      cv,
		Status:      models.ApplicationPending,
	}
	if err := db.Omit("Job", "Candidate").Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.BadRequest("you have already applied to this job")
		}
		return nil, translate(err, "application")
	}
	metrics.ApplicationsCreated.Inc()

	app.Job = job
	app.Candidate = *candidate
	return app, nil
}

// SetStatus lets the employer owning the post approve or reject an application.
func (s *ApplicationService) SetStatus(ctx context.Context, user *models.User, id uint, status string) (*models.JobApplication, error) {
	db := s.DB.WithContext(ctx)

	var app models.JobApplication
	if err := db.Preload("Job").Preload("Candidate").First(&app, id).Error; err != nil {
		return nil, translate(err, "application")
	}
	employer, err := employerFor(db, user.ID)
	if err != nil || employer.ID != app.Job.EmployerID {
		return nil, apperr.Forbidden("you do not own the job for this application")
	}
	if err := db.Model(&models.JobApplication{}).Where("id = ?", app.ID).Update("status", status).Error; err != nil {
		return nil, translate(err, "application")
	}
	app.Status = status
	return &app, nil
}
