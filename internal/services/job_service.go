package services

import (
	"context"
	"net/http"
	"time"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/database"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/metrics"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// openPosts applies the listing filters to OPEN posts. It returns a fresh
// chain on every call so the count and the page query never share state.
func (s *JobService) openPosts(ctx context.Context, p *dtos.JobSearchParams) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.JobPost{}).Where("job_posts.status = ?", models.JobStatusOpen)

	if p.Query != "" {
		q = q.Where(database.ContainsFold("job_posts.title", p.Query))
	}
	if p.Company != "" {
		clause, arg := database.ContainsFold("employer_profiles.company_name", p.Company)
		employers := s.DB.WithContext(ctx).Model(&models.EmployerProfile{}).Select("employer_profiles.id").Where(clause, arg)
		q = q.Where("job_posts.employer_id IN (?)", employers)
	}
	if p.CategoryID != nil {
		q = q.Where("job_posts.category_id = ?", *p.CategoryID)
	}
	if p.Location != "" {
		q = q.Where(database.ContainsFold("job_posts.location", p.Location))
	}
	if p.SalaryMin != nil {
		q = q.Where("job_posts.salary_min >= ?", *p.SalaryMin)
	}
	if p.SalaryMax != nil {
		q = q.Where("job_posts.salary_max <= ?", *p.SalaryMax)
	}
	if p.Featured {
		q = q.Where("job_posts.is_featured = ?", true)
	}
	return q
}

func orderClause(orderBy string) string {
	switch orderBy {
	case dtos.OrderSalaryAsc:
		return "job_posts.salary_min ASC, job_posts.id ASC"
	case dtos.OrderSalaryDesc:
		return "job_posts.salary_max DESC, job_posts.id ASC"
	case dtos.OrderNewest:
		return "job_posts.created_at DESC, job_posts.id DESC"
	default:
		return "job_posts.id ASC"
	}
}

// Search lists OPEN posts matching p, one page at a time.
func (s *JobService) Search(ctx context.Context, p dtos.JobSearchParams) (dtos.Page[dtos.JobPostResponse], error) {
	var count int64
	if err := s.openPosts(ctx, &p).Count(&count).Error; err != nil {
		return dtos.Page[dtos.JobPostResponse]{}, translate(err, "job posts")
	}
	offset := (p.Page - 1) * p.PageSize
	if p.Page > 1 && int64(offset) >= count {
		return dtos.Page[dtos.JobPostResponse]{}, apperr.NotFound("invalid page")
	}

	var posts []models.JobPost
	err := s.openPosts(ctx, &p).
		Preload("Category").Preload("Tags").Preload("Employer").
		Order(orderClause(p.OrderBy)).
		Limit(p.PageSize).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return dtos.Page[dtos.JobPostResponse]{}, translate(err, "job posts")
	}
	return dtos.NewPage(dtos.NewJobPostResponses(posts), count, p.Page, p.PageSize), nil
}

// GetOpen loads an OPEN post with its associations.
func (s *JobService) GetOpen(ctx context.Context, id uint) (*models.JobPost, error) {
	var post models.JobPost
	err := s.DB.WithContext(ctx).
		Preload("Category").Preload("Tags").Preload("Employer").
		Where("status = ?", models.JobStatusOpen).
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "job post")
	}
	return &post, nil
}

func (s *JobService) get(ctx context.Context, id uint) (*models.JobPost, error) {
	var post models.JobPost
	err := s.DB.WithContext(ctx).
		Preload("Category").Preload("Tags").Preload("Employer").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "job post")
	}
	return &post, nil
}

// approvedEmployer returns the caller's employer profile if it may publish.
func (s *JobService) approvedEmployer(ctx context.Context, user *models.User) (*models.EmployerProfile, error) {
	employer, err := employerFor(s.DB.WithContext(ctx), user.ID)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, apperr.Forbidden("an employer profile is required")
		}
		return nil, err
	}
	if !employer.IsApproved {
		return nil, apperr.Forbidden("employer profile is awaiting approval")
	}
	return employer, nil
}

func (s *JobService) loadTags(db *gorm.DB, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translate(err, "tags")
	}
	if len(tags) != len(uniq(ids)) {
		return nil, apperr.BadRequest("unknown tag").WithField("tag_ids", "one or more tags do not exist")
	}
	return tags, nil
}

func (s *JobService) checkCategory(db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.Model(&models.JobCategory{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return translate(err, "category")
	}
	if n == 0 {
		return apperr.BadRequest("unknown category").WithField("category_id", "category does not exist")
	}
	return nil
}

// Create publishes a new OPEN post for the caller's approved employer profile.
func (s *JobService) Create(ctx context.Context, user *models.User, req *dtos.JobPostRequest) (*models.JobPost, error) {
	employer, err := s.approvedEmployer(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := dtos.ValidateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	expires, err := dtos.ParseDate("expired_date", req.ExpiredDate)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	if err := s.checkCategory(db, req.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.loadTags(db, req.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.JobPost{
		Base:         models.Base{Active: true},
		EmployerID:   employer.ID,
		CategoryID:   req.CategoryID,
		Tags:         tags,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Location:     req.Location,
		ExpiredDate:  expires,
		Status:       models.JobStatusOpen,
	}
	if err := db.Omit("Employer", "Category").Create(post).Error; err != nil {
		return nil, translate(err, "job post")
	}
	return s.get(ctx, post.ID)
}

// owned loads a post and checks the caller's employer profile owns it.
func (s *JobService) owned(ctx context.Context, user *models.User, id uint) (*models.JobPost, error) {
	post, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	employer, err := employerFor(s.DB.WithContext(ctx), user.ID)
	if err != nil || employer.ID != post.EmployerID {
		return nil, apperr.Forbidden("you do not own this job post")
	}
	return post, nil
}

// Update applies a partial update to one of the caller's posts.
func (s *JobService) Update(ctx context.Context, user *models.User, id uint, req *dtos.JobPostUpdateRequest) (*models.JobPost, error) {
	post, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	lo, hi := post.SalaryMin, post.SalaryMax
	if req.SalaryMin != nil {
		lo = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		hi = *req.SalaryMax
	}
	if err := dtos.ValidateSalaryRange(lo, hi); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIf(updates, "title", req.Title)
	setIf(updates, "description", req.Description)
	setIf(updates, "requirements", req.Requirements)
	setIf(updates, "benefits", req.Benefits)
	setIf(updates, "location", req.Location)
	if req.SalaryMin != nil {
		updates["salary_min"] = lo
	}
	if req.SalaryMax != nil {
		updates["salary_max"] = hi
	}
	if req.ExpiredDate != nil {
		expires, err := dtos.ParseDate("expired_date", *req.ExpiredDate)
		if err != nil {
			return nil, err
		}
		updates["expired_date"] = expires
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CategoryID != nil {
			if err := s.checkCategory(tx, req.CategoryID); err != nil {
				return err
			}
			updates["category_id"] = *req.CategoryID
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.JobPost{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
				return translate(err, "job post")
			}
		}
		if req.TagIDs != nil {
			tags, err := s.loadTags(tx, *req.TagIDs)
			if err != nil {
				return err
			}
			assoc := tx.Model(post).Association("Tags")
			if len(tags) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(tags)
			}
			if err != nil {
				return translate(err, "job post tags")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, post.ID)
}

// Close stops a post from accepting applications.
func (s *JobService) Close(ctx context.Context, user *models.User, id uint) (*models.JobPost, error) {
	post, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.JobPost{}).Where("id = ?", post.ID).
		Update("status", models.JobStatusClosed).Error; err != nil {
		return nil, translate(err, "job post")
	}
	post.Status = models.JobStatusClosed
	return post, nil
}

// ExpirePosts closes every OPEN post whose expiry date is before now's date.
func (s *JobService) ExpirePosts(ctx context.Context, now time.Time) (int64, error) {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	res := s.DB.WithContext(ctx).Model(&models.JobPost{}).
		Where("status = ? AND expired_date < ?", models.JobStatusOpen, today).
		Update("status", models.JobStatusClosed)
	if res.Error != nil {
		return 0, translate(res.Error, "job posts")
	}
	metrics.PostsExpired.Add(float64(res.RowsAffected))
	return res.RowsAffected, nil
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
