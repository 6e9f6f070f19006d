package services

import (
	"context"
	"net/http"
	"time"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/database"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

// Year range offered by the admin report's year picker.
const (
	FirstReportYear = 2000
	LastReportYear  = 2029
)

// StatsService runs the reporting aggregations. Grouping and summing happen
// in SQL; only the bucket expression differs per dialect.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// EmployerStats summarizes applications to the caller's posts.
func (s *StatsService) EmployerStats(ctx context.Context, user *models.User) (*dtos.EmployerStats, error) {
	db := s.DB.WithContext(ctx)
	employer, err := employerFor(db, user.ID)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, apperr.Forbidden("an employer profile is required")
		}
		return nil, err
	}

	jobs := db.Model(&models.JobPost{}).Select("id").Where("employer_id = ?", employer.ID)
	apps := func() *gorm.DB {
		return db.Model(&models.JobApplication{}).Where("job_applications.job_id IN (?)", jobs)
	}

	out := &dtos.EmployerStats{
		ApplicationsByMonth: []dtos.MonthCount{},
		JobEffectiveness:    []dtos.JobEffectiveness{},
	}
	if err := apps().Count(&out.TotalApplications).Error; err != nil {
		return nil, translate(err, "application stats")
	}

	month := database.MonthBucket(db, "job_applications.created_at")
	if err := apps().
		Select(month + " AS month, COUNT(job_applications.id) AS total").
		Group("month").Order("month").
		Scan(&out.ApplicationsByMonth).Error; err != nil {
		return nil, translate(err, "application stats")
	}

	if err := db.Model(&models.JobPost{}).
		Select("job_posts.id AS id, job_posts.title AS title, COUNT(job_applications.id) AS application_count").
		Joins("LEFT JOIN job_applications ON job_applications.job_id = job_posts.id").
		Where("job_posts.employer_id = ?", employer.ID).
		Group("job_posts.id, job_posts.title").
		Order("job_posts.id").
		Scan(&out.JobEffectiveness).Error; err != nil {
		return nil, translate(err, "job effectiveness")
	}
	return out, nil
}

// SystemReport builds the admin dashboard figures for year.
func (s *StatsService) SystemReport(ctx context.Context, year int) (*dtos.SystemReport, error) {
	db := s.DB.WithContext(ctx)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	out := &dtos.SystemReport{
		SelectedYear:   year,
		JobsByMonth:    []dtos.MonthCount{},
		RevenueByMonth: []dtos.MonthAmount{},
		RevenueByYear:  []dtos.YearAmount{},
	}
	for y := FirstReportYear; y <= LastReportYear; y++ {
		out.Years = append(out.Years, y)
	}

	for _, c := range []struct {
		model interface{}
		dst   *int64
	}{
		{&models.JobPost{}, &out.TotalJobs},
		{&models.CandidateProfile{}, &out.TotalCandidates},
		{&models.JobApplication{}, &out.TotalApplications},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, translate(err, "totals")
		}
	}

	if err := db.Model(&models.JobPost{}).
		Select(database.MonthBucket(db, "created_at")+" AS month, COUNT(id) AS total").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("month").Order("month").
		Scan(&out.JobsByMonth).Error; err != nil {
		return nil, translate(err, "jobs by month")
	}

	if err := db.Model(&models.Payment{}).
		Select(database.MonthBucket(db, "created_at")+" AS month, SUM(amount) AS total").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentSuccess, start, end).
		Group("month").Order("month").
		Scan(&out.RevenueByMonth).Error; err != nil {
		return nil, translate(err, "revenue by month")
	}

	if err := db.Model(&models.Payment{}).
		Select(database.YearBucket(db, "created_at")+" AS year, SUM(amount) AS total").
		Where("status = ?", models.PaymentSuccess).
		Group("year").Order("year").
		Scan(&out.RevenueByYear).Error; err != nil {
		return nil, translate(err, "revenue by year")
	}
	return out, nil
}
