package dtos

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DateLayout      = "2006-01-02"
)

// Orderings accepted by the order_by query parameter.
const (
	OrderSalaryAsc  = "salary_asc"
	OrderSalaryDesc = "salary_desc"
	OrderNewest     = "newest"
)

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// JobDraft is what the extractor pulls out of a raw posting. Employers review
// and submit it through the regular create endpoint.
type JobDraft struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Benefits     string   `json:"benefits"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	Tags         []string `json:"tags"`
}

type JobPostRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Description  string  `json:"description" binding:"required"`
	Requirements string  `json:"requirements" binding:"required"`
	Benefits     string  `json:"benefits"`
	SalaryMin    float64 `json:"salary_min" binding:"gte=0,lte=9999999999.99"`
	SalaryMax    float64 `json:"salary_max" binding:"gte=0,lte=9999999999.99"`
	Location     string  `json:"location" binding:"required,max=255"`
	ExpiredDate  string  `json:"expired_date" binding:"required"`
	CategoryID   *uint   `json:"category_id"`
	TagIDs       []uint  `json:"tag_ids"`
}

// JobPostUpdateRequest is a partial update; nil fields are left alone.
type JobPostUpdateRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Benefits     *string  `json:"benefits"`
	SalaryMin    *float64 `json:"salary_min" binding:"omitempty,gte=0,lte=9999999999.99"`
	SalaryMax    *float64 `json:"salary_max" binding:"omitempty,gte=0,lte=9999999999.99"`
	Location     *string  `json:"location" binding:"omitempty,min=1,max=255"`
	ExpiredDate  *string  `json:"expired_date"`
	CategoryID   *uint    `json:"category_id"`
	TagIDs       *[]uint  `json:"tag_ids"`
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperr.BadRequest("invalid date").WithField(field, "expected YYYY-MM-DD")
	}
	return t, nil
}

// JobSearchParams is the parsed form of the job listing query string.
type JobSearchParams struct {
	Query      string
	Company    string
	CategoryID *uint
	Location   string
	SalaryMin  *float64
	SalaryMax  *float64
	Featured   bool
	OrderBy    string
	Page       int
	PageSize   int
}

// ParseJobSearch reads the listing filters. Blank parameters are ignored and
// malformed numbers are rejected.
func ParseJobSearch(v url.Values) (JobSearchParams, error) {
	p := JobSearchParams{
		Query:    v.Get("q"),
		Company:  v.Get("company"),
		Location: v.Get("location"),
		OrderBy:  v.Get("order_by"),
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if s := v.Get("category_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return p, apperr.BadRequest("invalid query parameter").WithField("category_id", "must be an integer")
		}
		cid := uint(id)
		p.CategoryID = &cid
	}
	for _, f := range []struct {
		name string
		dst  **float64
	}{{"salary_min", &p.SalaryMin}, {"salary_max", &p.SalaryMax}} {
		s := v.Get(f.name)
		if s == "" {
			continue
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, apperr.BadRequest("invalid query parameter").WithField(f.name, "must be a number")
		}
		*f.dst = &n
	}
	p.Featured = v.Get("featured") != ""
	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return p, apperr.NotFound("invalid page")
		}
		p.Page = n
	}
	if s := v.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return p, apperr.BadRequest("invalid query parameter").WithField("page_size", "must be a positive integer")
		}
		p.PageSize = min(n, MaxPageSize)
	}
	return p, nil
}

// Page is a page-number paginated list.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  []T   `json:"results"`
}

func NewPage[T any](results []T, count int64, page, size int) Page[T] {
	p := Page[T]{Count: count, Results: results}
	if int64(page*size) < count {
		n := page + 1
		p.Next = &n
	}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	return p
}

type JobPostResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	SalaryMin   float64           `json:"salary_min"`
	SalaryMax   float64           `json:"salary_max"`
	Location    string            `json:"location"`
	Status      string            `json:"status"`
	CreatedDate time.Time         `json:"created_date"`
	ExpiredDate string            `json:"expired_date"`
	IsFeatured  bool              `json:"is_featured"`
	Category    *CategoryResponse `json:"category"`
	Tags        []TagResponse     `json:"tags"`
	Employer    EmployerResponse  `json:"employer"`
}

type JobPostDetailResponse struct {
	JobPostResponse
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

// NewJobPostResponse expects Category, Tags and Employer to be preloaded.
func NewJobPostResponse(p *models.JobPost) JobPostResponse {
	return JobPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		Location:    p.Location,
		Status:      p.Status,
		CreatedDate: p.CreatedAt,
		ExpiredDate: p.ExpiredDate.Format(DateLayout),
		IsFeatured:  p.IsFeatured,
		Category:    NewCategoryResponse(p.Category),
		Tags:        NewTagResponses(p.Tags),
		Employer:    NewEmployerResponse(&p.Employer),
	}
}

func NewJobPostDetailResponse(p *models.JobPost) JobPostDetailResponse {
	return JobPostDetailResponse{
		JobPostResponse: NewJobPostResponse(p),
		Description:     p.Description,
		Requirements:    p.Requirements,
		Benefits:        p.Benefits,
	}
}

func NewJobPostResponses(posts []models.JobPost) []JobPostResponse {
	out := make([]JobPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewJobPostResponse(&posts[i]))
	}
	return out
}

// ValidateSalaryRange rejects inverted ranges.
func ValidateSalaryRange(lo, hi float64) error {
	if lo > hi {
		return apperr.BadRequest("invalid salary range").
			WithField("salary_min", fmt.Sprintf("must not exceed salary_max (%.2f)", hi))
	}
	return nil
}
