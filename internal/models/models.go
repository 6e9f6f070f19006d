package models

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEmployer  Role = "EMPLOYER"
	RoleCandidate Role = "CANDIDATE"
)

const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
)

const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

const (
	ServiceFeaturedJob = "FEATURED_JOB"
	ServicePriorityCV  = "PRIORITY_CV"
)

const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// Base is embedded by every entity except User.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"index" json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`

	Username   string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password   string `gorm:"not null" json:"-"`
	FirstName  string `gorm:"size:150" json:"first_name"`
	LastName   string `gorm:"size:150" json:"last_name"`
	Email      string `gorm:"size:254" json:"email"`
	Avatar     string `json:"avatar"`
	Role       Role   `gorm:"size:20;not null" json:"role"`
	IsVerified bool   `gorm:"not null;default:false" json:"is_verified"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	// Filled with Preload; at most one of the two is set.
	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty"`
	EmployerProfile  *EmployerProfile  `json:"employer_profile,omitempty"`
}

type CandidateProfile struct {
	Base
	UserID          uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName        string `gorm:"size:255;not null" json:"full_name"`
	Phone           string `gorm:"size:20" json:"phone"`
	Address         string `gorm:"type:text" json:"address"`
	ExperienceYears int    `gorm:"not null;default:0" json:"experience_years"`
	Skills          string `gorm:"type:text" json:"skills"`
	CVFile          string `json:"cv_file"`
}

type EmployerProfile struct {
	Base
	UserID             uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName        string  `gorm:"size:255;not null" json:"company_name"`
	CompanyDescription string  `gorm:"type:text" json:"company_description"`
	CompanyAddress     string  `gorm:"type:text" json:"company_address"`
	Website            *string `gorm:"size:255" json:"website"`
	Logo               string  `json:"logo"`
	IsApproved         bool    `gorm:"not null;default:false" json:"is_approved"`
}

type JobCategory struct {
	Base
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

type Tag struct {
	Base
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

type JobPost struct {
	Base

	EmployerID uint            `gorm:"index;not null" json:"employer_id"`
	Employer   EmployerProfile `gorm:"constraint:OnDelete:CASCADE" json:"employer"`

	CategoryID *uint        `gorm:"index" json:"category_id"`
	Category   *JobCategory `gorm:"constraint:OnDelete:SET NULL" json:"category"`

	Tags []Tag `gorm:"many2many:job_post_tags" json:"tags"`

	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements"`
	Benefits     string    `gorm:"type:text" json:"benefits"`
	SalaryMin    float64   `gorm:"type:decimal(12,2);not null" json:"salary_min"`
	SalaryMax    float64   `gorm:"type:decimal(12,2);not null" json:"salary_max"`
	Location     string    `gorm:"size:255" json:"location"`
	ExpiredDate  time.Time `gorm:"type:date;index" json:"expired_date"`
	IsFeatured   bool      `gorm:"not null;default:false" json:"is_featured"`
	Status       string    `gorm:"size:10;not null;default:'OPEN';index" json:"status"`
}

type JobApplication struct {
	Base

	JobID uint    `gorm:"uniqueIndex:idx_application_job_candidate;not null" json:"job_id"`
	Job   JobPost `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CandidateID uint             `gorm:"uniqueIndex:idx_application_job_candidate;not null" json:"candidate_id"`
	Candidate   CandidateProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CVFile string `json:"cv_file"`
	Status string `gorm:"size:20;not null;default:'PENDING'" json:"status"`
}

type ApplicationReview struct {
	Base

	ApplicationID uint           `gorm:"uniqueIndex;not null" json:"application"`
	Application   JobApplication `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	EmployerID uint            `gorm:"index;not null" json:"employer"`
	Employer   EmployerProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Score   int    `gorm:"not null;default:0" json:"score"`
	Comment string `gorm:"type:text" json:"comment"`
}

type Payment struct {
	Base

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// JobPostID names the post a FEATURED_JOB payment promotes.
	JobPostID *uint `gorm:"index" json:"job_id"`

	ServiceType     string  `gorm:"size:50;not null" json:"service_type"`
	Amount          float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod   string  `gorm:"size:20;not null" json:"payment_method"`
	TransactionCode string  `gorm:"uniqueIndex;size:255;not null" json:"transaction_code"`
	Status          string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&CandidateProfile{},
		&EmployerProfile{},
		&JobCategory{},
		&Tag{},
		&JobPost{},
		&JobApplication{},
		&ApplicationReview{},
		&Payment{},
	}
}
