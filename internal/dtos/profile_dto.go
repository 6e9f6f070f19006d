package dtos

import "github.com/justsurfingit/ejobs/internal/models"

type EmployerRequest struct {
	CompanyName        string  `json:"company_name" binding:"required,max=255"`
	CompanyDescription string  `json:"company_description"`
	CompanyAddress     string  `json:"company_address"`
	Website            *string `json:"website" binding:"omitempty,max=255"`
	Logo               string  `json:"logo" binding:"omitempty,url"`
}

// EmployerUpdateRequest is a partial update; nil fields are left alone.
type EmployerUpdateRequest struct {
	CompanyName        *string `json:"company_name" binding:"omitempty,min=1,max=255"`
	CompanyDescription *string `json:"company_description"`
	CompanyAddress     *string `json:"company_address"`
	Website            *string `json:"website" binding:"omitempty,max=255"`
	Logo               *string `json:"logo" binding:"omitempty,url"`
}

type CandidateRequest struct {
	FullName        string `json:"full_name" binding:"required,max=255"`
	Phone           string `json:"phone" binding:"max=20"`
	Address         string `json:"address"`
	ExperienceYears int    `json:"experience_years" binding:"gte=0"`
	Skills          string `json:"skills"`
	CVFile          string `json:"cv_file" binding:"omitempty,url"`
}

type CandidateUpdateRequest struct {
	FullName        *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Address         *string `json:"address"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,gte=0"`
	Skills          *string `json:"skills"`
	CVFile          *string `json:"cv_file" binding:"omitempty,url"`
}

type EmployerResponse struct {
	ID                 uint    `json:"id"`
	CompanyName        string  `json:"company_name"`
	CompanyDescription string  `json:"company_description"`
	Website            *string `json:"website"`
	Logo               string  `json:"logo"`
	IsApproved         bool    `json:"is_approved"`
}

type CandidateResponse struct {
	ID              uint   `json:"id"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	ExperienceYears int    `json:"experience_years"`
	Skills          string `json:"skills"`
	CVFile          string `json:"cv_file"`
}

func NewEmployerResponse(e *models.EmployerProfile) EmployerResponse {
	return EmployerResponse{
		ID:                 e.ID,
		CompanyName:        e.CompanyName,
		CompanyDescription: e.CompanyDescription,
		Website:            e.Website,
		Logo:               e.Logo,
		IsApproved:         e.IsApproved,
	}
}

func NewCandidateResponse(c *models.CandidateProfile) CandidateResponse {
	return CandidateResponse{
		ID:              c.ID,
		FullName:        c.FullName,
		Phone:           c.Phone,
		ExperienceYears: c.ExperienceYears,
		Skills:          c.Skills,
		CVFile:          c.CVFile,
	}
}
