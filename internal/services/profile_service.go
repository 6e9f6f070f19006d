package services

import (
	"context"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

// ProfileService manages the one-to-one employer and candidate profiles.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// EmployerFor returns the caller's employer profile, or NotFound.
func (s *ProfileService) EmployerFor(ctx context.Context, userID uint) (*models.EmployerProfile, error) {
	return employerFor(s.DB.WithContext(ctx), userID)
}

// CandidateFor returns the caller's candidate profile, or NotFound.
func (s *ProfileService) CandidateFor(ctx context.Context, userID uint) (*models.CandidateProfile, error) {
	return candidateFor(s.DB.WithContext(ctx), userID)
}

func employerFor(db *gorm.DB, userID uint) (*models.EmployerProfile, error) {
	var p models.EmployerProfile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "employer profile")
	}
	return &p, nil
}

func candidateFor(db *gorm.DB, userID uint) (*models.CandidateProfile, error) {
	var p models.CandidateProfile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "candidate profile")
	}
	return &p, nil
}

// GetApprovedEmployer is the public employer lookup; unapproved employers are
// reported as missing.
func (s *ProfileService) GetApprovedEmployer(ctx context.Context, id uint) (*models.EmployerProfile, error) {
	var p models.EmployerProfile
	err := s.DB.WithContext(ctx).Where("id = ? AND is_approved = ?", id, true).First(&p).Error
	if err != nil {
		return nil, translate(err, "employer")
	}
	return &p, nil
}

func (s *ProfileService) GetCandidate(ctx context.Context, id uint) (*models.CandidateProfile, error) {
	var p models.CandidateProfile
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "candidate")
	}
	return &p, nil
}

func (s *ProfileService) CreateEmployer(ctx context.Context, user *models.User, req *dtos.EmployerRequest) (*models.EmployerProfile, error) {
	if err := s.ensureNoProfile(ctx, user.ID, &models.EmployerProfile{}); err != nil {
		return nil, err
	}
	p := &models.EmployerProfile{
		Base:               models.Base{Active: true},
		UserID:             user.ID,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CompanyAddress:     req.CompanyAddress,
		Website:            req.Website,
		Logo:               req.Logo,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err, "employer profile")
	}
	return p, nil
}

func (s *ProfileService) UpdateEmployer(ctx context.Context, user *models.User, req *dtos.EmployerUpdateRequest) (*models.EmployerProfile, error) {
	p, err := s.EmployerFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	setIf(updates, "company_name", req.CompanyName)
	setIf(updates, "company_description", req.CompanyDescription)
	setIf(updates, "company_address", req.CompanyAddress)
	setIf(updates, "logo", req.Logo)
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
			return nil, translate(err, "employer profile")
		}
	}
	return s.EmployerFor(ctx, user.ID)
}

// ApproveEmployer is the admin action that makes an employer public and lets
// it publish posts.
func (s *ProfileService) ApproveEmployer(ctx context.Context, id uint, approved bool) (*models.EmployerProfile, error) {
	var p models.EmployerProfile
	db := s.DB.WithContext(ctx)
	if err := db.First(&p, id).Error; err != nil {
		return nil, translate(err, "employer")
	}
	if err := db.Model(&p).Update("is_approved", approved).Error; err != nil {
		return nil, translate(err, "employer")
	}
	p.IsApproved = approved
	return &p, nil
}

func (s *ProfileService) CreateCandidate(ctx context.Context, user *models.User, req *dtos.CandidateRequest) (*models.CandidateProfile, error) {
	if err := s.ensureNoProfile(ctx, user.ID, &models.CandidateProfile{}); err != nil {
		return nil, err
	}
	p := &models.CandidateProfile{
		Base:            models.Base{Active: true},
		UserID:          user.ID,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Address:         req.Address,
		ExperienceYears: req.ExperienceYears,
		Skills:          req.Skills,
		CVFile:          req.CVFile,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err, "candidate profile")
	}
	return p, nil
}

func (s *ProfileService) UpdateCandidate(ctx context.Context, user *models.User, req *dtos.CandidateUpdateRequest) (*models.CandidateProfile, error) {
	p, err := s.CandidateFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	setIf(updates, "full_name", req.FullName)
	setIf(updates, "phone", req.Phone)
	setIf(updates, "address", req.Address)
	setIf(updates, "skills", req.Skills)
	setIf(updates, "cv_file", req.CVFile)
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
			return nil, translate(err, "candidate profile")
		}
	}
	return s.CandidateFor(ctx, user.ID)
}

func (s *ProfileService) ensureNoProfile(ctx context.Context, userID uint, model interface{}) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(model).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return translate(err, "profile")
	}
	if n > 0 {
		return apperr.Conflict("profile already exists")
	}
	return nil
}

func setIf(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}
