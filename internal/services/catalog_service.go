package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/models"
	"gorm.io/gorm"
)

// CatalogService manages job categories and tags.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.JobCategory, error) {
	var categories []models.JobCategory
	if err := s.DB.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err, "categories")
	}
	return categories, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.DB.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, translate(err, "tags")
	}
	return tags, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.JobCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.JobCategory{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, translate(err, "category")
	}
	if n > 0 {
		return nil, apperr.Conflict("category already exists")
	}
	c := &models.JobCategory{Base: models.Base{Active: true}, Name: name}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Tag{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, translate(err, "tag")
	}
	if n > 0 {
		return nil, apperr.Conflict("tag already exists")
	}
	t := &models.Tag{Base: models.Base{Active: true}, Name: name}
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, translate(err, "tag")
	}
	return t, nil
}
