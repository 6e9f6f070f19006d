package dtos

import "github.com/justsurfingit/ejobs/internal/models"

type NameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewCategoryResponse(c *models.JobCategory) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func NewCategoryResponses(categories []models.JobCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *NewCategoryResponse(&categories[i]))
	}
	return out
}
