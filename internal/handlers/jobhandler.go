package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/services"
)

// JobExtractor turns a raw posting into a draft. *services.LLMService is the
// production implementation.
type JobExtractor interface {
	ExtractJobDraft(ctx context.Context, rawHTML string) (*dtos.JobDraft, error)
}

type JobHandler struct {
	Extractor  JobExtractor
	JobService *services.JobService
}

// NewJobHandler creates the handler. extractor may be nil when no LLM is configured.
func NewJobHandler(extractor JobExtractor, j *services.JobService) *JobHandler {
	return &JobHandler{Extractor: extractor,
		JobService: j,
	}
}

// ListJobs is GET /jobs: filtered, ordered and paginated OPEN posts.
func (h *JobHandler) ListJobs(c *gin.Context) {
	params, err := dtos.ParseJobSearch(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.JobService.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetDetail is GET /jobs/:id/detail
func (h *JobHandler) GetDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.JobService.GetOpen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobPostDetailResponse(post))
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobPostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.JobService.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewJobPostDetailResponse(post))
}

// UpdateJob is PATCH /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobPostUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.JobService.Update(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobPostDetailResponse(post))
}

// CloseJob is POST /jobs/:id/close
func (h *JobHandler) CloseJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.JobService.Close(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobPostDetailResponse(post))
}

// ParseJob is POST /jobs/extract
func (h *JobHandler) ParseJob(c *gin.Context) {
	if h.Extractor == nil {
		respondError(c, apperr.Unavailable("job extraction is not configured"))
		return
	}
	var req dtos.JobExtractionRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Extractor.ExtractJobDraft(c.Request.Context(), req.RawHTML)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}
