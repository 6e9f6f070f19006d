package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Raw postings are cut to this many bytes before prompting.
const maxExtractionInput = 20000

const jobExtractionPrompt = `
You are a job posting extraction agent. Analyze the raw HTML/text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Extract the fields below strictly.
3. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "Summary of the role and responsibilities, without HTML tags",
    "requirements": "Required skills and experience, without HTML tags",
    "benefits": "Benefits and perks, without HTML tags",
    "salary_min": 1000,
    "salary_max": 2000,
    "tags": ["Go", "PostgreSQL", "AWS"]
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not guess. Salaries are plain numbers.

### RAW CONTENT:
%s
`

// LLMService drafts job posts from raw posting HTML.
type LLMService struct {
	Client llms.Model
}

// NewLLMService connects to Gemini with the given key and model.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

// ExtractJobDraft asks the model for a structured draft of the posting.
func (s *LLMService) ExtractJobDraft(ctx context.Context, rawHTML string) (*dtos.JobDraft, error) {
	if len(rawHTML) > maxExtractionInput {
		rawHTML = rawHTML[:maxExtractionInput]
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return nil, fmt.Errorf("generate job draft: %w", err)
	}

	var draft dtos.JobDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		return nil, fmt.Errorf("decode job draft: %w", err)
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	return &draft, nil
}

// stripCodeFence removes a ```json ... ``` wrapper that models add despite
// being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
