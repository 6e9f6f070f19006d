package dtos

// MonthCount is one month bucket; Month is the first day of the month.
type MonthCount struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

type MonthAmount struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type YearAmount struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

type JobEffectiveness struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	ApplicationCount int64  `json:"application_count"`
}

type EmployerStats struct {
	TotalApplications   int64              `json:"total_applications"`
	ApplicationsByMonth []MonthCount       `json:"applications_by_month"`
	JobEffectiveness    []JobEffectiveness `json:"job_effectiveness"`
}

type SystemReport struct {
	Years             []int         `json:"years"`
	SelectedYear      int           `json:"selected_year"`
	TotalJobs         int64         `json:"total_jobs"`
	TotalCandidates   int64         `json:"total_candidates"`
	TotalApplications int64         `json:"total_applications"`
	JobsByMonth       []MonthCount  `json:"jobs_by_month"`
	RevenueByMonth    []MonthAmount `json:"revenue_by_month"`
	RevenueByYear     []YearAmount  `json:"revenue_by_year"`
}
