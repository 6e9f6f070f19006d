package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/metrics"
	"github.com/justsurfingit/ejobs/internal/middleware"
	"github.com/justsurfingit/ejobs/internal/models"
	"go.uber.org/zap"
)

// Router bundles what NewRouter needs to wire every route.
type Router struct {
	Log         *zap.Logger
	Auth        *middleware.Authenticator
	Limiter     *middleware.RateLimiter
	CORSOrigins []string

	Health       *HealthHandler
	Catalog      *CatalogHandler
	Users        *UserHandler
	Profiles     *ProfileHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Payments     *PaymentHandler
	Reviews      *ReviewHandler
	Stats        *StatsHandler
}

func NewRouter(rt Router) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(rt.Log))

	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	if len(rt.CORSOrigins) == 0 || containsWildcard(rt.CORSOrigins) {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = rt.CORSOrigins
	}
	r.Use(cors.New(config))

	// Optional runs first so the limiter can key on the caller.
	r.Use(rt.Auth.Optional())
	if rt.Limiter != nil {
		r.Use(rt.Limiter.Handler())
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := rt.Auth.Required()
	employer := middleware.RequireRole(models.RoleEmployer)
	candidate := middleware.RequireRole(models.RoleCandidate)
	admin := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		api.GET("/health", rt.Health.HealthCheck)

		// Catalog
		api.GET("/categories", rt.Catalog.ListCategories)
		api.GET("/tags", rt.Catalog.ListTags)

		// Job Routes
		api.GET("/jobs", rt.Jobs.ListJobs)
		api.GET("/jobs/:id/detail", rt.Jobs.GetDetail)
		api.POST("/jobs", auth, employer, rt.Jobs.CreateJob)
		api.POST("/jobs/extract", auth, employer, rt.Jobs.ParseJob)
		api.PATCH("/jobs/:id", auth, employer, rt.Jobs.UpdateJob)
		api.POST("/jobs/:id/close", auth, employer, rt.Jobs.CloseJob)

		// Profiles
		api.GET("/employers/:id", rt.Profiles.GetEmployer)
		api.POST("/employers", auth, employer, rt.Profiles.CreateEmployer)
		api.PATCH("/employers/me", auth, employer, rt.Profiles.UpdateEmployer)
		api.GET("/candidates/:id", rt.Profiles.GetCandidate)
		api.POST("/candidates", auth, candidate, rt.Profiles.CreateCandidate)
		api.PATCH("/candidates/me", auth, candidate, rt.Profiles.UpdateCandidate)

		// Users
		api.POST("/users", rt.Users.Register)
		api.GET("/users/current-user", auth, rt.Users.CurrentUser)
		api.PATCH("/users/current-user", auth, rt.Users.UpdateCurrentUser)
		api.GET("/users/employer-only", auth, employer, rt.Users.EmployerOnly)

		// Applications and reviews
		api.GET("/job-applications", auth, rt.Applications.List)
		api.POST("/job-applications", auth, candidate, rt.Applications.Apply)
		api.PATCH("/job-applications/:id/status", auth, employer, rt.Applications.SetStatus)
		api.POST("/application-reviews", auth, employer, rt.Reviews.Create)

		// Payments
		api.GET("/payments", auth, rt.Payments.List)
		api.POST("/payments", auth, rt.Payments.Create)

		// Reporting
		api.GET("/stats/employer", auth, rt.Stats.EmployerStats)

		adminAPI := api.Group("/admin", auth, admin)
		{
			adminAPI.GET("/stats", rt.Stats.SystemReport)
			adminAPI.POST("/categories", rt.Catalog.CreateCategory)
			adminAPI.POST("/tags", rt.Catalog.CreateTag)
			adminAPI.POST("/employers/:id/approve", rt.Profiles.ApproveEmployer)
			adminAPI.PATCH("/payments/:id/status", rt.Payments.SetStatus)
		}
	}
	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
