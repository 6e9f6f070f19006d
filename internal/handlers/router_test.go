package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/justsurfingit/ejobs/internal/database/dbtest"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/middleware"
	"github.com/justsurfingit/ejobs/internal/models"
	"github.com/justsurfingit/ejobs/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	users  *services.UserService
	jobs   *JobHandler
	stats  *StatsHandler
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.Open(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	users := services.NewUserService(db)
	s := &testServer{
		t:     t,
		db:    db,
		users: users,
		jobs:  NewJobHandler(nil, services.NewJobService(db)),
		stats: NewStatsHandler(services.NewStatsService(db)),
	}
	s.engine = NewRouter(Router{
		Log:          zap.NewNop(),
		Auth:         middleware.NewAuthenticator(testSecret, users, zap.NewNop()),
		Limiter:      middleware.NewRateLimiter(1000, 1000),
		CORSOrigins:  []string{"https://ejobs.example"},
		Health:       NewHealthHandler(sqlDB),
		Catalog:      NewCatalogHandler(services.NewCatalogService(db)),
		Users:        NewUserHandler(users),
		Profiles:     NewProfileHandler(services.NewProfileService(db)),
		Jobs:         s.jobs,
		Applications: NewApplicationHandler(services.NewApplicationService(db)),
		Payments:     NewPaymentHandler(services.NewPaymentService(db)),
		Reviews:      NewReviewHandler(services.NewReviewService(db)),
		Stats:        s.stats,
	})
	return s
}

func tokenFor(t *testing.T, id uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(id), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// register creates an account through the service and returns a token for it.
func (s *testServer) register(username string, role models.Role) string {
	s.t.Helper()
	u, err := s.users.Register(context.Background(), &dtos.RegisterRequest{Username: username, Password: "password", Role: string(role)})
	require.NoError(s.t, err)
	return tokenFor(s.t, u.ID)
}

func (s *testServer) admin() string {
	s.t.Helper()
	_, err := s.users.EnsureAdmin(context.Background(), "admin", "password")
	require.NoError(s.t, err)
	var u models.User
	require.NoError(s.t, s.db.Where("username = ?", "admin").First(&u).Error)
	return tokenFor(s.t, u.ID)
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

func TestHiringFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	emp := s.register("acme", models.RoleEmployer)
	cand := s.register("alice", models.RoleCandidate)

	w := s.do(http.MethodPost, "/api/v1/admin/categories", admin, gin.H{"name": "IT"})
	requireStatus(t, w, http.StatusCreated)
	category := decode[dtos.CategoryResponse](t, w)

	requireStatus(t, s.do(http.MethodPost, "/api/v1/admin/categories", emp, gin.H{"name": "Sales"}), http.StatusForbidden)

	w = s.do(http.MethodPost, "/api/v1/employers", emp, gin.H{"company_name": "Acme"})
	requireStatus(t, w, http.StatusCreated)
	employer := decode[dtos.EmployerResponse](t, w)
	assert.False(t, employer.IsApproved)

	requireStatus(t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/employers/%d", employer.ID), "", nil), http.StatusNotFound)

	job := gin.H{
		"title":        "Go Engineer",
		"description":  "Build APIs",
		"requirements": "Go, SQL",
		"salary_min":   1000,
		"salary_max":   2000,
		"location":     "Remote",
		"expired_date": "2099-01-01",
		"category_id":  category.ID,
	}
	requireStatus(t, s.do(http.MethodPost, "/api/v1/jobs", emp, job), http.StatusForbidden)

	approvePath := fmt.Sprintf("/api/v1/admin/employers/%d/approve", employer.ID)
	requireStatus(t, s.do(http.MethodPost, approvePath, cand, nil), http.StatusForbidden)
	requireStatus(t, s.do(http.MethodPost, approvePath, admin, nil), http.StatusOK)
	requireStatus(t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/employers/%d", employer.ID), "", nil), http.StatusOK)

	requireStatus(t, s.do(http.MethodPost, "/api/v1/jobs", cand, job), http.StatusForbidden)
	w = s.do(http.MethodPost, "/api/v1/jobs", emp, job)
	requireStatus(t, w, http.StatusCreated)
	post := decode[dtos.JobPostDetailResponse](t, w)
	assert.Equal(t, models.JobStatusOpen, post.Status)
	require.NotNil(t, post.Category)
	assert.Equal(t, "IT", post.Category.Name)

	w = s.do(http.MethodGet, "/api/v1/jobs?q=engineer", "", nil)
	requireStatus(t, w, http.StatusOK)
	page := decode[dtos.Page[dtos.JobPostResponse]](t, w)
	assert.EqualValues(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Acme", page.Results[0].Employer.CompanyName)

	detailPath := fmt.Sprintf("/api/v1/jobs/%d/detail", post.ID)
	w = s.do(http.MethodGet, detailPath, "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "Go, SQL", decode[dtos.JobPostDetailResponse](t, w).Requirements)

	apply := gin.H{"job": post.ID}
	requireStatus(t, s.do(http.MethodPost, "/api/v1/job-applications", cand, apply), http.StatusBadRequest)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/candidates", cand, gin.H{"full_name": "Alice Nguyen"}), http.StatusCreated)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/job-applications", emp, apply), http.StatusForbidden)
	w = s.do(http.MethodPost, "/api/v1/job-applications", cand, apply)
	requireStatus(t, w, http.StatusCreated)
	application := decode[dtos.ApplicationResponse](t, w)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/job-applications", cand, apply), http.StatusBadRequest)

	w = s.do(http.MethodGet, "/api/v1/job-applications", emp, nil)
	requireStatus(t, w, http.StatusOK)
	apps := decode[[]dtos.ApplicationResponse](t, w)
	require.Len(t, apps, 1)
	assert.Equal(t, "Alice Nguyen", apps[0].CandidateName)
	assert.Equal(t, "Go Engineer", apps[0].JobTitle)

	statusPath := fmt.Sprintf("/api/v1/job-applications/%d/status", application.ID)
	requireStatus(t, s.do(http.MethodPatch, statusPath, emp, gin.H{"status": "HIRED"}), http.StatusBadRequest)
	w = s.do(http.MethodPatch, statusPath, emp, gin.H{"status": models.ApplicationApproved})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, models.ApplicationApproved, decode[dtos.ApplicationResponse](t, w).Status)

	review := gin.H{"application": application.ID, "score": 5, "comment": "Great fit"}
	w = s.do(http.MethodPost, "/api/v1/application-reviews", emp, review)
	requireStatus(t, w, http.StatusCreated)
	assert.Equal(t, employer.ID, decode[dtos.ReviewResponse](t, w).Employer)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/application-reviews", emp, review), http.StatusConflict)

	requireStatus(t, s.do(http.MethodPost, "/api/v1/payments", emp, gin.H{
		"service_type":   models.ServicePriorityCV,
		"amount":         1e11,
		"payment_method": "CASH",
	}), http.StatusBadRequest)

	w = s.do(http.MethodPost, "/api/v1/payments", emp, gin.H{
		"service_type":   models.ServiceFeaturedJob,
		"amount":         99,
		"payment_method": "STRIPE",
		"job_id":         post.ID,
	})
	requireStatus(t, w, http.StatusCreated)
	payment := decode[dtos.PaymentResponse](t, w)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.NotEmpty(t, payment.TransactionCode)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/payments/%d/status", payment.ID), admin, gin.H{"status": models.PaymentSuccess})
	requireStatus(t, w, http.StatusOK)

	w = s.do(http.MethodGet, "/api/v1/jobs?featured=true", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decode[dtos.Page[dtos.JobPostResponse]](t, w).Count)

	w = s.do(http.MethodGet, "/api/v1/stats/employer", emp, nil)
	requireStatus(t, w, http.StatusOK)
	stats := decode[dtos.EmployerStats](t, w)
	assert.EqualValues(t, 1, stats.TotalApplications)
	require.Len(t, stats.JobEffectiveness, 1)
	assert.EqualValues(t, 1, stats.JobEffectiveness[0].ApplicationCount)

	requireStatus(t, s.do(http.MethodGet, "/api/v1/admin/stats?year=2025", emp, nil), http.StatusForbidden)
	w = s.do(http.MethodGet, "/api/v1/admin/stats?year=2025", admin, nil)
	requireStatus(t, w, http.StatusOK)
	report := decode[dtos.SystemReport](t, w)
	assert.Equal(t, 2025, report.SelectedYear)
	assert.EqualValues(t, 1, report.TotalJobs)

	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/close", post.ID), emp, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, models.JobStatusClosed, decode[dtos.JobPostDetailResponse](t, w).Status)
	requireStatus(t, s.do(http.MethodGet, detailPath, "", nil), http.StatusNotFound)
}

func TestUsersEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/users", "", gin.H{"username": "bob", "password": "hunter22", "email": "bob@example.com"})
	requireStatus(t, w, http.StatusCreated)
	assert.NotContains(t, w.Body.String(), "password")
	user := decode[dtos.UserResponse](t, w)
	assert.Equal(t, string(models.RoleCandidate), user.Role)

	requireStatus(t, s.do(http.MethodPost, "/api/v1/users", "", gin.H{"username": "bob", "password": "hunter22"}), http.StatusConflict)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/users", "", gin.H{"username": "eve", "password": "hunter22", "role": "ADMIN"}), http.StatusBadRequest)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/users", "", gin.H{"username": "eve", "password": "123"}), http.StatusBadRequest)

	w = s.do(http.MethodPost, "/api/v1/users", "", `{"username": `)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, w.Body.String(), "Invalid JSON format")

	requireStatus(t, s.do(http.MethodGet, "/api/v1/users/current-user", "", nil), http.StatusUnauthorized)

	token := tokenFor(t, user.ID)
	w = s.do(http.MethodGet, "/api/v1/users/current-user", token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "bob", decode[dtos.UserResponse](t, w).Username)

	w = s.do(http.MethodPatch, "/api/v1/users/current-user", token, gin.H{"first_name": "Bob", "last_name": "Le"})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "Le", decode[dtos.UserResponse](t, w).LastName)

	w = s.do(http.MethodPatch, "/api/v1/users/current-user", token, gin.H{"role": "EMPLOYER"})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Invalid fields", decode[map[string]interface{}](t, w)["error"])

	requireStatus(t, s.do(http.MethodGet, "/api/v1/users/employer-only", token, nil), http.StatusForbidden)
	w = s.do(http.MethodGet, "/api/v1/users/employer-only", s.register("acme", models.RoleEmployer), nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"msg":"EMPLOYER OK"}`, w.Body.String())
}

func TestListJobsQueryErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/jobs", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, w.Body.String())

	requireStatus(t, s.do(http.MethodGet, "/api/v1/jobs?page=2", "", nil), http.StatusNotFound)
	requireStatus(t, s.do(http.MethodGet, "/api/v1/jobs?page=abc", "", nil), http.StatusNotFound)

	w = s.do(http.MethodGet, "/api/v1/jobs?salary_min=cheap", "", nil)
	requireStatus(t, w, http.StatusBadRequest)
	body := decode[map[string]interface{}](t, w)
	assert.Contains(t, body["fields"], "salary_min")

	requireStatus(t, s.do(http.MethodGet, "/api/v1/jobs/abc/detail", "", nil), http.StatusNotFound)
	requireStatus(t, s.do(http.MethodGet, "/api/v1/jobs/42/detail", "", nil), http.StatusNotFound)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()

	requireStatus(t, s.do(http.MethodPost, "/api/v1/admin/tags", admin, gin.H{"name": "Go"}), http.StatusCreated)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/admin/tags", admin, gin.H{"name": "Go"}), http.StatusConflict)
	requireStatus(t, s.do(http.MethodPost, "/api/v1/admin/tags", "", gin.H{"name": "Rust"}), http.StatusUnauthorized)

	w := s.do(http.MethodGet, "/api/v1/tags", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `[{"id":1,"name":"Go"}]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/categories", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAdminStatsDefaultsToCurrentYear(t *testing.T) {
	s := newTestServer(t)
	s.stats.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	admin := s.admin()

	for _, query := range []string{"", "?year=", "?year=last"} {
		w := s.do(http.MethodGet, "/api/v1/admin/stats"+query, admin, nil)
		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, 2026, decode[dtos.SystemReport](t, w).SelectedYear, query)
	}
}

type stubExtractor struct {
	draft *dtos.JobDraft
	err   error
}

func (s stubExtractor) ExtractJobDraft(context.Context, string) (*dtos.JobDraft, error) {
	return s.draft, s.err
}

func TestParseJob(t *testing.T) {
	s := newTestServer(t)
	emp := s.register("acme", models.RoleEmployer)
	body := gin.H{"raw_html": "<h1>Go Engineer</h1>"}

	w := s.do(http.MethodPost, "/api/v1/jobs/extract", emp, body)
	requireStatus(t, w, http.StatusServiceUnavailable)

	s.jobs.Extractor = stubExtractor{draft: &dtos.JobDraft{Title: "Go Engineer", Tags: []string{"Go"}}}
	w = s.do(http.MethodPost, "/api/v1/jobs/extract", emp, body)
	requireStatus(t, w, http.StatusOK)
	got := decode[struct {
		Success bool          `json:"success"`
		Data    dtos.JobDraft `json:"data"`
	}](t, w)
	assert.True(t, got.Success)
	assert.Equal(t, "Go Engineer", got.Data.Title)

	requireStatus(t, s.do(http.MethodPost, "/api/v1/jobs/extract", emp, gin.H{}), http.StatusBadRequest)

	s.jobs.Extractor = stubExtractor{err: errors.New("model overloaded")}
	w = s.do(http.MethodPost, "/api/v1/jobs/extract", emp, body)
	requireStatus(t, w, http.StatusBadGateway)
	assert.NotContains(t, w.Body.String(), "overloaded")

	requireStatus(t, s.do(http.MethodPost, "/api/v1/jobs/extract", s.register("alice", models.RoleCandidate), body), http.StatusForbidden)
}

func TestHealthMetricsAndCORS(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/health", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "ejobs_http_requests_total")

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w
	}
	w = preflight("https://ejobs.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ejobs.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardAllowsAnyOrigin(t *testing.T) {
	for _, origins := range [][]string{nil, {"https://ejobs.example", "*"}} {
		r := NewRouter(Router{
			Log:         zap.NewNop(),
			Auth:        middleware.NewAuthenticator(testSecret, services.NewUserService(dbtest.Open(t)), zap.NewNop()),
			CORSOrigins: origins,
		})
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
		req.Header.Set("Origin", "https://anyone.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
