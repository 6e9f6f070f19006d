package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/ejobs/internal/database/dbtest"
	"github.com/justsurfingit/ejobs/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, db: dbtest.Open(t), ctx: context.Background()}
}

func (f *fixture) user(username string, role models.Role) *models.User {
	f.t.Helper()
	u := &models.User{Username: username, Password: "x", Role: role, IsActive: true}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *fixture) employer(u *models.User, company string, approved bool) *models.EmployerProfile {
	f.t.Helper()
	e := &models.EmployerProfile{Base: models.Base{Active: true}, UserID: u.ID, CompanyName: company, IsApproved: approved}
	require.NoError(f.t, f.db.Create(e).Error)
	return e
}

func (f *fixture) candidate(u *models.User, name string) *models.CandidateProfile {
	f.t.Helper()
	c := &models.CandidateProfile{Base: models.Base{Active: true}, UserID: u.ID, FullName: name, CVFile: "https://cdn.example.com/" + u.Username + ".pdf"}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *fixture) category(name string) *models.JobCategory {
	f.t.Helper()
	c := &models.JobCategory{Base: models.Base{Active: true}, Name: name}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *fixture) tag(name string) *models.Tag {
	f.t.Helper()
	tag := &models.Tag{Base: models.Base{Active: true}, Name: name}
	require.NoError(f.t, f.db.Create(tag).Error)
	return tag
}

// post creates an OPEN post expiring in a month; edit adjusts it before insert.
func (f *fixture) post(e *models.EmployerProfile, title string, edit func(*models.JobPost)) *models.JobPost {
	f.t.Helper()
	p := &models.JobPost{
		Base:        models.Base{Active: true},
		EmployerID:  e.ID,
		Title:       title,
		Description: "desc",
		SalaryMin:   1000,
		SalaryMax:   2000,
		Location:    "Ha Noi",
		ExpiredDate: time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour),
		Status:      models.JobStatusOpen,
	}
	if edit != nil {
		edit(p)
	}
	require.NoError(f.t, f.db.Omit("Employer", "Category").Create(p).Error)
	return p
}

func (f *fixture) application(job *models.JobPost, c *models.CandidateProfile, at time.Time) *models.JobApplication {
	f.t.Helper()
	a := &models.JobApplication{
		Base:        models.Base{Active: true, CreatedAt: at},
		JobID:       job.ID,
		CandidateID: c.ID,
		Status:      models.ApplicationPending,
	}
	require.NoError(f.t, f.db.Omit("Job", "Candidate").Create(a).Error)
	return a
}

func uintPtr(v uint) *uint        { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
func uintsPtr(v ...uint) *[]uint  { return &v }
