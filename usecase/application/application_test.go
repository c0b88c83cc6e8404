package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeJobRepo struct {
	jobs      map[string]*domain.Job
	appCounts map[string]int
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) PublicList(_ context.Context, _ repository.JobFilter, _ time.Time) ([]domain.Job, error) {
	return nil, nil
}

func (f *fakeJobRepo) ListByOwner(_ context.Context, _ string) ([]domain.Job, error) {
	return nil, nil
}

func (f *fakeJobRepo) Update(_ context.Context, _ *domain.Job) error { return nil }

func (f *fakeJobRepo) UpdateStatus(_ context.Context, _ string, _ domain.JobStatus) error {
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeJobRepo) IncrementViews(_ context.Context, _ string, _ int64) error { return nil }

func (f *fakeJobRepo) IncrementApplicationCount(_ context.Context, id string) error {
	f.appCounts[id]++
	return nil
}

type fakeApplicationRepo struct {
	apps  map[string]*domain.Application
	views map[string][]domain.ApplicationView
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	for _, existing := range f.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return nil, domain.ErrDuplicateApplication
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now()
	f.apps[app.ID] = app
	copied := *app
	return &copied, nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplicationRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Application, error) {
	var out []domain.Application
	for _, id := range ids {
		if app, ok := f.apps[id]; ok {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ExistsForJobAndApplicant(_ context.Context, jobID, applicantID string) (bool, error) {
	for _, app := range f.apps {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) ListByJob(_ context.Context, jobID string) ([]domain.ApplicationView, error) {
	out := make([]domain.ApplicationView, len(f.views[jobID]))
	copy(out, f.views[jobID])
	return out, nil
}

func (f *fakeApplicationRepo) ListByApplicant(_ context.Context, _ string) ([]domain.ApplicationWithJob, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) ListByCompany(_ context.Context, _ string) ([]domain.Application, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) error {
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

func (f *fakeApplicationRepo) UpdateNotes(_ context.Context, id string, notes string) error {
	app, ok := f.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	app.CompanyNotes = notes
	return nil
}

func (f *fakeApplicationRepo) BulkUpdateStatus(_ context.Context, ids []string, companyID string, status domain.ApplicationStatus) (int64, error) {
	var n int64
	for _, id := range ids {
		if app, ok := f.apps[id]; ok && app.CompanyID == companyID {
			app.Status = status
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) BulkUpdateNotes(_ context.Context, ids []string, companyID string, notes string) (int64, error) {
	var n int64
	for _, id := range ids {
		if app, ok := f.apps[id]; ok && app.CompanyID == companyID {
			app.CompanyNotes = notes
			n++
		}
	}
	return n, nil
}

func newFixture() (*UseCase, *fakeApplicationRepo, *fakeJobRepo, *fakeUserRepo) {
	apps := &fakeApplicationRepo{
		apps:  map[string]*domain.Application{},
		views: map[string][]domain.ApplicationView{},
	}
	jobs := &fakeJobRepo{
		jobs: map[string]*domain.Job{
			"job-1": {
				ID:       "job-1",
				UserID:   "company-1",
				Title:    "Backend Engineer",
				Status:   domain.JobStatusPublished,
				Deadline: time.Now().Add(30 * 24 * time.Hour),
			},
		},
		appCounts: map[string]int{},
	}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"company-1": {ID: "company-1", Name: "Acme", Role: domain.RoleCompany},
		"seeker-1": {
			ID:   "seeker-1",
			Name: "Ada",
			Role: domain.RoleSeeker,
			Documents: []domain.Document{
				{ID: "d1", Name: "cv.pdf"},
				{ID: "d2", Name: "cover.pdf"},
			},
		},
	}}
	return New(apps, jobs, users, nil), apps, jobs, users
}

func TestApplyHappyPath(t *testing.T) {
	uc, _, jobs, _ := newFixture()

	created, err := uc.Apply(context.Background(), "job-1", "seeker-1", "hello", []string{"d2", "missing"})
	require.NoError(t, err)

	assert.Equal(t, "job-1", created.JobID)
	assert.Equal(t, "seeker-1", created.ApplicantID)
	// Owner id is denormalized from the job at submission time.
	assert.Equal(t, "company-1", created.CompanyID)
	assert.Equal(t, domain.ApplicationPending, created.Status)
	// Only documents that actually belong to the applicant are snapshotted.
	require.Len(t, created.AttachedDocuments, 1)
	assert.Equal(t, "d2", created.AttachedDocuments[0].ID)
	assert.Equal(t, 1, jobs.appCounts["job-1"])
}

func TestApplyRejectsDuplicate(t *testing.T) {
	uc, _, jobs, _ := newFixture()

	_, err := uc.Apply(context.Background(), "job-1", "seeker-1", "", nil)
	require.NoError(t, err)

	_, err = uc.Apply(context.Background(), "job-1", "seeker-1", "", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	assert.Equal(t, 1, jobs.appCounts["job-1"])
}

func TestApplyRejectsPastDeadline(t *testing.T) {
	uc, _, jobs, _ := newFixture()
	jobs.jobs["job-1"].Deadline = time.Now().Add(-time.Minute)

	_, err := uc.Apply(context.Background(), "job-1", "seeker-1", "", nil)
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
}

func TestApplyRejectsCompanyRole(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Apply(context.Background(), "job-1", "company-1", "", nil)
	assert.ErrorIs(t, err, domain.ErrWrongRole)
}

func TestApplyUnknownJob(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Apply(context.Background(), "missing", "seeker-1", "", nil)
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestUpdateStatus(t *testing.T) {
	uc, apps, _, _ := newFixture()
	created, err := uc.Apply(context.Background(), "job-1", "seeker-1", "", nil)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), created.ID, "company-1", "sorted")
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	_, err = uc.UpdateStatus(context.Background(), created.ID, "intruder", "viewed")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	updated, err := uc.UpdateStatus(context.Background(), created.ID, "company-1", "viewed")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationViewed, updated.Status)
	assert.Equal(t, domain.ApplicationViewed, apps.apps[created.ID].Status)
}

func TestSetNotes(t *testing.T) {
	uc, apps, _, _ := newFixture()
	created, err := uc.Apply(context.Background(), "job-1", "seeker-1", "", nil)
	require.NoError(t, err)

	_, err = uc.SetNotes(context.Background(), created.ID, "intruder", "nope")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	updated, err := uc.SetNotes(context.Background(), created.ID, "company-1", "strong candidate")
	require.NoError(t, err)
	assert.Equal(t, "strong candidate", updated.CompanyNotes)
	assert.Equal(t, "strong candidate", apps.apps[created.ID].CompanyNotes)
}

func TestBulkUpdateStatusAllOrNothing(t *testing.T) {
	uc, apps, _, _ := newFixture()

	a1 := &domain.Application{ID: "a1", JobID: "job-1", ApplicantID: "s1", CompanyID: "company-1", Status: domain.ApplicationPending}
	a2 := &domain.Application{ID: "a2", JobID: "job-1", ApplicantID: "s2", CompanyID: "company-1", Status: domain.ApplicationPending}
	foreign := &domain.Application{ID: "a3", JobID: "job-9", ApplicantID: "s3", CompanyID: "other-co", Status: domain.ApplicationPending}
	apps.apps["a1"], apps.apps["a2"], apps.apps["a3"] = a1, a2, foreign

	// A foreign id poisons the whole batch.
	n, err := uc.BulkUpdateStatus(context.Background(), []string{"a1", "a3"}, "company-1", "viewed")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Zero(t, n)
	assert.Equal(t, domain.ApplicationPending, a1.Status)

	// So does an unknown id.
	n, err = uc.BulkUpdateStatus(context.Background(), []string{"a1", "ghost"}, "company-1", "viewed")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Zero(t, n)

	// An empty batch is a validation error.
	_, err = uc.BulkUpdateStatus(context.Background(), nil, "company-1", "viewed")
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	// An invalid status is rejected before any authorization work.
	_, err = uc.BulkUpdateStatus(context.Background(), []string{"a1"}, "company-1", "sorted")
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	// A fully owned batch goes through.
	n, err = uc.BulkUpdateStatus(context.Background(), []string{"a1", "a2"}, "company-1", "viewed")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, domain.ApplicationViewed, a1.Status)
	assert.Equal(t, domain.ApplicationViewed, a2.Status)
}

func TestBulkSetNotesAllOrNothing(t *testing.T) {
	uc, apps, _, _ := newFixture()

	a1 := &domain.Application{ID: "a1", JobID: "job-1", ApplicantID: "s1", CompanyID: "company-1"}
	foreign := &domain.Application{ID: "a2", JobID: "job-9", ApplicantID: "s2", CompanyID: "other-co"}
	apps.apps["a1"], apps.apps["a2"] = a1, foreign

	_, err := uc.BulkSetNotes(context.Background(), []string{"a1", "a2"}, "company-1", "batch note")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Empty(t, a1.CompanyNotes)

	n, err := uc.BulkSetNotes(context.Background(), []string{"a1"}, "company-1", "batch note")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "batch note", a1.CompanyNotes)
}
