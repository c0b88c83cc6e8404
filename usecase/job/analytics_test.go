package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/backend/domain"
)

func appView(status domain.ApplicationStatus, createdAt time.Time) domain.ApplicationView {
	return domain.ApplicationView{
		Application: domain.Application{Status: status, CreatedAt: createdAt},
	}
}

func TestAnalyticsOwnerOnly(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	created, err := uc.Create(context.Background(), "company-1", validJob())
	require.NoError(t, err)

	_, err = uc.Analytics(context.Background(), created.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestAnalyticsBreakdownAndRates(t *testing.T) {
	uc, jobs, apps, _, _ := newFixture()

	created, err := uc.Create(context.Background(), "company-1", validJob())
	require.NoError(t, err)
	jobs.jobs[created.ID].Views = 200
	jobs.jobs[created.ID].CreatedAt = time.Now().AddDate(0, 0, -10)

	now := time.Now()
	apps.byJob[created.ID] = []domain.ApplicationView{
		appView(domain.ApplicationPending, now),
		appView(domain.ApplicationPending, now.AddDate(0, 0, -2)),
		appView(domain.ApplicationViewed, now.AddDate(0, 0, -2)),
		appView(domain.ApplicationSuccessful, now.AddDate(0, 0, -20)),
	}

	stats, err := uc.Analytics(context.Background(), created.ID, "company-1")
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Applications)
	assert.Equal(t, map[string]int{
		"pending":    2,
		"viewed":     1,
		"successful": 1,
	}, stats.StatusBreakdown)
	assert.InDelta(t, 4.0/200.0, stats.ConversionRate, 1e-9)
	assert.InDelta(t, 20.0, stats.ViewsPerDay, 0.5)

	require.Len(t, stats.WeeklyTrend, 7)
	// Oldest day first, today last.
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), stats.WeeklyTrend[0].Date)
	assert.Equal(t, now.Format("2006-01-02"), stats.WeeklyTrend[6].Date)
	assert.Equal(t, 1, stats.WeeklyTrend[6].Count)
	assert.Equal(t, 2, stats.WeeklyTrend[4].Count)
	// The 20-day-old application falls outside the window.
	total := 0
	for _, d := range stats.WeeklyTrend {
		total += d.Count
	}
	assert.Equal(t, 3, total)
}

func TestAnalyticsZeroViews(t *testing.T) {
	uc, _, apps, _, _ := newFixture()

	created, err := uc.Create(context.Background(), "company-1", validJob())
	require.NoError(t, err)
	apps.byJob[created.ID] = []domain.ApplicationView{appView(domain.ApplicationPending, time.Now())}

	stats, err := uc.Analytics(context.Background(), created.ID, "company-1")
	require.NoError(t, err)
	assert.Zero(t, stats.ConversionRate)
}

func TestDashboardRequiresCompanyRole(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.Dashboard(context.Background(), "seeker-1")
	assert.ErrorIs(t, err, domain.ErrWrongRole)
}

func TestDashboardAggregates(t *testing.T) {
	uc, jobs, apps, _, _ := newFixture()

	now := time.Now()
	for i, j := range []*domain.Job{
		{ID: "j1", UserID: "company-1", Title: "A", Status: domain.JobStatusActive, Deadline: now.Add(time.Hour), Views: 300, ApplicationCount: 30},
		{ID: "j2", UserID: "company-1", Title: "B", Status: domain.JobStatusActive, Deadline: now.Add(-time.Hour), Views: 200, ApplicationCount: 2},
		{ID: "j3", UserID: "company-1", Title: "C", Status: domain.JobStatusPaused, Deadline: now.Add(time.Hour), Views: 100, ApplicationCount: 1},
		{ID: "j4", UserID: "company-1", Title: "D", Status: domain.JobStatusClosed, Deadline: now.Add(time.Hour), Views: 50, ApplicationCount: 0},
		{ID: "j5", UserID: "company-1", Title: "E", Status: domain.JobStatusPublished, Deadline: now.Add(time.Hour), Views: 25, ApplicationCount: 0},
		{ID: "j6", UserID: "company-1", Title: "F", Status: domain.JobStatusDraft, Deadline: now.Add(time.Hour), Views: 10, ApplicationCount: 0},
	} {
		j.CreatedAt = now.AddDate(0, 0, -i*20)
		jobs.jobs[j.ID] = j
	}

	apps.byCompany["company-1"] = []domain.Application{
		{Status: domain.ApplicationPending, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: domain.ApplicationPending, CreatedAt: now.AddDate(0, 0, -40)},
		{Status: domain.ApplicationSuccessful, CreatedAt: now.AddDate(0, 0, -2)},
	}

	stats, err := uc.Dashboard(context.Background(), "company-1")
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalJobs)
	assert.Equal(t, int64(685), stats.TotalViews)
	assert.Equal(t, int64(3), stats.TotalApplications)
	// Only active-status jobs before their deadline count as active.
	assert.Equal(t, 1, stats.ActiveJobs)
	assert.Equal(t, 1, stats.ExpiredJobs)
	assert.Equal(t, 2, stats.RecentApplications)
	assert.Equal(t, map[string]int{"pending": 2, "successful": 1}, stats.StatusHistogram)

	// Top five by views, descending.
	require.Len(t, stats.TopJobs, 5)
	assert.Equal(t, "j1", stats.TopJobs[0].JobID)
	assert.Equal(t, "j2", stats.TopJobs[1].JobID)
	assert.InDelta(t, 0.1, stats.TopJobs[0].ConversionRate, 1e-9)
}
