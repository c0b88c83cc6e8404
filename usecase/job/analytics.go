package job

import (
	"context"
	"sort"
	"time"

	"github.com/jobdeck/backend/domain"
)

// Analytics computes the per-job statistics view. Owner only. Everything is
// folded in memory from the job row and its applications; no aggregates are
// stored.
func (uc *UseCase) Analytics(ctx context.Context, id, callerID string) (*domain.JobAnalytics, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	apps, err := uc.applications.ListByJob(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	breakdown := map[string]int{}
	for _, app := range apps {
		breakdown[string(app.Status)]++
	}

	return &domain.JobAnalytics{
		JobID:           job.ID,
		Title:           job.Title,
		Status:          job.EffectiveStatus(now),
		Views:           job.Views,
		Applications:    int64(len(apps)),
		StatusBreakdown: breakdown,
		WeeklyTrend:     weeklyTrend(apps, now),
		ViewsPerDay:     perDay(job.Views, job.CreatedAt, now),
		ConversionRate:  conversionRate(int64(len(apps)), job.Views),
	}, nil
}

// Dashboard computes the company-wide aggregate over every owned job.
// Company role only.
func (uc *UseCase) Dashboard(ctx context.Context, callerID string) (*domain.DashboardStats, error) {
	caller, err := uc.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsCompany() {
		return nil, domain.ErrWrongRole
	}

	jobs, err := uc.jobs.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applications.ListByCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -30)

	stats := &domain.DashboardStats{
		TotalJobs:       len(jobs),
		StatusHistogram: map[string]int{},
	}

	top := make([]domain.TopJobEntry, 0, len(jobs))
	for _, j := range jobs {
		stats.TotalViews += j.Views
		if j.Status == domain.JobStatusActive && !j.DeadlinePassed(now) {
			stats.ActiveJobs++
		}
		if j.DeadlinePassed(now) {
			stats.ExpiredJobs++
		}
		if j.CreatedAt.After(cutoff) {
			stats.RecentJobs++
		}
		top = append(top, domain.TopJobEntry{
			JobID:          j.ID,
			Title:          j.Title,
			Views:          j.Views,
			Applications:   j.ApplicationCount,
			ConversionRate: conversionRate(j.ApplicationCount, j.Views),
		})
	}

	for _, app := range apps {
		stats.TotalApplications++
		stats.StatusHistogram[string(app.Status)]++
		if app.CreatedAt.After(cutoff) {
			stats.RecentApplications++
		}
	}

	sort.SliceStable(top, func(i, k int) bool { return top[i].Views > top[k].Views })
	if len(top) > 5 {
		top = top[:5]
	}
	stats.TopJobs = top

	return stats, nil
}

// weeklyTrend buckets applications per day over the last 7 days, oldest
// day first.
func weeklyTrend(apps []domain.ApplicationView, now time.Time) []domain.DailyCount {
	trend := make([]domain.DailyCount, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6).Format("2006-01-02")
		trend[i] = domain.DailyCount{Date: day}
		index[day] = i
	}
	for _, app := range apps {
		day := app.CreatedAt.Format("2006-01-02")
		if i, ok := index[day]; ok {
			trend[i].Count++
		}
	}
	return trend
}

func perDay(total int64, since, now time.Time) float64 {
	days := now.Sub(since).Hours() / 24
	if days < 1 {
		days = 1
	}
	return float64(total) / days
}

// conversionRate is applications/views, zero when there are no views.
func conversionRate(applications, views int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(applications) / float64(views)
}
