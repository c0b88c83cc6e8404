package domain

import "time"

// JobStatus is the stored lifecycle state of a posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusActive    JobStatus = "active"
	JobStatusPaused    JobStatus = "paused"
	JobStatusClosed    JobStatus = "closed"
	// JobStatusExpired is never written to storage; it is derived at read
	// time from the deadline via EffectiveStatus.
	JobStatusExpired JobStatus = "expired"
)

// Job classification enums.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"

	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"

	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
	ExperienceLead   = "lead"
)

// Salary is a structured compensation range.
type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
	Period   string `json:"period,omitempty"`
}

// Benefits combines boolean flags with a free-text overflow list.
type Benefits struct {
	Health       bool     `json:"health,omitempty"`
	RemoteBudget bool     `json:"remote_budget,omitempty"`
	Equity       bool     `json:"equity,omitempty"`
	Extra        []string `json:"extra,omitempty"`
}

// Job is a posting owned by exactly one company-role user.
type Job struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	JobType          string    `json:"job_type"`
	WorkMode         string    `json:"work_mode"`
	ExperienceLevel  string    `json:"experience_level"`
	Salary           Salary    `json:"salary"`
	Requirements     []string  `json:"requirements,omitempty"`
	Benefits         Benefits  `json:"benefits"`
	Deadline         time.Time `json:"deadline"`
	Status           JobStatus `json:"status"`
	Views            int64     `json:"views"`
	ApplicationCount int64     `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DeadlinePassed reports whether the posting no longer accepts applications.
// Deadline comparisons always use request-time wall clock, no grace period.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j != nil && j.Deadline.Before(now)
}

// IsPubliclyVisible reports whether the job appears in public listings.
// Owner views bypass this check entirely.
func (j *Job) IsPubliclyVisible(now time.Time) bool {
	if j == nil {
		return false
	}
	if j.Status != JobStatusPublished && j.Status != JobStatusActive {
		return false
	}
	return !j.DeadlinePassed(now)
}

// EffectiveStatus reports the status as seen by readers: a posting past its
// deadline reads as expired regardless of what is stored.
func (j *Job) EffectiveStatus(now time.Time) JobStatus {
	if j == nil {
		return ""
	}
	if j.DeadlinePassed(now) && j.Status != JobStatusClosed && j.Status != JobStatusDraft {
		return JobStatusExpired
	}
	return j.Status
}

// OwnedBy reports whether userID owns the posting.
func (j *Job) OwnedBy(userID string) bool {
	return j != nil && userID != "" && j.UserID == userID
}

// NormalizeStatus maps client-supplied status values onto the canonical
// enum. Two legacy aliases are honored; anything unrecognized falls back to
// published.
func NormalizeStatus(raw string) JobStatus {
	switch JobStatus(raw) {
	case JobStatusDraft, JobStatusPublished, JobStatusActive, JobStatusPaused, JobStatusClosed:
		return JobStatus(raw)
	}
	switch raw {
	case "live":
		return JobStatusPublished
	case "inactive":
		return JobStatusPaused
	}
	return JobStatusPublished
}

// JobAnalytics is the owner-facing per-job statistics view.
type JobAnalytics struct {
	JobID           string         `json:"job_id"`
	Title           string         `json:"title"`
	Status          JobStatus      `json:"status"`
	Views           int64          `json:"views"`
	Applications    int64          `json:"applications"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	WeeklyTrend     []DailyCount   `json:"weekly_trend"`
	ViewsPerDay     float64        `json:"views_per_day"`
	ConversionRate  float64        `json:"conversion_rate"`
}

// DailyCount is one day's worth of activity in a trend series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardStats is the company-wide aggregate over all owned jobs.
type DashboardStats struct {
	TotalJobs          int             `json:"total_jobs"`
	TotalViews         int64           `json:"total_views"`
	TotalApplications  int64           `json:"total_applications"`
	ActiveJobs         int             `json:"active_jobs"`
	ExpiredJobs        int             `json:"expired_jobs"`
	StatusHistogram    map[string]int  `json:"status_histogram"`
	TopJobs            []TopJobEntry   `json:"top_jobs"`
	RecentApplications int             `json:"recent_applications"`
	RecentJobs         int             `json:"recent_jobs"`
}

// TopJobEntry ranks a job by views with its conversion rate.
type TopJobEntry struct {
	JobID          string  `json:"job_id"`
	Title          string  `json:"title"`
	Views          int64   `json:"views"`
	Applications   int64   `json:"applications"`
	ConversionRate float64 `json:"conversion_rate"`
}
