package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jobdeck/backend/domain"
)

// Sort keys accepted by ListForJob.
const (
	SortByDate   = "date"
	SortByName   = "name"
	SortByStatus = "status"
)

// ListOptions narrows, orders and pages the populated application list.
type ListOptions struct {
	Status  string
	From    *time.Time
	To      *time.Time
	Search  string
	SortBy  string
	SortDir string
	Page    int
	PerPage int
}

// ListResult is one page of applications plus the total after filtering.
type ListResult struct {
	Applications []domain.ApplicationView `json:"applications"`
	Total        int                      `json:"total"`
	Page         int                      `json:"page"`
	PerPage      int                      `json:"per_page"`
}

// ListForJob returns the applications for a job the caller owns. Status and
// date-range filters, the free-text search and pagination are all applied
// to the populated result set in memory; the search is a deliberate linear
// scan, not an indexed query.
func (uc *UseCase) ListForJob(ctx context.Context, jobID, callerID string, opts ListOptions) (*ListResult, error) {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	views, err := uc.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	views = filterApplications(views, opts)
	if s := strings.TrimSpace(opts.Search); s != "" {
		views = searchApplications(views, s)
	}
	sortApplications(views, opts.SortBy, opts.SortDir)

	total := len(views)
	page, perPage := opts.Page, opts.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &ListResult{
		Applications: views[start:end],
		Total:        total,
		Page:         page,
		PerPage:      perPage,
	}, nil
}

func filterApplications(views []domain.ApplicationView, opts ListOptions) []domain.ApplicationView {
	out := views[:0]
	for _, v := range views {
		if opts.Status != "" && string(v.Status) != opts.Status {
			continue
		}
		if opts.From != nil && v.CreatedAt.Before(*opts.From) {
			continue
		}
		if opts.To != nil && v.CreatedAt.After(*opts.To) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// searchApplications matches the query case-insensitively against applicant
// name, email, headline, location and the cover letter.
func searchApplications(views []domain.ApplicationView, query string) []domain.ApplicationView {
	query = strings.ToLower(query)
	out := views[:0]
	for _, v := range views {
		haystack := strings.ToLower(strings.Join([]string{
			v.Applicant.Name,
			v.Applicant.Email,
			v.Applicant.Headline,
			v.Applicant.Location,
			v.CoverLetter,
		}, "\n"))
		if strings.Contains(haystack, query) {
			out = append(out, v)
		}
	}
	return out
}

func sortApplications(views []domain.ApplicationView, sortBy, dir string) {
	// Date sorts newest-first by default; name and status default ascending.
	desc := strings.EqualFold(dir, "desc")
	if dir == "" && (sortBy == "" || sortBy == SortByDate) {
		desc = true
	}

	var less func(a, b *domain.ApplicationView) bool
	switch sortBy {
	case SortByName:
		less = func(a, b *domain.ApplicationView) bool {
			return strings.ToLower(a.Applicant.Name) < strings.ToLower(b.Applicant.Name)
		}
	case SortByStatus:
		less = func(a, b *domain.ApplicationView) bool {
			return a.Status < b.Status
		}
	default: // date
		less = func(a, b *domain.ApplicationView) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(views, func(i, k int) bool {
		if desc {
			return less(&views[k], &views[i])
		}
		return less(&views[i], &views[k])
	})
}
