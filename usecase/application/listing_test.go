package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/backend/domain"
)

func listFixture() (*UseCase, *fakeApplicationRepo) {
	uc, apps, _, _ := newFixture()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	apps.views["job-1"] = []domain.ApplicationView{
		{
			Application: domain.Application{ID: "a1", Status: domain.ApplicationPending, CreatedAt: base, CoverLetter: "I love distributed systems"},
			Applicant:   domain.ApplicantSummary{Name: "Charlie", Email: "charlie@example.com", Location: "Berlin"},
		},
		{
			Application: domain.Application{ID: "a2", Status: domain.ApplicationViewed, CreatedAt: base.AddDate(0, 0, 2)},
			Applicant:   domain.ApplicantSummary{Name: "alice", Email: "alice@example.com", Headline: "Go developer"},
		},
		{
			Application: domain.Application{ID: "a3", Status: domain.ApplicationPending, CreatedAt: base.AddDate(0, 0, 4)},
			Applicant:   domain.ApplicantSummary{Name: "Bob", Email: "bob@example.com", Location: "Remote"},
		},
	}
	return uc, apps
}

func ids(views []domain.ApplicationView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestListForJobOwnership(t *testing.T) {
	uc, _ := listFixture()

	_, err := uc.ListForJob(context.Background(), "job-1", "intruder", ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = uc.ListForJob(context.Background(), "missing", "company-1", ListOptions{})
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))
}

func TestListForJobDefaultsNewestFirst(t *testing.T) {
	uc, _ := listFixture()

	res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PerPage)
	assert.Equal(t, []string{"a3", "a2", "a1"}, ids(res.Applications))
}

func TestListForJobStatusFilter(t *testing.T) {
	uc, _ := listFixture()

	res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a3", "a1"}, ids(res.Applications))
}

func TestListForJobDateRange(t *testing.T) {
	uc, _ := listFixture()

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)
	res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, ids(res.Applications))
}

func TestListForJobSearch(t *testing.T) {
	uc, _ := listFixture()

	cases := map[string][]string{
		"ALICE":       {"a2"}, // name, case-insensitive
		"go develope": {"a2"}, // headline substring
		"berlin":      {"a1"}, // location
		"distributed": {"a1"}, // cover letter
		"example.com": {"a3", "a2", "a1"},
		"zzz":         {},
	}
	for query, want := range cases {
		res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{Search: query})
		require.NoError(t, err, "query=%q", query)
		assert.Equal(t, want, ids(res.Applications), "query=%q", query)
	}
}

func TestListForJobSortByName(t *testing.T) {
	uc, _ := listFixture()

	res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{SortBy: SortByName})
	require.NoError(t, err)
	// Case-insensitive ascending by default.
	assert.Equal(t, []string{"a2", "a3", "a1"}, ids(res.Applications))

	res, err = uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{SortBy: SortByName, SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3", "a2"}, ids(res.Applications))
}

func TestListForJobPagination(t *testing.T) {
	uc, _ := listFixture()

	res, err := uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"a1"}, ids(res.Applications))

	// A page past the end is empty, not an error.
	res, err = uc.ListForJob(context.Background(), "job-1", "company-1", ListOptions{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Applications)
	assert.Equal(t, 3, res.Total)
}
