package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/internal/infrastructure/counter"
	"github.com/jobdeck/backend/repository"
)

type stubHealth struct {
	online bool
}

func (s stubHealth) IsOnline() bool { return s.online }

type stubJobRepo struct {
	views   map[string]int64
	failing map[string]bool
}

func (s *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	return job, nil
}

func (s *stubJobRepo) GetByID(_ context.Context, _ string) (*domain.Job, error) {
	return nil, domain.ErrJobNotFound
}

func (s *stubJobRepo) PublicList(_ context.Context, _ repository.JobFilter, _ time.Time) ([]domain.Job, error) {
	return nil, nil
}

func (s *stubJobRepo) ListByOwner(_ context.Context, _ string) ([]domain.Job, error) {
	return nil, nil
}

func (s *stubJobRepo) Update(_ context.Context, _ *domain.Job) error { return nil }

func (s *stubJobRepo) UpdateStatus(_ context.Context, _ string, _ domain.JobStatus) error {
	return nil
}

func (s *stubJobRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubJobRepo) IncrementViews(_ context.Context, id string, delta int64) error {
	if s.failing[id] {
		return domain.WrapError(domain.ErrKindInternal, "increment failed", nil)
	}
	s.views[id] += delta
	return nil
}

func (s *stubJobRepo) IncrementApplicationCount(_ context.Context, _ string) error { return nil }

func newFlusherFixture(t *testing.T, online bool) (*ViewFlusher, *counter.Store, *stubJobRepo) {
	t.Helper()
	store, err := counter.Open(filepath.Join(t.TempDir(), "views.db"), "views")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jobs := &stubJobRepo{views: map[string]int64{}, failing: map[string]bool{}}
	vf := NewViewFlusher(store, stubHealth{online: online}, jobs, nil, FlusherConfig{Interval: time.Minute})
	return vf, store, jobs
}

func TestFlushAppliesSpooledDeltas(t *testing.T) {
	vf, store, jobs := newFlusherFixture(t, true)

	vf.Record("job-1")
	vf.Record("job-1")
	vf.Record("job-2")
	assert.Equal(t, 2, vf.Pending())

	require.NoError(t, vf.Flush(context.Background()))

	assert.Equal(t, int64(2), jobs.views["job-1"])
	assert.Equal(t, int64(1), jobs.views["job-2"])
	assert.Zero(t, vf.Pending())

	deltas, err := store.Drain()
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestFlushSkipsWhenOffline(t *testing.T) {
	vf, _, jobs := newFlusherFixture(t, false)

	vf.Record("job-1")
	require.NoError(t, vf.Flush(context.Background()))

	// Nothing applied, nothing lost.
	assert.Empty(t, jobs.views)
	assert.Equal(t, 1, vf.Pending())
}

func TestFlushRestoresFailedDeltas(t *testing.T) {
	vf, _, jobs := newFlusherFixture(t, true)
	jobs.failing["job-1"] = true

	vf.Record("job-1")
	vf.Record("job-2")
	require.NoError(t, vf.Flush(context.Background()))

	// The good delta lands; the failed one goes back into the spool.
	assert.Equal(t, int64(1), jobs.views["job-2"])
	assert.Equal(t, 1, vf.Pending())

	// A later flush retries the restored delta.
	jobs.failing["job-1"] = false
	require.NoError(t, vf.Flush(context.Background()))
	assert.Equal(t, int64(1), jobs.views["job-1"])
	assert.Zero(t, vf.Pending())
}

func TestRecordWithoutStoreIsNoop(t *testing.T) {
	var vf *ViewFlusher
	vf.Record("job-1") // must not panic
	assert.Zero(t, vf.Pending())
}
