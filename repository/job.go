package repository

import (
	"context"
	"time"

	"github.com/jobdeck/backend/domain"
)

// JobFilter narrows the public listing. Zero values mean "no constraint".
type JobFilter struct {
	JobType         string
	WorkMode        string
	ExperienceLevel string
	Location        string
	Search          string
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	// PublicList returns jobs with status published/active and a deadline at
	// or after now, newest first.
	PublicList(ctx context.Context, filter JobFilter, now time.Time) ([]domain.Job, error)
	// ListByOwner returns every job owned by ownerID regardless of status or
	// deadline, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error
	Delete(ctx context.Context, id string) error
	// IncrementViews adds delta to the views counter. Used by the detached
	// view-count flusher, never on the request path.
	IncrementViews(ctx context.Context, id string, delta int64) error
	IncrementApplicationCount(ctx context.Context, id string) error
}
