package job

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
	"github.com/jobdeck/backend/usecase"
)

type UseCase struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	users        repository.UserRepository
	views        usecase.ViewRecorder
	logger       *zap.Logger
}

func New(
	jobs repository.JobRepository,
	applications repository.ApplicationRepository,
	users repository.UserRepository,
	views usecase.ViewRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		jobs:         jobs,
		applications: applications,
		users:        users,
		views:        views,
		logger:       logger,
	}
}

// Create validates and persists a new posting. Only company-role users may
// post jobs.
func (uc *UseCase) Create(ctx context.Context, ownerID string, job *domain.Job) (*domain.Job, error) {
	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsCompany() {
		return nil, domain.ErrWrongRole
	}

	job.UserID = ownerID
	applyDefaults(job)
	if job.CompanyName == "" {
		job.CompanyName = owner.Name
	}
	if err := validate(job); err != nil {
		return nil, err
	}

	created, err := uc.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("job created", zap.String("job_id", created.ID), zap.String("owner_id", ownerID))
	return created, nil
}

// PublicList returns publicly visible jobs, newest first.
func (uc *UseCase) PublicList(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	return uc.jobs.PublicList(ctx, filter, time.Now())
}

// OwnerList returns every posting owned by ownerID regardless of status or
// deadline. Past-deadline postings read as expired.
func (uc *UseCase) OwnerList(ctx context.Context, ownerID string) ([]domain.Job, error) {
	jobs, err := uc.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range jobs {
		jobs[i].Status = jobs[i].EffectiveStatus(now)
	}
	return jobs, nil
}

// Get fetches a single posting and registers a view. The view increment is
// detached: the returned job may not yet reflect it.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.views != nil {
		uc.views.Record(job.ID)
	}
	job.Status = job.EffectiveStatus(time.Now())
	return job, nil
}

// Update replaces the updatable fields of a posting. Owner only.
func (uc *UseCase) Update(ctx context.Context, id, callerID string, fields *domain.Job) (*domain.Job, error) {
	current, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	fields.ID = current.ID
	fields.UserID = current.UserID
	fields.Views = current.Views
	fields.ApplicationCount = current.ApplicationCount
	fields.CreatedAt = current.CreatedAt
	applyDefaults(fields)
	if fields.CompanyName == "" {
		fields.CompanyName = current.CompanyName
	}
	if err := validate(fields); err != nil {
		return nil, err
	}

	if err := uc.jobs.Update(ctx, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Close transitions the posting to closed. Owner only.
func (uc *UseCase) Close(ctx context.Context, id, callerID string) (*domain.Job, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}
	if err := uc.jobs.UpdateStatus(ctx, id, domain.JobStatusClosed); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatusClosed
	return job, nil
}

// Reopen transitions a posting back to published. Rejected when the
// deadline has already passed; the stored status is left untouched.
func (uc *UseCase) Reopen(ctx context.Context, id, callerID string) (*domain.Job, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}
	if job.DeadlinePassed(time.Now()) {
		return nil, domain.NewError(domain.ErrKindInvalidState, "cannot reopen a job past its deadline")
	}
	if err := uc.jobs.UpdateStatus(ctx, id, domain.JobStatusPublished); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatusPublished
	return job, nil
}

// Delete hard-deletes the posting and, through the schema, its
// applications. Owner only.
func (uc *UseCase) Delete(ctx context.Context, id, callerID string) error {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !job.OwnedBy(callerID) {
		return domain.ErrNotOwner
	}
	if err := uc.jobs.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("job deleted", zap.String("job_id", id), zap.String("owner_id", callerID))
	return nil
}

func applyDefaults(job *domain.Job) {
	if job.JobType == "" {
		job.JobType = domain.JobTypeFullTime
	}
	if job.WorkMode == "" {
		job.WorkMode = domain.WorkModeOnsite
	}
	if job.ExperienceLevel == "" {
		job.ExperienceLevel = domain.ExperienceMid
	}
	job.Status = domain.NormalizeStatus(string(job.Status))
}

func validate(job *domain.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(job.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(job.Description) == "" {
		fields["description"] = "description is required"
	}
	if job.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	}
	if job.Salary.Min > 0 && job.Salary.Max > 0 && job.Salary.Min > job.Salary.Max {
		fields["salary"] = "salary minimum exceeds maximum"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
