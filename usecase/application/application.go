package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type UseCase struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	users        repository.UserRepository
	logger       *zap.Logger
}

func New(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		jobs:         jobs,
		users:        users,
		logger:       logger,
	}
}

// Apply submits an application for a job. The deadline is checked against
// request-time wall clock; only seekers may apply; the selected documents
// are snapshotted from the applicant's profile at submission time. The
// store's unique (job, applicant) constraint is the authoritative guard
// against concurrent duplicates.
func (uc *UseCase) Apply(ctx context.Context, jobID, applicantID, coverLetter string, documentIDs []string) (*domain.Application, error) {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.DeadlinePassed(time.Now()) {
		return nil, domain.ErrDeadlinePassed
	}

	applicant, err := uc.users.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if !applicant.IsSeeker() {
		return nil, domain.ErrWrongRole
	}

	exists, err := uc.applications.ExistsForJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateApplication
	}

	app := &domain.Application{
		JobID:             jobID,
		ApplicantID:       applicantID,
		CompanyID:         job.UserID,
		Status:            domain.ApplicationPending,
		CoverLetter:       coverLetter,
		AttachedDocuments: applicant.DocumentsByID(documentIDs),
	}

	created, err := uc.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	if err := uc.jobs.IncrementApplicationCount(ctx, jobID); err != nil {
		// The application exists either way; a stale counter is not worth
		// failing the request over.
		uc.logger.Warn("failed to bump application count", zap.String("job_id", jobID), zap.Error(err))
	}

	uc.logger.Info("application submitted",
		zap.String("application_id", created.ID),
		zap.String("job_id", jobID),
		zap.String("applicant_id", applicantID))
	return created, nil
}

// ListForApplicant returns the caller's own applications, newest first,
// with job title and company denormalized into the response.
func (uc *UseCase) ListForApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error) {
	return uc.applications.ListByApplicant(ctx, applicantID)
}

// UpdateStatus sets the review state. Only the denormalized owning company
// may do this.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, callerID, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown application status"})
	}

	app, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	if err := uc.applications.UpdateStatus(ctx, id, domain.ApplicationStatus(status)); err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationStatus(status)
	return app, nil
}

// SetNotes replaces the company's free-text notes on an application.
func (uc *UseCase) SetNotes(ctx context.Context, id, callerID, notes string) (*domain.Application, error) {
	app, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	if err := uc.applications.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	app.CompanyNotes = notes
	return app, nil
}

// BulkUpdateStatus updates many applications at once. Authorization is
// all-or-nothing: if any referenced application is missing or owned by
// another company the whole batch is rejected and zero rows change.
func (uc *UseCase) BulkUpdateStatus(ctx context.Context, ids []string, callerID, status string) (int64, error) {
	if !domain.ValidApplicationStatus(status) {
		return 0, domain.NewValidationError(map[string]string{"status": "unknown application status"})
	}
	if err := uc.authorizeBatch(ctx, ids, callerID); err != nil {
		return 0, err
	}
	return uc.applications.BulkUpdateStatus(ctx, ids, callerID, domain.ApplicationStatus(status))
}

// BulkSetNotes applies the same notes to many applications, with the same
// all-or-nothing authorization as BulkUpdateStatus.
func (uc *UseCase) BulkSetNotes(ctx context.Context, ids []string, callerID, notes string) (int64, error) {
	if err := uc.authorizeBatch(ctx, ids, callerID); err != nil {
		return 0, err
	}
	return uc.applications.BulkUpdateNotes(ctx, ids, callerID, notes)
}

func (uc *UseCase) authorizeBatch(ctx context.Context, ids []string, callerID string) error {
	if len(ids) == 0 {
		return domain.NewValidationError(map[string]string{"ids": "at least one application id is required"})
	}

	apps, err := uc.applications.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	found := make(map[string]*domain.Application, len(apps))
	for i := range apps {
		found[apps[i].ID] = &apps[i]
	}
	for _, id := range ids {
		app, ok := found[id]
		// An unknown id cannot be proven to belong to the caller, so it
		// fails the batch the same way a foreign one does.
		if !ok || !app.OwnedBy(callerID) {
			return domain.ErrNotOwner
		}
	}
	return nil
}
