package repository

import (
	"context"

	"github.com/jobdeck/backend/domain"
)

type ApplicationRepository interface {
	// Create persists the application. A concurrent duplicate for the same
	// (job, applicant) pair surfaces as domain.ErrDuplicateApplication via
	// the store's unique constraint.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Application, error)
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error)
	// ListByJob returns every application for the job populated with its
	// applicant, newest first. Filtering, search and pagination happen on
	// the populated result set in the use case.
	ListByJob(ctx context.Context, jobID string) ([]domain.ApplicationView, error)
	// ListByApplicant returns the applicant's applications with job context
	// denormalized, newest first.
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error)
	// ListByCompany returns every application targeting the company's jobs.
	ListByCompany(ctx context.Context, companyID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	// BulkUpdateStatus updates all listed applications owned by companyID in
	// one statement and reports the modified count.
	BulkUpdateStatus(ctx context.Context, ids []string, companyID string, status domain.ApplicationStatus) (int64, error)
	BulkUpdateNotes(ctx context.Context, ids []string, companyID string, notes string) (int64, error)
}
