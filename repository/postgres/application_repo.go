package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation of
// ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, job_id, applicant_id, company_id, status, cover_letter,
	attached_documents, company_notes, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, domain.ErrInvalidPayload
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationPending
	}

	const query = `
	INSERT INTO applications (id, job_id, applicant_id, company_id, status, cover_letter, attached_documents, company_notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.CompanyID,
		string(app.Status),
		app.CoverLetter,
		marshalJSON(app.AttachedDocuments),
		app.CompanyNotes,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		// The unique index on (job_id, applicant_id) is the authoritative
		// duplicate check; the use-case pre-check only exists for a nicer
		// common-case error.
		if isUniqueViolation(err, "applications_job_applicant_key") {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *applicationRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Application, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.ApplicationView, error) {
	const query = `
	SELECT a.id, a.job_id, a.applicant_id, a.company_id, a.status, a.cover_letter,
		a.attached_documents, a.company_notes, a.created_at, a.updated_at,
		u.id, u.name, u.email, u.headline, u.location, u.skills, u.experience
	FROM applications a
	JOIN users u ON u.id = a.applicant_id
	WHERE a.job_id = $1
	ORDER BY a.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.ApplicationView
	for rows.Next() {
		var v domain.ApplicationView
		var status string
		var attached, skills, experience []byte

		err := rows.Scan(
			&v.ID,
			&v.JobID,
			&v.ApplicantID,
			&v.CompanyID,
			&status,
			&v.CoverLetter,
			&attached,
			&v.CompanyNotes,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.Applicant.ID,
			&v.Applicant.Name,
			&v.Applicant.Email,
			&v.Applicant.Headline,
			&v.Applicant.Location,
			&skills,
			&experience,
		)
		if err != nil {
			return nil, err
		}

		v.Status = domain.ApplicationStatus(status)
		unmarshalJSON(attached, &v.AttachedDocuments)
		unmarshalJSON(skills, &v.Applicant.Skills)

		var exp []domain.Experience
		unmarshalJSON(experience, &exp)
		v.Applicant.ExperienceCount = len(exp)

		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error) {
	const query = `
	SELECT a.id, a.job_id, a.applicant_id, a.company_id, a.status, a.cover_letter,
		a.attached_documents, a.company_notes, a.created_at, a.updated_at,
		j.title, j.company_name
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	WHERE a.applicant_id = $1
	ORDER BY a.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.ApplicationWithJob
	for rows.Next() {
		var a domain.ApplicationWithJob
		var status string
		var attached []byte

		err := rows.Scan(
			&a.ID,
			&a.JobID,
			&a.ApplicantID,
			&a.CompanyID,
			&status,
			&a.CoverLetter,
			&attached,
			&a.CompanyNotes,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.JobTitle,
			&a.CompanyName,
		)
		if err != nil {
			return nil, err
		}

		a.Status = domain.ApplicationStatus(status)
		unmarshalJSON(attached, &a.AttachedDocuments)
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const query = `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	const query = `UPDATE applications SET company_notes = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) BulkUpdateStatus(ctx context.Context, ids []string, companyID string, status domain.ApplicationStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	// company_id in the predicate backstops the use-case authorization: even
	// if a foreign id slips through, its row is never touched.
	const query = `UPDATE applications SET status = $3, updated_at = NOW() WHERE id = ANY($1) AND company_id = $2`
	tag, err := r.pool.Exec(ctx, query, ids, companyID, string(status))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *applicationRepository) BulkUpdateNotes(ctx context.Context, ids []string, companyID string, notes string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `UPDATE applications SET company_notes = $3, updated_at = NOW() WHERE id = ANY($1) AND company_id = $2`
	tag, err := r.pool.Exec(ctx, query, ids, companyID, notes)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var status string
	var attached []byte

	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.CompanyID,
		&status,
		&app.CoverLetter,
		&attached,
		&app.CompanyNotes,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	app.Status = domain.ApplicationStatus(status)
	unmarshalJSON(attached, &app.AttachedDocuments)
	return &app, nil
}
