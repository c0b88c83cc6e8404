package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository returns a Postgres-backed implementation of JobRepository.
func NewJobRepository(pool *pgxpool.Pool) repository.JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, user_id, title, company_name, location, description, job_type, work_mode,
	experience_level, salary, requirements, benefits, deadline, status, views, application_count,
	created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, domain.ErrInvalidPayload
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO jobs (id, user_id, title, company_name, location, description, job_type, work_mode,
		experience_level, salary, requirements, benefits, deadline, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING views, application_count, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		job.ID,
		job.UserID,
		job.Title,
		job.CompanyName,
		job.Location,
		job.Description,
		job.JobType,
		job.WorkMode,
		job.ExperienceLevel,
		marshalJSON(job.Salary),
		marshalJSON(job.Requirements),
		marshalJSON(job.Benefits),
		job.Deadline,
		string(job.Status),
	).Scan(&job.Views, &job.ApplicationCount, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.pool.QueryRow(ctx, query, id))
}

func (r *jobRepository) PublicList(ctx context.Context, filter repository.JobFilter, now time.Time) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + `
	FROM jobs
	WHERE status IN ('published', 'active') AND deadline >= $1`

	args := []interface{}{now}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		query += fmt.Sprintf(" AND job_type = $%d", len(args))
	}
	if filter.WorkMode != "" {
		args = append(args, filter.WorkMode)
		query += fmt.Sprintf(" AND work_mode = $%d", len(args))
	}
	if filter.ExperienceLevel != "" {
		args = append(args, filter.ExperienceLevel)
		query += fmt.Sprintf(" AND experience_level = $%d", len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR company_name ILIKE $%d OR description ILIKE $%d)", len(args), len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	if job == nil || job.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE jobs
	SET title = $2,
		company_name = $3,
		location = $4,
		description = $5,
		job_type = $6,
		work_mode = $7,
		experience_level = $8,
		salary = $9,
		requirements = $10,
		benefits = $11,
		deadline = $12,
		status = $13,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		job.ID,
		job.Title,
		job.CompanyName,
		job.Location,
		job.Description,
		job.JobType,
		job.WorkMode,
		job.ExperienceLevel,
		marshalJSON(job.Salary),
		marshalJSON(job.Requirements),
		marshalJSON(job.Benefits),
		job.Deadline,
		string(job.Status),
	).Scan(&job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrJobNotFound
	}
	return err
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	const query = `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM jobs WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	if delta <= 0 {
		return nil
	}
	const query = `UPDATE jobs SET views = views + $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, delta)
	return err
}

func (r *jobRepository) IncrementApplicationCount(ctx context.Context, id string) error {
	const query = `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var status string
	var salary, requirements, benefits []byte

	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Title,
		&job.CompanyName,
		&job.Location,
		&job.Description,
		&job.JobType,
		&job.WorkMode,
		&job.ExperienceLevel,
		&salary,
		&requirements,
		&benefits,
		&job.Deadline,
		&status,
		&job.Views,
		&job.ApplicationCount,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	job.Status = domain.JobStatus(status)
	unmarshalJSON(salary, &job.Salary)
	unmarshalJSON(requirements, &job.Requirements)
	unmarshalJSON(benefits, &job.Benefits)
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
