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

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation of UserRepository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, role, headline, location, about, documents, skills, experience, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO users (id, email, password_hash, name, role, headline, location, about, documents, skills, experience)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.Headline,
		user.Location,
		user.About,
		marshalJSON(user.Documents),
		marshalJSON(user.Skills),
		marshalJSON(user.Experience),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	// Role and password are deliberately excluded: role is immutable and
	// password changes go through a dedicated path.
	const query = `
	UPDATE users
	SET name = $2,
		headline = $3,
		location = $4,
		about = $5,
		documents = $6,
		skills = $7,
		experience = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Headline,
		user.Location,
		user.About,
		marshalJSON(user.Documents),
		marshalJSON(user.Skills),
		marshalJSON(user.Experience),
	).Scan(&user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var documents, skills, experience []byte

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Headline,
		&user.Location,
		&user.About,
		&documents,
		&skills,
		&experience,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	unmarshalJSON(documents, &user.Documents)
	unmarshalJSON(skills, &user.Skills)
	unmarshalJSON(experience, &user.Experience)
	return &user, nil
}
