package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/pkg/token"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func newFixture() (*UseCase, *fakeUserRepo, *token.Manager) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	tokens := token.NewManager("test-secret", "jobdeck", time.Hour)
	return New(users, tokens, nil), users, tokens
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:    "Ada@Example.com",
		Password: "hunter22",
		Name:     "Ada",
		Role:     domain.RoleSeeker,
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	uc, _, tokens := newFixture()

	user, signed, err := uc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	// Email is normalized to lower case; the hash never equals the password.
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleSeeker, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	uc, _, _ := newFixture()

	_, _, err := uc.Register(context.Background(), RegisterInput{
		Email:    "no-at-sign",
		Password: "short",
		Name:     "  ",
		Role:     "admin",
	})
	require.Error(t, err)

	var dErr *domain.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, domain.ErrKindValidation, dErr.Kind)
	assert.Contains(t, dErr.Fields, "email")
	assert.Contains(t, dErr.Fields, "password")
	assert.Contains(t, dErr.Fields, "name")
	assert.Contains(t, dErr.Fields, "role")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newFixture()

	_, _, err := uc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newFixture()

	registered, _, err := uc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Email lookup is case-insensitive via normalization.
	user, signed, err := uc.Login(context.Background(), "ADA@example.COM", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, signed)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, _, _ := newFixture()

	_, _, err := uc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, wrongPassword := uc.Login(context.Background(), "ada@example.com", "wrong")
	_, _, unknownEmail := uc.Login(context.Background(), "ghost@example.com", "hunter22")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
}
