package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/pkg/token"
	"github.com/jobdeck/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Register creates an account and issues its first token. Role is fixed
// here for the lifetime of the account.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	fields := map[string]string{}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if !domain.ValidRole(input.Role) {
		fields["role"] = "role must be seeker or company"
	}
	if len(fields) > 0 {
		return nil, "", domain.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrKindInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrKindInternal, "failed to issue token", err)
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, signed, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.ErrKindNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrKindInternal, "failed to issue token", err)
	}
	return user, signed, nil
}
