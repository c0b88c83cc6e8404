package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

// UseCase serves profile reads through the cache and keeps it coherent by
// evicting the key on every write. One parameterized read path serves both
// the owner view and the public view.
type UseCase struct {
	users  repository.UserRepository
	cache  repository.ProfileCache
	logger *zap.Logger
}

func New(users repository.UserRepository, cache repository.ProfileCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the full profile, reading through the cache.
func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, userID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			uc.logger.Warn("profile cache read failed", zap.Error(err))
		}
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, user); err != nil {
			uc.logger.Warn("profile cache write failed", zap.Error(err))
		}
	}
	return user, nil
}

// View returns the profile as seen by callerID: the owner sees everything,
// anyone else gets the public view.
func (uc *UseCase) View(ctx context.Context, userID, callerID string) (*domain.User, error) {
	user, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID != callerID {
		return user.PublicView(), nil
	}
	return user, nil
}

// UpdateInput carries the updatable profile fields. Role and email are
// immutable through this path.
type UpdateInput struct {
	Name     string
	Headline string
	Location string
	About    string
}

// Update replaces the basic profile fields and evicts the cache key.
func (uc *UseCase) Update(ctx context.Context, userID string, input UpdateInput) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError(map[string]string{"name": "name is required"})
	}
	user.Name = strings.TrimSpace(input.Name)
	user.Headline = input.Headline
	user.Location = input.Location
	user.About = input.About

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddDocument appends an uploaded-file reference with a generated sub-id.
func (uc *UseCase) AddDocument(ctx context.Context, userID string, doc domain.Document) (*domain.User, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return nil, domain.NewValidationError(map[string]string{"name": "document name is required"})
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc.ID = uuid.NewString()
	doc.UploadedAt = time.Now()
	user.Documents = append(user.Documents, doc)

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveDocument deletes the document with the given sub-id.
func (uc *UseCase) RemoveDocument(ctx context.Context, userID, docID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := user.Documents[:0]
	for _, d := range user.Documents {
		if d.ID != docID {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(user.Documents) {
		return nil, domain.NewError(domain.ErrKindNotFound, "document not found")
	}
	user.Documents = kept

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddSkill appends a skill with a generated sub-id.
func (uc *UseCase) AddSkill(ctx context.Context, userID string, skill domain.Skill) (*domain.User, error) {
	if strings.TrimSpace(skill.Name) == "" {
		return nil, domain.NewValidationError(map[string]string{"name": "skill name is required"})
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	skill.ID = uuid.NewString()
	user.Skills = append(user.Skills, skill)

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveSkill deletes the skill with the given sub-id.
func (uc *UseCase) RemoveSkill(ctx context.Context, userID, skillID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := user.Skills[:0]
	for _, s := range user.Skills {
		if s.ID != skillID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(user.Skills) {
		return nil, domain.NewError(domain.ErrKindNotFound, "skill not found")
	}
	user.Skills = kept

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddExperience appends an experience entry with a generated sub-id.
func (uc *UseCase) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.User, error) {
	if strings.TrimSpace(exp.Title) == "" {
		return nil, domain.NewValidationError(map[string]string{"title": "experience title is required"})
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.NewString()
	user.Experience = append(user.Experience, exp)

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveExperience deletes the experience entry with the given sub-id.
func (uc *UseCase) RemoveExperience(ctx context.Context, userID, expID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := user.Experience[:0]
	for _, e := range user.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(user.Experience) {
		return nil, domain.NewError(domain.ErrKindNotFound, "experience entry not found")
	}
	user.Experience = kept

	if err := uc.persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) persist(ctx context.Context, user *domain.User) error {
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}
	if uc.cache != nil {
		if err := uc.cache.Evict(ctx, user.ID); err != nil {
			uc.logger.Warn("profile cache evict failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}
