package repository

import (
	"context"

	"github.com/jobdeck/backend/domain"
)

// ProfileCache is a read-through cache for user profiles. Writers must
// evict the key after every profile mutation; there is no other
// invalidation path.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Evict(ctx context.Context, userID string) error
}
