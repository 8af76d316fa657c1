package ports

import (
	"context"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Users are never deleted.
type UserRepository interface {
	// List returns every user in insertion order.
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByCredentials returns the first user, in insertion order, whose
	// username and password both match exactly.
	FindByCredentials(ctx context.Context, username, password string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update replaces the stored user with the same id.
	Update(ctx context.Context, user *domain.User) error
	// Reset discards all users and stores seed in order.
	Reset(ctx context.Context, seed []domain.User) error
}
