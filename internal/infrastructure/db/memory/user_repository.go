// Package memory implements the marketplace repositories and session store
// on process memory. It is the default backend: state lives as long as the
// process does.
package memory

import (
	"context"
	"sync"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			clone := u.Clone()
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByCredentials(_ context.Context, username, password string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			clone := u.Clone()
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user.Clone())
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = user.Clone()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepository) Reset(_ context.Context, seed []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make([]domain.User, 0, len(seed))
	for _, u := range seed {
		r.users = append(r.users, u.Clone())
	}
	return nil
}
