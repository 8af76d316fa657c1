package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/seed"
)

// DefaultLocation is assigned to users added through the roster.
const DefaultLocation = "Unknown"

func avatarURL(userID string) string {
	return "https://i.pravatar.cc/150?u=" + userID
}

func (m *Marketplace) Users(ctx context.Context) ([]domain.User, error) {
	return m.users.List(ctx)
}

func (m *Marketplace) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return m.users.FindByID(ctx, id)
}

// AddUser appends a user with the default password, a generated avatar and
// an unknown location. Usernames are not required to be unique.
func (m *Marketplace) AddUser(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("add user: %w: username is empty", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := "user-" + m.newID()
	user := &domain.User{
		ID:        id,
		Username:  username,
		Role:      role,
		Password:  seed.DefaultPassword,
		AvatarURL: avatarURL(id),
		Location:  DefaultLocation,
	}
	if err := m.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}

	m.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user added")
	return user, nil
}

// UpdateUserRole rewrites the role of userID. Authorisation is the caller's
// concern. Sessions of the same user see the new role immediately.
func (m *Marketplace) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := m.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if err := m.mirrorSessions(ctx, *user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	m.log.Info().Str("user_id", userID).Str("role", string(role)).Msg("role updated")
	return user, nil
}

// UpdateUserProfile merges the set fields of update into userID and mirrors
// the result into the user's sessions.
func (m *Marketplace) UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	update.Apply(user)
	if err := m.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := m.mirrorSessions(ctx, *user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	m.log.Debug().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

// mirrorSessions copies user into every session snapshot of the same id.
// Sessions that end while mirroring are skipped. Callers must hold mu.
func (m *Marketplace) mirrorSessions(ctx context.Context, user domain.User) error {
	sessions, err := m.sessions.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, sess := range sessions {
		sess.User = user.Clone()
		err := m.sessions.Update(ctx, sess)
		if errors.Is(err, domain.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}
