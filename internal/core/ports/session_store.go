package ports

import (
	"context"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// SessionStore keeps the sessions of logged-in users.
type SessionStore interface {
	// Save creates or replaces the session with the same id.
	Save(ctx context.Context, s *domain.Session) error
	// Update replaces a live session and returns domain.ErrSessionNotFound
	// when it was deleted or has expired. It never recreates a session.
	Update(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// ListByUser returns every live session of userID.
	ListByUser(ctx context.Context, userID string) ([]*domain.Session, error)
}
