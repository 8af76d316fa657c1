package ports

import (
	"context"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// ChatRepository stores the append-only global room stream.
type ChatRepository interface {
	// List returns the global stream in append order.
	List(ctx context.Context) ([]domain.ChatMessage, error)
	Append(ctx context.Context, msg *domain.ChatMessage) error
	Reset(ctx context.Context, seed []domain.ChatMessage) error
}

// DirectMessageRepository stores the append-only direct-message stream.
type DirectMessageRepository interface {
	// ListForUser returns every message sent or received by userID, ascending
	// by timestamp.
	ListForUser(ctx context.Context, userID string) ([]domain.PrivateChatMessage, error)
	Append(ctx context.Context, msg *domain.PrivateChatMessage) error
	Reset(ctx context.Context, seed []domain.PrivateChatMessage) error
}
