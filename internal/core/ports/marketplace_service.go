package ports

import (
	"context"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// AuthService opens and closes sessions and issues their bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// UserService covers the roster and profile operations.
type UserService interface {
	Users(ctx context.Context) ([]domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	AddUser(ctx context.Context, username string, role domain.Role) (*domain.User, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

// CatalogService covers product listing and creation.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, sessionID string, in domain.NewProduct) (*domain.Product, error)
}

// ChatService covers both message scopes and the direct-message handoff.
type ChatService interface {
	ChatMessages(ctx context.Context) ([]domain.ChatMessage, error)
	AddChatMessage(ctx context.Context, sessionID, text string) (*domain.ChatMessage, error)
	Conversation(ctx context.Context, sessionID, peerID string) ([]domain.PrivateChatMessage, error)
	AddPrivateChatMessage(ctx context.Context, sessionID, receiverID, text string) (*domain.PrivateChatMessage, error)
	InitiateDirectMessage(ctx context.Context, sessionID, userID, initialMessage string) (*domain.DirectMessageTarget, error)
	// TakeDirectMessageTarget returns the pending target, or nil, and clears it.
	TakeDirectMessageTarget(ctx context.Context, sessionID string) (*domain.DirectMessageTarget, error)
	ClearDirectMessageTarget(ctx context.Context, sessionID string) error
}

// UnreadService covers per-scope read markers and unread counts.
type UnreadService interface {
	MarkChatAsRead(ctx context.Context, sessionID, scopeID string) error
	// ReadChatMessages lists the room and marks it read atomically.
	ReadChatMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	// ReadConversation lists a conversation and marks it read atomically.
	ReadConversation(ctx context.Context, sessionID, peerID string) ([]domain.PrivateChatMessage, error)
	UnreadDirectMessageCount(ctx context.Context, sessionID, peerID string) (int, error)
	TotalUnreadDirectMessageCount(ctx context.Context, sessionID string) (int, error)
	UnreadGlobalCount(ctx context.Context, sessionID string) (int, error)
}

// MarketplaceService is the full state-container surface consumed by the
// HTTP handlers.
type MarketplaceService interface {
	UserService
	CatalogService
	ChatService
	UnreadService
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}
