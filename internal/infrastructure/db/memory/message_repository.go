package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// ChatRepository holds the global room stream.
type ChatRepository struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (r *ChatRepository) List(_ context.Context) ([]domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.ChatMessage(nil), r.messages...), nil
}

func (r *ChatRepository) Append(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, *msg)
	return nil
}

func (r *ChatRepository) Reset(_ context.Context, seed []domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(make([]domain.ChatMessage, 0, len(seed)), seed...)
	return nil
}

// DirectMessageRepository holds the direct-message stream.
type DirectMessageRepository struct {
	mu       sync.RWMutex
	messages []domain.PrivateChatMessage
}

func NewDirectMessageRepository() *DirectMessageRepository {
	return &DirectMessageRepository{}
}

func (r *DirectMessageRepository) ListForUser(_ context.Context, userID string) ([]domain.PrivateChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.PrivateChatMessage
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *DirectMessageRepository) Append(_ context.Context, msg *domain.PrivateChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, *msg)
	return nil
}

func (r *DirectMessageRepository) Reset(_ context.Context, seed []domain.PrivateChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(make([]domain.PrivateChatMessage, 0, len(seed)), seed...)
	return nil
}
