package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// MarkChatAsRead moves the read marker of scopeID to now. Use
// domain.GlobalScope for the room and a peer's user id for a conversation.
func (m *Marketplace) MarkChatAsRead(ctx context.Context, sessionID, scopeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.markRead(ctx, sessionID, scopeID)
}

// ReadChatMessages lists the room and marks it read in one step, so nothing
// posted in between is skipped by both the listing and the badge.
func (m *Marketplace) ReadChatMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs, err := m.chat.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chat: %w", err)
	}
	if err := m.markRead(ctx, sessionID, domain.GlobalScope); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ReadConversation returns the conversation with peerID and marks it read in
// one step.
func (m *Marketplace) ReadConversation(ctx context.Context, sessionID, peerID string) ([]domain.PrivateChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs, err := m.Conversation(ctx, sessionID, peerID)
	if err != nil {
		return nil, err
	}
	if err := m.markRead(ctx, sessionID, peerID); err != nil {
		return nil, err
	}
	return msgs, nil
}

// markRead stamps scopeID with the next tick. Callers must hold mu.
func (m *Marketplace) markRead(ctx context.Context, sessionID, scopeID string) error {
	if scopeID == "" {
		return fmt.Errorf("mark as read: %w: empty scope", domain.ErrInvalidInput)
	}

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.ReadMarkers == nil {
		sess.ReadMarkers = make(map[string]time.Time)
	}
	sess.ReadMarkers[scopeID] = m.tick()
	if err := m.sessions.Update(ctx, sess); err != nil {
		return fmt.Errorf("mark as read: %w", err)
	}
	return nil
}

// UnreadGlobalCount counts room messages newer than the global read marker
// that the session user did not write.
func (m *Marketplace) UnreadGlobalCount(ctx context.Context, sessionID string) (int, error) {
	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	msgs, err := m.chat.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("unread global: %w", err)
	}

	lastRead := sess.LastRead(domain.GlobalScope)
	n := 0
	for _, msg := range msgs {
		if msg.SenderID != sess.User.ID && msg.Timestamp.After(lastRead) {
			n++
		}
	}
	return n, nil
}

// UnreadDirectMessageCount counts messages peerID sent to the session user
// after the conversation was last read.
func (m *Marketplace) UnreadDirectMessageCount(ctx context.Context, sessionID, peerID string) (int, error) {
	counts, err := m.unreadByPeer(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return counts[peerID], nil
}

// TotalUnreadDirectMessageCount sums the unread counts over every peer.
func (m *Marketplace) TotalUnreadDirectMessageCount(ctx context.Context, sessionID string) (int, error) {
	counts, err := m.unreadByPeer(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func (m *Marketplace) unreadByPeer(ctx context.Context, sessionID string) (map[string]int, error) {
	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := m.dms.ListForUser(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("unread direct: %w", err)
	}

	counts := make(map[string]int)
	for _, msg := range msgs {
		if msg.ReceiverID != sess.User.ID || msg.SenderID == sess.User.ID {
			continue
		}
		if msg.Timestamp.After(sess.LastRead(msg.SenderID)) {
			counts[msg.SenderID]++
		}
	}
	return counts, nil
}
