package service

import (
	"context"
	"fmt"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func (m *Marketplace) ChatMessages(ctx context.Context) ([]domain.ChatMessage, error) {
	return m.chat.List(ctx)
}

// AddChatMessage posts text to the global room as the session user. The
// sender's username is copied onto the message as it is right now.
func (m *Marketplace) AddChatMessage(ctx context.Context, sessionID, text string) (*domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:             "msg-" + m.newID(),
		SenderID:       sess.User.ID,
		SenderUsername: sess.User.Username,
		Text:           text,
		Timestamp:      m.tick(),
	}
	if err := m.chat.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("add chat message: %w", err)
	}
	return msg, nil
}

// Conversation returns the messages exchanged between the session user and
// peerID in either direction, oldest first.
func (m *Marketplace) Conversation(ctx context.Context, sessionID, peerID string) ([]domain.PrivateChatMessage, error) {
	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	all, err := m.dms.ListForUser(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}
	out := make([]domain.PrivateChatMessage, 0, len(all))
	for _, msg := range all {
		if msg.Between(sess.User.ID, peerID) {
			out = append(out, msg)
		}
	}
	return out, nil
}

// AddPrivateChatMessage sends text from the session user to receiverID.
func (m *Marketplace) AddPrivateChatMessage(ctx context.Context, sessionID, receiverID, text string) (*domain.PrivateChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := m.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.PrivateChatMessage{
		ID:         "pmsg-" + m.newID(),
		SenderID:   sess.User.ID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  m.tick(),
	}
	if err := m.dms.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("add private message: %w", err)
	}
	return msg, nil
}

// InitiateDirectMessage records a one-shot request to open the conversation
// with userID and prefill initialMessage. The target is returned as well, so
// callers that navigate directly need not read it back.
func (m *Marketplace) InitiateDirectMessage(ctx context.Context, sessionID, userID, initialMessage string) (*domain.DirectMessageTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if userID == sess.User.ID {
		return nil, fmt.Errorf("initiate direct message: %w: cannot message yourself", domain.ErrInvalidInput)
	}
	if _, err := m.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	target := &domain.DirectMessageTarget{UserID: userID, InitialMessage: initialMessage}
	sess.DMTarget = target
	if err := m.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("initiate direct message: %w", err)
	}

	t := *target
	return &t, nil
}

// TakeDirectMessageTarget returns the pending target and clears it in the
// same step. It returns nil when nothing is pending.
func (m *Marketplace) TakeDirectMessageTarget(ctx context.Context, sessionID string) (*domain.DirectMessageTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	target := sess.DMTarget
	if target == nil {
		return nil, nil
	}
	sess.DMTarget = nil
	if err := m.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("take direct message target: %w", err)
	}
	return target, nil
}

func (m *Marketplace) ClearDirectMessageTarget(ctx context.Context, sessionID string) error {
	_, err := m.TakeDirectMessageTarget(ctx, sessionID)
	return err
}
