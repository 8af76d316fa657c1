package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func TestAddChatMessage_Appends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t, "janedoe")

	before, _ := env.m.ChatMessages(ctx)
	maxTS := before[0].Timestamp
	for _, m := range before {
		if m.Timestamp.After(maxTS) {
			maxTS = m.Timestamp
		}
	}

	msg, err := env.m.AddChatMessage(ctx, sess.ID, "hello")
	if err != nil {
		t.Fatalf("add chat message: %v", err)
	}

	after, _ := env.m.ChatMessages(ctx)
	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one new message, got %d -> %d", len(before), len(after))
	}
	last := after[len(after)-1]
	if last.ID != msg.ID || last.SenderID != "buyer-002" || last.Text != "hello" {
		t.Fatalf("unexpected message: %+v", last)
	}
	if last.SenderUsername != "janedoe" {
		t.Fatalf("expected username snapshot, got %q", last.SenderUsername)
	}
	if last.Timestamp.Before(maxTS) {
		t.Fatalf("timestamp %v precedes previous max %v", last.Timestamp, maxTS)
	}
}

func TestAddChatMessage_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.m.AddChatMessage(ctx, "", "hi"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	msgs, _ := env.m.ChatMessages(ctx)
	if len(msgs) != 2 {
		t.Fatalf("rejected message must not be stored, got %d", len(msgs))
	}
}

func TestConversation_BothDirectionsSorted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.login(t, "buyer")
	seller := env.login(t, "seller")

	if _, err := env.m.AddPrivateChatMessage(ctx, buyer.ID, "seller-001", "Is it in stock?"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := env.m.AddPrivateChatMessage(ctx, seller.ID, "buyer-001", "Yes."); err != nil {
		t.Fatalf("send: %v", err)
	}
	// Unrelated pair must not leak into the conversation.
	if _, err := env.m.AddPrivateChatMessage(ctx, buyer.ID, "seller-002", "Hi greenthumb"); err != nil {
		t.Fatalf("send: %v", err)
	}

	conv, err := env.m.Conversation(ctx, buyer.ID, "seller-001")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(conv) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(conv))
	}
	for i, msg := range conv {
		if !msg.Between("buyer-001", "seller-001") {
			t.Fatalf("message %d outside the pair: %+v", i, msg)
		}
		if i > 0 && msg.Timestamp.Before(conv[i-1].Timestamp) {
			t.Fatalf("conversation not ascending at %d", i)
		}
	}
	if conv[0].ID != "pmsg-001" || conv[3].Text != "Yes." {
		t.Fatalf("unexpected order: first=%s last=%q", conv[0].ID, conv[3].Text)
	}

	// The peer sees the same conversation.
	mirror, _ := env.m.Conversation(ctx, seller.ID, "buyer-001")
	if len(mirror) != len(conv) {
		t.Fatalf("peer view differs: %d vs %d", len(mirror), len(conv))
	}
}

func TestAddPrivateChatMessage_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.login(t, "buyer")

	if _, err := env.m.AddPrivateChatMessage(ctx, "nope", "seller-001", "hi"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := env.m.AddPrivateChatMessage(ctx, buyer.ID, "ghost", "hi"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDirectMessageTarget_OneShot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.login(t, "buyer")

	initial := `Hi, I'm interested in your product: "Galaxy Glue".`
	target, err := env.m.InitiateDirectMessage(ctx, buyer.ID, "seller-002", initial)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if target.UserID != "seller-002" || target.InitialMessage != initial {
		t.Fatalf("unexpected target: %+v", target)
	}

	taken, err := env.m.TakeDirectMessageTarget(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if taken == nil || taken.UserID != "seller-002" {
		t.Fatalf("expected pending target, got %+v", taken)
	}

	again, err := env.m.TakeDirectMessageTarget(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("second take: %v", err)
	}
	if again != nil {
		t.Fatalf("target must be consumed once, got %+v", again)
	}
}

func TestClearDirectMessageTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.login(t, "buyer")

	if _, err := env.m.InitiateDirectMessage(ctx, buyer.ID, "seller-001", "hey"); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if err := env.m.ClearDirectMessageTarget(ctx, buyer.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := env.m.TakeDirectMessageTarget(ctx, buyer.ID); got != nil {
		t.Fatalf("expected no target after clear, got %+v", got)
	}
}

func TestInitiateDirectMessage_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.login(t, "seller")

	if _, err := env.m.InitiateDirectMessage(ctx, seller.ID, "seller-001", "me"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self, got %v", err)
	}
	if _, err := env.m.InitiateDirectMessage(ctx, seller.ID, "ghost", "hi"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if got, _ := env.m.TakeDirectMessageTarget(ctx, seller.ID); got != nil {
		t.Fatalf("rejected initiation must not leave a target, got %+v", got)
	}
}
