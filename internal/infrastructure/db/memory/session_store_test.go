package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func TestSessionStore_UpdateOnlyExisting(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	sess := &domain.Session{ID: "s1", User: domain.User{ID: "buyer-001", Role: domain.RoleBuyer}, CreatedAt: time.Now()}

	if err := store.Update(ctx, sess); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for unknown session, got %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("update must not create a session, got %v", err)
	}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess.User.Role = domain.RoleSeller
	if err := store.Update(ctx, sess); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := store.Get(ctx, "s1")
	if got.User.Role != domain.RoleSeller {
		t.Fatalf("update not applied: %s", got.User.Role)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Update(ctx, sess); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessionStore_ClonesOnReadAndWrite(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	sess := &domain.Session{ID: "s1", User: domain.User{ID: "buyer-001"}, ReadMarkers: map[string]time.Time{}}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess.User.Username = "changed"

	got, _ := store.Get(ctx, "s1")
	if got.User.Username == "changed" {
		t.Fatalf("store shares memory with the caller")
	}
}
