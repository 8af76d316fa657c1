package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, ttl), mr
}

func testSession(id, userID string, created time.Time) *domain.Session {
	rate := 60.0
	return &domain.Session{
		ID:          id,
		User:        domain.User{ID: userID, Username: "seller", Role: domain.RoleSeller, Rate: &rate},
		ReadMarkers: map[string]time.Time{domain.GlobalScope: created.Add(time.Minute)},
		DMTarget:    &domain.DirectMessageTarget{UserID: "buyer-001", InitialMessage: "hi"},
		CreatedAt:   created,
	}
}

func TestSessionStore_SaveGet(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if err := store.Save(ctx, testSession("s1", "seller-001", created)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User.ID != "seller-001" || got.User.Rate == nil || *got.User.Rate != 60 {
		t.Fatalf("unexpected user: %+v", got.User)
	}
	if !got.LastRead(domain.GlobalScope).Equal(created.Add(time.Minute)) {
		t.Fatalf("read marker lost: %v", got.ReadMarkers)
	}
	if got.DMTarget == nil || got.DMTarget.UserID != "buyer-001" {
		t.Fatalf("dm target lost: %+v", got.DMTarget)
	}
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("s1", "seller-001", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if ok, _ := mr.SIsMember("user_sessions:seller-001", "s1"); ok {
		t.Fatalf("index still references deleted session")
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("deleting twice should be a no-op, got %v", err)
	}
}

func TestSessionStore_ListByUser(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for _, s := range []*domain.Session{
		testSession("late", "seller-001", base.Add(2*time.Minute)),
		testSession("early", "seller-001", base),
		testSession("other", "buyer-001", base),
	} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save %s: %v", s.ID, err)
		}
	}

	got, err := store.ListByUser(ctx, "seller-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "early" || got[1].ID != "late" {
		t.Fatalf("unexpected sessions: %+v", got)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("s1", "seller-001", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Drop the session key only; the index entry becomes stale.
	mr.Del("session:s1")

	got, err := store.ListByUser(ctx, "seller-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected stale entry to be skipped, got %d", len(got))
	}
	if ok, _ := mr.SIsMember("user_sessions:seller-001", "s1"); ok {
		t.Fatalf("stale id not pruned from index")
	}

	if err := store.Save(ctx, testSession("s2", "seller-001", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "s2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session to expire, got %v", err)
	}
}

func TestSessionStore_UpdateKeepsTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()
	sess := testSession("s1", "seller-001", time.Now())

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(40 * time.Second)

	sess.User.Role = domain.RoleBuyer
	if err := store.Update(ctx, sess); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ttl := mr.TTL("session:s1"); ttl <= 0 || ttl > 20*time.Second {
		t.Fatalf("update must keep the remaining ttl, got %v", ttl)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User.Role != domain.RoleBuyer {
		t.Fatalf("update not applied: %s", got.User.Role)
	}

	mr.FastForward(30 * time.Second)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session to expire on its original schedule, got %v", err)
	}
}

func TestSessionStore_UpdateAfterDelete(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()
	sess := testSession("s1", "seller-001", time.Now())

	if err := store.Update(ctx, sess); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for unknown session, got %v", err)
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Update(ctx, sess); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if mr.Exists("session:s1") {
		t.Fatalf("update recreated a deleted session")
	}
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	addr := mr.Addr()
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestReadinessCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	check := ReadinessCheck(client)

	if err := check(context.Background()); err != nil {
		t.Fatalf("expected ready, got %v", err)
	}
	mr.Close()
	if err := check(context.Background()); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
