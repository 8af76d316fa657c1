package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func TestUpdateUserRole_MirrorsIntoSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t, "buyer")

	updated, err := env.m.UpdateUserRole(ctx, "buyer-001", domain.RoleSeller)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleSeller {
		t.Fatalf("expected Seller, got %s", updated.Role)
	}

	found, _ := env.m.FindUserByID(ctx, "buyer-001")
	if found.Role != domain.RoleSeller {
		t.Fatalf("stored role not updated: %s", found.Role)
	}
	live, _ := env.m.Session(ctx, sess.ID)
	if live.User.Role != domain.RoleSeller {
		t.Fatalf("session role not mirrored: %s", live.User.Role)
	}

	// The promoted buyer may now list products.
	in := domain.NewProduct{Name: "Nebula", Strain: domain.StrainIndica, Price: 20, Description: "d"}
	if _, err := env.m.AddProduct(ctx, sess.ID, in); err != nil {
		t.Fatalf("expected promoted user to list, got %v", err)
	}
}

func TestUpdateUserRole_OtherSessionsUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	other := env.login(t, "janedoe")

	if _, err := env.m.UpdateUserRole(ctx, "buyer-001", domain.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	live, _ := env.m.Session(ctx, other.ID)
	if live.User.Role != domain.RoleBuyer {
		t.Fatalf("unrelated session changed: %s", live.User.Role)
	}
}

func TestUpdateUserRole_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.m.UpdateUserRole(ctx, "ghost", domain.RoleBuyer); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := env.m.UpdateUserRole(ctx, "buyer-001", domain.Role("Overlord")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAddUser_Defaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.m.AddUser(ctx, "StarHopper42", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	if !strings.HasPrefix(user.ID, "user-") {
		t.Fatalf("unexpected id: %s", user.ID)
	}
	if user.Location != DefaultLocation {
		t.Fatalf("expected location %q, got %q", DefaultLocation, user.Location)
	}
	if user.AvatarURL != "https://i.pravatar.cc/150?u="+user.ID {
		t.Fatalf("unexpected avatar: %s", user.AvatarURL)
	}

	users, _ := env.m.Users(ctx)
	if len(users) != 6 || users[5].ID != user.ID {
		t.Fatalf("expected new user appended last, got %d users", len(users))
	}

	sess, err := env.m.Login(ctx, "StarHopper42", "password")
	if err != nil {
		t.Fatalf("new user cannot log in with default password: %v", err)
	}
	if sess.User.ID != user.ID {
		t.Fatalf("logged in as wrong user: %s", sess.User.ID)
	}
}

func TestAddUser_DuplicateUsernameAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dup, err := env.m.AddUser(ctx, "buyer", domain.RoleSeller)
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if dup.ID == "buyer-001" {
		t.Fatalf("duplicate must get a fresh id")
	}

	// The first match in insertion order wins.
	sess := env.login(t, "buyer")
	if sess.User.ID != "buyer-001" {
		t.Fatalf("expected seeded buyer to win, got %s", sess.User.ID)
	}
}

func TestAddUser_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.m.AddUser(ctx, "   ", domain.RoleBuyer); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.m.AddUser(ctx, "nova", domain.Role("")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	users, _ := env.m.Users(ctx)
	if len(users) != 5 {
		t.Fatalf("rejected adds must not grow the roster, got %d", len(users))
	}
}

func TestUpdateUserProfile_MergesAndMirrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t, "seller")

	location := "Oregon"
	updated, err := env.m.UpdateUserProfile(ctx, "seller-001", domain.ProfileUpdate{Location: &location})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Location != "Oregon" {
		t.Fatalf("location not merged: %s", updated.Location)
	}
	if updated.Rate == nil || *updated.Rate != 60 {
		t.Fatalf("rate must be untouched, got %v", updated.Rate)
	}
	if updated.AvatarURL != "https://i.pravatar.cc/150?u=seller-001" {
		t.Fatalf("avatar must be untouched, got %s", updated.AvatarURL)
	}

	rate := 75.5
	if _, err := env.m.UpdateUserProfile(ctx, "seller-001", domain.ProfileUpdate{Rate: &rate}); err != nil {
		t.Fatalf("update rate: %v", err)
	}
	live, _ := env.m.Session(ctx, sess.ID)
	if live.User.Location != "Oregon" || live.User.Rate == nil || *live.User.Rate != 75.5 {
		t.Fatalf("session not mirrored: %+v", live.User)
	}
}

func TestUpdateUserProfile_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	location := "Mars"
	_, err := env.m.UpdateUserProfile(context.Background(), "ghost", domain.ProfileUpdate{Location: &location})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
