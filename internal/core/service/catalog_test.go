package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func productIDs(t *testing.T, env *testEnv) []string {
	t.Helper()
	products, err := env.m.Products(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestAddProduct_NonSellerLeavesCatalogUnchanged(t *testing.T) {
	for _, username := range []string{"admin", "buyer", "janedoe"} {
		t.Run(username, func(t *testing.T) {
			env := newTestEnv(t)
			before := productIDs(t, env)
			sess := env.login(t, username)

			_, err := env.m.AddProduct(context.Background(), sess.ID, domain.NewProduct{
				Name: "Contraband", Strain: domain.StrainSativa, Price: 12, Description: "nope",
			})
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}

			after := productIDs(t, env)
			if strings.Join(before, ",") != strings.Join(after, ",") {
				t.Fatalf("catalog changed: %v -> %v", before, after)
			}
		})
	}
}

func TestAddProduct_Seller(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "greenthumb")

	p, err := env.m.AddProduct(context.Background(), sess.ID, domain.NewProduct{
		Name: "Comet Tail", Strain: domain.StrainHybrid, Price: 33.5, Description: "Smooth.",
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if !strings.HasPrefix(p.ID, "prod-") {
		t.Fatalf("unexpected id: %s", p.ID)
	}
	if p.SellerID != "seller-002" {
		t.Fatalf("unexpected owner: %s", p.SellerID)
	}
	if p.ImageURL != "https://picsum.photos/seed/"+p.ID+"/800" {
		t.Fatalf("unexpected image: %s", p.ImageURL)
	}

	stored, err := env.m.FindProductByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if stored.Name != "Comet Tail" || stored.Price != 33.5 {
		t.Fatalf("unexpected stored product: %+v", stored)
	}
}

func TestAddProduct_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "seller")
	ctx := context.Background()

	if _, err := env.m.AddProduct(ctx, sess.ID, domain.NewProduct{Name: "A", Strain: "Ruderalis", Price: 1, Description: "d"}); !errors.Is(err, domain.ErrInvalidStrain) {
		t.Fatalf("expected ErrInvalidStrain, got %v", err)
	}
	if _, err := env.m.AddProduct(ctx, sess.ID, domain.NewProduct{Name: "A", Strain: domain.StrainIndica, Price: 0, Description: "d"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero price, got %v", err)
	}
	if got := len(productIDs(t, env)); got != 4 {
		t.Fatalf("expected catalog unchanged, got %d", got)
	}
}

func TestAddProduct_DemotedSellerForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t, "seller")

	if _, err := env.m.UpdateUserRole(ctx, "seller-001", domain.RoleBuyer); err != nil {
		t.Fatalf("demote: %v", err)
	}
	_, err := env.m.AddProduct(ctx, sess.ID, domain.NewProduct{Name: "A", Strain: domain.StrainIndica, Price: 5, Description: "d"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden after demotion, got %v", err)
	}

	// Existing listings keep pointing at the demoted user.
	p, _ := env.m.FindProductByID(ctx, "prod-001")
	if p.SellerID != "seller-001" {
		t.Fatalf("existing product owner changed: %s", p.SellerID)
	}
}

func TestAddProduct_NoSession(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.m.AddProduct(context.Background(), "missing", domain.NewProduct{Name: "A", Strain: domain.StrainIndica, Price: 5, Description: "d"})
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
