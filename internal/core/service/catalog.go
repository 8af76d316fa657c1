package service

import (
	"context"
	"fmt"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func productImageURL(productID string) string {
	return "https://picsum.photos/seed/" + productID + "/800"
}

func (m *Marketplace) Products(ctx context.Context) ([]domain.Product, error) {
	return m.products.List(ctx)
}

func (m *Marketplace) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.products.FindByID(ctx, id)
}

// AddProduct lists a product owned by the session user. Only sellers may
// list; anyone else gets domain.ErrForbidden and the catalog is unchanged.
func (m *Marketplace) AddProduct(ctx context.Context, sessionID string, in domain.NewProduct) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.User.Role != domain.RoleSeller {
		m.log.Warn().
			Str("user_id", sess.User.ID).
			Str("role", string(sess.User.Role)).
			Msg("product rejected: not a seller")
		return nil, domain.ErrForbidden
	}
	if !in.Strain.Valid() {
		return nil, domain.ErrInvalidStrain
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("add product: %w: price must be positive", domain.ErrInvalidInput)
	}

	id := "prod-" + m.newID()
	product := &domain.Product{
		ID:          id,
		Name:        in.Name,
		Strain:      in.Strain,
		Price:       in.Price,
		SellerID:    sess.User.ID,
		Description: in.Description,
		ImageURL:    productImageURL(id),
	}
	if err := m.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}

	m.log.Info().Str("product_id", id).Str("seller_id", sess.User.ID).Msg("product listed")
	return product, nil
}
