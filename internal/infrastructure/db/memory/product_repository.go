package memory

import (
	"context"
	"sync"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Product(nil), r.products...), nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, *product)
	return nil
}

func (r *ProductRepository) Reset(_ context.Context, seed []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(make([]domain.Product, 0, len(seed)), seed...)
	return nil
}
