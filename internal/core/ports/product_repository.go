package ports

import (
	"context"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog listings.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Reset(ctx context.Context, seed []domain.Product) error
}
