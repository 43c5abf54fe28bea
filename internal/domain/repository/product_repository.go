package repository

import (
	"context"

	"github.com/satriadivo/goshop/internal/domain/entity"
)

// ProductRepository defines the interface for catalog lookups. Products are
// never mutated by the cart flow; Create exists for seeding and admin use.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int64) ([]entity.Product, error)
}
