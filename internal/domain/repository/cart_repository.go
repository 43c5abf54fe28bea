package repository

import (
	"context"
	"errors"

	"github.com/satriadivo/goshop/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// CartRepository defines the interface for cart persistence, keyed by the
// owning user's email.
type CartRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Cart, error)
	Create(ctx context.Context, cart *entity.Cart) error
	Update(ctx context.Context, cart *entity.Cart) error
}
