package cache

import (
	"context"
	"errors"

	"github.com/satriadivo/goshop/internal/domain/entity"
)

// ErrCacheMiss is returned when the cart is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// CartCache is a read-through cache for carts keyed by the owner email.
type CartCache interface {
	Get(ctx context.Context, email string) (*entity.Cart, error)
	Set(ctx context.Context, email string, cart *entity.Cart) error
	Delete(ctx context.Context, email string) error
}
