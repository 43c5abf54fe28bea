package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/satriadivo/goshop/internal/domain/entity"
	"github.com/satriadivo/goshop/internal/domain/repository"
)

const cartsCollection = "carts"

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection(cartsCollection)}
}

func (r *CartRepository) GetByEmail(ctx context.Context, email string) (*entity.Cart, error) {
	var cart entity.Cart
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	now := time.Now()
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	if cart.CartItems == nil {
		cart.CartItems = []entity.CartItem{}
	}
	cart.CreatedAt = now
	cart.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Update replaces the whole cart document. The service reads, mutates, and
// writes back under a per-email lock, so a full replace is safe here.
func (r *CartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"email": cart.Email}, cart)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
