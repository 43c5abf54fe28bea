package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/satriadivo/goshop/internal/cache"
	"github.com/satriadivo/goshop/internal/domain/entity"
	"github.com/satriadivo/goshop/internal/domain/repository"
	"github.com/satriadivo/goshop/pkg/apperror"
	"github.com/satriadivo/goshop/pkg/helpers"
	"github.com/satriadivo/goshop/pkg/mailer"
)

// Client-visible cart rule messages.
const (
	MsgNoCart           = "User does not have a cart"
	MsgNoCartUsePost    = "User does not have a cart. Use POST to create cart and add a product"
	MsgProductMissing   = "Product doesn't exist in database"
	MsgProductInCart    = "Product already in cart. Use the cart sidebar to update quantity or remove product"
	MsgProductNotInCart = "Product not in cart"
	MsgCartEmpty        = "Cart is Empty"
	MsgAddressNotSet    = "Address not set"
	MsgInsufficientBal  = "Insufficient Balance"
)

// CartService orchestrates cart mutations against persisted user and product
// lookups. Mutations for the same user email are serialized with a keyed
// mutex; the storage layer itself does no cross-document coordination.
type CartService struct {
	Carts    repository.CartRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
	Cache    cache.CartCache          // optional
	Pub      *helpers.RabbitPublisher // optional, order confirmation emails
	Logger   *logrus.Logger

	DefaultAddress string
	MailEnabled    bool

	locks sync.Map // email -> *sync.Mutex
	sfg   singleflight.Group
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, users repository.UserRepository, cartCache cache.CartCache, pub *helpers.RabbitPublisher, logger *logrus.Logger, defaultAddress string, mailEnabled bool) *CartService {
	return &CartService{
		Carts:          carts,
		Products:       products,
		Users:          users,
		Cache:          cartCache,
		Pub:            pub,
		Logger:         logger,
		DefaultAddress: defaultAddress,
		MailEnabled:    mailEnabled,
	}
}

// lock serializes cart mutations per user email and returns the unlock func.
func (s *CartService) lock(email string) func() {
	v, _ := s.locks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetCartByUser looks up the cart keyed by the user's email. Reads go through
// the cache with singleflight so concurrent misses hit storage once; the fill
// happens under the per-email lock, so a fill can never land after a mutation
// already invalidated the key. Callers get their own copy of the cart.
func (s *CartService) GetCartByUser(ctx context.Context, user *entity.User) (*entity.Cart, error) {
	v, err, _ := s.sfg.Do(user.Email, func() (interface{}, error) {
		unlock := s.lock(user.Email)
		defer unlock()

		if s.Cache != nil {
			cart, cErr := s.Cache.Get(ctx, user.Email)
			if cErr == nil {
				return cart, nil
			}
			if !errors.Is(cErr, cache.ErrCacheMiss) && s.Logger != nil {
				s.Logger.WithError(cErr).WithField("email", user.Email).Warn("cart cache get failed")
			}
		}

		cart, gErr := s.Carts.GetByEmail(ctx, user.Email)
		if gErr != nil {
			if errors.Is(gErr, repository.ErrNotFound) {
				return nil, apperror.NotFound(MsgNoCart)
			}
			return nil, apperror.Internal("failed to load cart", gErr)
		}

		if s.Cache != nil {
			if sErr := s.Cache.Set(ctx, user.Email, cart); sErr != nil && s.Logger != nil {
				s.Logger.WithError(sErr).WithField("email", user.Email).Warn("cart cache set failed")
			}
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.Cart).Clone(), nil
}

// AddProductToCart appends a new line item for productID, lazily creating the
// cart on first use. Duplicate adds are rejected; the quantity sign is not
// validated here (request binding enforces it upstream).
func (s *CartService) AddProductToCart(ctx context.Context, user *entity.User, productID string, quantity int) (*entity.Cart, error) {
	unlock := s.lock(user.Email)
	defer unlock()

	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.BadRequest(MsgProductMissing)
		}
		return nil, apperror.Internal("failed to load product", err)
	}

	cart, err := s.Carts.GetByEmail(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Internal("failed to load cart", err)
		}
		cart = &entity.Cart{Email: user.Email, CartItems: []entity.CartItem{}}
		if cErr := s.Carts.Create(ctx, cart); cErr != nil {
			return nil, apperror.Internal("failed to create cart", cErr)
		}
	}

	if cart.HasItem(productID) {
		return nil, apperror.BadRequest(MsgProductInCart)
	}

	cart.AddItem(*product, quantity)
	if err := s.Carts.Update(ctx, cart); err != nil {
		return nil, apperror.Internal("failed to save cart", err)
	}

	s.invalidateCache(user.Email)
	return cart, nil
}

// UpdateProductInCart overwrites the quantity of an existing line item. A
// non-positive quantity removes the item instead of storing it.
func (s *CartService) UpdateProductInCart(ctx context.Context, user *entity.User, productID string, quantity int) (*entity.Cart, error) {
	unlock := s.lock(user.Email)
	defer unlock()

	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.BadRequest(MsgProductMissing)
		}
		return nil, apperror.Internal("failed to load product", err)
	}

	cart, err := s.Carts.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.BadRequest(MsgNoCartUsePost)
		}
		return nil, apperror.Internal("failed to load cart", err)
	}

	if !cart.HasItem(productID) {
		return nil, apperror.BadRequest(MsgProductNotInCart)
	}

	if quantity <= 0 {
		return s.deleteLocked(ctx, user, cart, productID)
	}

	cart.SetQuantity(productID, quantity)
	if err := s.Carts.Update(ctx, cart); err != nil {
		return nil, apperror.Internal("failed to save cart", err)
	}

	s.invalidateCache(user.Email)
	return cart, nil
}

// DeleteProductFromCart removes the line item for productID from the cart.
func (s *CartService) DeleteProductFromCart(ctx context.Context, user *entity.User, productID string) (*entity.Cart, error) {
	unlock := s.lock(user.Email)
	defer unlock()

	cart, err := s.Carts.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.BadRequest(MsgNoCart)
		}
		return nil, apperror.Internal("failed to load cart", err)
	}

	return s.deleteLocked(ctx, user, cart, productID)
}

// deleteLocked removes productID from cart and persists. Callers must hold
// the per-email lock.
func (s *CartService) deleteLocked(ctx context.Context, user *entity.User, cart *entity.Cart, productID string) (*entity.Cart, error) {
	if !cart.RemoveItem(productID) {
		return nil, apperror.BadRequest(MsgProductNotInCart)
	}
	if err := s.Carts.Update(ctx, cart); err != nil {
		return nil, apperror.Internal("failed to save cart", err)
	}
	s.invalidateCache(user.Email)
	return cart, nil
}

// Checkout converts the cart's contents into a wallet debit and clears the
// cart. All four preconditions are checked before any write, so a failed
// checkout leaves the wallet and the cart untouched.
func (s *CartService) Checkout(ctx context.Context, user *entity.User) (*entity.Cart, error) {
	unlock := s.lock(user.Email)
	defer unlock()

	cart, err := s.Carts.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgNoCart)
		}
		return nil, apperror.Internal("failed to load cart", err)
	}

	if cart.IsEmpty() {
		return nil, apperror.BadRequest(MsgCartEmpty)
	}
	if !user.HasSetNonDefaultAddress(s.DefaultAddress) {
		return nil, apperror.BadRequest(MsgAddressNotSet)
	}

	total := cart.Total()
	if total > user.WalletMoney {
		return nil, apperror.BadRequest(MsgInsufficientBal)
	}

	user.WalletMoney -= total
	if err := s.Users.Update(ctx, user); err != nil {
		// Nothing persisted yet; surface the failure untouched.
		user.WalletMoney += total
		return nil, apperror.Internal("failed to debit wallet", err)
	}

	cart.Clear()
	if err := s.Carts.Update(ctx, cart); err != nil {
		// Wallet already debited; flag loudly, a later retry clears the cart.
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"email": user.Email,
				"total": total,
			}).Error("wallet debited but cart not cleared")
		}
		return nil, apperror.Internal("failed to clear cart", err)
	}

	s.invalidateCache(user.Email)
	s.publishOrderConfirmation(ctx, user, total)
	return cart, nil
}

func (s *CartService) invalidateCache(email string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(context.Background(), email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("cart cache invalidate failed")
	}
}

// publishOrderConfirmation enqueues an email job, best effort.
func (s *CartService) publishOrderConfirmation(ctx context.Context, user *entity.User, total float64) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:   user.Email,
		Kind: mailer.KindOrderConfirmation,
		Text: fmt.Sprintf("Hi %s,\n\nThanks for your order! We charged %.2f to your wallet and it will ship to %s.", user.Name, total, user.Address),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", user.Email).Warn("order confirmation enqueue failed")
	}
}
