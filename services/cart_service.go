package services

import (
	"context"
	"errors"
	"fmt"

	"market-api/models"
	"market-api/repositories"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOutOfStock        = errors.New("product out of stock")
	ErrNotInCart         = errors.New("item not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CartService couples cart mutation to product stock mutation. Every
// mutating operation runs in one store transaction: the conditional
// stock adjustment and the cart write commit together or not at all.
// Stock charged to a cart row is exactly the quantity ever approved, so
// each quantity change adjusts stock by the difference, never by a
// value read separately from the row being changed. Every operation
// locks the product row before touching the cart row: under READ
// COMMITTED a plain cart read could otherwise serve as a stale delta
// base for two transactions at once.
type CartService struct {
	store repositories.Store
}

func NewCartService(store repositories.Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) ListCart(ctx context.Context) ([]models.CartItem, error) {
	return s.store.Cart(ctx)
}

// AddToCart reserves one unit of stock for the product and increments
// its cart row, creating the row on first add.
func (s *CartService) AddToCart(ctx context.Context, productID int64) (*models.CartItem, error) {
	var item *models.CartItem

	err := s.store.InTx(ctx, func(catalog repositories.CatalogTx, cart repositories.CartTx) error {
		ok, err := catalog.TryAdjustStock(ctx, productID, -1)
		if err != nil {
			return err
		}
		if !ok {
			// The conditional update cannot tell a missing product from
			// an exhausted one; look up which it was.
			exists, err := catalog.Exists(ctx, productID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrProductNotFound
			}
			return ErrOutOfStock
		}

		if err := cart.UpsertIncrement(ctx, productID, 1); err != nil {
			return err
		}

		item, err = cart.GetByProductWithProduct(ctx, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("cart item for product %d missing after upsert", productID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity sets the cart row for the product to an exact quantity,
// adjusting stock by the difference. Quantity zero deletes the row and
// returns removed = true. The product must already be in the cart.
func (s *CartService) SetQuantity(ctx context.Context, productID int64, quantity int) (item *models.CartItem, removed bool, err error) {
	err = s.store.InTx(ctx, func(catalog repositories.CatalogTx, cart repositories.CartTx) error {
		// Product row first, cart row second; same order as AddToCart.
		if _, err := catalog.Lock(ctx, productID); err != nil {
			return err
		}

		current, err := cart.GetByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotInCart
		}

		diff := quantity - current.Quantity
		if diff != 0 {
			ok, err := catalog.TryAdjustStock(ctx, productID, -diff)
			if err != nil {
				return err
			}
			if !ok {
				if diff < 0 {
					// Returning stock never violates the non-negative
					// constraint; a failure here means the row vanished
					// mid-transaction.
					return fmt.Errorf("stock return of %d failed for product %d", -diff, productID)
				}
				return ErrInsufficientStock
			}
		}

		if quantity == 0 {
			removed = true
			return cart.Delete(ctx, productID)
		}

		if err := cart.SetQuantity(ctx, productID, quantity); err != nil {
			return err
		}

		item, err = cart.GetByProductWithProduct(ctx, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("cart item for product %d missing after update", productID)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return item, removed, nil
}

// RemoveFromCart deletes the cart row and returns its full reserved
// quantity to product stock.
func (s *CartService) RemoveFromCart(ctx context.Context, productID int64) error {
	return s.store.InTx(ctx, func(catalog repositories.CatalogTx, cart repositories.CartTx) error {
		// Product row first, cart row second; same order as AddToCart.
		if _, err := catalog.Lock(ctx, productID); err != nil {
			return err
		}

		current, err := cart.GetByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotInCart
		}

		ok, err := catalog.TryAdjustStock(ctx, productID, current.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("stock return of %d failed for product %d", current.Quantity, productID)
		}

		return cart.Delete(ctx, productID)
	})
}
