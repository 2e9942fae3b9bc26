package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opugacodez/frutaria/internal/model"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID int) (model.Receipt, error)
}

type checkoutService struct {
	carts     CartService
	inventory InventoryService
}

func NewCheckoutService(carts CartService, inventory InventoryService) CheckoutService {
	return &checkoutService{carts: carts, inventory: inventory}
}

// Checkout sells everything in the user's cart and empties it. The lines
// leave the cart in one write before stock moves, so a concurrent checkout
// of the same cart finds it empty. When the stock step fails the lines are
// put back.
func (s *checkoutService) Checkout(ctx context.Context, userID int) (model.Receipt, error) {
	cart, err := s.carts.TakeItems(ctx, userID)
	if err != nil {
		return model.Receipt{}, err
	}

	products, err := s.inventory.ApplyCheckout(ctx, cart)
	if err != nil {
		if _, rerr := s.carts.RestoreItems(ctx, userID, cart.Items); rerr != nil {
			slog.Error("restore cart after failed checkout", "user_id", userID, "error", rerr)
			return model.Receipt{}, fmt.Errorf("%w (cart lines lost: %v)", err, rerr)
		}
		return model.Receipt{}, err
	}

	slog.Info("checkout", "user_id", userID, "items", len(cart.Items), "total", cart.TotalAmount.StringFixed(2))
	return model.Receipt{
		UserID:      userID,
		Items:       cart.Items,
		TotalAmount: cart.TotalAmount,
		Products:    products,
	}, nil
}
