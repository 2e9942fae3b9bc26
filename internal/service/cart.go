package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/store"
)

// CartService keeps every cart's total_amount equal to the sum of
// price*quantity over its items. Totals are adjusted by the delta of each
// operation rather than recomputed.
type CartService interface {
	List(ctx context.Context) ([]model.Cart, error)
	GetByUser(ctx context.Context, userID int) (model.Cart, error)
	Create(ctx context.Context, p model.CartPatch) (model.Cart, error)
	Update(ctx context.Context, id int, p model.CartPatch) (model.Cart, error)
	Delete(ctx context.Context, id int) error

	AddItem(ctx context.Context, userID int, item model.CartItem) (model.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID int) (model.Cart, error)
	ClearItems(ctx context.Context, userID int) (model.Cart, error)

	// TakeItems empties the user's cart in one write and returns the cart
	// as it was. An empty cart is ErrEmptyCart and is left alone.
	TakeItems(ctx context.Context, userID int) (model.Cart, error)
	// RestoreItems puts taken lines back, merging them with lines added
	// in the meantime.
	RestoreItems(ctx context.Context, userID int, items []model.CartItem) (model.Cart, error)
}

type cartService struct{ carts *store.Collection[model.Cart] }

func NewCartService(carts *store.Collection[model.Cart]) CartService {
	return &cartService{carts: carts}
}

func ownedBy(userID int) func(model.Cart) bool {
	return func(c model.Cart) bool { return c.UserID == userID }
}

func (s *cartService) List(ctx context.Context) ([]model.Cart, error) {
	return s.carts.LoadAll(ctx)
}

func (s *cartService) GetByUser(ctx context.Context, userID int) (model.Cart, error) {
	c, err := s.carts.FindFirst(ctx, ownedBy(userID))
	return c, missing(err, "cart for user %d", userID)
}

func (s *cartService) Create(ctx context.Context, p model.CartPatch) (model.Cart, error) {
	var c model.Cart
	p.Apply(&c)
	return s.carts.InsertChecked(ctx, c, func(carts []model.Cart) error {
		return cartFree(carts, c.UserID, 0)
	})
}

func (s *cartService) Update(ctx context.Context, id int, p model.CartPatch) (model.Cart, error) {
	var out model.Cart
	err := s.carts.Mutate(ctx, func(carts []model.Cart) ([]model.Cart, error) {
		if p.UserID != nil {
			if err := cartFree(carts, *p.UserID, id); err != nil {
				return nil, err
			}
		}
		for i := range carts {
			if carts[i].ID == id {
				p.Apply(&carts[i])
				out = carts[i]
				return carts, nil
			}
		}
		return nil, store.ErrNotFound
	})
	return out, missing(err, "cart %d", id)
}

// cartFree refuses a second cart for userID. self is the cart being
// updated, 0 on create.
func cartFree(carts []model.Cart, userID, self int) error {
	for _, other := range carts {
		if other.UserID == userID && other.ID != self {
			return fmt.Errorf("user %d: %w", userID, ErrCartExists)
		}
	}
	return nil
}

func (s *cartService) Delete(ctx context.Context, id int) error {
	return missing(s.carts.Remove(ctx, id), "cart %d", id)
}

// AddItem adds quantity (1 when unset) of the item to the user's cart. An
// existing line keeps its snapshot and only grows; the total moves by the
// stored line price so a client sending a different price cannot skew it.
func (s *cartService) AddItem(ctx context.Context, userID int, item model.CartItem) (model.Cart, error) {
	if item.Quantity < 0 {
		return model.Cart{}, invalid("quantity must not be negative")
	}
	if item.Price.IsNegative() {
		return model.Cart{}, invalid("price must not be negative")
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	qty := decimal.NewFromInt(int64(item.Quantity))

	c, err := s.carts.UpdateFirst(ctx, ownedBy(userID), func(c *model.Cart) error {
		if i := c.Item(item.ID); i >= 0 {
			line := &c.Items[i]
			line.Quantity += item.Quantity
			c.TotalAmount = c.TotalAmount.Add(line.Price.Mul(qty))
			return nil
		}
		c.Items = append(c.Items, item)
		c.TotalAmount = c.TotalAmount.Add(item.Price.Mul(qty))
		return nil
	})
	return c, missing(err, "cart for user %d", userID)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID int) (model.Cart, error) {
	c, err := s.carts.Update(ctx, cartID, func(c *model.Cart) error {
		i := c.Item(itemID)
		if i < 0 {
			return fmt.Errorf("item %d in cart %d: %w", itemID, cartID, ErrNotFound)
		}
		c.TotalAmount = c.TotalAmount.Sub(c.Items[i].Subtotal())
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	})
	return c, missing(err, "cart %d", cartID)
}

// ClearItems empties the user's cart and resets its total to zero.
func (s *cartService) ClearItems(ctx context.Context, userID int) (model.Cart, error) {
	c, err := s.carts.UpdateFirst(ctx, ownedBy(userID), func(c *model.Cart) error {
		c.Items = []model.CartItem{}
		c.TotalAmount = decimal.Zero
		return nil
	})
	return c, missing(err, "cart for user %d", userID)
}

func (s *cartService) TakeItems(ctx context.Context, userID int) (model.Cart, error) {
	var taken model.Cart
	_, err := s.carts.UpdateFirst(ctx, ownedBy(userID), func(c *model.Cart) error {
		if len(c.Items) == 0 {
			return fmt.Errorf("user %d: %w", userID, ErrEmptyCart)
		}
		taken = *c
		c.Items = []model.CartItem{}
		c.TotalAmount = decimal.Zero
		return nil
	})
	if err != nil {
		return model.Cart{}, missing(err, "cart for user %d", userID)
	}
	return taken, nil
}

func (s *cartService) RestoreItems(ctx context.Context, userID int, items []model.CartItem) (model.Cart, error) {
	c, err := s.carts.UpdateFirst(ctx, ownedBy(userID), func(c *model.Cart) error {
		for _, it := range items {
			if i := c.Item(it.ID); i >= 0 {
				line := &c.Items[i]
				line.Quantity += it.Quantity
				c.TotalAmount = c.TotalAmount.Add(line.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
				continue
			}
			c.Items = append(c.Items, it)
			c.TotalAmount = c.TotalAmount.Add(it.Subtotal())
		}
		return nil
	})
	return c, missing(err, "cart for user %d", userID)
}
