package service

import (
	"context"
	"fmt"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/store"
)

// InventoryService moves units from stockQuantity to soldQuantity.
// Adjustments are all-or-nothing: every product is checked before any is
// changed, and all changes land in a single collection write.
type InventoryService interface {
	ApplyCheckout(ctx context.Context, cart model.Cart) ([]model.Product, error)
	AdjustStock(ctx context.Context, productID, quantity int) (model.Product, error)
}

type inventoryService struct{ products *store.Collection[model.Product] }

func NewInventoryService(products *store.Collection[model.Product]) InventoryService {
	return &inventoryService{products: products}
}

type sale struct {
	productID int
	quantity  int
}

func (s *inventoryService) ApplyCheckout(ctx context.Context, cart model.Cart) ([]model.Product, error) {
	sales := make([]sale, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.Quantity < 0 {
			return nil, invalid("item %d has negative quantity", it.ID)
		}
		if it.Quantity == 0 {
			continue
		}
		sales = append(sales, sale{productID: it.ID, quantity: it.Quantity})
	}
	return s.apply(ctx, sales)
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID, quantity int) (model.Product, error) {
	if quantity <= 0 {
		return model.Product{}, invalid("quantity must be positive")
	}
	out, err := s.apply(ctx, []sale{{productID: productID, quantity: quantity}})
	if err != nil {
		return model.Product{}, err
	}
	return out[0], nil
}

// apply returns the adjusted products in the order they first appear in
// sales. Lines for the same product are summed before the stock check.
func (s *inventoryService) apply(ctx context.Context, sales []sale) ([]model.Product, error) {
	var order []int
	want := make(map[int]int)
	for _, sl := range sales {
		if _, seen := want[sl.productID]; !seen {
			order = append(order, sl.productID)
		}
		want[sl.productID] += sl.quantity
	}

	var adjusted []model.Product
	err := s.products.Mutate(ctx, func(products []model.Product) ([]model.Product, error) {
		index := make(map[int]int, len(products))
		for i, p := range products {
			index[p.ID] = i
		}
		for _, id := range order {
			i, ok := index[id]
			if !ok {
				return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
			}
			if products[i].StockQuantity < want[id] {
				return nil, fmt.Errorf("product %d has %d in stock, %d requested: %w",
					id, products[i].StockQuantity, want[id], ErrInsufficientStock)
			}
		}
		adjusted = make([]model.Product, 0, len(order))
		for _, id := range order {
			p := &products[index[id]]
			p.StockQuantity -= want[id]
			p.SoldQuantity += want[id]
			adjusted = append(adjusted, *p)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}
