// Package seed fills the stores with the storefront's demo catalog.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/store"
)

var demoProducts = []model.Product{
	{ID: 1, Name: "Tomate Fresco", Price: decimal.RequireFromString("19.00"), ImageURL: "/img/product-1.jpg", StockQuantity: 10, SoldQuantity: 100},
	{ID: 2, Name: "Morango Orgânico", Price: decimal.RequireFromString("15.50"), ImageURL: "/img/product-4.jpg", StockQuantity: 10, SoldQuantity: 100},
	{ID: 3, Name: "Abacaxi Suculento", Price: decimal.RequireFromString("12.00"), ImageURL: "/img/product-2.jpg", StockQuantity: 10, SoldQuantity: 100},
}

var demoAdmin = model.User{ID: 1, Name: "Admin", Email: "admin@frutaria.local", Password: "senha123", Admin: true}

// Demo replaces every collection with the demo catalog, one admin user
// and that user's empty cart.
func Demo(ctx context.Context, s *store.Stores) error {
	if err := replace(ctx, s.Products, demoProducts); err != nil {
		return err
	}
	if err := replace(ctx, s.Users, []model.User{demoAdmin}); err != nil {
		return err
	}
	return replace(ctx, s.Carts, []model.Cart{
		{ID: 1, UserID: demoAdmin.ID, Items: []model.CartItem{}, TotalAmount: decimal.Zero},
	})
}

func replace[T store.Record](ctx context.Context, c *store.Collection[T], recs []T) error {
	err := c.Mutate(ctx, func([]T) ([]T, error) {
		return append([]T(nil), recs...), nil
	})
	if err != nil {
		return fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	slog.Info("collection seeded", "collection", c.Name(), "records", len(recs))
	return nil
}
