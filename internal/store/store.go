// Package store keeps each entity collection as one whole document.
// Every operation reads the full collection, and every mutation writes the
// full collection back, the way the storefront's flat JSON files work.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
)

// Record is anything kept in a Collection.
type Record interface {
	RecordID() int
}

// Backend loads and persists one collection as a unit. Mutate must hand fn
// the current records and persist whatever fn returns; when fn fails
// nothing is written.
type Backend[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
	Mutate(ctx context.Context, fn func([]T) ([]T, error)) error
}

type Collection[T Record] struct {
	name  string
	b     Backend[T]
	setID func(*T, int)
}

func NewCollection[T Record](name string, b Backend[T], setID func(*T, int)) *Collection[T] {
	return &Collection[T]{name: name, b: b, setID: setID}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	return c.b.LoadAll(ctx)
}

func (c *Collection[T]) FindByID(ctx context.Context, id int) (T, error) {
	return c.FindFirst(ctx, func(r T) bool { return r.RecordID() == id })
}

// FindFirst returns the first record matching pred, in stored order.
func (c *Collection[T]) FindFirst(ctx context.Context, pred func(T) bool) (T, error) {
	var zero T
	recs, err := c.b.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(recs, pred); i >= 0 {
		return recs[i], nil
	}
	return zero, ErrNotFound
}

// Insert assigns the next id to rec, appends it and persists.
func (c *Collection[T]) Insert(ctx context.Context, rec T) (T, error) {
	return c.InsertChecked(ctx, rec, nil)
}

// InsertChecked is Insert guarded by check, which sees the current records
// and can veto the insert by returning an error.
func (c *Collection[T]) InsertChecked(ctx context.Context, rec T, check func([]T) error) (T, error) {
	err := c.b.Mutate(ctx, func(recs []T) ([]T, error) {
		if check != nil {
			if err := check(recs); err != nil {
				return nil, err
			}
		}
		c.setID(&rec, NextID(recs))
		return append(recs, rec), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update applies fn to the record with the given id and persists it.
// The id survives whatever fn does.
func (c *Collection[T]) Update(ctx context.Context, id int, fn func(*T) error) (T, error) {
	return c.UpdateFirst(ctx, func(r T) bool { return r.RecordID() == id }, fn)
}

// UpdateFirst is Update for the first record matching pred.
func (c *Collection[T]) UpdateFirst(ctx context.Context, pred func(T) bool, fn func(*T) error) (T, error) {
	var out T
	err := c.b.Mutate(ctx, func(recs []T) ([]T, error) {
		i := indexOf(recs, pred)
		if i < 0 {
			return nil, ErrNotFound
		}
		id := recs[i].RecordID()
		if err := fn(&recs[i]); err != nil {
			return nil, err
		}
		c.setID(&recs[i], id)
		out = recs[i]
		return recs, nil
	})
	return out, err
}

func (c *Collection[T]) Remove(ctx context.Context, id int) error {
	return c.b.Mutate(ctx, func(recs []T) ([]T, error) {
		i := indexOf(recs, func(r T) bool { return r.RecordID() == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		return append(recs[:i], recs[i+1:]...), nil
	})
}

// Mutate exposes the whole-collection read-modify-write cycle for
// operations touching several records at once.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return c.b.Mutate(ctx, fn)
}

// NextID is max(ids)+1, or 1 for an empty collection.
func NextID[T Record](recs []T) int {
	max := 0
	for _, r := range recs {
		if id := r.RecordID(); id > max {
			max = id
		}
	}
	return max + 1
}

func indexOf[T any](recs []T, pred func(T) bool) int {
	for i, r := range recs {
		if pred(r) {
			return i
		}
	}
	return -1
}
