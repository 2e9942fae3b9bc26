package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/store"
)

type UserService interface {
	// Login matches email and password exactly, as stored.
	Login(ctx context.Context, email, password string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int) (model.User, error)
	// Create registers a user and opens the user's cart.
	Create(ctx context.Context, p model.UserPatch) (model.User, error)
	Update(ctx context.Context, id int, p model.UserPatch) (model.User, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	users *store.Collection[model.User]
	carts *store.Collection[model.Cart]
}

func NewUserService(users *store.Collection[model.User], carts *store.Collection[model.Cart]) UserService {
	return &userService{users: users, carts: carts}
}

func (s *userService) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.users.FindFirst(ctx, func(u model.User) bool {
		return u.Email == email && u.Password == password
	})
	if err == store.ErrNotFound {
		return model.User{}, ErrInvalidCredentials
	}
	return u, err
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.LoadAll(ctx)
}

func (s *userService) Get(ctx context.Context, id int) (model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	return u, missing(err, "user %d", id)
}

func (s *userService) Create(ctx context.Context, p model.UserPatch) (model.User, error) {
	var u model.User
	p.Apply(&u)
	u, err := s.users.InsertChecked(ctx, u, func(users []model.User) error {
		return emailFree(users, u.Email, 0)
	})
	if err != nil {
		return model.User{}, err
	}
	if err := s.openCart(ctx, u.ID); err != nil {
		return model.User{}, fmt.Errorf("open cart for user %d: %w", u.ID, err)
	}
	return u, nil
}

// openCart gives the user an empty cart unless one is left over from an
// earlier user with the same id.
func (s *userService) openCart(ctx context.Context, userID int) error {
	return s.carts.Mutate(ctx, func(carts []model.Cart) ([]model.Cart, error) {
		for _, c := range carts {
			if c.UserID == userID {
				return carts, nil
			}
		}
		return append(carts, model.Cart{
			ID:          store.NextID(carts),
			UserID:      userID,
			Items:       []model.CartItem{},
			TotalAmount: decimal.Zero,
		}), nil
	})
}

func (s *userService) Update(ctx context.Context, id int, p model.UserPatch) (model.User, error) {
	var out model.User
	err := s.users.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		if p.Email != nil {
			if err := emailFree(users, *p.Email, id); err != nil {
				return nil, err
			}
		}
		for i := range users {
			if users[i].ID == id {
				p.Apply(&users[i])
				out = users[i]
				return users, nil
			}
		}
		return nil, store.ErrNotFound
	})
	return out, missing(err, "user %d", id)
}

func (s *userService) Delete(ctx context.Context, id int) error {
	return missing(s.users.Remove(ctx, id), "user %d", id)
}

func emailFree(users []model.User, email string, self int) error {
	if email == "" {
		return nil
	}
	for _, u := range users {
		if u.Email == email && u.ID != self {
			return fmt.Errorf("%s: %w", email, ErrEmailTaken)
		}
	}
	return nil
}
