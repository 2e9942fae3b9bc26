package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/opugacodez/frutaria/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUsersSequentially(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	users := NewUserService(s.Users, s.Carts)

	for i := 1; i <= 4; i++ {
		u, err := users.Create(ctx, model.UserPatch{Name: ptr("User"), Email: ptr(fmt.Sprintf("u%d@x", i))})
		if err != nil {
			t.Fatal(err)
		}
		if u.ID != i {
			t.Errorf("user %d got id %d", i, u.ID)
		}
	}

	carts, err := s.Carts.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(carts) != 4 {
		t.Fatalf("carts = %d, want one per user", len(carts))
	}
	for i, c := range carts {
		if c.UserID != i+1 || len(c.Items) != 0 || !c.TotalAmount.IsZero() {
			t.Errorf("cart %d = %+v", i, c)
		}
	}
}

func TestCreateUserEmailTaken(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	users := NewUserService(s.Users, s.Carts)

	users.Create(ctx, model.UserPatch{Email: ptr("ana@x")})
	if _, err := users.Create(ctx, model.UserPatch{Email: ptr("ana@x")}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
	// case-sensitive as stored
	if _, err := users.Create(ctx, model.UserPatch{Email: ptr("Ana@x")}); err != nil {
		t.Errorf("different case err = %v", err)
	}
	b, _ := users.Create(ctx, model.UserPatch{Email: ptr("bia@x")})
	if _, err := users.Update(ctx, b.ID, model.UserPatch{Email: ptr("ana@x")}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("update err = %v, want ErrEmailTaken", err)
	}
	if _, err := users.Update(ctx, b.ID, model.UserPatch{Email: ptr("bia@x"), Name: ptr("Bia")}); err != nil {
		t.Errorf("update own email err = %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	users := NewUserService(s.Users, s.Carts)
	users.Create(ctx, model.UserPatch{Name: ptr("Richard"), Email: ptr("richard@x"), Password: ptr("senha123"), Admin: ptr(true)})

	u, err := users.Login(ctx, "richard@x", "senha123")
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Richard" || !u.Admin {
		t.Errorf("user = %+v", u)
	}

	for _, tc := range [][2]string{{"richard@x", "wrong"}, {"RICHARD@x", "senha123"}, {"", ""}} {
		if _, err := users.Login(ctx, tc[0], tc[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("login(%q, %q) err = %v", tc[0], tc[1], err)
		}
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	users := NewUserService(s.Users, s.Carts)
	u, _ := users.Create(ctx, model.UserPatch{Name: ptr("Ana"), Lastname: ptr("Silva"), Email: ptr("ana@x")})

	got, err := users.Update(ctx, u.ID, model.UserPatch{ID: ptr(77), Lastname: ptr("Souza")})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || got.Name != "Ana" || got.Lastname != "Souza" {
		t.Errorf("updated = %+v", got)
	}
	if _, err := users.Update(ctx, 99, model.UserPatch{Name: ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v", err)
	}
	if err := users.Delete(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := users.Get(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted err = %v", err)
	}
}
