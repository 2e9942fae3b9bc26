package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/opugacodez/frutaria/internal/model"
)

func newUserCollection(t *testing.T) (*Collection[model.User], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	f, err := OpenJSONFile[model.User](path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return NewCollection("users", f, func(u *model.User, id int) { u.ID = id }), path
}

func TestOpenJSONFileCreatesEmptyArray(t *testing.T) {
	_, path := newUserCollection(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("new file = %q, want empty array", data)
	}
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	users, _ := newUserCollection(t)

	for i := 1; i <= 5; i++ {
		u, err := users.Insert(ctx, model.User{Email: "u@x", ID: 99})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		if u.ID != i {
			t.Errorf("insert %d got id %d", i, u.ID)
		}
	}
}

func TestInsertUsesMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	users, path := newUserCollection(t)
	if err := os.WriteFile(path, []byte(`[{"id":7},{"id":2}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	u, err := users.Insert(ctx, model.User{Name: "Ana"})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 8 {
		t.Errorf("id = %d, want 8", u.ID)
	}
}

func TestFindUpdateRemove(t *testing.T) {
	ctx := context.Background()
	users, _ := newUserCollection(t)
	u, _ := users.Insert(ctx, model.User{Name: "Ana", Email: "ana@x"})

	got, err := users.FindByID(ctx, u.ID)
	if err != nil || got.Email != "ana@x" {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}

	updated, err := users.Update(ctx, u.ID, func(rec *model.User) error {
		rec.Name = "Bia"
		rec.ID = 42
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != u.ID || updated.Name != "Bia" || updated.Email != "ana@x" {
		t.Errorf("updated = %+v", updated)
	}

	if err := users.Remove(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := users.FindByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after remove err = %v, want ErrNotFound", err)
	}
	if err := users.Remove(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
	if _, err := users.Update(ctx, 123, func(*model.User) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestBrokenDocumentIsUnavailable(t *testing.T) {
	ctx := context.Background()
	users, path := newUserCollection(t)

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := users.LoadAll(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("corrupt err = %v, want ErrUnavailable", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := users.LoadAll(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("missing err = %v, want ErrUnavailable", err)
	}
	if _, err := users.Insert(ctx, model.User{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("insert on missing err = %v, want ErrUnavailable", err)
	}
}

func TestFailedMutateWritesNothing(t *testing.T) {
	ctx := context.Background()
	users, path := newUserCollection(t)
	users.Insert(ctx, model.User{Name: "Ana"})
	before, _ := os.ReadFile(path)

	boom := errors.New("boom")
	err := users.Mutate(ctx, func(recs []model.User) ([]model.User, error) {
		recs[0].Name = "changed"
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Errorf("file changed:\n%s\n%s", before, after)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		ids  []int
		want int
	}{
		{nil, 1},
		{[]int{1}, 2},
		{[]int{3, 1, 2}, 4},
		{[]int{10, 4}, 11},
	}
	for _, tt := range tests {
		var recs []model.Product
		for _, id := range tt.ids {
			recs = append(recs, model.Product{ID: id})
		}
		if got := NextID(recs); got != tt.want {
			t.Errorf("NextID(%v) = %d, want %d", tt.ids, got, tt.want)
		}
	}
}
