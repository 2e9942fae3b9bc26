package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/opugacodez/frutaria/internal/model"
)

type fakeImages struct {
	saved     int
	discarded []string
}

func (f *fakeImages) Save(*multipart.FileHeader) (string, error) {
	f.saved++
	return fmt.Sprintf("/img/products/fake_%d.jpg", f.saved), nil
}

func (f *fakeImages) Discard(url string) { f.discarded = append(f.discarded, url) }

func TestProductImageKeptWithoutUpload(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	imgs := &fakeImages{}
	products := NewProductService(s.Products, imgs)

	p, err := products.Create(ctx, model.ProductPatch{Name: ptr("Tomate"), Price: ptr(price("19.00"))}, &multipart.FileHeader{})
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageURL != "/img/products/fake_1.jpg" {
		t.Errorf("imageUrl = %q", p.ImageURL)
	}

	p, err = products.Update(ctx, p.ID, model.ProductPatch{Name: ptr("Tomate Fresco")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageURL != "/img/products/fake_1.jpg" || p.Name != "Tomate Fresco" {
		t.Errorf("product = %+v", p)
	}

	if _, err := products.Update(ctx, 42, model.ProductPatch{}, &multipart.FileHeader{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
	if len(imgs.discarded) != 1 || imgs.discarded[0] != "/img/products/fake_2.jpg" {
		t.Errorf("discarded = %v", imgs.discarded)
	}
}

func TestProductValidation(t *testing.T) {
	s := openStores(t)
	products := NewProductService(s.Products, &fakeImages{})
	_, err := products.Create(context.Background(), model.ProductPatch{StockQuantity: ptr(-1)}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v", err)
	}
}

func TestProductImageReplaced(t *testing.T) {
	ctx := context.Background()
	s := openStores(t)
	imgs := &fakeImages{}
	products := NewProductService(s.Products, imgs)

	p, err := products.Create(ctx, model.ProductPatch{Name: ptr("Tomate")}, &multipart.FileHeader{})
	if err != nil {
		t.Fatal(err)
	}
	p, err = products.Update(ctx, p.ID, model.ProductPatch{}, &multipart.FileHeader{})
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageURL != "/img/products/fake_2.jpg" {
		t.Errorf("imageUrl = %q", p.ImageURL)
	}
	if len(imgs.discarded) != 1 || imgs.discarded[0] != "/img/products/fake_1.jpg" {
		t.Errorf("discarded = %v, want the replaced image", imgs.discarded)
	}
}
