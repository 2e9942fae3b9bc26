package service

import (
	"context"
	"mime/multipart"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/store"
)

type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int) (model.Product, error)
	// Create and Update take an optional uploaded image. A new image
	// replaces imageUrl; without one the current imageUrl is kept.
	Create(ctx context.Context, p model.ProductPatch, image *multipart.FileHeader) (model.Product, error)
	Update(ctx context.Context, id int, p model.ProductPatch, image *multipart.FileHeader) (model.Product, error)
	Delete(ctx context.Context, id int) error
}

type productService struct {
	products *store.Collection[model.Product]
	images   ImageStore
}

func NewProductService(products *store.Collection[model.Product], images ImageStore) ProductService {
	return &productService{products: products, images: images}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.LoadAll(ctx)
}

func (s *productService) Get(ctx context.Context, id int) (model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	return p, missing(err, "product %d", id)
}

func (s *productService) Create(ctx context.Context, p model.ProductPatch, image *multipart.FileHeader) (model.Product, error) {
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	url, err := s.attach(&p, image)
	if err != nil {
		return model.Product{}, err
	}
	var pr model.Product
	p.Apply(&pr)
	pr, err = s.products.Insert(ctx, pr)
	if err != nil {
		s.images.Discard(url)
		return model.Product{}, err
	}
	return pr, nil
}

func (s *productService) Update(ctx context.Context, id int, p model.ProductPatch, image *multipart.FileHeader) (model.Product, error) {
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	url, err := s.attach(&p, image)
	if err != nil {
		return model.Product{}, err
	}
	var previous string
	pr, err := s.products.Update(ctx, id, func(pr *model.Product) error {
		previous = pr.ImageURL
		p.Apply(pr)
		return nil
	})
	if err != nil {
		s.images.Discard(url)
		return model.Product{}, missing(err, "product %d", id)
	}
	if url != "" && previous != url {
		s.images.Discard(previous)
	}
	return pr, nil
}

func (s *productService) Delete(ctx context.Context, id int) error {
	return missing(s.products.Remove(ctx, id), "product %d", id)
}

func (s *productService) attach(p *model.ProductPatch, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	url, err := s.images.Save(image)
	if err != nil {
		return "", err
	}
	p.ImageURL = &url
	return url, nil
}

func validateProduct(p model.ProductPatch) error {
	if p.Price != nil && p.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return invalid("stockQuantity must not be negative")
	}
	if p.SoldQuantity != nil && *p.SoldQuantity < 0 {
		return invalid("soldQuantity must not be negative")
	}
	return nil
}
