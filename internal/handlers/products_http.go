package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/service"
)

type ProductsHTTP struct {
	S         service.ProductService
	Inventory service.InventoryService
}

func NewProductsHTTP(s service.ProductService, inv service.InventoryService) *ProductsHTTP {
	return &ProductsHTTP{S: s, Inventory: inv}
}

func (h *ProductsHTTP) List(c *gin.Context) {
	products, err := h.S.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductsHTTP) Get(c *gin.Context) {
	id, ok := idParam(c, "id", "product")
	if !ok {
		return
	}
	p, err := h.S.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductsHTTP) Create(c *gin.Context) {
	p, image, ok := h.bindProduct(c)
	if !ok {
		return
	}
	pr, err := h.S.Create(c.Request.Context(), p, image)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (h *ProductsHTTP) Update(c *gin.Context) {
	id, ok := idParam(c, "id", "product")
	if !ok {
		return
	}
	p, image, ok := h.bindProduct(c)
	if !ok {
		return
	}
	pr, err := h.S.Update(c.Request.Context(), id, p, image)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

type adjustReq struct {
	Quantity int `json:"quantity"`
}

// AdjustStock sells quantity units of one product.
func (h *ProductsHTTP) AdjustStock(c *gin.Context) {
	id, ok := idParam(c, "id", "product")
	if !ok {
		return
	}
	var req adjustReq
	if !bindStrict(c, &req) {
		return
	}
	p, err := h.Inventory.AdjustStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("stock updated: %d in stock, %d sold", p.StockQuantity, p.SoldQuantity))
}

func (h *ProductsHTTP) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "product")
	if !ok {
		return
	}
	if err := h.S.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "product deleted")
}

// bindProduct reads a product from a form (with an optional productImage
// file) or from a JSON body.
func (h *ProductsHTTP) bindProduct(c *gin.Context) (model.ProductPatch, *multipart.FileHeader, bool) {
	switch c.ContentType() {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		p, image, err := productForm(c)
		if err != nil {
			writeError(c, err)
			return p, nil, false
		}
		return p, image, true
	default:
		var p model.ProductPatch
		return p, nil, bindStrict(c, &p)
	}
}

func productForm(c *gin.Context) (model.ProductPatch, *multipart.FileHeader, error) {
	var p model.ProductPatch
	if v, ok := c.GetPostForm("name"); ok {
		p.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		p.Description = &v
	}
	if v, ok := c.GetPostForm("imageUrl"); ok && v != "" {
		p.ImageURL = &v
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		// the storefront writes prices with a decimal comma
		d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(v), ",", ".", 1))
		if err != nil {
			return p, nil, fmt.Errorf("%w: price %q is not a number", service.ErrValidation, v)
		}
		p.Price = &d
	}
	for field, dst := range map[string]**int{
		"stockQuantity": &p.StockQuantity,
		"soldQuantity":  &p.SoldQuantity,
	} {
		v, ok := c.GetPostForm(field)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, nil, fmt.Errorf("%w: %s %q is not a number", service.ErrValidation, field, v)
		}
		*dst = &n
	}

	image, err := c.FormFile("productImage")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return p, nil, nil
	case err != nil:
		return p, nil, fmt.Errorf("%w: productImage: %v", service.ErrValidation, err)
	}
	return p, image, nil
}
