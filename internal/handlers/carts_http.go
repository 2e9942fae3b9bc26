package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/service"
)

// CartsHTTP serves /carts. The first path segment after /carts is a user
// id for reads, item additions, clearing and checkout, and a cart id for
// update, delete and single item removal.
type CartsHTTP struct {
	S        service.CartService
	Checkout service.CheckoutService
}

func NewCartsHTTP(s service.CartService, checkout service.CheckoutService) *CartsHTTP {
	return &CartsHTTP{S: s, Checkout: checkout}
}

func (h *CartsHTTP) List(c *gin.Context) {
	carts, err := h.S.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (h *CartsHTTP) GetByUser(c *gin.Context) {
	userID, ok := idParam(c, "id", "cart for user")
	if !ok {
		return
	}
	cart, err := h.S.GetByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartsHTTP) Create(c *gin.Context) {
	var p model.CartPatch
	if !bindStrict(c, &p) {
		return
	}
	cart, err := h.S.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartsHTTP) Update(c *gin.Context) {
	id, ok := idParam(c, "id", "cart")
	if !ok {
		return
	}
	var p model.CartPatch
	if !bindStrict(c, &p) {
		return
	}
	cart, err := h.S.Update(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartsHTTP) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "cart")
	if !ok {
		return
	}
	if err := h.S.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "cart deleted")
}

func (h *CartsHTTP) AddItem(c *gin.Context) {
	userID, ok := idParam(c, "id", "cart for user")
	if !ok {
		return
	}
	var item model.CartItem
	if !bindStrict(c, &item) {
		return
	}
	cart, err := h.S.AddItem(c.Request.Context(), userID, item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartsHTTP) RemoveItem(c *gin.Context) {
	cartID, ok := idParam(c, "id", "cart")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId", "item")
	if !ok {
		return
	}
	if _, err := h.S.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "item removed from cart")
}

func (h *CartsHTTP) ClearItems(c *gin.Context) {
	userID, ok := idParam(c, "id", "cart for user")
	if !ok {
		return
	}
	if _, err := h.S.ClearItems(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, "cart cleared")
}

func (h *CartsHTTP) CheckoutCart(c *gin.Context) {
	userID, ok := idParam(c, "id", "cart for user")
	if !ok {
		return
	}
	receipt, err := h.Checkout.Checkout(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
