package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"landlink/pkg/middleware"
	"landlink/pkg/store"
)

type StoreCtrl struct{ carts *store.Carts }

func New(carts *store.Carts) *StoreCtrl { return &StoreCtrl{carts} }

func (h *StoreCtrl) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.carts.Catalog().Categories())
}

func (h *StoreCtrl) Products(c echo.Context) error {
	cat := c.QueryParam("category")
	if cat == "" {
		cat = store.All
	}
	return c.JSON(http.StatusOK, h.carts.Catalog().Filter(cat))
}

func (h *StoreCtrl) cart(c echo.Context) (*store.Cart, error) {
	return h.carts.For(middleware.SessionFrom(c).UserID())
}

// withCart runs fn on the caller's cart and answers with the cart view.
func (h *StoreCtrl) withCart(c echo.Context, fn func(*store.Cart) error) error {
	cart, err := h.cart(c)
	if err != nil {
		return fail(c, err)
	}
	if err := fn(cart); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cart.View())
}

func (h *StoreCtrl) Cart(c echo.Context) error {
	return h.withCart(c, func(*store.Cart) error { return nil })
}

func (h *StoreCtrl) Open(c echo.Context) error {
	return h.withCart(c, func(cart *store.Cart) error {
		cart.Open()
		return nil
	})
}

func (h *StoreCtrl) Close(c echo.Context) error {
	return h.withCart(c, func(cart *store.Cart) error {
		cart.Close()
		return nil
	})
}

func (h *StoreCtrl) AddItem(c echo.Context) error {
	return h.withCart(c, func(cart *store.Cart) error { return cart.Add(c.Param("id")) })
}

func (h *StoreCtrl) RemoveItem(c echo.Context) error {
	return h.withCart(c, func(cart *store.Cart) error { return cart.Remove(c.Param("id")) })
}

func (h *StoreCtrl) Checkout(c echo.Context) error {
	cart, err := h.cart(c)
	if err != nil {
		return fail(c, err)
	}
	placed, err := cart.PlaceOrder()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"order": placed, "cart": cart.View()})
}

func fail(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNoSession):
		code = http.StatusUnauthorized
	case errors.Is(err, store.ErrUnknownProduct), errors.Is(err, store.ErrNotInCart):
		code = http.StatusNotFound
	case errors.Is(err, store.ErrOutOfStock), errors.Is(err, store.ErrEmptyCart), errors.Is(err, store.ErrCartClosed):
		code = http.StatusConflict
	}
	return c.JSON(code, map[string]string{"error": err.Error()})
}
