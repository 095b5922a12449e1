package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlink/entities"
	"landlink/pkg/middleware"
	"landlink/pkg/session"
	"landlink/pkg/store"
)

type noProfiles struct{}

func (noProfiles) FindProfile(context.Context, string) (*entities.Profile, error) { return nil, nil }

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	m := session.NewManager(noProfiles{}, nil)
	_, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)
	carts := store.NewCarts(store.DefaultCatalog(), time.Hour)
	carts.Follow(m)
	t.Cleanup(carts.StopAll)

	h := New(carts)
	e := echo.New()
	e.Use(middleware.DevLogin(true))
	e.GET("/store/categories", h.Categories)
	e.GET("/store/products", h.Products)
	g := e.Group("/store/cart", middleware.RequireSession(m))
	g.GET("", h.Cart)
	g.POST("/open", h.Open)
	g.POST("/close", h.Close)
	g.POST("/items/:id", h.AddItem)
	g.DELETE("/items/:id", h.RemoveItem)
	g.POST("/checkout", h.Checkout)
	return e
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: "u1"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProducts(t *testing.T) {
	e := setup(t)

	rec := do(e, http.MethodGet, "/store/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Equal(t, "All", cats[0])

	rec = do(e, http.MethodGet, "/store/products?category=Biological")
	require.Equal(t, http.StatusOK, rec.Code)
	var ps []store.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	assert.Len(t, ps, 2)

	rec = do(e, http.MethodGet, "/store/products")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	assert.Len(t, ps, 9)
}

func TestCartFlow(t *testing.T) {
	e := setup(t)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/store/cart/items/99").Code)
	assert.Equal(t, http.StatusConflict, do(e, http.MethodPost, "/store/cart/items/5").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/store/cart/items/1").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/store/cart/items/2").Code)
	rec := do(e, http.MethodPost, "/store/cart/items/2")
	require.Equal(t, http.StatusOK, rec.Code)

	var v store.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 3, v.ItemCount)
	assert.Equal(t, int64(2499+2*1899), v.TotalCents)

	assert.Equal(t, http.StatusConflict, do(e, http.MethodPost, "/store/cart/checkout").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/store/cart/open").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/store/cart/items/1").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/store/cart/items/1").Code)

	rec = do(e, http.MethodPost, "/store/cart/checkout")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Order store.View `json:"order"`
		Cart  store.View `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(2*1899), out.Order.TotalCents)
	assert.True(t, out.Cart.OrderConfirmed)
	assert.Zero(t, out.Cart.ItemCount)
}

func TestCartNeedsSession(t *testing.T) {
	e := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/store/cart", nil)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: "stranger"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
