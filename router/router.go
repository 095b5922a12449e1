package router

import (
	"github.com/labstack/echo/v4"

	"landlink/pkg/middleware"
	"landlink/pkg/session"
)

type Controllers struct {
	Auth interface {
		DevLogin(echo.Context) error
		SignIn(echo.Context) error
		SignOut(echo.Context) error
		WhoAmI(echo.Context) error
		Refresh(echo.Context) error
		Roles(echo.Context) error
		SelectRole(echo.Context) error
	}
	Farmer interface {
		Dashboard(echo.Context) error
		Lands(echo.Context) error
		ToggleEdit(echo.Context) error
		SaveProfile(echo.Context) error
	}
	Landowner interface {
		Dashboard(echo.Context) error
		ToggleEdit(echo.Context) error
		SaveProfile(echo.Context) error
		ListLands(echo.Context) error
		AddLand(echo.Context) error
		DeleteLand(echo.Context) error
		Export(echo.Context) error
	}
	Predictor interface {
		Options(echo.Context) error
		Status(echo.Context) error
		Predict(echo.Context) error
	}
	Store interface {
		Categories(echo.Context) error
		Products(echo.Context) error
		Cart(echo.Context) error
		Open(echo.Context) error
		Close(echo.Context) error
		AddItem(echo.Context) error
		RemoveItem(echo.Context) error
		Checkout(echo.Context) error
	}
	Health interface{ Health(echo.Context) error }
}

type Options struct {
	JWTSecret []byte
	DevLogin  bool
}

func New(e *echo.Echo, sessions *session.Manager, opt Options, h Controllers) *echo.Echo {
	e.Use(middleware.Bearer(opt.JWTSecret))
	e.Use(middleware.DevLogin(opt.DevLogin))

	e.GET("/health", h.Health.Health)
	e.GET("/roles", h.Auth.Roles)
	e.GET("/predictor/options", h.Predictor.Options)
	e.GET("/store/categories", h.Store.Categories)
	e.GET("/store/products", h.Store.Products)
	if opt.DevLogin {
		e.GET("/devlogin", h.Auth.DevLogin)
	}

	e.POST("/session", h.Auth.SignIn, middleware.RequireUID())
	e.DELETE("/session", h.Auth.SignOut, middleware.RequireUID())

	signedIn := middleware.RequireSession(sessions)

	s := e.Group("/session", signedIn)
	s.GET("", h.Auth.WhoAmI)
	s.POST("/refresh", h.Auth.Refresh)
	s.POST("/role", h.Auth.SelectRole)

	f := e.Group("/farmer", signedIn)
	f.GET("/dashboard", h.Farmer.Dashboard)
	f.GET("/lands", h.Farmer.Lands)
	f.POST("/profile/edit", h.Farmer.ToggleEdit)
	f.PUT("/profile", h.Farmer.SaveProfile)

	l := e.Group("/landowner", signedIn)
	l.GET("/dashboard", h.Landowner.Dashboard)
	l.POST("/profile/edit", h.Landowner.ToggleEdit)
	l.PUT("/profile", h.Landowner.SaveProfile)
	l.GET("/lands", h.Landowner.ListLands)
	l.POST("/lands", h.Landowner.AddLand)
	l.GET("/lands/export.xlsx", h.Landowner.Export)
	l.DELETE("/lands/:id", h.Landowner.DeleteLand)

	p := e.Group("/predictor", signedIn)
	p.GET("/status", h.Predictor.Status)
	p.POST("/predict", h.Predictor.Predict)

	c := e.Group("/store/cart", signedIn)
	c.GET("", h.Store.Cart)
	c.POST("/open", h.Store.Open)
	c.POST("/close", h.Store.Close)
	c.POST("/items/:id", h.Store.AddItem)
	c.DELETE("/items/:id", h.Store.RemoveItem)
	c.POST("/checkout", h.Store.Checkout)
	return e
}
