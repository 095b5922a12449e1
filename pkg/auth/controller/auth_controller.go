package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	DevLogin(c echo.Context) error
	SignIn(c echo.Context) error
	SignOut(c echo.Context) error
	WhoAmI(c echo.Context) error
	Refresh(c echo.Context) error
	Roles(c echo.Context) error
	SelectRole(c echo.Context) error
}
