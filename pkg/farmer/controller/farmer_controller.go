package controller

import "github.com/labstack/echo/v4"

type FarmerController interface {
	Dashboard(c echo.Context) error
	Lands(c echo.Context) error
	ToggleEdit(c echo.Context) error
	SaveProfile(c echo.Context) error
}
