package controller

import "github.com/labstack/echo/v4"

type LandownerController interface {
	Dashboard(c echo.Context) error
	ToggleEdit(c echo.Context) error
	SaveProfile(c echo.Context) error
	ListLands(c echo.Context) error
	AddLand(c echo.Context) error
	DeleteLand(c echo.Context) error
	Export(c echo.Context) error
}
