package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"landlink/pkg/farmer/service"
	"landlink/pkg/formvalue"
	"landlink/pkg/middleware"
	"landlink/pkg/session"
)

type FarmerCtrl struct{ s service.FarmerService }

func New(s service.FarmerService) *FarmerCtrl { return &FarmerCtrl{s} }

func (h *FarmerCtrl) Dashboard(c echo.Context) error {
	d, err := h.s.Dashboard(c.Request().Context(), middleware.SessionFrom(c))
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, d)
}

func (h *FarmerCtrl) Lands(c echo.Context) error {
	lands, err := h.s.AvailableLands(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, lands)
}

func (h *FarmerCtrl) ToggleEdit(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"editing": h.s.ToggleEditing(middleware.SessionFrom(c))})
}

func (h *FarmerCtrl) SaveProfile(c echo.Context) error {
	var form service.ProfileForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, formvalue.BindError(err))
	}
	d, err := h.s.SaveProfile(c.Request().Context(), middleware.SessionFrom(c), form)
	var saveErr *service.SaveError
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, d)
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &saveErr):
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":     saveErr.Error(),
			"failed":    saveErr.Failed(),
			"dashboard": d,
		})
	default:
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}
