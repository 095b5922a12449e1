package controllerImp

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"landlink/pkg/formvalue"
	"landlink/pkg/landowner/service"
	"landlink/pkg/middleware"
	"landlink/pkg/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LandownerCtrl struct{ s service.LandownerService }

func New(s service.LandownerService) *LandownerCtrl { return &LandownerCtrl{s} }

func (h *LandownerCtrl) Dashboard(c echo.Context) error {
	d, err := h.s.Dashboard(c.Request().Context(), middleware.SessionFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *LandownerCtrl) ToggleEdit(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"editing": h.s.ToggleEditing(middleware.SessionFrom(c))})
}

func (h *LandownerCtrl) SaveProfile(c echo.Context) error {
	var form service.ContactForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, formvalue.BindError(err))
	}
	d, err := h.s.SaveProfile(c.Request().Context(), middleware.SessionFrom(c), form)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *LandownerCtrl) ListLands(c echo.Context) error {
	lands, err := h.s.ListLands(c.Request().Context(), middleware.SessionFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, lands)
}

func (h *LandownerCtrl) AddLand(c echo.Context) error {
	var form service.LandForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, formvalue.BindError(err))
	}
	lands, err := h.s.AddLand(c.Request().Context(), middleware.SessionFrom(c), form)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, lands)
}

func (h *LandownerCtrl) DeleteLand(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))
	lands, err := h.s.DeleteLand(c.Request().Context(), middleware.SessionFrom(c), c.Param("id"), confirmed)
	if errors.Is(err, service.ErrConfirmationRequired) {
		return c.JSON(http.StatusPreconditionRequired, map[string]string{
			"error":   err.Error(),
			"confirm": service.DeletePrompt,
		})
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, lands)
}

func (h *LandownerCtrl) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.s.ExportLands(c.Request().Context(), middleware.SessionFrom(c), &buf); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="land-listings.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func fail(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, service.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}
