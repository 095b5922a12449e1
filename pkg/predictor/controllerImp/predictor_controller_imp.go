package controllerImp

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"landlink/pkg/formvalue"
	"landlink/pkg/middleware"
	"landlink/pkg/predictor"
	"landlink/pkg/session"
)

type PredictorCtrl struct{ s *predictor.Service }

func New(s *predictor.Service) *PredictorCtrl { return &PredictorCtrl{s} }

func (h *PredictorCtrl) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"crops":      predictor.CropOptions,
		"soil_types": predictor.SoilTypes,
		"seasons":    predictor.Seasons,
	})
}

func (h *PredictorCtrl) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"computing": h.s.Computing(middleware.SessionFrom(c))})
}

func (h *PredictorCtrl) Predict(c echo.Context) error {
	var form predictor.Form
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, formvalue.BindError(err))
	}
	in, err := form.Parse()
	if err != nil {
		var fe *predictor.FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fe.Error(), "field": fe.Field})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	res, err := h.s.Predict(c.Request().Context(), middleware.SessionFrom(c), in)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, res)
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, map[string]string{"error": "prediction already in progress"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusRequestTimeout, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
