package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landlink/entities"
	"landlink/pkg/auth/controller"
	"landlink/pkg/formvalue"
	"landlink/pkg/middleware"
	"landlink/pkg/session"
)

type authCtrl struct {
	sessions *session.Manager
	log      *zap.Logger
}

func NewAuthController(m *session.Manager, log *zap.Logger) controller.AuthController {
	return &authCtrl{sessions: m, log: log}
}

type roleChoice struct {
	Role      entities.Role `json:"role"`
	Title     string        `json:"title"`
	Blurb     string        `json:"blurb"`
	Dashboard string        `json:"dashboard"`
}

var roleChoices = []roleChoice{
	{entities.RoleFarmer, "I'm a Farmer", "Find and rent agricultural land for your farming needs", "/farmer/dashboard"},
	{entities.RoleLandowner, "I'm a Landowner", "List your agricultural land and connect with farmers", "/landowner/dashboard"},
}

type sessionView struct {
	UID     string            `json:"uid"`
	Role    entities.Role     `json:"role,omitempty"`
	Profile *entities.Profile `json:"profile"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{UID: s.UserID(), Role: s.Role(), Profile: s.Profile()}
}

func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = middleware.DevDefault
	}
	c.SetCookie(&http.Cookie{Name: middleware.DevCookie, Value: uid, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) SignIn(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	s, err := h.sessions.Open(c.Request().Context(), uid)
	if err != nil {
		h.log.Error("sign in", zap.String("uid", uid), zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

func (h *authCtrl) SignOut(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if !h.sessions.Close(uid) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no active session"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, viewOf(middleware.SessionFrom(c)))
}

func (h *authCtrl) Refresh(c echo.Context) error {
	s := middleware.SessionFrom(c)
	if err := s.Refresh(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, viewOf(s))
}

func (h *authCtrl) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, roleChoices)
}

// SelectRole records the chosen role on the session and names the dashboard
// to hand control to. It writes nothing to the backend.
func (h *authCtrl) SelectRole(c echo.Context) error {
	var body struct {
		Role entities.Role `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, formvalue.BindError(err))
	}
	s := middleware.SessionFrom(c)
	if err := s.SelectRole(body.Role); err != nil {
		if errors.Is(err, session.ErrInvalidRole) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	for _, rc := range roleChoices {
		if rc.Role == body.Role {
			return c.JSON(http.StatusOK, map[string]string{"role": string(rc.Role), "dashboard": rc.Dashboard})
		}
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": session.ErrInvalidRole.Error()})
}
