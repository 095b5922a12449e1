package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlink/entities"
	"landlink/pkg/farmer/service"
	"landlink/pkg/middleware"
	"landlink/pkg/session"
)

type stubService struct {
	saveErr error
	got     service.ProfileForm
}

func (s *stubService) Dashboard(context.Context, *session.Session) (*service.Dashboard, error) {
	return &service.Dashboard{Lands: []entities.Land{}}, nil
}

func (s *stubService) AvailableLands(context.Context) ([]entities.Land, error) {
	return nil, errors.New("backend down")
}

func (s *stubService) ToggleEditing(sess *session.Session) bool { return sess.ToggleEditing(service.View) }

func (s *stubService) SaveProfile(_ context.Context, _ *session.Session, form service.ProfileForm) (*service.Dashboard, error) {
	s.got = form
	return &service.Dashboard{}, s.saveErr
}

type noProfiles struct{}

func (noProfiles) FindProfile(context.Context, string) (*entities.Profile, error) { return nil, nil }

func setup(t *testing.T, svc service.FarmerService) *echo.Echo {
	t.Helper()
	m := session.NewManager(noProfiles{}, nil)
	_, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)
	h := New(svc)
	e := echo.New()
	e.Use(middleware.DevLogin(true))
	g := e.Group("/farmer", middleware.RequireSession(m))
	g.GET("/dashboard", h.Dashboard)
	g.GET("/lands", h.Lands)
	g.POST("/profile/edit", h.ToggleEdit)
	g.PUT("/profile", h.SaveProfile)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: "u1"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestToggleEdit(t *testing.T) {
	e := setup(t, &stubService{})
	assert.JSONEq(t, `{"editing":true}`, do(e, http.MethodPost, "/farmer/profile/edit", "").Body.String())
	assert.JSONEq(t, `{"editing":false}`, do(e, http.MethodPost, "/farmer/profile/edit", "").Body.String())
}

func TestSaveProfileStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"busy", fmt.Errorf("farmer.save_profile: %w", session.ErrBusy), http.StatusConflict},
		{"partial", &service.SaveError{Profile: errors.New("down")}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{saveErr: tc.err}
			rec := do(setup(t, svc), http.MethodPut, "/farmer/profile", `{"phone":"555","crop_types":"Wheat, Rice"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "Wheat, Rice", svc.got.CropTypes)
		})
	}
}

func TestSaveProfilePartialFailureBody(t *testing.T) {
	e := setup(t, &stubService{saveErr: &service.SaveError{FarmerProfile: errors.New("down")}})
	rec := do(e, http.MethodPut, "/farmer/profile", `{}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body struct {
		Failed []string `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"farmer_profile"}, body.Failed)
}

func TestSaveProfileBadJSON(t *testing.T) {
	rec := do(setup(t, &stubService{}), http.MethodPut, "/farmer/profile", `{"farm_size":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(setup(t, &stubService{}), http.MethodPut, "/farmer/profile", `{"farm_size":{"acres":3}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"farm_size"`)
}

func TestSaveProfileAcceptsJSONNumbers(t *testing.T) {
	svc := &stubService{}
	rec := do(setup(t, svc), http.MethodPut, "/farmer/profile", `{"farm_size":20.5,"experience_years":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20.5", svc.got.FarmSize.String())
	assert.Equal(t, "7", svc.got.ExperienceYears.String())
}

func TestLandsBackendFailureIsVisible(t *testing.T) {
	rec := do(setup(t, &stubService{}), http.MethodGet, "/farmer/lands", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend down")
}
