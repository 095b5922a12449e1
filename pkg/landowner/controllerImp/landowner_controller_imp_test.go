package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"landlink/database/dbtest"
	"landlink/entities"
	landImp "landlink/pkg/land/repositoryImp"
	"landlink/pkg/landowner/serviceImp"
	"landlink/pkg/middleware"
	profileImp "landlink/pkg/profile/repositoryImp"
	"landlink/pkg/session"
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	db := dbtest.Open(t)
	profiles := profileImp.New(db)
	m := session.NewManager(profiles, nil)
	for _, uid := range []string{"owner-1", "owner-2"} {
		_, err := m.Open(context.Background(), uid)
		require.NoError(t, err)
	}
	h := New(serviceImp.NewLandownerService(profiles, landImp.New(db), zap.NewNop()))

	e := echo.New()
	e.Use(middleware.DevLogin(true))
	g := e.Group("/landowner", middleware.RequireSession(m))
	g.GET("/dashboard", h.Dashboard)
	g.POST("/profile/edit", h.ToggleEdit)
	g.PUT("/profile", h.SaveProfile)
	g.GET("/lands", h.ListLands)
	g.POST("/lands", h.AddLand)
	g.GET("/lands/export.xlsx", h.Export)
	g.DELETE("/lands/:id", h.DeleteLand)
	return e
}

func do(e *echo.Echo, uid, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: uid})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeLands(t *testing.T, rec *httptest.ResponseRecorder) []entities.Land {
	t.Helper()
	var lands []entities.Land
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lands))
	return lands
}

func TestAddListDeleteFlow(t *testing.T) {
	e := setup(t)

	rec := do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot A","location":"County X","area":"10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price_per_acre":null`)
	assert.Contains(t, rec.Body.String(), `"soil_type":null`)
	lands := decodeLands(t, rec)
	require.Len(t, lands, 1)
	id := lands[0].ID

	assert.Empty(t, decodeLands(t, do(e, "owner-2", http.MethodGet, "/landowner/lands", "")))

	rec = do(e, "owner-1", http.MethodDelete, "/landowner/lands/"+id, "")
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure")

	assert.Equal(t, http.StatusNotFound, do(e, "owner-2", http.MethodDelete, "/landowner/lands/"+id+"?confirm=true", "").Code)

	rec = do(e, "owner-1", http.MethodDelete, "/landowner/lands/"+id+"?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeLands(t, rec))
}

func TestAddLandValidation(t *testing.T) {
	e := setup(t)
	rec := do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot A","location":"County X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"area: is required","field":"area"}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(e, "owner-1", http.MethodDelete, "/landowner/lands/abc?confirm=true", "").Code)
}

func TestAddLandRejectsNonFiniteArea(t *testing.T) {
	e := setup(t)
	for _, area := range []string{"Inf", "-Inf", "NaN"} {
		rec := do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot A","location":"County X","area":"`+area+`"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, area)
		assert.Contains(t, rec.Body.String(), `"field":"area"`)
	}
	rec := do(e, "owner-1", http.MethodGet, "/landowner/lands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeLands(t, rec))
}

func TestAddLandAcceptsJSONNumbers(t *testing.T) {
	e := setup(t)
	rec := do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot A","location":"County X","area":10,"price_per_acre":250.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	lands := decodeLands(t, rec)
	require.Len(t, lands, 1)
	assert.Equal(t, 10.0, lands[0].Area)
	require.NotNil(t, lands[0].PricePerAcre)
	assert.Equal(t, 250.5, *lands[0].PricePerAcre)

	rec = do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot B","location":"County X","area":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"area"`)
}

func TestProfileEditAndSave(t *testing.T) {
	e := setup(t)
	assert.JSONEq(t, `{"editing":true}`, do(e, "owner-1", http.MethodPost, "/landowner/profile/edit", "").Body.String())

	rec := do(e, "owner-1", http.MethodPut, "/landowner/profile", `{"phone":"555","address":"Hill Farm"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var d struct {
		Form    map[string]string `json:"form"`
		Editing bool              `json:"editing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.False(t, d.Editing)
	assert.Equal(t, "555", d.Form["phone"])
}

func TestExportDownload(t *testing.T) {
	e := setup(t)
	require.Equal(t, http.StatusCreated, do(e, "owner-1", http.MethodPost, "/landowner/lands", `{"title":"Plot A","location":"County X","area":"10"}`).Code)

	rec := do(e, "owner-1", http.MethodGet, "/landowner/lands/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "land-listings.xlsx")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}
