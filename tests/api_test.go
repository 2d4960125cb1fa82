package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"bookbazaar/internal/adapter/api/handler"
	"bookbazaar/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Define the handler
	healthHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	// Assertions
	if assert.NoError(t, healthHandler(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	}
}

func TestCatalogListEmpty(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	engine := usecase.NewCatalogEngine(nil, nil)
	catalogHandler := handler.NewCatalogHandler(engine, nil)

	if assert.NoError(t, catalogHandler.ListCatalog(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":0`)
	}
}

func TestRegionListLocalized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/regions?locale=en", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	regionHandler := handler.NewRegionHandler("zh")

	if assert.NoError(t, regionHandler.ListRegions(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Guangdong")
	}
}
