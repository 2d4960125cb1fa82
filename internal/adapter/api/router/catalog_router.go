package router

import (
	"bookbazaar/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()

	catalog := e.Group("/v1/catalog")
	catalog.GET("", catalogHandler.ListCatalog)
	catalog.GET("/:id", catalogHandler.GetListing)
}
