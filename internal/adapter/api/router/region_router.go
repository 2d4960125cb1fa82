package router

import (
	"bookbazaar/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupRegionRouter(e *echo.Echo) {
	regionHandler := handler.GetRegionHandler()

	e.GET("/v1/regions", regionHandler.ListRegions)
	e.GET("/v1/regions/:id/subregions", regionHandler.ListSubregions)
	e.GET("/v1/subregions/:id/localities", regionHandler.ListLocalities)
}
