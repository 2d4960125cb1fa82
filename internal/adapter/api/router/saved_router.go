package router

import (
	"bookbazaar/internal/adapter/api/handler"
	"bookbazaar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSavedRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	savedHandler := handler.GetSavedHandler()

	saved := e.Group("/v1/saved")
	saved.Use(authMiddleware.Authenticate)
	saved.GET("", savedHandler.ListSaved)
	saved.GET("/:id", savedHandler.GetSavedStatus)
	saved.POST("/:id/toggle", savedHandler.ToggleSaved)
}
