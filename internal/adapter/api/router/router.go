package router

import (
	"bookbazaar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupCatalogRouter(e)
	SetupListingRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupSavedRouter(e, authMiddleware)
	SetupRegionRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
