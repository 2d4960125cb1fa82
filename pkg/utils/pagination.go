package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetPageParam extracts the zero-based page index from the request.
// Catalog pages have a fixed size, so page is the only knob.
func GetPageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
