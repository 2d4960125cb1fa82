package handler

import (
	"bookbazaar/internal/region"
	"bookbazaar/pkg/response"

	"github.com/labstack/echo/v4"
)

type RegionHandler struct {
	defaultLocale string
}

func NewRegionHandler(defaultLocale string) *RegionHandler {
	return &RegionHandler{
		defaultLocale: defaultLocale,
	}
}

type locationOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *RegionHandler) locale(c echo.Context) string {
	locale := c.QueryParam("locale")
	if locale == "" {
		locale = h.defaultLocale
	}
	return region.NormalizeLocale(locale)
}

func (h *RegionHandler) ListRegions(c echo.Context) error {
	locale := h.locale(c)

	options := make([]locationOption, 0)
	for _, r := range region.Regions() {
		options = append(options, locationOption{ID: r.ID, Name: region.DisplayName(r.ID, locale)})
	}

	return response.Success(c, options)
}

func (h *RegionHandler) ListSubregions(c echo.Context) error {
	locale := h.locale(c)

	options := make([]locationOption, 0)
	for _, s := range region.Subregions(c.Param("id")) {
		options = append(options, locationOption{ID: s.ID, Name: region.DisplayName(s.ID, locale)})
	}

	return response.Success(c, options)
}

func (h *RegionHandler) ListLocalities(c echo.Context) error {
	locale := h.locale(c)

	options := make([]locationOption, 0)
	for _, l := range region.Localities(c.Param("id")) {
		options = append(options, locationOption{ID: l.ID, Name: region.DisplayName(l.ID, locale)})
	}

	return response.Success(c, options)
}
