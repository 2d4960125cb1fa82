package handler

import (
	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/usecase"
	"bookbazaar/pkg/response"
	"bookbazaar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	engine         *usecase.CatalogEngine
	listingUseCase *usecase.ListingUseCase
}

func NewCatalogHandler(engine *usecase.CatalogEngine, listingUseCase *usecase.ListingUseCase) *CatalogHandler {
	return &CatalogHandler{
		engine:         engine,
		listingUseCase: listingUseCase,
	}
}

// ListCatalog serves one page of the filtered catalog. The filters come in
// as query parameters; absent parameters are wildcards.
func (h *CatalogHandler) ListCatalog(c echo.Context) error {
	q := usecase.Query{
		Search:    c.QueryParam("search"),
		Subject:   c.QueryParam("subject"),
		Condition: entity.Condition(c.QueryParam("condition")),
		Location: entity.LocationInfo{
			RegionID:    c.QueryParam("region_id"),
			SubregionID: c.QueryParam("subregion_id"),
			LocalityID:  c.QueryParam("locality_id"),
		},
	}

	page := utils.GetPageParam(c)
	filtered := usecase.Filter(h.engine.Snapshot(), q)
	items := usecase.Page(filtered, page)

	return response.Paginated(c, items, len(filtered), page, usecase.PageSize, usecase.TotalPages(len(filtered)))
}

func (h *CatalogHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
