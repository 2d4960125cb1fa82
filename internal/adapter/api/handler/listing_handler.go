package handler

import (
	"strconv"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/region"
	"bookbazaar/internal/usecase"
	"bookbazaar/pkg/response"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	engine         *usecase.CatalogEngine
	defaultLocale  string
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, engine *usecase.CatalogEngine, defaultLocale string) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		engine:         engine,
		defaultLocale:  defaultLocale,
	}
}

// draftFromForm reads a listing draft from a multipart form. The location
// comes in as the three selection ids and is rebuilt through the cascade, so
// an inconsistent triple degrades to a partial location that validation
// rejects.
func (h *ListingHandler) draftFromForm(c echo.Context) (usecase.ListingDraft, *usecase.ImageUpload, func(), error) {
	price, _ := strconv.ParseInt(c.FormValue("price"), 10, 64)

	locale := region.NormalizeLocale(h.defaultLocale)
	loc := entity.LocationInfo{}
	loc = region.Apply(loc, region.SelectRegion{ID: c.FormValue("region_id")}, locale)
	loc = region.Apply(loc, region.SelectSubregion{ID: c.FormValue("subregion_id")}, locale)
	loc = region.Apply(loc, region.SelectLocality{ID: c.FormValue("locality_id")}, locale)

	draft := usecase.ListingDraft{
		Title:        c.FormValue("title"),
		Author:       c.FormValue("author"),
		Subject:      c.FormValue("subject"),
		Condition:    entity.Condition(c.FormValue("condition")),
		Price:        price,
		ContactPhone: c.FormValue("contact_phone"),
		Description:  c.FormValue("description"),
		Location:     loc,
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No image attached.
		return draft, nil, func() {}, nil
	}

	src, err := file.Open()
	if err != nil {
		return draft, nil, func() {}, err
	}

	image := &usecase.ImageUpload{
		Reader:      src,
		ContentType: file.Header.Get("Content-Type"),
	}

	return draft, image, func() { src.Close() }, nil
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	draft, image, cleanup, err := h.draftFromForm(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer cleanup()

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, draft, image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	draft, image, cleanup, err := h.draftFromForm(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer cleanup()

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), c.Param("id"), sellerID, draft, image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), c.Param("id"), sellerID, h.engine); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Listing deleted"})
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}
