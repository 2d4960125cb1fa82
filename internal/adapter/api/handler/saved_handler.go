package handler

import (
	"bookbazaar/internal/usecase"
	"bookbazaar/pkg/response"

	"github.com/labstack/echo/v4"
)

type SavedHandler struct {
	savedUseCase *usecase.SavedUseCase
}

func NewSavedHandler(savedUseCase *usecase.SavedUseCase) *SavedHandler {
	return &SavedHandler{
		savedUseCase: savedUseCase,
	}
}

func (h *SavedHandler) ListSaved(c echo.Context) error {
	ids, err := h.savedUseCase.List()
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"listing_ids": ids})
}

func (h *SavedHandler) GetSavedStatus(c echo.Context) error {
	saved, err := h.savedUseCase.IsSaved(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"saved": saved})
}

func (h *SavedHandler) ToggleSaved(c echo.Context) error {
	saved, err := h.savedUseCase.Toggle(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"saved": saved})
}
