package handler

import (
	"bookbazaar/internal/domain/repository"
	"bookbazaar/internal/usecase"
)

var (
	catalogHandler *CatalogHandler
	listingHandler *ListingHandler
	chatHandler    *ChatHandler
	savedHandler   *SavedHandler
	regionHandler  *RegionHandler
	userHandler    *UserHandler
)

func Setup(
	engine *usecase.CatalogEngine,
	listingUseCase *usecase.ListingUseCase,
	chatUseCase *usecase.ChatUseCase,
	savedUseCase *usecase.SavedUseCase,
	userRepo repository.UserRepository,
	defaultLocale string,
) {
	catalogHandler = NewCatalogHandler(engine, listingUseCase)
	listingHandler = NewListingHandler(listingUseCase, engine, defaultLocale)
	chatHandler = NewChatHandler(chatUseCase)
	savedHandler = NewSavedHandler(savedUseCase)
	regionHandler = NewRegionHandler(defaultLocale)
	userHandler = NewUserHandler(userRepo)
	SetupHealthHandler()
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetSavedHandler() *SavedHandler {
	return savedHandler
}

func GetRegionHandler() *RegionHandler {
	return regionHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}
