package service

import (
	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/store"
)

type Services struct {
	AuthService AuthService
	ItemService ItemService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.SessionStore, cfg.App, logger),
		ItemService: NewItemService(storages.ItemRepository, logger),
	}
}
