package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/ikurilov/canvaskeeper/models"
)

type ItemService interface {
	ListBoardItems(ctx context.Context, boardID string, ownerID string) ([]models.WireItem, error)

	BatchUpsert(ctx context.Context, ownerID string, batch models.BatchUpsertRequest) ([]models.WireItem, error)

	DeleteItem(ctx context.Context, itemID string, ownerID string) (bool, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
