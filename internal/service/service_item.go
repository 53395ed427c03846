package service

import (
	"context"
	"fmt"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/store"
	"github.com/ikurilov/canvaskeeper/internal/utils"
	"github.com/ikurilov/canvaskeeper/internal/validators"
	"github.com/ikurilov/canvaskeeper/models"
)

// itemService implements ItemService on top of an ItemRepository. Every call
// is scoped to the owner extracted by the HTTP layer, so one user can never
// read or mutate another user's items.
type itemService struct {
	itemRepository store.ItemRepository
	validator      validators.Validator
	ids            *utils.UUIDGenerator

	logger *logger.Logger
}

func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		validator:      validators.NewWireItemValidator(),
		ids:            utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// ListBoardItems returns all items of the board owned by ownerID, ordered by
// creation time.
func (s *itemService) ListBoardItems(ctx context.Context, boardID string, ownerID string) ([]models.WireItem, error) {
	if boardID == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, validators.ErrInvalidBoardID)
	}

	return s.itemRepository.GetItemsByBoard(ctx, boardID, ownerID)
}

// BatchUpsert validates and persists the whole batch atomically, returning
// the persisted items with server-assigned timestamps. Items arriving without
// an id are given one before validation, which lets older clients omit ids
// and still round-trip the assigned value.
func (s *itemService) BatchUpsert(ctx context.Context, ownerID string, batch models.BatchUpsertRequest) ([]models.WireItem, error) {
	log := logger.FromContext(ctx)

	for i := range batch.Items {
		if batch.Items[i].ID == "" {
			batch.Items[i].ID = s.ids.Generate()
		}
		batch.Items[i].OwnerID = ownerID
	}

	if err := s.validator.Validate(ctx, batch); err != nil {
		log.Warn().Err(err).Int("items", len(batch.Items)).Msg("batch failed validation")
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return s.itemRepository.BatchUpsert(ctx, ownerID, batch.Items)
}

// DeleteItem removes one item scoped by owner. Deleting an item that does not
// exist (or belongs to somebody else) reports false without an error.
func (s *itemService) DeleteItem(ctx context.Context, itemID string, ownerID string) (bool, error) {
	if itemID == "" {
		return false, fmt.Errorf("%w: %w", ErrValidationFailed, validators.ErrInvalidItemID)
	}

	return s.itemRepository.DeleteByID(ctx, itemID, ownerID)
}
