package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// It executes all canvas item operations against the "canvas_items" table
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via [logger.FromContext]
// so database interactions are traced with structured fields.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// GetItemsByBoard retrieves every item of boardID owned by ownerID, ordered
// by creation time. Returns an empty slice when the board has no items.
func (r *itemRepository) GetItemsByBoard(ctx context.Context, boardID, ownerID string) ([]models.WireItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetItemsByBoardQuery(boardID, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItemsByBoard").
			Str("board_id", boardID).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItemsByBoard").
			Str("board_id", boardID).
			Msg("failed to execute query for board items")
		return nil, r.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	items := make([]models.WireItem, 0, 50)

	for rows.Next() {
		var item models.WireItem

		scanErr := rows.Scan(
			&item.ID,
			&item.BoardID,
			&item.OwnerID,
			&item.ItemType,
			&item.Position,
			&item.Size,
			&item.Content,
			&item.Metadata,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.GetItemsByBoard").
				Str("board_id", boardID).
				Msg("failed to scan canvas item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.GetItemsByBoard").
			Str("board_id", boardID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// BatchUpsert inserts-or-updates every item in one transaction and returns
// the persisted state of each, including server-assigned timestamps.
//
// The whole batch is atomic: a failure on any single item rolls everything
// back, so the client either gets the full batch confirmed or retries it
// unchanged.
func (r *itemRepository) BatchUpsert(ctx context.Context, ownerID string, items []models.WireItem) ([]models.WireItem, error) {
	log := logger.FromContext(ctx)

	if len(items) == 0 {
		return []models.WireItem{}, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.BatchUpsert").
			Msg("failed to begin transaction")
		return nil, r.classify(fmt.Errorf("%w: %w", ErrBeginningTransaction, err))
	}
	defer func() { _ = tx.Rollback() }()

	saved := make([]models.WireItem, 0, len(items))

	for i, item := range items {
		query, args, buildErr := buildUpsertItemQuery(ownerID, item)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "itemRepository.BatchUpsert").
				Int("index", i).
				Msg("failed to build upsert query")
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		var persisted models.WireItem
		scanErr := tx.QueryRowContext(ctx, query, args...).Scan(
			&persisted.ID,
			&persisted.BoardID,
			&persisted.OwnerID,
			&persisted.ItemType,
			&persisted.Position,
			&persisted.Size,
			&persisted.Content,
			&persisted.Metadata,
			&persisted.CreatedAt,
			&persisted.UpdatedAt,
		)
		if scanErr != nil {
			// The owner guard on the update arm filtered the conflicting row,
			// so RETURNING produced nothing: the id exists under another owner.
			if errors.Is(scanErr, sql.ErrNoRows) {
				log.Warn().
					Str("func", "itemRepository.BatchUpsert").
					Str("item_id", item.ID).
					Msg("upsert targets an item owned by another user")
				return nil, fmt.Errorf("%w: %s", ErrItemOwnedByAnotherUser, item.ID)
			}

			log.Err(scanErr).
				Str("func", "itemRepository.BatchUpsert").
				Str("item_id", item.ID).
				Int("index", i).
				Msg("failed to upsert canvas item")
			return nil, r.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr))
		}

		saved = append(saved, persisted)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "itemRepository.BatchUpsert").
			Msg("failed to commit transaction")
		return nil, r.classify(fmt.Errorf("%w: %w", ErrCommitingTransaction, err))
	}

	return saved, nil
}

// DeleteByID removes one item scoped by owner and reports whether a row was
// actually removed. A miss is not an error.
func (r *itemRepository) DeleteByID(ctx context.Context, itemID, ownerID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemQuery(itemID, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteByID").
			Str("item_id", itemID).
			Msg("failed to build delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteByID").
			Str("item_id", itemID).
			Msg("failed to delete canvas item")
		return false, r.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}
