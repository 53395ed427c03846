package store

import (
	"github.com/Masterminds/squirrel"

	"github.com/ikurilov/canvaskeeper/models"
)

const (
	createUser = `INSERT INTO users (id, login, password_hash, name)
    VALUES ($1, $2, $3, $4)
    RETURNING id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`
)

// psql builds all canvas item queries with PostgreSQL-style placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var itemColumns = []string{
	"id",
	"board_id",
	"owner_id",
	"item_type",
	"position",
	"size",
	"content",
	"metadata",
	"created_at",
	"updated_at",
}

func buildGetItemsByBoardQuery(boardID, ownerID string) (string, []any, error) {
	return psql.
		Select(itemColumns...).
		From("canvas_items").
		Where(squirrel.Eq{"board_id": boardID, "owner_id": ownerID}).
		OrderBy("created_at", "id").
		ToSql()
}

// buildUpsertItemQuery builds one INSERT ... ON CONFLICT DO UPDATE statement
// for a single wire item. The owner guard on the update arm makes an upsert
// against somebody else's item affect zero rows instead of stealing it.
func buildUpsertItemQuery(ownerID string, item models.WireItem) (string, []any, error) {
	return psql.
		Insert("canvas_items").
		Columns("id", "board_id", "owner_id", "item_type", "position", "size", "content", "metadata").
		Values(item.ID, item.BoardID, ownerID, item.ItemType, item.Position, item.Size, item.Content, item.Metadata).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position,
			size = EXCLUDED.size,
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
		WHERE canvas_items.owner_id = EXCLUDED.owner_id
		RETURNING id, board_id, owner_id, item_type, position, size, content, metadata, created_at, updated_at`).
		ToSql()
}

func buildDeleteItemQuery(itemID, ownerID string) (string, []any, error) {
	return psql.
		Delete("canvas_items").
		Where(squirrel.Eq{"id": itemID, "owner_id": ownerID}).
		ToSql()
}
