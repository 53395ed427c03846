package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/utils"
	"github.com/ikurilov/canvaskeeper/models"
)

// listBoardItems returns every canvas item of the requested board owned by
// the authenticated user, ordered by creation time.
func (h *Handler) listBoardItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.listBoardItems").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	boardID := chi.URLParam(r, "boardID")

	items, err := h.services.ItemService.ListBoardItems(ctx, boardID, ownerID)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.listBoardItems").Str("board_id", boardID).Msg("error listing board items")
		http.Error(w, http.StatusText(status), status)
		return
	}

	if _, err = utils.WriteJSON(w, items, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listBoardItems").Msg("error writing response")
	}
}

// batchUpsert persists the whole batch atomically and echoes back the
// persisted items, including server-assigned timestamps.
func (h *Handler) batchUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.batchUpsert").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var batch models.BatchUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Err(err).Str("func", "*Handler.batchUpsert").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.ItemService.BatchUpsert(ctx, ownerID, batch)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.batchUpsert").Int("items", len(batch.Items)).Msg("error upserting batch")
		http.Error(w, http.StatusText(status), status)
		return
	}

	if _, err = utils.WriteJSON(w, models.BatchUpsertResponse{Items: saved}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.batchUpsert").Msg("error writing response")
	}
}

// deleteItem removes a single item. A miss reports deleted=false rather than
// an error, so a repeated delete of the same item stays idempotent.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteItem").Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID := chi.URLParam(r, "itemID")

	deleted, err := h.services.ItemService.DeleteItem(ctx, itemID, ownerID)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.deleteItem").Str("item_id", itemID).Msg("error deleting item")
		http.Error(w, http.StatusText(status), status)
		return
	}

	if _, err = utils.WriteJSON(w, models.DeleteResponse{Deleted: deleted}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.deleteItem").Msg("error writing response")
	}
}
