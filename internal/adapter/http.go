package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/utils"
	"github.com/ikurilov/canvaskeeper/models"
)

// HTTPGateway is the HTTP/REST implementation of [AuthClient] and
// [ItemGateway].
type HTTPGateway struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPGateway constructs an HTTP implementation of the gateway contracts.
// It normalizes and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying resty client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPGateway(adapterCfg config.ClientAdapter, logger *logger.Logger) (*HTTPGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &HTTPGateway{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AuthClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *HTTPGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AuthClient]. It returns the bearer token currently held
// by the gateway, or an empty string if none has been set.
func (h *HTTPGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [AuthClient]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *HTTPGateway) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return models.User{Login: user.Login, Name: user.Name}, nil
}

// Login implements [AuthClient]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *HTTPGateway) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: login request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token}, nil
}

// FetchByBoard implements [ItemGateway]. It GETs
// GET /api/boards/{boardID}/items and decodes the response into a slice of
// [models.WireItem]. Requires a valid bearer token.
func (h *HTTPGateway) FetchByBoard(ctx context.Context, boardID string) ([]models.WireItem, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("boardID", boardID).
		Get("/api/boards/{boardID}/items")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch board items request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.WireItem
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode board items response: %w", err)
	}

	return items, nil
}

// BatchUpsert implements [ItemGateway]. It POSTs one batch of wire items to
// POST /api/items/batch and returns the persisted state of every submitted
// item. Requires a valid bearer token.
func (h *HTTPGateway) BatchUpsert(ctx context.Context, items []models.WireItem) ([]models.WireItem, error) {
	req := models.BatchUpsertRequest{Items: items, Length: len(items)}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/items/batch")
	if err != nil {
		return nil, fmt.Errorf("%w: batch upsert request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var batch models.BatchUpsertResponse
	if err = json.Unmarshal(resp.Body(), &batch); err != nil {
		return nil, fmt.Errorf("decode batch upsert response: %w", err)
	}

	return batch.Items, nil
}

// DeleteByID implements [ItemGateway]. It sends
// DELETE /api/items/{itemID} and reports whether a row was removed.
// A miss (no matching row) is not an error. Requires a valid bearer token.
func (h *HTTPGateway) DeleteByID(ctx context.Context, itemID string) (bool, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("itemID", itemID).
		Delete("/api/items/{itemID}")
	if err != nil {
		return false, fmt.Errorf("%w: delete item request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var deleted models.DeleteResponse
	if err = json.Unmarshal(resp.Body(), &deleted); err != nil {
		return false, fmt.Errorf("decode delete response: %w", err)
	}

	return deleted.Deleted, nil
}

func (h *HTTPGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
