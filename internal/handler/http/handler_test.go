// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/mock"
	"github.com/ikurilov/canvaskeeper/internal/service"
	"github.com/ikurilov/canvaskeeper/internal/store"
	"github.com/ikurilov/canvaskeeper/models"
)

type testHandler struct {
	auth   *mock.MockAuthService
	items  *mock.MockItemService
	server *httptest.Server
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	items := mock.NewMockItemService(ctrl)

	h := NewHandler(&service.Services{
		AuthService: auth,
		ItemService: items,
	}, logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return &testHandler{auth: auth, items: items, server: srv}
}

func (th *testHandler) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, th.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := th.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// expectAuth wires ParseToken to accept the given token as the given user.
func (th *testHandler) expectAuth(token, userID string) {
	th.auth.EXPECT().
		ParseToken(gomock.Any(), token).
		Return(models.Token{UserID: userID}, nil)
}

// ── register / login ─────────────────────────────────────────────────────────

func TestRegister_ReturnsBearerToken(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{UserID: "u-1", Login: "john"}, nil)
	th.auth.EXPECT().
		CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{SignedString: "signed"}, nil)

	resp := th.do(t, http.MethodPost, "/api/auth/register", "", models.User{Login: "john", Password: "secret"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer signed", resp.Header.Get("Authorization"))
}

func TestRegister_LoginTaken(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	resp := th.do(t, http.MethodPost, "/api/auth/register", "", models.User{Login: "john", Password: "secret"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_InvalidJSON(t *testing.T) {
	th := newTestHandler(t)

	req, err := http.NewRequest(http.MethodPost, th.server.URL+"/api/auth/register", bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)

	resp, err := th.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongCredentials(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrWrongPassword)

	resp := th.do(t, http.MethodPost, "/api/auth/login", "", models.User{Login: "john", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── auth middleware ──────────────────────────────────────────────────────────

func TestAuthedRoute_NoAuthorizationHeader(t *testing.T) {
	th := newTestHandler(t)

	resp := th.do(t, http.MethodGet, "/api/boards/b1/items", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthedRoute_InvalidToken(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		ParseToken(gomock.Any(), "bad").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	resp := th.do(t, http.MethodGet, "/api/boards/b1/items", "bad", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── board items ──────────────────────────────────────────────────────────────

func TestListBoardItems_ReturnsItems(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-1")

	th.items.EXPECT().
		ListBoardItems(gomock.Any(), "b1", "u-1").
		Return([]models.WireItem{{ID: "a", BoardID: "b1", ItemType: models.ItemTypeNote}}, nil)

	resp := th.do(t, http.MethodGet, "/api/boards/b1/items", "tok", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.WireItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestBatchUpsert_ReturnsPersistedBatch(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-1")

	saved := []models.WireItem{{ID: "a", BoardID: "b1", OwnerID: "u-1", ItemType: models.ItemTypeNote}}
	th.items.EXPECT().
		BatchUpsert(gomock.Any(), "u-1", gomock.Any()).
		Return(saved, nil)

	resp := th.do(t, http.MethodPost, "/api/items/batch", "tok", models.BatchUpsertRequest{
		Items:  []models.WireItem{{ID: "a", BoardID: "b1", ItemType: models.ItemTypeNote}},
		Length: 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.BatchUpsertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "u-1", body.Items[0].OwnerID)
}

func TestBatchUpsert_ValidationFailure(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-1")

	th.items.EXPECT().
		BatchUpsert(gomock.Any(), "u-1", gomock.Any()).
		Return(nil, fmt.Errorf("%w: bad item", service.ErrValidationFailed))

	resp := th.do(t, http.MethodPost, "/api/items/batch", "tok", models.BatchUpsertRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchUpsert_TransientFailureMapsTo503(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-1")

	th.items.EXPECT().
		BatchUpsert(gomock.Any(), "u-1", gomock.Any()).
		Return(nil, fmt.Errorf("%w: deadlock", store.ErrTransient))

	resp := th.do(t, http.MethodPost, "/api/items/batch", "tok", models.BatchUpsertRequest{
		Items: []models.WireItem{{ID: "a"}},
	})

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"transient failures must look retryable to the client")
}

func TestBatchUpsert_ForeignItemMapsTo403(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-2")

	th.items.EXPECT().
		BatchUpsert(gomock.Any(), "u-2", gomock.Any()).
		Return(nil, fmt.Errorf("%w: taken", store.ErrItemOwnedByAnotherUser))

	resp := th.do(t, http.MethodPost, "/api/items/batch", "tok", models.BatchUpsertRequest{
		Items: []models.WireItem{{ID: "taken"}},
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteItem_ReportsDeletedFlag(t *testing.T) {
	th := newTestHandler(t)
	th.expectAuth("tok", "u-1")

	th.items.EXPECT().
		DeleteItem(gomock.Any(), "item-1", "u-1").
		Return(true, nil)

	resp := th.do(t, http.MethodDelete, "/api/items/item-1", "tok", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Deleted)
}
