package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bgmsons/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductBody(name string) []byte {
	body, _ := json.Marshal(map[string]any{
		"name":          name,
		"category":      "industrial",
		"subcategory":   "barcode",
		"images":        []string{"data:image/png;base64,AAAA"},
		"created":       "2026-08-28",
		"description":   "Durable asset labels.",
		"specification": "Polyester, 50x25mm",
		"features":      "Weatherproof\nBarcode ready",
	})
	return body
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	app, _, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	rr := doRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCreateProduct_RequiresToken(t *testing.T) {
	app, products, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(validProductBody("Asset Labels")))
	rr := doRequest(app, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, products.order)
}

func TestCreateProduct_AssignsIDAndLocation(t *testing.T) {
	app, _, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(validProductBody("Asset Labels")))
	req.Header.Set("Authorization", "Bearer "+adminToken(app))
	rr := doRequest(app, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var created catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/api/products/"+created.ID, rr.Header().Get("Location"))

	// The created product is visible on the public list.
	listReq := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	listRR := doRequest(app, listReq)
	require.Equal(t, http.StatusOK, listRR.Code)

	var listed []catalog.Product
	require.NoError(t, json.Unmarshal(listRR.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Asset Labels", listed[0].Name)
}

func TestCreateProduct_RejectsIncompletePayload(t *testing.T) {
	app, products, _, _ := newTestApplication()

	body, _ := json.Marshal(map[string]any{
		"name":     "Asset Labels",
		"category": "industrial",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(app))
	rr := doRequest(app, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, products.order)
}

func TestCreateProduct_RejectsEmptyImageSlot(t *testing.T) {
	app, _, _, _ := newTestApplication()

	body, _ := json.Marshal(map[string]any{
		"name":          "Asset Labels",
		"category":      "industrial",
		"subcategory":   "barcode",
		"images":        []string{""},
		"created":       "2026-08-28",
		"description":   "Durable asset labels.",
		"specification": "Polyester, 50x25mm",
		"features":      "Weatherproof",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(app))
	rr := doRequest(app, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	app, _, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
	rr := doRequest(app, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}

func TestUpdateProduct_URLIDWins(t *testing.T) {
	app, products, _, _ := newTestApplication()
	token := adminToken(app)

	createReq := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(validProductBody("Asset Labels")))
	createReq.Header.Set("Authorization", "Bearer "+token)
	createRR := doRequest(app, createReq)
	require.Equal(t, http.StatusCreated, createRR.Code)

	var created catalog.Product
	require.NoError(t, json.Unmarshal(createRR.Body.Bytes(), &created))

	// The body carries a stale id; the path parameter decides which
	// row is updated.
	var payload map[string]any
	require.NoError(t, json.Unmarshal(validProductBody("Renamed Labels"), &payload))
	payload["id"] = "something-else"
	body, _ := json.Marshal(payload)

	updateReq := httptest.NewRequest(http.MethodPut, "/api/products/"+created.ID, bytes.NewReader(body))
	updateReq.Header.Set("Authorization", "Bearer "+token)
	updateRR := doRequest(app, updateReq)
	require.Equal(t, http.StatusOK, updateRR.Code)

	stored, err := products.GetByID(updateReq.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Labels", stored.Name)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	app, _, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodPut, "/api/products/nope", bytes.NewReader(validProductBody("Asset Labels")))
	req.Header.Set("Authorization", "Bearer "+adminToken(app))
	rr := doRequest(app, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteProduct(t *testing.T) {
	app, products, _, _ := newTestApplication()
	token := adminToken(app)

	createReq := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader(validProductBody("Asset Labels")))
	createReq.Header.Set("Authorization", "Bearer "+token)
	createRR := doRequest(app, createReq)
	require.Equal(t, http.StatusCreated, createRR.Code)

	var created catalog.Product
	require.NoError(t, json.Unmarshal(createRR.Body.Bytes(), &created))

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/products/"+created.ID, nil)
	deleteReq.Header.Set("Authorization", "Bearer "+token)
	deleteRR := doRequest(app, deleteReq)
	require.Equal(t, http.StatusNoContent, deleteRR.Code)
	assert.Empty(t, products.order)

	// Deleting again reports not found.
	again := httptest.NewRequest(http.MethodDelete, "/api/products/"+created.ID, nil)
	again.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusNotFound, doRequest(app, again).Code)
}

func TestDeleteProduct_RequiresToken(t *testing.T) {
	app, _, _, _ := newTestApplication()

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	rr := doRequest(app, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
