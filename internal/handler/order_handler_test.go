package handler_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
)

func createProduct(t *testing.T, e *echo.Echo, user, storeID string) string {
	t.Helper()
	payload := productPayload(t, e, user, storeID, "https://img.example.com/p.png")
	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", user, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var product map[string]interface{}
	decodeBody(t, rec, &product)
	return product["id"].(string)
}

func TestOrderLifecycle(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	productID := createProduct(t, e, "owner-a", storeID)

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/orders", "owner-a", map[string]interface{}{
		"phone":   "+1-555-0100",
		"address": "1 Main St",
		"items":   []map[string]string{{"product_id": productID}, {"product_id": productID}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order map[string]interface{}
	decodeBody(t, rec, &order)
	id := order["id"].(string)
	assert.Equal(t, false, order["is_paid"])

	// List joins items and their products
	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/orders", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []map[string]interface{}
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 1)
	items, ok := orders[0]["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	item := items[0].(map[string]interface{})
	product, ok := item["product"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Red Tee", product["name"])

	// Mark paid
	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeID+"/orders/"+id, "owner-a", map[string]interface{}{
		"phone":   "+1-555-0100",
		"address": "1 Main St",
		"is_paid": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &order)
	assert.Equal(t, true, order["is_paid"])

	// Delete removes the line items with the order
	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeID+"/orders/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]interface{}
	decodeBody(t, rec, &summary)
	assert.EqualValues(t, 2, summary["deleted_items"])

	var itemCount int64
	require.NoError(t, database.GetDB().Model(&model.OrderItem{}).Where("order_id = ?", id).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderRejectsForeignProduct(t *testing.T) {
	e := newTestServer(t)
	storeA := createStore(t, e, "owner-a", "a-store")
	storeB := createStore(t, e, "owner-a", "b-store")
	foreignProduct := createProduct(t, e, "owner-a", storeB)

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeA+"/orders", "owner-a", map[string]interface{}{
		"phone":   "+1-555-0100",
		"address": "1 Main St",
		"items":   []map[string]string{{"product_id": foreignProduct}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "products")
}

func TestOrderRequiresItems(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/orders", "owner-a", map[string]interface{}{
		"phone":   "+1-555-0100",
		"address": "1 Main St",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "items")
}
